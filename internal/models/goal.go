package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal represents a savings goal with a target amount and the amount saved
// towards it so far.
//
// Completion is derived from the amounts instead of being stored, so it can
// never disagree with the current amount.
type Goal struct {
	DefaultModel
	Name          string
	Category      string
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Deadline      *time.Time
	Icon          string
	Note          string
}

var (
	ErrGoalNameMissing         = errors.New("the name of the goal must be set")
	ErrGoalTargetNotPositive   = errors.New("goal target amounts must be larger than zero")
	ErrGoalCurrentNegative     = errors.New("the current goal amount must not be negative")
	ErrGoalProgressNotPositive = errors.New("progress amounts must be larger than zero")
)

// Completed reports whether the goal has been reached.
func (g Goal) Completed() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// BeforeSave normalizes and verifies the goal.
//
// The current amount is clamped at the target so that progress past the
// target is never recorded as overflow.
func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Category = strings.TrimSpace(g.Category)
	g.Icon = strings.TrimSpace(g.Icon)
	g.Note = strings.TrimSpace(g.Note)

	if g.Name == "" {
		return ErrGoalNameMissing
	}

	if !g.TargetAmount.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	if g.CurrentAmount.IsNegative() {
		return ErrGoalCurrentNegative
	}

	if g.CurrentAmount.GreaterThan(g.TargetAmount) {
		g.CurrentAmount = g.TargetAmount
	}

	return nil
}

// AddProgress adds the amount to the current amount, clamped at the target.
func (g *Goal) AddProgress(db *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrGoalProgressNotPositive
	}

	current := g.CurrentAmount.Add(amount)
	if current.GreaterThan(g.TargetAmount) {
		current = g.TargetAmount
	}

	g.CurrentAmount = current
	return db.Save(g).Error
}

// Complete sets the current amount to the target in one step.
func (g *Goal) Complete(db *gorm.DB) error {
	g.CurrentAmount = g.TargetAmount
	return db.Save(g).Error
}

// Export returns all goals for export.
func (Goal) Export() (json.RawMessage, error) {
	var goals []Goal
	err := DB.Unscoped().Where(&Goal{}).Find(&goals).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&goals)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
