package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeType describes where an income originates from.
type IncomeType string

const (
	IncomeTypeSalary     IncomeType = "salary"
	IncomeTypeFreelance  IncomeType = "freelance"
	IncomeTypeInvestment IncomeType = "investment"
	IncomeTypeOther      IncomeType = "other"
)

// Income represents money that is expected for a month and may or may not
// have been received yet.
type Income struct {
	DefaultModel
	Type         IncomeType
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	ExpectedDate time.Time
	Received     bool
	ReceivedDate *time.Time
	Month        types.Month
	Note         string
}

var (
	ErrIncomeTypeInvalid    = errors.New("the income type must be one of: salary, freelance, investment, other")
	ErrIncomeAmountNegative = errors.New("income amounts must not be negative")
)

// BeforeSave normalizes and verifies the income record.
//
// The month defaults to the month of the expected date, a received income
// without an explicit received date gets the current day.
func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Note = strings.TrimSpace(i.Note)

	if i.Type == "" {
		i.Type = IncomeTypeOther
	}

	switch i.Type {
	case IncomeTypeSalary, IncomeTypeFreelance, IncomeTypeInvestment, IncomeTypeOther:
	default:
		return ErrIncomeTypeInvalid
	}

	if i.Amount.IsNegative() {
		return ErrIncomeAmountNegative
	}

	if i.ExpectedDate.IsZero() {
		i.ExpectedDate = time.Now().In(time.UTC)
	} else {
		i.ExpectedDate = i.ExpectedDate.In(time.UTC)
	}

	if i.Month.IsZero() {
		i.Month = types.MonthOf(i.ExpectedDate)
	}

	if i.Received && i.ReceivedDate == nil {
		now := time.Now().In(time.UTC)
		i.ReceivedDate = &now
	}

	if !i.Received {
		i.ReceivedDate = nil
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone.
func (i *Income) AfterFind(tx *gorm.DB) error {
	_ = i.DefaultModel.AfterFind(tx)

	i.ExpectedDate = i.ExpectedDate.In(time.UTC)
	return nil
}

// Export returns all incomes for export.
func (Income) Export() (json.RawMessage, error) {
	var incomes []Income
	err := DB.Unscoped().Where(&Income{}).Find(&incomes).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&incomes)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
