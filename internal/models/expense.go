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

// ExpenseCategory groups expenses for display and filtering.
type ExpenseCategory string

const (
	ExpenseCategoryBill         ExpenseCategory = "bill"
	ExpenseCategoryRent         ExpenseCategory = "rent"
	ExpenseCategoryTransport    ExpenseCategory = "transport"
	ExpenseCategoryInsurance    ExpenseCategory = "insurance"
	ExpenseCategorySubscription ExpenseCategory = "subscription"
	ExpenseCategoryOther        ExpenseCategory = "other"
)

// Expense represents money that is due in a month and may or may not have
// been paid yet.
type Expense struct {
	DefaultModel
	Category ExpenseCategory
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	DueDate  time.Time
	Paid     bool
	PaidDate *time.Time
	Month    types.Month
	Note     string
}

var (
	ErrExpenseCategoryInvalid = errors.New("the expense category must be one of: bill, rent, transport, insurance, subscription, other")
	ErrExpenseAmountNegative  = errors.New("expense amounts must not be negative")
)

// BeforeSave normalizes and verifies the expense record.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Note = strings.TrimSpace(e.Note)

	if e.Category == "" {
		e.Category = ExpenseCategoryOther
	}

	switch e.Category {
	case ExpenseCategoryBill, ExpenseCategoryRent, ExpenseCategoryTransport,
		ExpenseCategoryInsurance, ExpenseCategorySubscription, ExpenseCategoryOther:
	default:
		return ErrExpenseCategoryInvalid
	}

	if e.Amount.IsNegative() {
		return ErrExpenseAmountNegative
	}

	if e.DueDate.IsZero() {
		e.DueDate = time.Now().In(time.UTC)
	} else {
		e.DueDate = e.DueDate.In(time.UTC)
	}

	if e.Month.IsZero() {
		e.Month = types.MonthOf(e.DueDate)
	}

	if e.Paid && e.PaidDate == nil {
		now := time.Now().In(time.UTC)
		e.PaidDate = &now
	}

	if !e.Paid {
		e.PaidDate = nil
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone.
func (e *Expense) AfterFind(tx *gorm.DB) error {
	_ = e.DefaultModel.AfterFind(tx)

	e.DueDate = e.DueDate.In(time.UTC)
	return nil
}

// Export returns all expenses for export.
func (Expense) Export() (json.RawMessage, error) {
	var expenses []Expense
	err := DB.Unscoped().Where(&Expense{}).Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&expenses)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
