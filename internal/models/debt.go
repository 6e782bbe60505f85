package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DebtDirection describes who owes whom.
type DebtDirection string

const (
	DebtDirectionBorrow DebtDirection = "borrow" // money the user owes
	DebtDirectionLend   DebtDirection = "lend"   // money owed to the user
)

// DebtStatus is derived from the amounts and never stored. Keeping it out of
// the database means it cannot disagree with the remaining balance.
type DebtStatus string

const (
	DebtStatusPending       DebtStatus = "pending"
	DebtStatusPartiallyPaid DebtStatus = "partially_paid"
	DebtStatusPaid          DebtStatus = "paid"
)

// Debt represents money borrowed from or lent to a counterparty.
//
// The remaining amount is the running balance of the ledger: it starts at the
// original amount and is only ever reduced by recorded payments or a direct
// settlement.
type Debt struct {
	DefaultModel
	Name             string
	Direction        DebtDirection
	OriginalAmount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	RemainingAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note             string
	DueDate          *time.Time
	Installment      bool
	InstallmentCount uint
	Payments         []DebtPayment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

var (
	ErrDebtNameMissing             = errors.New("the name of the debt counterparty must be set")
	ErrDebtDirectionInvalid        = errors.New("the debt direction must be either borrow or lend")
	ErrDebtAmountNotPositive       = errors.New("the original debt amount must be larger than zero")
	ErrDebtRemainingOutOfRange     = errors.New("the remaining debt amount must be between zero and the original amount")
	ErrDebtInstallmentCountMissing = errors.New("debts marked as installment need an installment count of at least 1")
	ErrDebtAlreadySettled          = errors.New("this debt is already settled, no further payments can be recorded")
)

// Status derives the settlement state from the amounts.
func (d Debt) Status() DebtStatus {
	if d.RemainingAmount.IsZero() {
		return DebtStatusPaid
	}

	if d.RemainingAmount.Equal(d.OriginalAmount) {
		return DebtStatusPending
	}

	return DebtStatusPartiallyPaid
}

// BeforeSave normalizes and verifies the debt record.
func (d *Debt) BeforeSave(_ *gorm.DB) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Note = strings.TrimSpace(d.Note)

	if d.Name == "" {
		return ErrDebtNameMissing
	}

	switch d.Direction {
	case DebtDirectionBorrow, DebtDirectionLend:
	default:
		return ErrDebtDirectionInvalid
	}

	if !d.OriginalAmount.IsPositive() {
		return ErrDebtAmountNotPositive
	}

	if d.RemainingAmount.IsNegative() || d.RemainingAmount.GreaterThan(d.OriginalAmount) {
		return ErrDebtRemainingOutOfRange
	}

	if d.Installment && d.InstallmentCount < 1 {
		return ErrDebtInstallmentCountMissing
	}

	if !d.Installment {
		d.InstallmentCount = 0
	}

	return nil
}

// RecordPayment appends a payment to the debt's history and reduces the
// remaining balance accordingly, both in a single transaction.
//
// A payment larger than the remaining balance is clamped so that the balance
// never goes negative. Payments against a settled debt are rejected.
func (d *Debt) RecordPayment(db *gorm.DB, amount decimal.Decimal, date time.Time, note string) (DebtPayment, error) {
	if !amount.IsPositive() {
		return DebtPayment{}, ErrPaymentAmountNotPositive
	}

	if d.RemainingAmount.IsZero() {
		return DebtPayment{}, ErrDebtAlreadySettled
	}

	remaining := d.RemainingAmount.Sub(amount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	payment := DebtPayment{
		DebtID: d.ID,
		Amount: amount,
		Date:   date,
		Note:   note,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		d.RemainingAmount = remaining
		return tx.Save(d).Error
	})
	if err != nil {
		return DebtPayment{}, err
	}

	return payment, nil
}

// Settle reduces the remaining balance to zero in one step. The settlement is
// recorded as a closing payment over the remaining amount so that the payment
// history stays consistent with the balance.
func (d *Debt) Settle(db *gorm.DB, date time.Time, note string) (DebtPayment, error) {
	if d.RemainingAmount.IsZero() {
		return DebtPayment{}, ErrDebtAlreadySettled
	}

	return d.RecordPayment(db, d.RemainingAmount, date, note)
}

// Delete removes the debt and all payments recorded against it. Payments are
// owned by exactly one debt and are never left behind.
func (d *Debt) Delete(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&DebtPayment{DebtID: d.ID}).Delete(&DebtPayment{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(d).Error
	})
}

// PaymentHistory returns all payments recorded against the debt, oldest first.
func (d Debt) PaymentHistory(db *gorm.DB) ([]DebtPayment, error) {
	var payments []DebtPayment
	err := db.Where(&DebtPayment{DebtID: d.ID}).Order("date(debt_payments.date) ASC, debt_payments.created_at ASC").Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// Export returns all debts for export.
func (Debt) Export() (json.RawMessage, error) {
	var debts []Debt
	err := DB.Unscoped().Where(&Debt{}).Find(&debts).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&debts)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

// DebtPayment is a single payment recorded against a debt. Payments are
// append-only: they are created when the payment happens and are only removed
// together with their debt.
type DebtPayment struct {
	DefaultModel
	Debt   Debt            `json:"-"`
	DebtID uuid.UUID       `json:"debtId"`
	Amount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date   time.Time
	Month  types.Month
	Note   string
}

var (
	ErrPaymentAmountNotPositive = errors.New("payment amounts must be larger than zero")
	ErrPaymentDebtInvalid       = errors.New("the debt referenced by this payment does not exist")
)

// BeforeSave normalizes and verifies the payment.
func (p *DebtPayment) BeforeSave(_ *gorm.DB) error {
	p.Note = strings.TrimSpace(p.Note)

	if !p.Amount.IsPositive() {
		return ErrPaymentAmountNotPositive
	}

	if p.Date.IsZero() {
		p.Date = time.Now().In(time.UTC)
	} else {
		p.Date = p.Date.In(time.UTC)
	}

	if p.Month.IsZero() {
		p.Month = types.MonthOf(p.Date)
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone.
func (p *DebtPayment) AfterFind(tx *gorm.DB) error {
	_ = p.DefaultModel.AfterFind(tx)

	p.Date = p.Date.In(time.UTC)
	return nil
}

// Export returns all debt payments for export.
func (DebtPayment) Export() (json.RawMessage, error) {
	var payments []DebtPayment
	err := DB.Unscoped().Where(&DebtPayment{}).Find(&payments).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&payments)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
