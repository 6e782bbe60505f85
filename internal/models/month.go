package models

import (
	"github.com/fintrack/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthIncome holds the income totals for a month.
type MonthIncome struct {
	Total    decimal.Decimal `json:"total" example:"3000"`    // Sum of all income expected in the month
	Received decimal.Decimal `json:"received" example:"2500"` // Sum of income already received
	Pending  decimal.Decimal `json:"pending" example:"500"`   // Sum of income not received yet
	Count    int64           `json:"count" example:"3"`       // Number of income records in the month
}

// MonthExpense holds the expense totals for a month.
type MonthExpense struct {
	Total  decimal.Decimal `json:"total" example:"1500"` // Sum of all expenses due in the month
	Paid   decimal.Decimal `json:"paid" example:"1200"`  // Sum of expenses already paid
	Unpaid decimal.Decimal `json:"unpaid" example:"300"` // Sum of expenses not paid yet
	Count  int64           `json:"count" example:"5"`    // Number of expense records in the month
}

// DebtTotals holds the open debt balances. They are a point-in-time snapshot
// over all open debts, independent of the month.
type DebtTotals struct {
	Owed       decimal.Decimal `json:"owed" example:"250"`       // Remaining balance over all open debts the user owes
	Receivable decimal.Decimal `json:"receivable" example:"100"` // Remaining balance over all open debts owed to the user
	OpenCount  int64           `json:"openCount" example:"2"`    // Number of debts that are not settled yet
}

// MonthSummary is the aggregation of all records for a month.
type MonthSummary struct {
	Month      types.Month     `json:"month" example:"2026-08-01T00:00:00.000000Z"` // The month the totals are computed for
	Income     MonthIncome     `json:"income"`
	Expense    MonthExpense    `json:"expense"`
	Debts      DebtTotals      `json:"debts"`
	NetBalance decimal.Decimal `json:"netBalance" example:"1300"` // Received income minus paid expenses
}

// monthRange constrains a query to records within the month.
func monthRange(q *gorm.DB, month types.Month) *gorm.DB {
	return q.Where("month >= date(?)", month).Where("month < date(?)", month.AddDate(0, 1))
}

// sumAmount computes SUM over a column for a query. A query matching no rows
// sums to zero.
func sumAmount(q *gorm.DB, column string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := q.Select("SUM(" + column + ")").Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}

// ComputeMonthSummary aggregates all income, expense and debt records into
// the totals for a month.
//
// It is a pure read: no record is modified, an empty store yields all zeros.
func ComputeMonthSummary(db *gorm.DB, month types.Month) (MonthSummary, error) {
	summary := MonthSummary{Month: month}

	// Income
	incomeTotal, err := sumAmount(monthRange(db.Model(&Income{}), month), "amount")
	if err != nil {
		return MonthSummary{}, err
	}

	incomeReceived, err := sumAmount(monthRange(db.Model(&Income{}), month).Where("received"), "amount")
	if err != nil {
		return MonthSummary{}, err
	}

	err = monthRange(db.Model(&Income{}), month).Count(&summary.Income.Count).Error
	if err != nil {
		return MonthSummary{}, err
	}

	summary.Income.Total = incomeTotal
	summary.Income.Received = incomeReceived
	summary.Income.Pending = incomeTotal.Sub(incomeReceived)

	// Expenses
	expenseTotal, err := sumAmount(monthRange(db.Model(&Expense{}), month), "amount")
	if err != nil {
		return MonthSummary{}, err
	}

	expensePaid, err := sumAmount(monthRange(db.Model(&Expense{}), month).Where("paid"), "amount")
	if err != nil {
		return MonthSummary{}, err
	}

	err = monthRange(db.Model(&Expense{}), month).Count(&summary.Expense.Count).Error
	if err != nil {
		return MonthSummary{}, err
	}

	summary.Expense.Total = expenseTotal
	summary.Expense.Paid = expensePaid
	summary.Expense.Unpaid = expenseTotal.Sub(expensePaid)

	// Open debt balances
	owed, err := sumAmount(db.Model(&Debt{}).Where("remaining_amount > 0").Where(&Debt{Direction: DebtDirectionBorrow}), "remaining_amount")
	if err != nil {
		return MonthSummary{}, err
	}

	receivable, err := sumAmount(db.Model(&Debt{}).Where("remaining_amount > 0").Where(&Debt{Direction: DebtDirectionLend}), "remaining_amount")
	if err != nil {
		return MonthSummary{}, err
	}

	err = db.Model(&Debt{}).Where("remaining_amount > 0").Count(&summary.Debts.OpenCount).Error
	if err != nil {
		return MonthSummary{}, err
	}

	summary.Debts.Owed = owed
	summary.Debts.Receivable = receivable

	// The net balance only counts money that actually moved: received
	// income minus paid expenses.
	summary.NetBalance = incomeReceived.Sub(expensePaid)

	return summary, nil
}
