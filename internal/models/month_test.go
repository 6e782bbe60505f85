package models_test

import (
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMonthSummaryEmpty() {
	summary, err := models.ComputeMonthSummary(models.DB, types.NewMonth(2026, 8))
	require.Nil(suite.T(), err)

	assert.True(suite.T(), summary.Income.Total.IsZero())
	assert.True(suite.T(), summary.Expense.Total.IsZero())
	assert.True(suite.T(), summary.NetBalance.IsZero())
	assert.Equal(suite.T(), int64(0), summary.Income.Count)
	assert.Equal(suite.T(), int64(0), summary.Expense.Count)
	assert.Equal(suite.T(), int64(0), summary.Debts.OpenCount)
}

func (suite *TestSuiteStandard) TestMonthSummary() {
	month := types.NewMonth(2026, 8)
	inMonth := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	otherMonth := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// Incomes: 3000 received, 500 pending, one in another month
	suite.createTestIncome(models.Income{Amount: decimal.NewFromFloat(3000), ExpectedDate: inMonth, Received: true})
	suite.createTestIncome(models.Income{Amount: decimal.NewFromFloat(500), ExpectedDate: inMonth})
	suite.createTestIncome(models.Income{Amount: decimal.NewFromFloat(9999), ExpectedDate: otherMonth})

	// Expenses: 1200 paid, 300 unpaid, one in another month
	suite.createTestExpense(models.Expense{Amount: decimal.NewFromFloat(1200), DueDate: inMonth, Paid: true})
	suite.createTestExpense(models.Expense{Amount: decimal.NewFromFloat(300), DueDate: inMonth})
	suite.createTestExpense(models.Expense{Amount: decimal.NewFromFloat(7777), DueDate: otherMonth})

	// Debts: 250 owed, 100 receivable, one settled
	suite.createTestDebt(models.Debt{
		Direction:       models.DebtDirectionBorrow,
		OriginalAmount:  decimal.NewFromFloat(400),
		RemainingAmount: decimal.NewFromFloat(250),
	})
	suite.createTestDebt(models.Debt{
		Direction:       models.DebtDirectionLend,
		OriginalAmount:  decimal.NewFromFloat(100),
		RemainingAmount: decimal.NewFromFloat(100),
	})
	suite.createTestDebt(models.Debt{
		Direction:       models.DebtDirectionBorrow,
		OriginalAmount:  decimal.NewFromFloat(50),
		RemainingAmount: decimal.Zero,
	})

	summary, err := models.ComputeMonthSummary(models.DB, month)
	require.Nil(suite.T(), err)

	assert.True(suite.T(), summary.Income.Total.Equal(decimal.NewFromFloat(3500)), "income total is %s", summary.Income.Total)
	assert.True(suite.T(), summary.Income.Received.Equal(decimal.NewFromFloat(3000)))
	assert.True(suite.T(), summary.Income.Pending.Equal(decimal.NewFromFloat(500)))
	assert.Equal(suite.T(), int64(2), summary.Income.Count)

	assert.True(suite.T(), summary.Expense.Total.Equal(decimal.NewFromFloat(1500)), "expense total is %s", summary.Expense.Total)
	assert.True(suite.T(), summary.Expense.Paid.Equal(decimal.NewFromFloat(1200)))
	assert.True(suite.T(), summary.Expense.Unpaid.Equal(decimal.NewFromFloat(300)))
	assert.Equal(suite.T(), int64(2), summary.Expense.Count)

	assert.True(suite.T(), summary.Debts.Owed.Equal(decimal.NewFromFloat(250)))
	assert.True(suite.T(), summary.Debts.Receivable.Equal(decimal.NewFromFloat(100)))
	assert.Equal(suite.T(), int64(2), summary.Debts.OpenCount)

	// The net balance only considers money that actually moved
	assert.True(suite.T(), summary.NetBalance.Equal(decimal.NewFromFloat(1800)), "net balance is %s", summary.NetBalance)
}
