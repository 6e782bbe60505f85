package models_test

import (
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExpenseCategoryDefaults() {
	expense := suite.createTestExpense(models.Expense{
		Amount: decimal.NewFromFloat(49.99),
	})

	assert.Equal(suite.T(), models.ExpenseCategoryOther, expense.Category)
}

func (suite *TestSuiteStandard) TestExpenseInvalidCategory() {
	err := models.DB.Create(&models.Expense{
		Category: "luxury",
		Amount:   decimal.NewFromFloat(100),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrExpenseCategoryInvalid)
}

func (suite *TestSuiteStandard) TestExpenseNegativeAmount() {
	err := models.DB.Create(&models.Expense{
		Amount: decimal.NewFromFloat(-0.01),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrExpenseAmountNegative)
}

func (suite *TestSuiteStandard) TestExpenseMonthDefault() {
	due := time.Date(2026, 11, 28, 0, 0, 0, 0, time.UTC)

	expense := suite.createTestExpense(models.Expense{
		Amount:  decimal.NewFromFloat(1250),
		DueDate: due,
	})

	assert.Equal(suite.T(), types.NewMonth(2026, 11), expense.Month)
}

func (suite *TestSuiteStandard) TestExpensePaidDate() {
	expense := suite.createTestExpense(models.Expense{
		Amount: decimal.NewFromFloat(100),
		Paid:   true,
	})
	assert.NotNil(suite.T(), expense.PaidDate)

	expense.Paid = false
	err := models.DB.Save(&expense).Error
	assert.Nil(suite.T(), err)
	assert.Nil(suite.T(), expense.PaidDate)
}
