package models_test

import (
	"strings"
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestIncomeTypeDefaults() {
	income := suite.createTestIncome(models.Income{
		Amount: decimal.NewFromFloat(3000),
	})

	assert.Equal(suite.T(), models.IncomeTypeOther, income.Type)
}

func (suite *TestSuiteStandard) TestIncomeInvalidType() {
	err := models.DB.Create(&models.Income{
		Type:   "gambling",
		Amount: decimal.NewFromFloat(100),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrIncomeTypeInvalid)
}

func (suite *TestSuiteStandard) TestIncomeNegativeAmount() {
	err := models.DB.Create(&models.Income{
		Amount: decimal.NewFromFloat(-1),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrIncomeAmountNegative)
}

func (suite *TestSuiteStandard) TestIncomeMonthDefault() {
	expected := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	income := suite.createTestIncome(models.Income{
		Amount:       decimal.NewFromFloat(500),
		ExpectedDate: expected,
	})

	assert.Equal(suite.T(), types.NewMonth(2026, 3), income.Month)
}

func (suite *TestSuiteStandard) TestIncomeReceivedDate() {
	// A received income without a date gets one
	income := suite.createTestIncome(models.Income{
		Amount:   decimal.NewFromFloat(500),
		Received: true,
	})
	assert.NotNil(suite.T(), income.ReceivedDate)

	// Marking it as not received clears the date
	income.Received = false
	err := models.DB.Save(&income).Error
	assert.Nil(suite.T(), err)
	assert.Nil(suite.T(), income.ReceivedDate)
}

func (suite *TestSuiteStandard) TestIncomeTrimWhitespace() {
	note := " Salary for March  \t"

	income := suite.createTestIncome(models.Income{
		Amount: decimal.NewFromFloat(3000),
		Note:   note,
	})

	assert.Equal(suite.T(), strings.TrimSpace(note), income.Note)
}
