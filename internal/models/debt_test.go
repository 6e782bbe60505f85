package models_test

import (
	"testing"
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDebtValidation() {
	tests := []struct {
		name string
		debt models.Debt
		err  error
	}{
		{
			"Name missing",
			models.Debt{
				Direction:       models.DebtDirectionBorrow,
				OriginalAmount:  decimal.NewFromFloat(100),
				RemainingAmount: decimal.NewFromFloat(100),
			},
			models.ErrDebtNameMissing,
		},
		{
			"Invalid direction",
			models.Debt{
				Name:            "Bank",
				Direction:       "steal",
				OriginalAmount:  decimal.NewFromFloat(100),
				RemainingAmount: decimal.NewFromFloat(100),
			},
			models.ErrDebtDirectionInvalid,
		},
		{
			"Zero original amount",
			models.Debt{
				Name:      "Bank",
				Direction: models.DebtDirectionBorrow,
			},
			models.ErrDebtAmountNotPositive,
		},
		{
			"Remaining larger than original",
			models.Debt{
				Name:            "Bank",
				Direction:       models.DebtDirectionBorrow,
				OriginalAmount:  decimal.NewFromFloat(100),
				RemainingAmount: decimal.NewFromFloat(150),
			},
			models.ErrDebtRemainingOutOfRange,
		},
		{
			"Installment without count",
			models.Debt{
				Name:            "Bank",
				Direction:       models.DebtDirectionBorrow,
				OriginalAmount:  decimal.NewFromFloat(100),
				RemainingAmount: decimal.NewFromFloat(100),
				Installment:     true,
			},
			models.ErrDebtInstallmentCountMissing,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.debt).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestDebtStatus() {
	debt := suite.createTestDebt(models.Debt{
		OriginalAmount:  decimal.NewFromFloat(100),
		RemainingAmount: decimal.NewFromFloat(100),
	})
	assert.Equal(suite.T(), models.DebtStatusPending, debt.Status())

	_, err := debt.RecordPayment(models.DB, decimal.NewFromFloat(40), time.Now(), "")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.DebtStatusPartiallyPaid, debt.Status())
	assert.True(suite.T(), debt.RemainingAmount.Equal(decimal.NewFromFloat(60)))

	_, err = debt.RecordPayment(models.DB, decimal.NewFromFloat(60), time.Now(), "")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.DebtStatusPaid, debt.Status())
	assert.True(suite.T(), debt.RemainingAmount.IsZero())
}

func (suite *TestSuiteStandard) TestDebtPaymentClamped() {
	debt := suite.createTestDebt(models.Debt{
		OriginalAmount:  decimal.NewFromFloat(50),
		RemainingAmount: decimal.NewFromFloat(50),
	})

	// A payment larger than the remaining balance settles the debt exactly
	payment, err := debt.RecordPayment(models.DB, decimal.NewFromFloat(80), time.Now(), "")
	require.Nil(suite.T(), err)

	assert.True(suite.T(), debt.RemainingAmount.IsZero())
	assert.Equal(suite.T(), models.DebtStatusPaid, debt.Status())

	// The payment keeps the amount that was actually sent
	assert.True(suite.T(), payment.Amount.Equal(decimal.NewFromFloat(80)))
}

func (suite *TestSuiteStandard) TestDebtPaymentOnSettled() {
	debt := suite.createTestDebt(models.Debt{
		OriginalAmount:  decimal.NewFromFloat(50),
		RemainingAmount: decimal.Zero,
	})

	_, err := debt.RecordPayment(models.DB, decimal.NewFromFloat(10), time.Now(), "")
	assert.ErrorIs(suite.T(), err, models.ErrDebtAlreadySettled)
}

func (suite *TestSuiteStandard) TestDebtPaymentNotPositive() {
	debt := suite.createTestDebt(models.Debt{})

	_, err := debt.RecordPayment(models.DB, decimal.Zero, time.Now(), "")
	assert.ErrorIs(suite.T(), err, models.ErrPaymentAmountNotPositive)

	_, err = debt.RecordPayment(models.DB, decimal.NewFromFloat(-5), time.Now(), "")
	assert.ErrorIs(suite.T(), err, models.ErrPaymentAmountNotPositive)
}

func (suite *TestSuiteStandard) TestDebtSettle() {
	debt := suite.createTestDebt(models.Debt{
		OriginalAmount:  decimal.NewFromFloat(200),
		RemainingAmount: decimal.NewFromFloat(120),
	})

	payment, err := debt.Settle(models.DB, time.Now(), "settled in cash")
	require.Nil(suite.T(), err)

	assert.True(suite.T(), debt.RemainingAmount.IsZero())
	assert.True(suite.T(), payment.Amount.Equal(decimal.NewFromFloat(120)))

	// Settling twice is an error
	_, err = debt.Settle(models.DB, time.Now(), "")
	assert.ErrorIs(suite.T(), err, models.ErrDebtAlreadySettled)
}

func (suite *TestSuiteStandard) TestDebtPaymentHistory() {
	debt := suite.createTestDebt(models.Debt{
		OriginalAmount:  decimal.NewFromFloat(300),
		RemainingAmount: decimal.NewFromFloat(300),
	})

	// Record in reverse chronological order to verify sorting
	_, err := debt.RecordPayment(models.DB, decimal.NewFromFloat(100), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), "second")
	require.Nil(suite.T(), err)
	_, err = debt.RecordPayment(models.DB, decimal.NewFromFloat(50), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "first")
	require.Nil(suite.T(), err)

	payments, err := debt.PaymentHistory(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), payments, 2)

	assert.Equal(suite.T(), "first", payments[0].Note)
	assert.Equal(suite.T(), "second", payments[1].Note)
}

func (suite *TestSuiteStandard) TestDebtDeleteCascades() {
	debt := suite.createTestDebt(models.Debt{
		OriginalAmount:  decimal.NewFromFloat(100),
		RemainingAmount: decimal.NewFromFloat(100),
	})

	_, err := debt.RecordPayment(models.DB, decimal.NewFromFloat(25), time.Now(), "")
	require.Nil(suite.T(), err)

	err = debt.Delete(models.DB)
	require.Nil(suite.T(), err)

	var count int64
	err = models.DB.Model(&models.DebtPayment{}).Where("debt_id = ?", debt.ID).Count(&count).Error
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestDebtPaymentMonthDefault() {
	debt := suite.createTestDebt(models.Debt{
		OriginalAmount:  decimal.NewFromFloat(100),
		RemainingAmount: decimal.NewFromFloat(100),
	})

	payment, err := debt.RecordPayment(models.DB, decimal.NewFromFloat(10), time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC), "")
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), types.NewMonth(2026, 7), payment.Month)
}
