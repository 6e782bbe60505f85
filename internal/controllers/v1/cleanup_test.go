package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCleanup verifies that all resources are deleted.
func (suite *TestSuiteStandard) TestCleanup() {
	createTestIncome(suite.T(), v1.IncomeEditable{Amount: decimal.NewFromFloat(100)})
	createTestExpense(suite.T(), v1.ExpenseEditable{Amount: decimal.NewFromFloat(100)})
	debt := createTestDebt(suite.T(), v1.DebtEditable{OriginalAmount: decimal.NewFromFloat(100)})
	createTestGoal(suite.T(), v1.GoalEditable{})

	r := test.Request(suite.T(), http.MethodPost, debt.Data.Links.Payments, v1.DebtPaymentEditable{
		Amount: decimal.NewFromFloat(10),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	for _, model := range []any{
		&models.Income{},
		&models.Expense{},
		&models.Debt{},
		&models.DebtPayment{},
		&models.Goal{},
		&models.Setting{},
	} {
		var count int64
		err := models.DB.Unscoped().Model(model).Count(&count).Error
		require.Nil(suite.T(), err)
		assert.Equal(suite.T(), int64(0), count, "%T is not empty", model)
	}
}

// TestCleanupUnconfirmed verifies that the confirmation is required.
func (suite *TestSuiteStandard) TestCleanupUnconfirmed() {
	tests := []struct {
		name string
		path string
	}{
		{"No confirmation", "http://example.com/v1"},
		{"Wrong confirmation", "http://example.com/v1?confirm=on-second-thought-no"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			income := createTestIncome(t, v1.IncomeEditable{Amount: decimal.NewFromFloat(100)})

			r := test.Request(t, http.MethodDelete, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			// Nothing was deleted
			r = test.Request(t, http.MethodGet, income.Data.Links.Self, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
		})
	}
}
