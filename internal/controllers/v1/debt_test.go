package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDebtsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestDebtsOptions() {
	tests := []struct {
		name   string
		id     string // path at the debts endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No debt with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Debt exists", createTestDebt(suite.T(), v1.DebtEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/debts", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestDebtsCreate verifies that the remaining amount defaults to the
// original amount.
func (suite *TestSuiteStandard) TestDebtsCreate() {
	debt := createTestDebt(suite.T(), v1.DebtEditable{
		Name:           "Aunt Eliza",
		OriginalAmount: decimal.NewFromFloat(5000),
	})

	require.NotNil(suite.T(), debt.Data.RemainingAmount)
	assert.True(suite.T(), debt.Data.RemainingAmount.Equal(decimal.NewFromFloat(5000)))
	assert.Equal(suite.T(), models.DebtStatusPending, debt.Data.Status)
}

// TestDebtsCreateWithRemaining verifies that an explicit remaining amount
// is kept.
func (suite *TestSuiteStandard) TestDebtsCreateWithRemaining() {
	remaining := decimal.NewFromFloat(3000)

	debt := createTestDebt(suite.T(), v1.DebtEditable{
		Name:            "Aunt Eliza",
		OriginalAmount:  decimal.NewFromFloat(5000),
		RemainingAmount: &remaining,
	})

	require.NotNil(suite.T(), debt.Data.RemainingAmount)
	assert.True(suite.T(), debt.Data.RemainingAmount.Equal(remaining))
	assert.Equal(suite.T(), models.DebtStatusPartiallyPaid, debt.Data.Status)
}

// TestDebtsPayments verifies recording payments over the API.
func (suite *TestSuiteStandard) TestDebtsPayments() {
	debt := createTestDebt(suite.T(), v1.DebtEditable{
		OriginalAmount: decimal.NewFromFloat(100),
	})

	// Record a payment
	r := test.Request(suite.T(), http.MethodPost, debt.Data.Links.Payments, v1.DebtPaymentEditable{
		Amount: decimal.NewFromFloat(40),
		Note:   "first installment",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var payment v1.DebtPaymentResponse
	test.DecodeResponse(suite.T(), &r, &payment)
	assert.True(suite.T(), payment.Data.Amount.Equal(decimal.NewFromFloat(40)))

	// The debt now has a reduced remaining amount
	r = test.Request(suite.T(), http.MethodGet, debt.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.DebtResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.RemainingAmount.Equal(decimal.NewFromFloat(60)))
	assert.Equal(suite.T(), models.DebtStatusPartiallyPaid, updated.Data.Status)

	// The payment shows up in the history
	r = test.Request(suite.T(), http.MethodGet, debt.Data.Links.Payments, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var history v1.DebtPaymentListResponse
	test.DecodeResponse(suite.T(), &r, &history)
	require.Len(suite.T(), history.Data, 1)
	assert.Equal(suite.T(), "first installment", history.Data[0].Note)
}

// TestDebtsPaymentClamped verifies that overpayments settle the debt at
// exactly zero.
func (suite *TestSuiteStandard) TestDebtsPaymentClamped() {
	debt := createTestDebt(suite.T(), v1.DebtEditable{
		OriginalAmount: decimal.NewFromFloat(50),
	})

	r := test.Request(suite.T(), http.MethodPost, debt.Data.Links.Payments, v1.DebtPaymentEditable{
		Amount: decimal.NewFromFloat(80),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodGet, debt.Data.Links.Self, "")
	var updated v1.DebtResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), updated.Data.RemainingAmount.IsZero())
	assert.Equal(suite.T(), models.DebtStatusPaid, updated.Data.Status)

	// No further payments can be recorded
	r = test.Request(suite.T(), http.MethodPost, debt.Data.Links.Payments, v1.DebtPaymentEditable{
		Amount: decimal.NewFromFloat(10),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestDebtsSettle verifies the one-step settlement.
func (suite *TestSuiteStandard) TestDebtsSettle() {
	debt := createTestDebt(suite.T(), v1.DebtEditable{
		OriginalAmount: decimal.NewFromFloat(200),
	})

	r := test.Request(suite.T(), http.MethodPost, debt.Data.Links.Settle, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var settled v1.DebtResponse
	test.DecodeResponse(suite.T(), &r, &settled)
	assert.True(suite.T(), settled.Data.RemainingAmount.IsZero())
	assert.Equal(suite.T(), models.DebtStatusPaid, settled.Data.Status)

	// The settlement is recorded as a closing payment
	r = test.Request(suite.T(), http.MethodGet, debt.Data.Links.Payments, "")
	var history v1.DebtPaymentListResponse
	test.DecodeResponse(suite.T(), &r, &history)
	require.Len(suite.T(), history.Data, 1)
	assert.True(suite.T(), history.Data[0].Amount.Equal(decimal.NewFromFloat(200)))

	// Settling twice is an error
	r = test.Request(suite.T(), http.MethodPost, debt.Data.Links.Settle, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestDebtsGetFiltered verifies the query string filters.
func (suite *TestSuiteStandard) TestDebtsGetFiltered() {
	remaining := decimal.NewFromFloat(40)
	zero := decimal.Zero

	_ = createTestDebt(suite.T(), v1.DebtEditable{
		Name:           "Aunt Eliza",
		Direction:      models.DebtDirectionBorrow,
		OriginalAmount: decimal.NewFromFloat(100),
	})

	_ = createTestDebt(suite.T(), v1.DebtEditable{
		Name:            "Office mate",
		Direction:       models.DebtDirectionLend,
		OriginalAmount:  decimal.NewFromFloat(100),
		RemainingAmount: &remaining,
		Note:            "lunch money",
	})

	_ = createTestDebt(suite.T(), v1.DebtEditable{
		Name:             "Bank",
		Direction:        models.DebtDirectionBorrow,
		OriginalAmount:   decimal.NewFromFloat(1000),
		RemainingAmount:  &zero,
		Installment:      true,
		InstallmentCount: 12,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Name", "name=aunt", 1},
		{"Direction", "direction=borrow", 2},
		{"Status pending", "status=pending", 1},
		{"Status partially paid", "status=partially_paid", 1},
		{"Status paid", "status=paid", 1},
		{"Unknown status", "status=overdue", 0},
		{"Installment", "installment=true", 1},
		{"Note", "note=lunch", 1},
		{"Search", "search=office", 1},
		{"Nothing matches", "name=nobody", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/debts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.DebtListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestDebtsDelete verifies that deleting a debt removes its payments.
func (suite *TestSuiteStandard) TestDebtsDelete() {
	debt := createTestDebt(suite.T(), v1.DebtEditable{
		OriginalAmount: decimal.NewFromFloat(100),
	})

	r := test.Request(suite.T(), http.MethodPost, debt.Data.Links.Payments, v1.DebtPaymentEditable{
		Amount: decimal.NewFromFloat(25),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodDelete, debt.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	var count int64
	err := models.DB.Model(&models.DebtPayment{}).Count(&count).Error
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count)
}
