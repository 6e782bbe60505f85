package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestExpensesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestExpensesOptions() {
	tests := []struct {
		name   string
		id     string // path at the expenses endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No expense with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Expense exists", createTestExpense(suite.T(), v1.ExpenseEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/expenses", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestExpensesCreate verifies the defaults set on creation.
func (suite *TestSuiteStandard) TestExpensesCreate() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		Amount:  decimal.NewFromFloat(1250),
		DueDate: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(suite.T(), "other", string(expense.Data.Category))
	assert.Equal(suite.T(), "2026-08", expense.Data.Month.String())
	assert.False(suite.T(), expense.Data.Paid)
}

// TestExpensesGetFiltered verifies the query string filters.
func (suite *TestSuiteStandard) TestExpensesGetFiltered() {
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		Category: "rent",
		Amount:   decimal.NewFromFloat(1250),
		DueDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Paid:     true,
	})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		Category: "subscription",
		Amount:   decimal.NewFromFloat(9.99),
		DueDate:  time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		Note:     "Video streaming",
	})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		Category: "rent",
		Amount:   decimal.NewFromFloat(1250),
		DueDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Category", "category=rent", 2},
		{"Paid", "paid=true", 1},
		{"Month", "month=2026-08", 2},
		{"Note", "note=streaming", 1},
		{"Amount less or equal", "amountLessOrEqual=10", 1},
		{"Nothing matches", "category=insurance", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestExpensesUpdate verifies that expenses can be updated.
func (suite *TestSuiteStandard) TestExpensesUpdate() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		Amount: decimal.NewFromFloat(100),
	})

	r := test.Request(suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{
		"paid": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), updated.Data.Paid)
}

// TestExpensesDelete verifies that expenses can be deleted.
func (suite *TestSuiteStandard) TestExpensesDelete() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{Amount: decimal.NewFromFloat(100)})

	r := test.Request(suite.T(), http.MethodDelete, expense.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, expense.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
