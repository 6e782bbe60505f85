package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestGoalsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestGoalsOptions() {
	tests := []struct {
		name   string
		id     string // path at the goals endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No goal with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Goal exists", createTestGoal(suite.T(), v1.GoalEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/goals", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestGoalsCreateInvalid verifies that invalid goals are rejected.
func (suite *TestSuiteStandard) TestGoalsCreateInvalid() {
	tests := []struct {
		name string
		body []v1.GoalEditable
	}{
		{"Name missing", []v1.GoalEditable{{TargetAmount: decimal.NewFromFloat(1000)}}},
		{"Target not positive", []v1.GoalEditable{{Name: "Vacation"}}},
		{"Current negative", []v1.GoalEditable{{Name: "Vacation", TargetAmount: decimal.NewFromFloat(1000), CurrentAmount: decimal.NewFromFloat(-1)}}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/goals", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// TestGoalsProgress verifies adding progress over the API.
func (suite *TestSuiteStandard) TestGoalsProgress() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{
		TargetAmount:  decimal.NewFromFloat(1000),
		CurrentAmount: decimal.NewFromFloat(800),
	})

	// Progress past the target is clamped to exactly the target
	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Progress, v1.GoalProgressEditable{
		Amount: decimal.NewFromFloat(500),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), updated.Data.CurrentAmount.Equal(decimal.NewFromFloat(1000)))
	assert.True(suite.T(), updated.Data.Completed)
}

// TestGoalsProgressInvalid verifies that non-positive progress is rejected.
func (suite *TestSuiteStandard) TestGoalsProgressInvalid() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Progress, v1.GoalProgressEditable{
		Amount: decimal.NewFromFloat(-10),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestGoalsComplete verifies marking a goal as reached.
func (suite *TestSuiteStandard) TestGoalsComplete() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{
		TargetAmount:  decimal.NewFromFloat(1000),
		CurrentAmount: decimal.NewFromFloat(150),
	})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Complete, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), updated.Data.CurrentAmount.Equal(decimal.NewFromFloat(1000)))
	assert.True(suite.T(), updated.Data.Completed)
}

// TestGoalsGetFiltered verifies the query string filters.
func (suite *TestSuiteStandard) TestGoalsGetFiltered() {
	_ = createTestGoal(suite.T(), v1.GoalEditable{
		Name:          "Emergency fund",
		Category:      "savings",
		TargetAmount:  decimal.NewFromFloat(10000),
		CurrentAmount: decimal.NewFromFloat(10000),
	})

	_ = createTestGoal(suite.T(), v1.GoalEditable{
		Name:         "New laptop",
		Category:     "tech",
		TargetAmount: decimal.NewFromFloat(2000),
		Note:         "For work",
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Name", "name=laptop", 1},
		{"Category", "category=savings", 1},
		{"Completed", "completed=true", 1},
		{"Not completed", "completed=false", 1},
		{"Note", "note=work", 1},
		{"Search", "search=fund", 1},
		{"Nothing matches", "category=travel", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/goals?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.GoalListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestGoalsDelete verifies that goals can be deleted.
func (suite *TestSuiteStandard) TestGoalsDelete() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{})

	r := test.Request(suite.T(), http.MethodDelete, goal.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
