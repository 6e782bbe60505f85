package v1

import (
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ExpenseEditable struct {
	Category models.ExpenseCategory `json:"category" example:"rent" default:"other"`                                                               // What kind of expense this is
	Amount   decimal.Decimal        `json:"amount" example:"1250" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // The expected amount
	DueDate  time.Time              `json:"dueDate" example:"2026-08-28T00:00:00Z"`                                                                // The day the payment is due
	Paid     bool                   `json:"paid" example:"true" default:"false"`                                                                   // Has the expense been paid?
	PaidDate *time.Time             `json:"paidDate" example:"2026-08-27T00:00:00Z"`                                                               // The day the expense was paid
	Month    types.Month            `json:"month" example:"2026-08-01T00:00:00.000000Z"`                                                           // The month the expense belongs to. Defaults to the month of the due date
	Note     string                 `json:"note" example:"Rent for the apartment" default:""`                                                      // Note about the expense
}

// model returns the database resource for the API representation of the editable fields
func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		Category: editable.Category,
		Amount:   editable.Amount,
		DueDate:  editable.DueDate,
		Paid:     editable.Paid,
		PaidDate: editable.PaidDate,
		Month:    editable.Month,
		Note:     editable.Note,
	}
}

type ExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/v1/expenses/ec86a9ab-fdd7-4b93-9d5c-dd54b171a306"` // The expense itself
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`
}

// newExpense returns the API v1 representation of the resource
func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			Category: model.Category,
			Amount:   model.Amount,
			DueDate:  model.DueDate,
			Paid:     model.Paid,
			PaidDate: model.PaidDate,
			Month:    model.Month,
			Note:     model.Note,
		},
		Links: ExpenseLinks{
			Self: fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
		},
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ExpenseResponse `json:"data"`                                                          // List of created resources
}

func (t *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Expense `json:"data"`                                                          // The resource
}

type ExpenseQueryFilter struct {
	Category          string          `form:"category"`                              // By expense category
	Paid              bool            `form:"paid"`                                  // Has the expense been paid?
	Month             string          `form:"month" filterField:"false"`             // Exact month
	FromMonth         string          `form:"fromMonth" filterField:"false"`         // From this month
	UntilMonth        string          `form:"untilMonth" filterField:"false"`        // Until this month
	Note              string          `form:"note" filterField:"false"`              // By the note
	Amount            decimal.Decimal `form:"amount"`                                // Exact amount
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Offset            uint            `form:"offset" filterField:"false"`            // The offset of the first expense returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`             // Maximum number of expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() models.Expense {
	// Note is handled in the controller
	return models.Expense{
		Category: models.ExpenseCategory(f.Category),
		Paid:     f.Paid,
		Amount:   f.Amount,
	}
}
