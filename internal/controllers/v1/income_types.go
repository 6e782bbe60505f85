package v1

import (
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type IncomeEditable struct {
	Type         models.IncomeType `json:"type" example:"salary" default:"other"`                                                                 // Where the income originates from
	Amount       decimal.Decimal   `json:"amount" example:"3000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // The expected amount
	ExpectedDate time.Time         `json:"expectedDate" example:"2026-08-25T00:00:00Z"`                                                           // The day the money is expected
	Received     bool              `json:"received" example:"true" default:"false"`                                                               // Has the money been received?
	ReceivedDate *time.Time        `json:"receivedDate" example:"2026-08-27T00:00:00Z"`                                                           // The day the money was received
	Month        types.Month       `json:"month" example:"2026-08-01T00:00:00.000000Z"`                                                           // The month the income belongs to. Defaults to the month of the expected date
	Note         string            `json:"note" example:"Salary for August" default:""`                                                           // Note about the income
}

// model returns the database resource for the API representation of the editable fields
func (editable IncomeEditable) model() models.Income {
	return models.Income{
		Type:         editable.Type,
		Amount:       editable.Amount,
		ExpectedDate: editable.ExpectedDate,
		Received:     editable.Received,
		ReceivedDate: editable.ReceivedDate,
		Month:        editable.Month,
		Note:         editable.Note,
	}
}

type IncomeLinks struct {
	Self string `json:"self" example:"https://example.com/v1/incomes/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"` // The income itself
}

type Income struct {
	models.DefaultModel
	IncomeEditable
	Links IncomeLinks `json:"links"`
}

// newIncome returns the API v1 representation of the resource
func newIncome(c *gin.Context, model models.Income) Income {
	url := c.GetString(string(models.DBContextURL))

	return Income{
		DefaultModel: model.DefaultModel,
		IncomeEditable: IncomeEditable{
			Type:         model.Type,
			Amount:       model.Amount,
			ExpectedDate: model.ExpectedDate,
			Received:     model.Received,
			ReceivedDate: model.ReceivedDate,
			Month:        model.Month,
			Note:         model.Note,
		},
		Links: IncomeLinks{
			Self: fmt.Sprintf("%s/v1/incomes/%s", url, model.ID),
		},
	}
}

type IncomeListResponse struct {
	Data       []Income    `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type IncomeCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []IncomeResponse `json:"data"`                                                          // List of created resources
}

func (t *IncomeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, IncomeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Income `json:"data"`                                                          // The resource
}

type IncomeQueryFilter struct {
	Type              string          `form:"type"`                                  // By income type
	Received          bool            `form:"received"`                              // Has the income been received?
	Month             string          `form:"month" filterField:"false"`             // Exact month
	FromMonth         string          `form:"fromMonth" filterField:"false"`         // From this month
	UntilMonth        string          `form:"untilMonth" filterField:"false"`        // Until this month
	Note              string          `form:"note" filterField:"false"`              // By the note
	Amount            decimal.Decimal `form:"amount"`                                // Exact amount
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Offset            uint            `form:"offset" filterField:"false"`            // The offset of the first income returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`             // Maximum number of incomes to return. Defaults to 50.
}

func (f IncomeQueryFilter) model() models.Income {
	// Note is handled in the controller
	return models.Income{
		Type:     models.IncomeType(f.Type),
		Received: f.Received,
		Amount:   f.Amount,
	}
}
