package v1

import (
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DebtEditable struct {
	Name             string               `json:"name" example:"Aunt Eliza" default:""`                                                                          // Name of the counterparty
	Direction        models.DebtDirection `json:"direction" example:"borrow"`                                                                                    // Is this money borrowed or lent?
	OriginalAmount   decimal.Decimal      `json:"originalAmount" example:"5000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // The amount initially borrowed or lent
	RemainingAmount  *decimal.Decimal     `json:"remainingAmount" example:"3000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"`            // The outstanding balance. Defaults to the original amount
	Note             string               `json:"note" example:"For the car repair" default:""`                                                                  // Note about the debt
	DueDate          *time.Time           `json:"dueDate" example:"2026-12-01T00:00:00Z"`                                                                        // The day the debt is due, if agreed on
	Installment      bool                 `json:"installment" example:"true" default:"false"`                                                                    // Is the debt repaid in installments?
	InstallmentCount uint                 `json:"installmentCount" example:"12" default:"0"`                                                                     // Number of installments. Only relevant for installment debts
}

// model returns the database resource for the API representation of the editable fields
func (editable DebtEditable) model() models.Debt {
	remaining := editable.OriginalAmount
	if editable.RemainingAmount != nil {
		remaining = *editable.RemainingAmount
	}

	return models.Debt{
		Name:             editable.Name,
		Direction:        editable.Direction,
		OriginalAmount:   editable.OriginalAmount,
		RemainingAmount:  remaining,
		Note:             editable.Note,
		DueDate:          editable.DueDate,
		Installment:      editable.Installment,
		InstallmentCount: editable.InstallmentCount,
	}
}

type DebtLinks struct {
	Self     string `json:"self" example:"https://example.com/v1/debts/53a26c35-e0c0-4e4d-a0be-1e59f1983f7e"`              // The debt itself
	Payments string `json:"payments" example:"https://example.com/v1/debts/53a26c35-e0c0-4e4d-a0be-1e59f1983f7e/payments"` // The payment history of the debt
	Settle   string `json:"settle" example:"https://example.com/v1/debts/53a26c35-e0c0-4e4d-a0be-1e59f1983f7e/settle"`     // Settle the debt in one step
}

type Debt struct {
	models.DefaultModel
	DebtEditable
	Status models.DebtStatus `json:"status" example:"partially_paid"` // Settlement state, derived from the amounts
	Links  DebtLinks         `json:"links"`
}

// newDebt returns the API v1 representation of the resource
func newDebt(c *gin.Context, model models.Debt) Debt {
	url := c.GetString(string(models.DBContextURL))
	remaining := model.RemainingAmount

	return Debt{
		DefaultModel: model.DefaultModel,
		DebtEditable: DebtEditable{
			Name:             model.Name,
			Direction:        model.Direction,
			OriginalAmount:   model.OriginalAmount,
			RemainingAmount:  &remaining,
			Note:             model.Note,
			DueDate:          model.DueDate,
			Installment:      model.Installment,
			InstallmentCount: model.InstallmentCount,
		},
		Status: model.Status(),
		Links: DebtLinks{
			Self:     fmt.Sprintf("%s/v1/debts/%s", url, model.ID),
			Payments: fmt.Sprintf("%s/v1/debts/%s/payments", url, model.ID),
			Settle:   fmt.Sprintf("%s/v1/debts/%s/settle", url, model.ID),
		},
	}
}

type DebtListResponse struct {
	Data       []Debt      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DebtCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []DebtResponse `json:"data"`                                                          // List of created resources
}

func (t *DebtCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, DebtResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DebtResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Debt   `json:"data"`                                                          // The resource
}

type DebtQueryFilter struct {
	Name        string `form:"name" filterField:"false"`   // By name
	Direction   string `form:"direction"`                  // Borrowed or lent
	Status      string `form:"status" filterField:"false"` // By settlement state
	Installment bool   `form:"installment"`                // Only installment debts?
	Note        string `form:"note" filterField:"false"`   // By the note
	Search      string `form:"search" filterField:"false"` // By name or note
	Offset      uint   `form:"offset" filterField:"false"` // The offset of the first debt returned. Defaults to 0.
	Limit       int    `form:"limit" filterField:"false"`  // Maximum number of debts to return. Defaults to 50.
}

func (f DebtQueryFilter) model() models.Debt {
	// Name, Note and Search are handled in the controller
	return models.Debt{
		Direction:   models.DebtDirection(f.Direction),
		Installment: f.Installment,
	}
}

type DebtPaymentEditable struct {
	Amount decimal.Decimal `json:"amount" example:"500" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount paid back
	Date   time.Time       `json:"date" example:"2026-08-30T00:00:00Z"`                                                      // The day the payment was made. Defaults to now
	Note   string          `json:"note" example:"August installment" default:""`                                             // Note about the payment
}

type DebtPaymentLinks struct {
	Debt string `json:"debt" example:"https://example.com/v1/debts/53a26c35-e0c0-4e4d-a0be-1e59f1983f7e"` // The debt the payment was made against
}

type DebtPayment struct {
	models.DefaultModel
	DebtID uuid.UUID        `json:"debtId" example:"53a26c35-e0c0-4e4d-a0be-1e59f1983f7e"`
	Amount decimal.Decimal  `json:"amount" example:"500"`
	Date   time.Time        `json:"date" example:"2026-08-30T00:00:00Z"`
	Month  types.Month      `json:"month" example:"2026-08-01T00:00:00.000000Z"`
	Note   string           `json:"note" example:"August installment"`
	Links  DebtPaymentLinks `json:"links"`
}

// newDebtPayment returns the API v1 representation of the resource
func newDebtPayment(c *gin.Context, model models.DebtPayment) DebtPayment {
	url := c.GetString(string(models.DBContextURL))

	return DebtPayment{
		DefaultModel: model.DefaultModel,
		DebtID:       model.DebtID,
		Amount:       model.Amount,
		Date:         model.Date,
		Month:        model.Month,
		Note:         model.Note,
		Links: DebtPaymentLinks{
			Debt: fmt.Sprintf("%s/v1/debts/%s", url, model.DebtID),
		},
	}
}

type DebtPaymentListResponse struct {
	Data  []DebtPayment `json:"data"`                                                          // List of resources
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DebtPaymentResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *DebtPayment `json:"data"`                                                          // The resource
}
