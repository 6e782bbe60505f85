package v1

import (
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type GoalEditable struct {
	Name          string          `json:"name" example:"Emergency fund" default:""`                                                                     // Name of the goal
	Category      string          `json:"category" example:"savings" default:""`                                                                        // Free-form category of the goal
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"10000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"`             // The amount to save up to
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"2500" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // The amount saved so far
	Deadline      *time.Time      `json:"deadline" example:"2027-06-01T00:00:00Z"`                                                                      // The day the goal should be reached, if set
	Icon          string          `json:"icon" example:"piggy-bank" default:""`                                                                         // Icon to display for the goal
	Note          string          `json:"note" example:"Six months of expenses" default:""`                                                             // Note about the goal
}

// model returns the database resource for the API representation of the editable fields
func (editable GoalEditable) model() models.Goal {
	return models.Goal{
		Name:          editable.Name,
		Category:      editable.Category,
		TargetAmount:  editable.TargetAmount,
		CurrentAmount: editable.CurrentAmount,
		Deadline:      editable.Deadline,
		Icon:          editable.Icon,
		Note:          editable.Note,
	}
}

type GoalLinks struct {
	Self     string `json:"self" example:"https://example.com/v1/goals/dcf472ba-ff57-4b14-85cd-11b3fbf51599"`              // The goal itself
	Progress string `json:"progress" example:"https://example.com/v1/goals/dcf472ba-ff57-4b14-85cd-11b3fbf51599/progress"` // Add saved money to the goal
	Complete string `json:"complete" example:"https://example.com/v1/goals/dcf472ba-ff57-4b14-85cd-11b3fbf51599/complete"` // Mark the goal as reached
}

type Goal struct {
	models.DefaultModel
	GoalEditable
	Completed bool      `json:"completed" example:"false"` // Has the target amount been reached?
	Links     GoalLinks `json:"links"`
}

// newGoal returns the API v1 representation of the resource
func newGoal(c *gin.Context, model models.Goal) Goal {
	url := c.GetString(string(models.DBContextURL))

	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			Name:          model.Name,
			Category:      model.Category,
			TargetAmount:  model.TargetAmount,
			CurrentAmount: model.CurrentAmount,
			Deadline:      model.Deadline,
			Icon:          model.Icon,
			Note:          model.Note,
		},
		Completed: model.Completed(),
		Links: GoalLinks{
			Self:     fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
			Progress: fmt.Sprintf("%s/v1/goals/%s/progress", url, model.ID),
			Complete: fmt.Sprintf("%s/v1/goals/%s/complete", url, model.ID),
		},
	}
}

type GoalListResponse struct {
	Data       []Goal      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GoalCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []GoalResponse `json:"data"`                                                          // List of created resources
}

func (t *GoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, GoalResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GoalResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Goal   `json:"data"`                                                          // The resource
}

type GoalQueryFilter struct {
	Name      string `form:"name" filterField:"false"`      // By name
	Category  string `form:"category"`                      // By category
	Completed bool   `form:"completed" filterField:"false"` // Has the target amount been reached?
	Note      string `form:"note" filterField:"false"`      // By the note
	Search    string `form:"search" filterField:"false"`    // By name or note
	Offset    uint   `form:"offset" filterField:"false"`    // The offset of the first goal returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`     // Maximum number of goals to return. Defaults to 50.
}

func (f GoalQueryFilter) model() models.Goal {
	// Name, Note and Search are handled in the controller
	return models.Goal{
		Category: f.Category,
	}
}

type GoalProgressEditable struct {
	Amount decimal.Decimal `json:"amount" example:"250" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount to add to the saved total
}
