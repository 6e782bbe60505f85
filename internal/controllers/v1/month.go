package v1

import (
	"net/http"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMonth)
		r.GET("", GetMonth)
	}
}

type MonthResponse struct {
	Data  *models.MonthSummary `json:"data"`                                                  // The month's totals
	Error *string              `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

// OptionsMonth returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Months
//	@Success		204
//	@Router			/v1/months [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetMonth returns the totals for a month
//
//	@Summary		Get month
//	@Description	Returns all income, expense and debt totals for the requested month
//	@Tags			Months
//	@Produce		json
//	@Success		200		{object}	MonthResponse
//	@Failure		400		{object}	MonthResponse
//	@Failure		500		{object}	MonthResponse
//	@Param			month	query		string	true	"The month in YYYY-MM format"
//	@Router			/v1/months [get]
func GetMonth(c *gin.Context) {
	var query struct {
		Month string `form:"month"`
	}

	if err := c.Bind(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	if query.Month == "" {
		s := errMonthNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	month, err := types.ParseMonth(query.Month)
	if err != nil {
		s := httputil.ErrInvalidMonth.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	summary, err := models.ComputeMonthSummary(models.DB, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &summary})
}
