package v1

import (
	"net/http"

	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Incomes  string `json:"incomes" example:"https://example.com/v1/incomes"`   // URL of income endpoints
	Expenses string `json:"expenses" example:"https://example.com/v1/expenses"` // URL of expense endpoints
	Debts    string `json:"debts" example:"https://example.com/v1/debts"`       // URL of debt endpoints
	Goals    string `json:"goals" example:"https://example.com/v1/goals"`       // URL of goal endpoints
	Months   string `json:"months" example:"https://example.com/v1/months"`     // URL of month summary endpoints
	Settings string `json:"settings" example:"https://example.com/v1/settings"` // URL of settings endpoints
	Export   string `json:"export" example:"https://example.com/v1/export"`     // URL of the export endpoint
	Import   string `json:"import" example:"https://example.com/v1/import"`     // URL of the import endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Incomes:  url + "/incomes",
			Expenses: url + "/expenses",
			Debts:    url + "/debts",
			Goals:    url + "/goals",
			Months:   url + "/months",
			Settings: url + "/settings",
			Export:   url + "/export",
			Import:   url + "/import",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET, DELETE")
	c.Status(http.StatusNoContent)
}
