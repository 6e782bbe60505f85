package v1

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterExportRoutes registers the routes for the export of all data
func RegisterExportRoutes(r *gin.RouterGroup, version string) {
	{
		r.OPTIONS("", OptionsExport)
		r.GET("", func(c *gin.Context) {
			GetExport(c, version)
		})
	}
}

type ExportResponse struct {
	Version      string                     `json:"version" example:"1.1.0"`                         // The version of the app that created the export
	Data         map[string]json.RawMessage `json:"data"`                                            // The exported data, one key per model
	CreationTime time.Time                  `json:"creationTime" example:"2026-08-31T14:03:50.577Z"` // Time the export was created
	Error        *string                    `json:"error"`                                           // The error, if any occurred
}

// OptionsExport returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Export & Import
//	@Success		204
//	@Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetExport returns all resources in the backend
//
//	@Summary		Export
//	@Description	Returns all data in the backend. Deleted resources are included so that a backup can be fully restored.
//	@Tags			Export & Import
//	@Produce		json
//	@Success		200	{object}	ExportResponse
//	@Failure		500	{object}	ExportResponse
//	@Router			/v1/export [get]
func GetExport(c *gin.Context, version string) {
	data := make(map[string]json.RawMessage, len(models.Registry))

	for _, model := range models.Registry {
		export, err := model.Export()
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ExportResponse{
				Error: &s,
			})
			return
		}

		data[strings.ToLower(reflect.TypeOf(model).Name())] = export
	}

	c.JSON(http.StatusOK, ExportResponse{
		Version:      version,
		Data:         data,
		CreationTime: time.Now().UTC(),
	})
}
