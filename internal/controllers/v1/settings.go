package v1

import (
	"net/http"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterSettingRoutes registers the routes for settings with
// the RouterGroup that is passed.
func RegisterSettingRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSettings)
		r.GET("", GetSettings)
		r.PATCH("", UpdateSettings)
	}
}

type SettingsEditable struct {
	Currency *string `json:"currency" example:"TRY"` // ISO 4217 currency code used for display
	Language *string `json:"language" example:"en"`  // BCP 47 language tag of the user interface
	Theme    *string `json:"theme" example:"system"` // One of light, dark, system
}

type SettingsResponse struct {
	Data  map[string]string `json:"data"`                                                       // The settings, with defaults filled in
	Error *string           `json:"error" example:"the currency must be a valid ISO 4217 code"` // The error, if any occurred
}

// OptionsSettings returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Settings
//	@Success		204
//	@Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// GetSettings returns the settings
//
//	@Summary		Get settings
//	@Description	Returns all settings. Keys that have never been written are returned with their default value.
//	@Tags			Settings
//	@Produce		json
//	@Success		200	{object}	SettingsResponse
//	@Failure		500	{object}	SettingsResponse
//	@Router			/v1/settings [get]
func GetSettings(c *gin.Context) {
	settings, err := models.Settings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: settings})
}

// UpdateSettings updates settings
//
//	@Summary		Update settings
//	@Description	Updates settings. Only the keys to be updated need to be specified.
//	@Tags			Settings
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	SettingsResponse
//	@Failure		400			{object}	SettingsResponse
//	@Failure		500			{object}	SettingsResponse
//	@Param			settings	body		SettingsEditable	true	"Settings"
//	@Router			/v1/settings [patch]
func UpdateSettings(c *gin.Context) {
	var editable SettingsEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	updates := map[string]*string{
		models.SettingCurrency: editable.Currency,
		models.SettingLanguage: editable.Language,
		models.SettingTheme:    editable.Theme,
	}

	for key, value := range updates {
		if value == nil {
			continue
		}

		err = models.UpdateSetting(models.DB, key, *value)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SettingsResponse{
				Error: &s,
			})
			return
		}
	}

	settings, err := models.Settings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: settings})
}
