package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestSettingsDefaults verifies that unwritten settings have defaults.
func (suite *TestSuiteStandard) TestSettingsDefaults() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "TRY", response.Data["currency"])
	assert.Equal(suite.T(), "en", response.Data["language"])
	assert.Equal(suite.T(), "system", response.Data["theme"])
}

// TestSettingsUpdate verifies that settings can be updated one at a time.
func (suite *TestSuiteStandard) TestSettingsUpdate() {
	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", map[string]string{
		"currency": "EUR",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "EUR", response.Data["currency"])

	// Keys not in the request body are untouched
	assert.Equal(suite.T(), "system", response.Data["theme"])
}

// TestSettingsUpdateInvalid verifies that invalid values are rejected.
func (suite *TestSuiteStandard) TestSettingsUpdateInvalid() {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"Invalid currency", map[string]string{"currency": "NOTACURRENCY"}},
		{"Invalid language", map[string]string{"language": "!!"}},
		{"Invalid theme", map[string]string{"theme": "neon"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, "http://example.com/v1/settings", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}
