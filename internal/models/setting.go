package models

import (
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Setting keys. Settings are a small key-value surface next to the record
// collections, read at startup by clients and written on change.
const (
	SettingCurrency = "currency"
	SettingLanguage = "language"
	SettingTheme    = "theme"
)

// SettingDefaults are the values used for keys that have never been written.
var SettingDefaults = map[string]string{
	SettingCurrency: "TRY",
	SettingLanguage: "en",
	SettingTheme:    "system",
}

// Setting is a single key-value pair.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
	Timestamps
}

var (
	ErrSettingKeyInvalid      = errors.New("the setting key must be one of: currency, language, theme")
	ErrSettingCurrencyInvalid = errors.New("the currency must be a valid ISO 4217 code")
	ErrSettingLanguageInvalid = errors.New("the language must be a valid BCP 47 tag")
	ErrSettingThemeInvalid    = errors.New("the theme must be one of: light, dark, system")
)

// BeforeSave verifies that the key is known and the value is valid for it.
func (s *Setting) BeforeSave(_ *gorm.DB) error {
	s.Key = strings.TrimSpace(s.Key)
	s.Value = strings.TrimSpace(s.Value)

	switch s.Key {
	case SettingCurrency:
		unit, err := currency.ParseISO(s.Value)
		if err != nil {
			return ErrSettingCurrencyInvalid
		}
		s.Value = unit.String()

	case SettingLanguage:
		tag, err := language.Parse(s.Value)
		if err != nil {
			return ErrSettingLanguageInvalid
		}
		s.Value = tag.String()

	case SettingTheme:
		if s.Value != "light" && s.Value != "dark" && s.Value != "system" {
			return ErrSettingThemeInvalid
		}

	default:
		return ErrSettingKeyInvalid
	}

	return nil
}

// Settings returns all settings as a map, with defaults filled in for keys
// that have never been written.
func Settings(db *gorm.DB) (map[string]string, error) {
	var settings []Setting
	err := db.Find(&settings).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(SettingDefaults))
	for key, value := range SettingDefaults {
		result[key] = value
	}

	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}

	return result, nil
}

// UpdateSetting writes a single setting, creating it if it does not exist.
func UpdateSetting(db *gorm.DB, key, value string) error {
	setting := Setting{Key: key, Value: value}

	var existing Setting
	err := db.First(&existing, "key = ?", key).Error
	if err == nil {
		existing.Value = value
		return db.Save(&existing).Error
	}

	if errors.Is(err, ErrResourceNotFound) {
		return db.Create(&setting).Error
	}

	return err
}

// Export returns all settings for export.
func (Setting) Export() (json.RawMessage, error) {
	var settings []Setting
	err := DB.Where(&Setting{}).Find(&settings).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&settings)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
