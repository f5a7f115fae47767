// internal/handlers/submit-entry/config.go
package submitentry

import (
	"time"

	"capex-entry/internal/common/config"
	apperrors "capex-entry/internal/common/errors"
	"capex-entry/internal/common/sheets"
)

type Config struct {
	PrivateKey       string
	ClientEmail      string
	SheetID          string
	ProjectID        string
	Range            string
	ValueInputOption string
	InsertDataOption string
	Timeout          time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		ProjectID:        "capex-tracker",
		Range:            "Sheet1!A:M",
		ValueInputOption: sheets.ValueInputUserEntered,
		InsertDataOption: sheets.InsertDataInsertRows,
		Timeout:          10 * time.Second,
	}
}

// ConfigFromSheets builds the handler config from the loaded application config.
func ConfigFromSheets(sc config.SheetsConfig) *Config {
	cfg := DefaultConfig()
	cfg.PrivateKey = sc.NormalizedPrivateKey()
	cfg.ClientEmail = sc.ClientEmail
	cfg.SheetID = sc.SheetID
	if sc.ProjectID != "" {
		cfg.ProjectID = sc.ProjectID
	}
	if sc.Range != "" {
		cfg.Range = sc.Range
	}
	if sc.ValueInputOption != "" {
		cfg.ValueInputOption = sc.ValueInputOption
	}
	if sc.InsertDataOption != "" {
		cfg.InsertDataOption = sc.InsertDataOption
	}
	if sc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(sc.Timeout)
	}
	return cfg
}

// MissingKeys lists the absent credential settings by their environment names.
func (c *Config) MissingKeys() []string {
	return config.SheetsConfig{
		PrivateKey:  c.PrivateKey,
		ClientEmail: c.ClientEmail,
		SheetID:     c.SheetID,
	}.MissingKeys()
}

// Validate returns a CONFIGURATION_MISSING error when any credential value is absent.
func (c *Config) Validate() error {
	if missing := c.MissingKeys(); len(missing) > 0 {
		return apperrors.NewConfigurationMissingError(missing)
	}
	return nil
}

func (c *Config) credential() sheets.Credential {
	return sheets.Credential{
		ClientEmail: c.ClientEmail,
		PrivateKey:  c.PrivateKey,
		ProjectID:   c.ProjectID,
		Scopes:      []string{sheets.ScopeSpreadsheets},
	}
}
