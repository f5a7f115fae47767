// internal/common/config/config.go
package config

import "strings"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Sheets  SheetsConfig  `mapstructure:"sheets"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// Authentication strategies for the Sheets client.
const (
	AuthModeJWT         = "jwt"
	AuthModeCredentials = "credentials"
)

// Environment variable names for the service-account credential.
const (
	EnvPrivateKey  = "GOOGLE_PRIVATE_KEY"
	EnvClientEmail = "GOOGLE_CLIENT_EMAIL"
	EnvSheetID     = "GOOGLE_SHEET_ID"
)

// SheetsConfig holds the service-account credential and append settings.
type SheetsConfig struct {
	PrivateKey       string `mapstructure:"private_key"`
	ClientEmail      string `mapstructure:"client_email"`
	SheetID          string `mapstructure:"sheet_id"`
	ProjectID        string `mapstructure:"project_id"`
	Range            string `mapstructure:"range"`
	ValueInputOption string `mapstructure:"value_input_option"`
	InsertDataOption string `mapstructure:"insert_data_option"`
	Timeout          int    `mapstructure:"timeout"` // milliseconds
	AuthMode         string `mapstructure:"auth_mode"`

	// Endpoint and TokenURL are only set to point the client at a non-Google server.
	Endpoint string `mapstructure:"endpoint"`
	TokenURL string `mapstructure:"token_url"`
}

// MissingKeys returns the environment names of empty credential values, in a
// stable order. Whitespace-only values count as present.
func (s SheetsConfig) MissingKeys() []string {
	var missing []string
	if s.PrivateKey == "" {
		missing = append(missing, EnvPrivateKey)
	}
	if s.ClientEmail == "" {
		missing = append(missing, EnvClientEmail)
	}
	if s.SheetID == "" {
		missing = append(missing, EnvSheetID)
	}
	return missing
}

// NormalizedPrivateKey turns escaped "\n" sequences into real newlines.
func (s SheetsConfig) NormalizedPrivateKey() string {
	return strings.ReplaceAll(s.PrivateKey, `\n`, "\n")
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
