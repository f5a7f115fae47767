// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	return load(v, true)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return load(v, false)
}

func load(v *viper.Viper, readBase bool) (*Config, error) {
	// SHEETS_SHEET_ID style overrides
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("metrics.enabled", true)

	if readBase {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading base config: %w", err)
			}
		}

		env := os.Getenv("APP_ENVIRONMENT")
		if env == "" {
			env = "development"
		}
		v.SetConfigName(fmt.Sprintf("config.%s", env))
		_ = v.MergeInConfig() // optional
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills the credential from the plain GOOGLE_* variables the
// deployment platform provides.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Sheets.PrivateKey == "" {
		cfg.Sheets.PrivateKey = os.Getenv(EnvPrivateKey)
	}
	if cfg.Sheets.ClientEmail == "" {
		cfg.Sheets.ClientEmail = os.Getenv(EnvClientEmail)
	}
	if cfg.Sheets.SheetID == "" {
		cfg.Sheets.SheetID = os.Getenv(EnvSheetID)
	}
	if val := os.Getenv("PORT"); val != "" && cfg.Server.Address == ":8080" {
		cfg.Server.Address = ":" + val
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "capex-entry"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Sheets.Range == "" {
		cfg.Sheets.Range = "Sheet1!A:M"
	}
	if cfg.Sheets.ValueInputOption == "" {
		cfg.Sheets.ValueInputOption = "USER_ENTERED"
	}
	if cfg.Sheets.InsertDataOption == "" {
		cfg.Sheets.InsertDataOption = "INSERT_ROWS"
	}
	if cfg.Sheets.Timeout == 0 {
		cfg.Sheets.Timeout = 10000
	}
	if cfg.Sheets.AuthMode == "" {
		cfg.Sheets.AuthMode = AuthModeJWT
	}
	if cfg.Sheets.ProjectID == "" {
		cfg.Sheets.ProjectID = "capex-tracker"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// validateConfig validates settings that are fatal for the process. The Google
// credential is checked per request instead.
func validateConfig(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if cfg.Sheets.Timeout < 0 {
		return fmt.Errorf("sheets.timeout must be positive")
	}
	switch cfg.Sheets.AuthMode {
	case AuthModeJWT, AuthModeCredentials:
	default:
		return fmt.Errorf("sheets.auth_mode must be %q or %q, got %q", AuthModeJWT, AuthModeCredentials, cfg.Sheets.AuthMode)
	}
	if !strings.Contains(cfg.Sheets.Range, "!") {
		return fmt.Errorf("sheets.range must be in A1 notation with a sheet name, got %q", cfg.Sheets.Range)
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
