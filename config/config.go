// Package config loads application configuration from the environment and an
// optional roster file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"skinledger/internal/adapters/logger"
	"skinledger/internal/domain"
)

// Ledger backends.
const (
	BackendSheets = "sheets"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	// Ledger store
	LedgerBackend  string        // "sheets" or "sqlite"
	LedgerCacheTTL time.Duration // Read-cache interval

	// Sheets backend
	SheetBaseURL  string
	SpreadsheetID string
	Worksheet     string
	SheetToken    string

	// SQLite backend
	DBPath string

	// Catalog
	CatalogURL string
	CatalogTTL time.Duration

	// Logging
	LogBackend string // "std" or "zap"
	LogLevel   logger.LogLevel

	// Rosters; domain defaults unless a roster file overrides them
	Conditions []string
	Platforms  []string
	Buyers     []string
}

// rosterFile is the YAML shape of an optional roster override file. Lists
// left empty keep their defaults.
type rosterFile struct {
	Conditions []string `yaml:"conditions"`
	Platforms  []string `yaml:"platforms"`
	Buyers     []string `yaml:"buyers"`
}

// Load reads configuration from environment variables (.env file supported).
func Load() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string

	cfg.LedgerBackend = strings.ToLower(getEnv("LEDGER_BACKEND", BackendSheets))
	switch cfg.LedgerBackend {
	case BackendSheets:
		cfg.SheetBaseURL = getEnv("SHEET_BASE_URL", "https://sheets.googleapis.com")
		cfg.SpreadsheetID = getEnv("SPREADSHEET_ID", "")
		cfg.Worksheet = getEnv("WORKSHEET", "Trades")
		cfg.SheetToken = getEnv("SHEET_TOKEN", "")
		if cfg.SpreadsheetID == "" {
			errs = append(errs, "SPREADSHEET_ID must be set for the sheets backend")
		}
	case BackendSQLite:
		cfg.DBPath = getEnv("DB_PATH", "./data/skinledger.db")
	default:
		errs = append(errs, fmt.Sprintf("invalid LEDGER_BACKEND %q: must be %q or %q",
			cfg.LedgerBackend, BackendSheets, BackendSQLite))
	}

	cacheSeconds := getEnvAsInt("LEDGER_CACHE_SECONDS", 60)
	if cacheSeconds <= 0 {
		errs = append(errs, "LEDGER_CACHE_SECONDS must be positive")
	}
	cfg.LedgerCacheTTL = time.Duration(cacheSeconds) * time.Second

	cfg.CatalogURL = getEnv("CATALOG_URL", "")
	catalogHours := getEnvAsInt("CATALOG_CACHE_HOURS", 24)
	if catalogHours <= 0 {
		errs = append(errs, "CATALOG_CACHE_HOURS must be positive")
	}
	cfg.CatalogTTL = time.Duration(catalogHours) * time.Hour

	cfg.LogBackend = strings.ToLower(getEnv("LOG_BACKEND", "std"))
	if cfg.LogBackend != "std" && cfg.LogBackend != "zap" {
		errs = append(errs, fmt.Sprintf("invalid LOG_BACKEND %q: must be \"std\" or \"zap\"", cfg.LogBackend))
	}
	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))

	cfg.Conditions = domain.DefaultConditions
	cfg.Platforms = domain.DefaultPlatforms
	cfg.Buyers = domain.DefaultBuyers
	if path := getEnv("ROSTER_FILE", ""); path != "" {
		if err := cfg.applyRosterFile(path); err != nil {
			errs = append(errs, fmt.Sprintf("invalid ROSTER_FILE: %v", err))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func (c *Config) applyRosterFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var r rosterFile
	if err := yaml.Unmarshal(b, &r); err != nil {
		return err
	}
	if len(r.Conditions) > 0 {
		c.Conditions = r.Conditions
	}
	if len(r.Platforms) > 0 {
		c.Platforms = r.Platforms
	}
	if len(r.Buyers) > 0 {
		c.Buyers = r.Buyers
	}
	return nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
