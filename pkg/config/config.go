package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// External ledger API connection
	LedgerAPIURL     string
	LedgerAPIToken   string
	LedgerCompanyID  string
	LedgerAPITimeout time.Duration

	// Posting policy: when true, a line whose encoded reference already
	// exists on the same date is skipped instead of creating a duplicate.
	SkipExistingEntries bool

	// Requests per minute per client IP
	RateLimitPerMinute int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LEDGER_API_URL", "")
	viper.SetDefault("LEDGER_API_TOKEN", "")
	viper.SetDefault("LEDGER_COMPANY_ID", "")
	viper.SetDefault("LEDGER_API_TIMEOUT", "30s")
	viper.SetDefault("SKIP_EXISTING_ENTRIES", false)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.LedgerAPIURL = viper.GetString("LEDGER_API_URL")
	if cfg.LedgerAPIURL == "" {
		log.Println("Warning: LEDGER_API_URL not set. Ledger calls will fail.")
	}
	cfg.LedgerAPIToken = viper.GetString("LEDGER_API_TOKEN")
	if cfg.LedgerAPIToken == "" {
		log.Println("Warning: LEDGER_API_TOKEN not set. Ledger calls will fail.")
	}
	cfg.LedgerCompanyID = viper.GetString("LEDGER_COMPANY_ID")
	if cfg.LedgerCompanyID == "" {
		log.Println("Warning: LEDGER_COMPANY_ID not set. Ledger calls will fail.")
	}

	timeoutStr := viper.GetString("LEDGER_API_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 30 * time.Second
		if timeoutStr != "" {
			log.Printf("Warning: Invalid value for LEDGER_API_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
		}
	}
	cfg.LedgerAPITimeout = timeout

	cfg.SkipExistingEntries = viper.GetBool("SKIP_EXISTING_ENTRIES")
	cfg.RateLimitPerMinute = viper.GetInt("RATE_LIMIT_PER_MINUTE")

	return cfg, nil
}
