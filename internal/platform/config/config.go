package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// EggStockTolerance is how far egg item stock may go negative before
	// a consumption is rejected. Egg counts lag physical reality because
	// production is recorded once a day.
	EggStockTolerance decimal.Decimal

	// StandardsCacheTTL bounds how long a tenant's performance curve is
	// served from memory.
	StandardsCacheTTL time.Duration

	// EODCron is the schedule for the end-of-day flock snapshot job.
	EODCron string

	// RateLimitRate is a ulule/limiter formatted rate, e.g. "300-M".
	RateLimitRate string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("EGG_STOCK_TOLERANCE", "100")
	viper.SetDefault("STANDARDS_CACHE_TTL", "10m")
	viper.SetDefault("EOD_CRON", "55 23 * * *")
	viper.SetDefault("RATE_LIMIT_RATE", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	toleranceStr := viper.GetString("EGG_STOCK_TOLERANCE")
	tolerance, err := decimal.NewFromString(toleranceStr)
	if err != nil || tolerance.IsNegative() {
		tolerance = decimal.NewFromInt(100)
		log.Printf("Warning: Invalid value for EGG_STOCK_TOLERANCE ('%s'). Defaulting to %s.\n", toleranceStr, tolerance.String())
	}
	cfg.EggStockTolerance = tolerance

	ttlStr := viper.GetString("STANDARDS_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 10 * time.Minute
		log.Printf("Warning: Invalid value for STANDARDS_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.StandardsCacheTTL = ttl

	cfg.EODCron = viper.GetString("EOD_CRON")
	cfg.RateLimitRate = viper.GetString("RATE_LIMIT_RATE")

	return cfg, nil
}
