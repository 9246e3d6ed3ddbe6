package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AuthRateLimit     string
	CORSOrigins       []string
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_EXPIRY_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "clubledger")
	v.SetDefault("AUTH_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ORIGINS", []string{"*"})

	dbURL := v.GetString("PGSQL_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable not set")
	}

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return &Config{
		DatabaseURL:       dbURL,
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:         jwtSecret,
		JWTExpiryDuration: time.Duration(v.GetInt("JWT_EXPIRY_MINUTES")) * time.Minute,
		JWTIssuer:         v.GetString("JWT_ISSUER"),
		AuthRateLimit:     v.GetString("AUTH_RATE_LIMIT"),
		CORSOrigins:       v.GetStringSlice("CORS_ORIGINS"),
	}, nil
}
