package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset or
// malformed values leave the current value untouched.
//
// Variables:
//
//	ADDRESS                  HTTP bind address
//	DATABASE_DSN             PostgreSQL DSN
//	SESSION_SECRET           session cookie key
//	JWT_SECRET               JWT HMAC secret
//	ACCESS_TOKEN_VALIDITY    access token lifetime, minutes
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.Addr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SESSION_SECRET"); ok {
		config.SessionSecret = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.JWTSecret = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_VALIDITY"); ok {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidity = time.Duration(minutes) * time.Minute
		}
	}
}
