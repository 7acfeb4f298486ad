package config

import (
	"os"
	"time"
)

// AppConfig general application configurations
type AppConfig struct {
	// Rate Limiting
	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	// Stats cache backend
	RedisAddr string

	// Environment
	Environment string
}

// RateLimitConfig configuration for rate limiting
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"/users": {
				Requests: 100,
				Window:   time.Minute,
			},
			"/users/search": {
				Requests: 30,
				Window:   time.Minute,
			},
			"/users/stats": {
				Requests: 30,
				Window:   time.Minute,
			},
		},
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		Environment: "development",
	}
}

func GetServerPort() string {
	port := os.Getenv("PORT")

	if port == "" {
		port = "8080"
	}

	return port
}
