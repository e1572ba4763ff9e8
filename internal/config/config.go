package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port          string
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	JWTSecret     string

	// Risk thresholds for citizen watchlisting
	WatchlistThreshold float64
	InterveneThreshold float64

	// Reference year for age normalization
	CurrentYear int
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		uri = "bolt://localhost:7687"
	}

	user := os.Getenv("NEO4J_USER")
	if user == "" {
		user = "neo4j"
	}

	password := os.Getenv("NEO4J_PASSWORD")
	if password == "" {
		password = "password"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:               port,
		Neo4jURI:           uri,
		Neo4jUser:          user,
		Neo4jPassword:      password,
		JWTSecret:          jwtSecret,
		WatchlistThreshold: envFloat("RISK_THRESHOLD_WATCHLIST", 0.60),
		InterveneThreshold: envFloat("RISK_THRESHOLD_INTERVENE", 0.85),
		CurrentYear:        envInt("CURRENT_YEAR", 2026),
	}
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
