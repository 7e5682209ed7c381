// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
)

// Config holds everything the binaries need: database coordinates, the
// schema the budget tables live in, the account owner, and the Gemini
// model used for fallback categorization.
type Config struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSchema   string

	// Person is the account owner all ingested transactions belong to.
	// Persons are seeded by the operator, never created by the pipeline.
	Person string

	// DataRoot is the directory containing the per-issuer folders
	// (apple_files, chase_files, Amex_files, Citi_files).
	DataRoot string

	// GeminiModel is the model used by the generative categorization
	// tier. The GEMINI_API_KEY environment variable is read directly by
	// the genai client; when it is unset the pipeline degrades to the
	// fallback category.
	GeminiModel string
}

// FromEnv builds a Config from environment variables, applying the
// historical defaults for anything unset.
func FromEnv() Config {
	return Config{
		DBHost:      envOr("DB_HOST", "localhost"),
		DBPort:      envOr("DB_PORT", "5432"),
		DBName:      envOr("DB_NAME", "money_stuff"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBSchema:    envOr("DB_SCHEMA", "budget_app"),
		Person:      envOr("PERSON", "Hector Hernandez"),
		DataRoot:    envOr("DATA_ROOT", "."),
		GeminiModel: envOr("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

// DSN returns the Postgres connection string with search_path pinned to
// the budget schema.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?search_path=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSchema,
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
