package main

import (
	"errors"
	"os"

	"movieapi/internal/config"
)

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	config.LoadEnvFiles()
}

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

func databaseDSN() (string, error) {
	if v := os.Getenv("DB_DSN"); v != "" {
		return v, nil
	}
	return "", errors.New("DB_DSN is required to run migrations")
}
