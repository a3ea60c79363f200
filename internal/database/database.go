package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"banking_backend/pkg/utils"

	_ "github.com/lib/pq"
)

var db *sql.DB

// InitDB opens the Postgres connection pool, verifies connectivity and
// optionally applies the schema file pointed to by DB_SCHEMA_PATH.
func InitDB() (*sql.DB, error) {
	host := utils.Getenv("DB_HOST", "localhost")
	port := utils.Getenv("DB_PORT", "5432")
	user := utils.Getenv("DB_USER", "postgres")
	password := utils.Getenv("DB_PASSWORD", "postgres")
	dbname := utils.Getenv("DB_NAME", "banking")
	sslmode := utils.Getenv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	db, err = sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	utils.LogInfo("Database connection established")

	if schemaPath := os.Getenv("DB_SCHEMA_PATH"); schemaPath != "" {
		if err = applySchema(schemaPath); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// applySchema executes the statements in the given SQL file. The schema is
// written to be idempotent (CREATE TABLE IF NOT EXISTS).
func applySchema(path string) error {
	schema, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	if _, err = db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema from %s: %w", path, err)
	}
	utils.LogInfo("Database schema applied from " + path)
	return nil
}

// GetDB returns the initialized database handle.
func GetDB() *sql.DB {
	return db
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if db != nil {
		if err := db.Close(); err != nil {
			utils.LogError(err, "Error closing database connection")
		}
	}
}
