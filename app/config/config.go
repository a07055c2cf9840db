// Package config resolves the PostgreSQL connection settings from the
// environment, with optional .env loading.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables. POSTGRES_DSN wins when set; otherwise the standard
// libpq-style discrete variables are used.
const (
	EnvDSN      = "POSTGRES_DSN"
	EnvHost     = "PGHOST"
	EnvPort     = "PGPORT"
	EnvDatabase = "PGDATABASE"
	EnvUser     = "PGUSER"
	EnvPassword = "PGPASSWORD"
	EnvSSLMode  = "PGSSLMODE"
)

const defaultPort = "5432"

// MissingVarsError reports required connection variables that are unset when
// no DSN is supplied. It is fatal: the run cannot proceed without a database.
type MissingVarsError struct {
	Vars []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s (or provide %s)",
		strings.Join(e.Vars, ", "), EnvDSN)
}

// Postgres holds the resolved connection settings.
type Postgres struct {
	DSN      string
	Host     string
	Port     string
	Database string
	User     string
	Password string
	SSLMode  string
}

// Load reads connection settings from a .env file in the working directory
// (if present) and the process environment. It fails only when neither a DSN
// nor the required discrete variables are available.
func Load() (*Postgres, error) {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load()

	cfg := &Postgres{
		DSN:      os.Getenv(EnvDSN),
		Host:     os.Getenv(EnvHost),
		Port:     getEnvString(EnvPort, defaultPort),
		Database: os.Getenv(EnvDatabase),
		User:     os.Getenv(EnvUser),
		Password: os.Getenv(EnvPassword),
		SSLMode:  os.Getenv(EnvSSLMode),
	}

	if cfg.DSN != "" {
		return cfg, nil
	}

	var missing []string
	if cfg.Host == "" {
		missing = append(missing, EnvHost)
	}
	if cfg.Database == "" {
		missing = append(missing, EnvDatabase)
	}
	if cfg.User == "" {
		missing = append(missing, EnvUser)
	}
	if len(missing) > 0 {
		return nil, &MissingVarsError{Vars: missing}
	}
	return cfg, nil
}

// ConnString builds the keyword/value connection string handed to the
// driver. client_encoding is forced to utf8 for older servers.
func (c *Postgres) ConnString() string {
	if c.DSN != "" {
		dsn := c.DSN
		// Keyword/value DSNs get client_encoding appended; URL-style DSNs
		// are passed through untouched.
		if !strings.Contains(dsn, "://") && !strings.Contains(strings.ToLower(dsn), "client_encoding") {
			dsn += " client_encoding=utf8"
		}
		return dsn
	}

	parts := []string{
		"host=" + c.Host,
		"port=" + c.Port,
		"dbname=" + c.Database,
		"user=" + c.User,
		"client_encoding=utf8",
	}
	if c.Password != "" {
		parts = append(parts, "password="+c.Password)
	}
	if c.SSLMode != "" {
		parts = append(parts, "sslmode="+c.SSLMode)
	}
	return strings.Join(parts, " ")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
