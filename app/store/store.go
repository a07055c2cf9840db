// Package store executes the named extraction queries against PostgreSQL
// and materializes results generically, without knowledge of the column set.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"canvaslogs/app/config"
	"canvaslogs/app/table"
)

// UnknownQueryError reports a query name outside the known set. Caller
// misuse, always fatal.
type UnknownQueryError struct {
	Name string
}

func (e *UnknownQueryError) Error() string {
	return fmt.Sprintf("unknown query type: %q (must be one of: %s)", e.Name, knownNamesList())
}

// Store wraps the database connection.
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL using the resolved settings and verifies the
// connection with a ping.
func Open(ctx context.Context, cfg *config.Postgres) (*Store, error) {
	db, err := sql.Open("pgx", cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Query runs the named query with the bound parameters {username, startUTC,
// endUTC} and materializes the full result. Column handling is generic: the
// query text owns the column set, the store just carries it through.
func (s *Store) Query(ctx context.Context, name, username string, startUTC, endUTC time.Time) (*table.Table, error) {
	text, ok := queryText(name)
	if !ok {
		return nil, &UnknownQueryError{Name: name}
	}

	rows, err := s.db.QueryContext(ctx, text, username, startUTC, endUTC)
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query %s: reading columns: %w", name, err)
	}

	t := table.New(cols)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("query %s: scanning row: %w", name, err)
		}
		for i, v := range vals {
			// Text columns may scan as []byte depending on the wire
			// format; normalize so downstream only sees strings.
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		if err := t.Append(vals); err != nil {
			return nil, fmt.Errorf("query %s: %w", name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s failed: %w", name, err)
	}
	return t, nil
}
