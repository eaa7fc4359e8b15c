package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLDB runs queries over a database/sql connection pool. Queries are
// written with ? placeholders; sqlx rebinds them for the postgres dialect.
type SQLDB struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewSQLDB wraps db. driverName must be a bind-type sqlx knows, e.g.
// "sqlite3" or "postgres".
func NewSQLDB(db *sql.DB, driverName string) *SQLDB {
	return &SQLDB{
		db:      sqlx.NewDb(db, driverName),
		timeout: DefaultQueryTimeout,
	}
}

func (s *SQLDB) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryxContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		row := Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return out, nil
}

func (s *SQLDB) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return Result{}, fmt.Errorf("exec: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, fmt.Errorf("exec: %w", err)
	}
	return Result{RowsAffected: affected}, nil
}
