// Package storage provides the query transports the store layer runs on:
// a database/sql executor for local sqlite or postgres, and an HTTP
// executor for a remote libsql database.
package storage

import (
	"context"
	"time"
)

// DefaultQueryTimeout bounds every persistence call so a slow backend
// surfaces as an error instead of hanging the request.
const DefaultQueryTimeout = 10 * time.Second

// Row is a raw result row keyed by column name. Values are either bare
// scalars or tagged {type, value} cells depending on the transport; the
// rowmap package normalizes both.
type Row = map[string]any

type Result struct {
	RowsAffected int64
}

// Querier executes SQL written with ? placeholders against some backend.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) ([]Row, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
}
