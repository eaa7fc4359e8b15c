// Package store implements domain persistence over a storage.Querier.
// All SQL is built with squirrel using ? placeholders; result rows pass
// through the rowmap schemas declared next to each query.
package store

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/our-area/api-go/storage"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already registered")
)

// sb is the statement builder every store query starts from. The executors
// rebind ? placeholders for their dialect.
var sb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Store bundles the per-entity stores over one querier.
type Store struct {
	Users    *Users
	Areas    *Areas
	Posts    *Posts
	Toggles  *Toggles
	Comments *Comments
	Reports  *Reports
}

func New(q storage.Querier) *Store {
	return &Store{
		Users:    &Users{q: q},
		Areas:    &Areas{q: q},
		Posts:    &Posts{q: q},
		Toggles:  &Toggles{q: q},
		Comments: &Comments{q: q},
		Reports:  &Reports{q: q},
	}
}
