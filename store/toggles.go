package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/our-area/api-go/storage"
)

// ToggleKind selects which presence table a toggle flips.
type ToggleKind string

const (
	ToggleLike     ToggleKind = "likes"
	ToggleWishlist ToggleKind = "wishlists"
)

type Toggles struct {
	q storage.Querier
}

// Toggle flips the presence row for (postID, userID) in the kind's table
// and reports the resulting state: true when the row now exists.
//
// Delete-first keeps the flip convergent under concurrent double-toggle:
// whichever caller's delete wins removes the row, and the insert path
// rides the (post_id, user_id) unique index with ON CONFLICT DO NOTHING,
// so there is never more than one row per pair.
func (s *Toggles) Toggle(ctx context.Context, kind ToggleKind, postID, userID string) (bool, error) {
	if kind != ToggleLike && kind != ToggleWishlist {
		return false, fmt.Errorf("unknown toggle kind %q", kind)
	}

	// The target must be a live post.
	rows, err := s.q.Query(ctx,
		"SELECT id FROM posts WHERE id = ? AND is_deleted = ?", postID, false)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, ErrNotFound
	}

	table := string(kind)
	res, err := s.q.Exec(ctx,
		"DELETE FROM "+table+" WHERE post_id = ? AND user_id = ?", postID, userID)
	if err != nil {
		return false, err
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	_, err = s.q.Exec(ctx,
		"INSERT INTO "+table+" (id, post_id, user_id, created_at) VALUES (?, ?, ?, ?)"+
			" ON CONFLICT (post_id, user_id) DO NOTHING",
		uuid.NewString(), postID, userID, time.Now().UTC())
	if err != nil {
		return false, err
	}
	// Even if a concurrent toggle inserted first, the row exists now.
	return true, nil
}
