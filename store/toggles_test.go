package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/our-area/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFlipsState(t *testing.T) {
	db, s := setupTestStore(t)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	seedArea(t, db, "area1", "Downtown")
	post := seedPost(t, db, user.ID, "area1", time.Now().UTC())

	for _, kind := range []ToggleKind{ToggleLike, ToggleWishlist} {
		on, err := s.Toggles.Toggle(ctx, kind, post.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, on, "first toggle should turn %s on", kind)

		off, err := s.Toggles.Toggle(ctx, kind, post.ID, user.ID)
		require.NoError(t, err)
		assert.False(t, off, "second toggle should turn %s off", kind)
	}

	var likes, wishes int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Wishlist{}).Count(&wishes).Error)
	assert.Zero(t, likes)
	assert.Zero(t, wishes)
}

func TestToggleMissingPost(t *testing.T) {
	db, s := setupTestStore(t)
	user := seedUser(t, db, "alice")

	_, err := s.Toggles.Toggle(context.Background(), ToggleLike, "no-such-post", user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleDeletedPost(t *testing.T) {
	db, s := setupTestStore(t)
	user := seedUser(t, db, "alice")
	seedArea(t, db, "area1", "Downtown")
	post := seedPost(t, db, user.ID, "area1", time.Now().UTC())
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).Update("is_deleted", true).Error)

	_, err := s.Toggles.Toggle(context.Background(), ToggleLike, post.ID, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Concurrent toggles on the same pair must never leave more than one row.
func TestToggleConcurrent(t *testing.T) {
	db, s := setupTestStore(t)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	seedArea(t, db, "area1", "Downtown")
	post := seedPost(t, db, user.ID, "area1", time.Now().UTC())

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Toggles.Toggle(ctx, ToggleLike, post.ID, user.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.LessOrEqual(t, count, int64(1), "unique index must cap rows at one per pair")
}
