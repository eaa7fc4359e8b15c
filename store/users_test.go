package store

import (
	"context"
	"testing"

	"github.com/our-area/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUsersCreateAndLookup(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	u := models.User{
		Username:     "alice",
		DisplayName:  "Alice",
		PasswordHash: "hash",
		Email:        strPtr("alice@example.com"),
	}
	require.NoError(t, s.Users.Create(ctx, &u))
	require.NotEmpty(t, u.ID)

	got, err := s.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Alice", got.DisplayName)
	require.NotNil(t, got.Email)
	assert.Equal(t, "alice@example.com", *got.Email)
	assert.Nil(t, got.Bio)
	assert.False(t, got.IsVerified)

	dup := models.User{Username: "alice", DisplayName: "A2", PasswordHash: "hash2"}
	assert.ErrorIs(t, s.Users.Create(ctx, &dup), ErrUsernameTaken)

	_, err = s.Users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsersUpsertLocation(t *testing.T) {
	db, s := setupTestStore(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice")

	loc := models.Location{City: strPtr("New York"), Country: strPtr("US")}
	require.NoError(t, s.Users.UpsertLocation(ctx, user.ID, &loc))
	require.NotEmpty(t, loc.ID)

	got, gotLoc, err := s.Users.GetWithLocation(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LocationID)
	require.NotNil(t, gotLoc)
	assert.Equal(t, loc.ID, gotLoc.ID)
	assert.Equal(t, "New York", *gotLoc.City)

	// A second upsert reuses the existing row.
	next := models.Location{City: strPtr("Brooklyn")}
	require.NoError(t, s.Users.UpsertLocation(ctx, user.ID, &next))
	assert.Equal(t, loc.ID, next.ID)

	_, gotLoc, err = s.Users.GetWithLocation(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, gotLoc)
	assert.Equal(t, "Brooklyn", *gotLoc.City)
}

func TestUsersGetWithLocationUnbound(t *testing.T) {
	db, s := setupTestStore(t)
	user := seedUser(t, db, "alice")

	got, loc, err := s.Users.GetWithLocation(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Nil(t, loc)
}
