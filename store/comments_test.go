package store

import (
	"context"
	"testing"
	"time"

	"github.com/our-area/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentsListOldestFirst(t *testing.T) {
	db, s := setupTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedArea(t, db, "area1", "Downtown")
	post := seedPost(t, db, alice.ID, "area1", time.Now().UTC())

	first := models.Comment{PostID: post.ID, UserID: bob.ID, Text: "first"}
	require.NoError(t, s.Comments.Create(ctx, &first))
	second := models.Comment{PostID: post.ID, UserID: alice.ID, Text: "second"}
	require.NoError(t, s.Comments.Create(ctx, &second))

	list, err := s.Comments.List(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "bob", list[0].User.Username)
	assert.Equal(t, "second", list[1].Text)
	assert.Equal(t, "alice", list[1].User.Username)
}

func TestCommentsOwnerAndUpdate(t *testing.T) {
	db, s := setupTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	seedArea(t, db, "area1", "Downtown")
	post := seedPost(t, db, alice.ID, "area1", time.Now().UTC())

	c := models.Comment{PostID: post.ID, UserID: alice.ID, Text: "draft"}
	require.NoError(t, s.Comments.Create(ctx, &c))

	owner, err := s.Comments.GetOwner(ctx, c.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, owner)

	// A comment id looked up under the wrong post must not resolve.
	_, err = s.Comments.GetOwner(ctx, c.ID, "other-post")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Comments.UpdateText(ctx, c.ID, "final"))
	list, err := s.Comments.List(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "final", list[0].Text)
}
