package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/rowmap"
	"github.com/our-area/api-go/storage"
)

type Comments struct {
	q storage.Querier
}

// CommentView is a comment joined with its author.
type CommentView struct {
	ID        string     `json:"id"`
	PostID    string     `json:"post_id"`
	UserID    string     `json:"user_id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	User      PostAuthor `json:"user"`
}

var commentViewSchema = rowmap.Schema{
	{Name: "id", Kind: rowmap.Text},
	{Name: "post_id", Kind: rowmap.Text},
	{Name: "user_id", Kind: rowmap.Text},
	{Name: "text", Kind: rowmap.Text},
	{Name: "created_at", Kind: rowmap.Timestamp},
	{Name: "display_name", Kind: rowmap.Text},
	{Name: "username", Kind: rowmap.Text},
	{Name: "avatar_url", Kind: rowmap.Text, Nullable: true},
}

// List returns a post's comments oldest first.
func (s *Comments) List(ctx context.Context, postID string) ([]CommentView, error) {
	query, args, err := sb.Select(
		"c.id", "c.post_id", "c.user_id", "c.text", "c.created_at",
		"u.display_name", "u.username", "u.avatar_url").
		From("comments c").
		Join("users u ON c.user_id = u.id").
		Where(sq.Eq{"c.post_id": postID}).
		OrderBy("c.created_at ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	recs, err := rowmap.MapAll(rows, commentViewSchema)
	if err != nil {
		return nil, err
	}
	out := make([]CommentView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, CommentView{
			ID:        rec.String("id"),
			PostID:    rec.String("post_id"),
			UserID:    rec.String("user_id"),
			Text:      rec.String("text"),
			CreatedAt: rec.Time("created_at"),
			User: PostAuthor{
				DisplayName: rec.String("display_name"),
				Username:    rec.String("username"),
				AvatarURL:   rec.StringPtr("avatar_url"),
			},
		})
	}
	return out, nil
}

func (s *Comments) Create(ctx context.Context, c *models.Comment) error {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	query, args, err := sb.Insert("comments").
		Columns("id", "post_id", "user_id", "text", "created_at").
		Values(c.ID, c.PostID, c.UserID, c.Text, c.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, query, args...)
	return err
}

// GetOwner returns the author of a comment scoped to its post.
func (s *Comments) GetOwner(ctx context.Context, commentID, postID string) (string, error) {
	rows, err := s.q.Query(ctx,
		"SELECT user_id FROM comments WHERE id = ? AND post_id = ?", commentID, postID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", ErrNotFound
	}
	rec, err := rowmap.Map(rows[0], rowmap.Schema{{Name: "user_id", Kind: rowmap.Text}})
	if err != nil {
		return "", err
	}
	return rec.String("user_id"), nil
}

// UpdateText replaces a comment's text. Comments are append-only apart
// from this single mutable field.
func (s *Comments) UpdateText(ctx context.Context, commentID, text string) error {
	_, err := s.q.Exec(ctx, "UPDATE comments SET text = ? WHERE id = ?", text, commentID)
	return err
}
