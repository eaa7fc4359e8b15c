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

type Posts struct {
	q storage.Querier
}

// PostAuthor is the slice of the author surfaced on every post view.
type PostAuthor struct {
	DisplayName string  `json:"display_name"`
	Username    string  `json:"username"`
	AvatarURL   *string `json:"avatar_url"`
}

type PostImageView struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	OrderIdx int    `json:"order_idx"`
}

// PostView is one aggregated feed entry: the post, its author, interaction
// counts and the viewer's own like/wishlist flags.
type PostView struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	AreaID        string          `json:"area_id"`
	Text          string          `json:"text"`
	Category      string          `json:"category"`
	Lat           *float64        `json:"lat"`
	Lng           *float64        `json:"lng"`
	EventTime     *time.Time      `json:"event_time"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Images        []PostImageView `json:"images"`
	LikesCount    int64           `json:"likes_count"`
	CommentsCount int64           `json:"comments_count"`
	IsLiked       bool            `json:"is_liked"`
	IsWishlisted  bool            `json:"is_wishlisted"`
	User          PostAuthor      `json:"user"`
}

var postViewSchema = rowmap.Schema{
	{Name: "id", Kind: rowmap.Text},
	{Name: "user_id", Kind: rowmap.Text},
	{Name: "area_id", Kind: rowmap.Text},
	{Name: "text", Kind: rowmap.Text},
	{Name: "category", Kind: rowmap.Text},
	{Name: "lat", Kind: rowmap.Float, Nullable: true},
	{Name: "lng", Kind: rowmap.Float, Nullable: true},
	{Name: "event_time", Kind: rowmap.Timestamp, Nullable: true},
	{Name: "created_at", Kind: rowmap.Timestamp},
	{Name: "updated_at", Kind: rowmap.Timestamp},
	{Name: "display_name", Kind: rowmap.Text},
	{Name: "username", Kind: rowmap.Text},
	{Name: "avatar_url", Kind: rowmap.Text, Nullable: true},
	{Name: "likes_count", Kind: rowmap.Integer},
	{Name: "comments_count", Kind: rowmap.Integer},
	{Name: "is_liked", Kind: rowmap.Bool},
	{Name: "is_wishlisted", Kind: rowmap.Bool},
}

var postImageSchema = rowmap.Schema{
	{Name: "id", Kind: rowmap.Text},
	{Name: "post_id", Kind: rowmap.Text},
	{Name: "url", Kind: rowmap.Text},
	{Name: "order_idx", Kind: rowmap.Integer},
}

// postViewSelect builds the aggregated select shared by Feed and GetPost.
// viewerID may be empty, in which case the per-viewer flags are false.
func postViewSelect(viewerID string) sq.SelectBuilder {
	return sb.Select(
		"p.id", "p.user_id", "p.area_id", "p.text", "p.category",
		"p.lat", "p.lng", "p.event_time", "p.created_at", "p.updated_at",
		"u.display_name", "u.username", "u.avatar_url",
		"COUNT(DISTINCT l.id) AS likes_count",
		"COUNT(DISTINCT c.id) AS comments_count",
		"CASE WHEN ul.id IS NOT NULL THEN 1 ELSE 0 END AS is_liked",
		"CASE WHEN uw.id IS NOT NULL THEN 1 ELSE 0 END AS is_wishlisted",
	).
		From("posts p").
		Join("users u ON p.user_id = u.id").
		LeftJoin("likes l ON l.post_id = p.id").
		LeftJoin("comments c ON c.post_id = p.id").
		LeftJoin("likes ul ON ul.post_id = p.id AND ul.user_id = ?", viewerID).
		LeftJoin("wishlists uw ON uw.post_id = p.id AND uw.user_id = ?", viewerID).
		GroupBy("p.id", "p.user_id", "p.area_id", "p.text", "p.category",
			"p.lat", "p.lng", "p.event_time", "p.created_at", "p.updated_at",
			"u.display_name", "u.username", "u.avatar_url", "ul.id", "uw.id")
}

// Feed returns the page of non-deleted posts in an area, newest first.
// Identical timestamps break on id ascending so pages never overlap or
// drop rows. page and limit are assumed validated by the caller.
func (s *Posts) Feed(ctx context.Context, areaID, viewerID string, page, limit int) ([]PostView, error) {
	offset := (page - 1) * limit

	query, args, err := postViewSelect(viewerID).
		Where(sq.Eq{"p.area_id": areaID, "p.is_deleted": false}).
		OrderBy("p.created_at DESC", "p.id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	recs, err := rowmap.MapAll(rows, postViewSchema)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(recs))
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		views = append(views, viewFromRecord(rec))
		ids = append(ids, rec.String("id"))
	}
	if err := s.attachImages(ctx, views, ids); err != nil {
		return nil, err
	}
	return views, nil
}

// GetPost returns a single aggregated view, or ErrNotFound when the post
// is absent or soft-deleted.
func (s *Posts) GetPost(ctx context.Context, postID, viewerID string) (*PostView, error) {
	query, args, err := postViewSelect(viewerID).
		Where(sq.Eq{"p.id": postID, "p.is_deleted": false}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	rec, err := rowmap.Map(rows[0], postViewSchema)
	if err != nil {
		return nil, err
	}
	views := []PostView{viewFromRecord(rec)}
	if err := s.attachImages(ctx, views, []string{views[0].ID}); err != nil {
		return nil, err
	}
	return &views[0], nil
}

func viewFromRecord(rec rowmap.Record) PostView {
	return PostView{
		ID:            rec.String("id"),
		UserID:        rec.String("user_id"),
		AreaID:        rec.String("area_id"),
		Text:          rec.String("text"),
		Category:      rec.String("category"),
		Lat:           rec.FloatPtr("lat"),
		Lng:           rec.FloatPtr("lng"),
		EventTime:     rec.TimePtr("event_time"),
		CreatedAt:     rec.Time("created_at"),
		UpdatedAt:     rec.Time("updated_at"),
		Images:        []PostImageView{},
		LikesCount:    rec.Int64("likes_count"),
		CommentsCount: rec.Int64("comments_count"),
		IsLiked:       rec.Bool("is_liked"),
		IsWishlisted:  rec.Bool("is_wishlisted"),
		User: PostAuthor{
			DisplayName: rec.String("display_name"),
			Username:    rec.String("username"),
			AvatarURL:   rec.StringPtr("avatar_url"),
		},
	}
}

// attachImages loads the images for all the given posts in one query and
// distributes them onto views in order_idx order.
func (s *Posts) attachImages(ctx context.Context, views []PostView, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sb.Select("id", "post_id", "url", "order_idx").
		From("post_images").
		Where(sq.Eq{"post_id": ids}).
		OrderBy("post_id ASC", "order_idx ASC").
		ToSql()
	if err != nil {
		return err
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	recs, err := rowmap.MapAll(rows, postImageSchema)
	if err != nil {
		return err
	}
	byPost := map[string][]PostImageView{}
	for _, rec := range recs {
		postID := rec.String("post_id")
		byPost[postID] = append(byPost[postID], PostImageView{
			ID:       rec.String("id"),
			URL:      rec.String("url"),
			OrderIdx: int(rec.Int64("order_idx")),
		})
	}
	for i := range views {
		if imgs, ok := byPost[views[i].ID]; ok {
			views[i].Images = imgs
		}
	}
	return nil
}

// Create inserts the post and its image rows. Image order follows the
// slice order of urls.
func (s *Posts) Create(ctx context.Context, p *models.Post, imageURLs []string) error {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query, args, err := sb.Insert("posts").
		Columns("id", "user_id", "area_id", "location_id", "text", "category",
			"lat", "lng", "event_time", "is_deleted", "created_at", "updated_at").
		Values(p.ID, p.UserID, p.AreaID, p.LocationID, p.Text, p.Category,
			p.Lat, p.Lng, p.EventTime, false, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return err
	}

	for idx, url := range imageURLs {
		query, args, err := sb.Insert("post_images").
			Columns("id", "post_id", "url", "order_idx").
			Values(uuid.NewString(), p.ID, url, idx).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.q.Exec(ctx, query, args...); err != nil {
			return err
		}
	}
	return nil
}

// GetOwner returns the owning user id of a live post.
func (s *Posts) GetOwner(ctx context.Context, postID string) (string, error) {
	rows, err := s.q.Query(ctx,
		"SELECT user_id FROM posts WHERE id = ? AND is_deleted = ?", postID, false)
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

// Exists reports whether a live post with the id exists.
func (s *Posts) Exists(ctx context.Context, postID string) (bool, error) {
	_, err := s.GetOwner(ctx, postID)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update applies the allow-listed subset of fields to a post. Ownership is
// the caller's concern.
func (s *Posts) Update(ctx context.Context, id string, fields map[string]any) (bool, error) {
	query, args, ok, err := BuildUpdate(EntityPost, id, fields)
	if err != nil || !ok {
		return false, err
	}
	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return false, err
	}
	return true, nil
}
