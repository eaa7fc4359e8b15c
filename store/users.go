package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/rowmap"
	"github.com/our-area/api-go/storage"
)

type Users struct {
	q storage.Querier
}

var userSchema = rowmap.Schema{
	{Name: "id", Kind: rowmap.Text},
	{Name: "username", Kind: rowmap.Text},
	{Name: "display_name", Kind: rowmap.Text},
	{Name: "password_hash", Kind: rowmap.Text},
	{Name: "phone", Kind: rowmap.Text, Nullable: true},
	{Name: "email", Kind: rowmap.Text, Nullable: true},
	{Name: "avatar_url", Kind: rowmap.Text, Nullable: true},
	{Name: "bio", Kind: rowmap.Text, Nullable: true},
	{Name: "location_id", Kind: rowmap.Text, Nullable: true},
	{Name: "area_id", Kind: rowmap.Text, Nullable: true},
	{Name: "is_verified", Kind: rowmap.Bool},
	{Name: "created_at", Kind: rowmap.Timestamp},
}

var userColumns = []string{
	"id", "username", "display_name", "password_hash", "phone", "email",
	"avatar_url", "bio", "location_id", "area_id", "is_verified", "created_at",
}

var locationSchema = rowmap.Schema{
	{Name: "loc_id", Kind: rowmap.Text, Nullable: true},
	{Name: "country", Kind: rowmap.Text, Nullable: true},
	{Name: "state", Kind: rowmap.Text, Nullable: true},
	{Name: "district", Kind: rowmap.Text, Nullable: true},
	{Name: "city", Kind: rowmap.Text, Nullable: true},
	{Name: "postal_code", Kind: rowmap.Text, Nullable: true},
	{Name: "address_line", Kind: rowmap.Text, Nullable: true},
	{Name: "latitude", Kind: rowmap.Float, Nullable: true},
	{Name: "longitude", Kind: rowmap.Float, Nullable: true},
	{Name: "loc_created_at", Kind: rowmap.Timestamp, Nullable: true},
}

func userFromRecord(rec rowmap.Record) *models.User {
	return &models.User{
		ID:           rec.String("id"),
		Username:     rec.String("username"),
		DisplayName:  rec.String("display_name"),
		PasswordHash: rec.String("password_hash"),
		Phone:        rec.StringPtr("phone"),
		Email:        rec.StringPtr("email"),
		AvatarURL:    rec.StringPtr("avatar_url"),
		Bio:          rec.StringPtr("bio"),
		LocationID:   rec.StringPtr("location_id"),
		AreaID:       rec.StringPtr("area_id"),
		IsVerified:   rec.Bool("is_verified"),
		CreatedAt:    rec.Time("created_at"),
	}
}

// Create inserts u with a fresh id. Returns ErrUsernameTaken when the
// username is already registered.
func (s *Users) Create(ctx context.Context, u *models.User) error {
	rows, err := s.q.Query(ctx, "SELECT id FROM users WHERE username = ?", u.Username)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return ErrUsernameTaken
	}

	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()

	query, args, err := sb.Insert("users").
		Columns("id", "username", "display_name", "password_hash", "phone",
			"email", "avatar_url", "bio", "location_id", "area_id",
			"is_verified", "created_at").
		Values(u.ID, u.Username, u.DisplayName, u.PasswordHash, u.Phone,
			u.Email, u.AvatarURL, u.Bio, u.LocationID, u.AreaID,
			u.IsVerified, u.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		// A unique constraint race on username still ends here.
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Users) getOne(ctx context.Context, pred sq.Eq) (*models.User, error) {
	query, args, err := sb.Select(userColumns...).From("users").Where(pred).ToSql()
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
	rec, err := rowmap.Map(rows[0], userSchema)
	if err != nil {
		return nil, err
	}
	return userFromRecord(rec), nil
}

func (s *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getOne(ctx, sq.Eq{"id": id})
}

func (s *Users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getOne(ctx, sq.Eq{"username": username})
}

// GetWithLocation loads a user and, when bound, their location in a single
// left-joined query.
func (s *Users) GetWithLocation(ctx context.Context, id string) (*models.User, *models.Location, error) {
	cols := make([]string, 0, len(userColumns)+10)
	for _, c := range userColumns {
		cols = append(cols, "u."+c)
	}
	cols = append(cols,
		"l.id AS loc_id", "l.country", "l.state", "l.district", "l.city",
		"l.postal_code", "l.address_line", "l.latitude", "l.longitude",
		"l.created_at AS loc_created_at")

	query, args, err := sb.Select(cols...).
		From("users u").
		LeftJoin("locations l ON u.location_id = l.id").
		Where(sq.Eq{"u.id": id}).
		ToSql()
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, ErrNotFound
	}

	userRec, err := rowmap.Map(rows[0], userSchema)
	if err != nil {
		return nil, nil, err
	}
	user := userFromRecord(userRec)

	locRec, err := rowmap.Map(rows[0], locationSchema)
	if err != nil {
		return nil, nil, err
	}
	var location *models.Location
	if locID := locRec.StringPtr("loc_id"); locID != nil {
		location = &models.Location{
			ID:          *locID,
			Country:     locRec.StringPtr("country"),
			State:       locRec.StringPtr("state"),
			District:    locRec.StringPtr("district"),
			City:        locRec.StringPtr("city"),
			PostalCode:  locRec.StringPtr("postal_code"),
			AddressLine: locRec.StringPtr("address_line"),
			Latitude:    locRec.FloatPtr("latitude"),
			Longitude:   locRec.FloatPtr("longitude"),
			CreatedAt:   locRec.Time("loc_created_at"),
		}
	}
	return user, location, nil
}

func (s *Users) Exists(ctx context.Context, id string) (bool, error) {
	rows, err := s.q.Query(ctx, "SELECT id FROM users WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Update applies the allow-listed subset of fields. The bool reports
// whether anything was applied; an all-filtered map is a successful no-op.
func (s *Users) Update(ctx context.Context, id string, fields map[string]any) (bool, error) {
	query, args, ok, err := BuildUpdate(EntityUser, id, fields)
	if err != nil || !ok {
		return false, err
	}
	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return false, err
	}
	return true, nil
}

// UpsertLocation creates or updates the caller's location row and keeps
// users.location_id pointing at it.
func (s *Users) UpsertLocation(ctx context.Context, userID string, loc *models.Location) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	set := map[string]any{
		"country":      loc.Country,
		"state":        loc.State,
		"district":     loc.District,
		"city":         loc.City,
		"postal_code":  loc.PostalCode,
		"address_line": loc.AddressLine,
		"latitude":     loc.Latitude,
		"longitude":    loc.Longitude,
	}

	if user.LocationID != nil {
		loc.ID = *user.LocationID
		query, args, err := sb.Update("locations").
			SetMap(set).
			Where(sq.Eq{"id": loc.ID}).
			ToSql()
		if err != nil {
			return err
		}
		_, err = s.q.Exec(ctx, query, args...)
		return err
	}

	loc.ID = uuid.NewString()
	loc.CreatedAt = time.Now().UTC()
	query, args, err := sb.Insert("locations").
		Columns("id", "country", "state", "district", "city", "postal_code",
			"address_line", "latitude", "longitude", "created_at").
		Values(loc.ID, loc.Country, loc.State, loc.District, loc.City,
			loc.PostalCode, loc.AddressLine, loc.Latitude, loc.Longitude,
			loc.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, "UPDATE users SET location_id = ? WHERE id = ?", loc.ID, userID)
	return err
}
