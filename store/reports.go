package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/storage"
)

type Reports struct {
	q storage.Querier
}

// Create inserts the report. The exactly-one-target rule and target
// existence are validated by the caller before this point.
func (s *Reports) Create(ctx context.Context, r *models.Report) error {
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	query, args, err := sb.Insert("reports").
		Columns("id", "reporter_id", "post_id", "user_id", "reason",
			"description", "created_at").
		Values(r.ID, r.ReporterID, r.PostID, r.UserID, r.Reason,
			r.Description, r.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, query, args...)
	return err
}
