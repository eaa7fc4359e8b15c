package store

import (
	"context"

	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/rowmap"
	"github.com/our-area/api-go/storage"
)

type Areas struct {
	q storage.Querier
}

var areaSchema = rowmap.Schema{
	{Name: "id", Kind: rowmap.Text},
	{Name: "name", Kind: rowmap.Text},
	{Name: "center_lat", Kind: rowmap.Float},
	{Name: "center_lng", Kind: rowmap.Float},
	{Name: "radius_m", Kind: rowmap.Integer},
}

// List returns all areas. There is no spatial index; nearby filtering
// happens in the handler over this full set.
func (s *Areas) List(ctx context.Context) ([]models.Area, error) {
	query, args, err := sb.Select("id", "name", "center_lat", "center_lng", "radius_m").
		From("areas").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	recs, err := rowmap.MapAll(rows, areaSchema)
	if err != nil {
		return nil, err
	}
	areas := make([]models.Area, 0, len(recs))
	for _, rec := range recs {
		areas = append(areas, models.Area{
			ID:        rec.String("id"),
			Name:      rec.String("name"),
			CenterLat: rec.Float64("center_lat"),
			CenterLng: rec.Float64("center_lng"),
			RadiusM:   int(rec.Int64("radius_m")),
		})
	}
	return areas, nil
}
