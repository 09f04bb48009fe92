package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tourist-map/internal/domain"
	"github.com/tourist-map/internal/domain/repository"
	"github.com/tourist-map/internal/pkg/errors"
	"go.uber.org/zap"
)

type placeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// regionRow - строка агрегата cities + count(places)
type regionRow struct {
	ID         uuid.UUID       `db:"id"`
	Name       string          `db:"name"`
	Slug       string          `db:"slug"`
	Lat        float64         `db:"lat"`
	Lng        float64         `db:"lng"`
	BBoxWest   sql.NullFloat64 `db:"bbox_west"`
	BBoxSouth  sql.NullFloat64 `db:"bbox_south"`
	BBoxEast   sql.NullFloat64 `db:"bbox_east"`
	BBoxNorth  sql.NullFloat64 `db:"bbox_north"`
	PlaceCount int             `db:"place_count"`
}

func (r regionRow) toDomain() domain.Region {
	region := domain.Region{
		ID:         r.ID,
		Name:       r.Name,
		Slug:       r.Slug,
		Center:     domain.LatLng{Lat: r.Lat, Lng: r.Lng},
		PlaceCount: r.PlaceCount,
	}
	if r.BBoxWest.Valid && r.BBoxSouth.Valid && r.BBoxEast.Valid && r.BBoxNorth.Valid {
		region.Bounds = &domain.BoundingBox{
			West:  r.BBoxWest.Float64,
			South: r.BBoxSouth.Float64,
			East:  r.BBoxEast.Float64,
			North: r.BBoxNorth.Float64,
		}
	}
	return region
}

type placeRow struct {
	ID               uuid.UUID       `db:"id"`
	Name             string          `db:"name"`
	Slug             string          `db:"slug"`
	Category         string          `db:"category"`
	Lat              sql.NullFloat64 `db:"lat"`
	Lng              sql.NullFloat64 `db:"lng"`
	Featured         bool            `db:"featured"`
	ShortDescription sql.NullString  `db:"short_description"`
	Images           pq.StringArray  `db:"images"`
	RatingAvg        sql.NullFloat64 `db:"rating_avg"`
	Status           string          `db:"status"`
	CitySlug         string          `db:"city_slug"`
	CityName         string          `db:"city_name"`
	CreatedAt        time.Time       `db:"created_at"`
}

func (r placeRow) toDomain() domain.Place {
	place := domain.Place{
		ID:       r.ID,
		Name:     r.Name,
		Slug:     r.Slug,
		Category: r.Category,
		Featured: r.Featured,
		Images:   []string(r.Images),
		Status:   domain.PlaceStatus(r.Status),
		City: domain.CityRef{
			Slug: r.CitySlug,
			Name: r.CityName,
		},
		CreatedAt: r.CreatedAt,
	}
	if place.Images == nil {
		place.Images = []string{}
	}
	if r.Lat.Valid && r.Lng.Valid {
		place.Location = &domain.LatLng{Lat: r.Lat.Float64, Lng: r.Lng.Float64}
	}
	if r.ShortDescription.Valid {
		desc := r.ShortDescription.String
		place.ShortDescription = &desc
	}
	if r.RatingAvg.Valid {
		rating := r.RatingAvg.Float64
		place.RatingAvg = &rating
	}
	return place
}

const placeColumns = `
	p.id, p.name, p.slug, p.category, p.lat, p.lng, p.featured,
	p.short_description, p.images, p.rating_avg, p.status, p.created_at,
	c.slug AS city_slug, c.name AS city_name`

func (r *placeRepository) CountPublishedByCity(ctx context.Context) ([]domain.Region, error) {
	query := `
		SELECT
			c.id, c.name, c.slug, c.lat, c.lng,
			c.bbox_west, c.bbox_south, c.bbox_east, c.bbox_north,
			COUNT(p.id) AS place_count
		FROM cities c
		JOIN places p ON p.city_id = c.id AND p.status = $1
		GROUP BY c.id
		HAVING COUNT(p.id) > 0
		ORDER BY c.name
	`

	var rows []regionRow
	if err := r.db.SelectContext(ctx, &rows, query, string(domain.PlaceStatusPublished)); err != nil {
		r.logger.Error("Failed to count published places by city", zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	regions := make([]domain.Region, 0, len(rows))
	for _, row := range rows {
		regions = append(regions, row.toDomain())
	}

	r.logger.Debug("Regions with published places loaded", zap.Int("count", len(regions)))
	return regions, nil
}

func (r *placeRepository) ListPublishedByCity(ctx context.Context, citySlug string, limit int) ([]domain.Place, error) {
	query := `
		SELECT ` + placeColumns + `
		FROM places p
		JOIN cities c ON c.id = p.city_id
		WHERE c.slug = $1 AND p.status = $2
		  AND p.lat BETWEEN -90 AND 90
		  AND p.lng BETWEEN -180 AND 180
		ORDER BY p.featured DESC, p.rating_avg DESC NULLS LAST, p.name
		LIMIT $3
	`

	var rows []placeRow
	if err := r.db.SelectContext(ctx, &rows, query, citySlug, string(domain.PlaceStatusPublished), limit); err != nil {
		r.logger.Error("Failed to list published places by city",
			zap.String("city", citySlug),
			zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	return toPlaces(rows), nil
}

func (r *placeRepository) ListPublishedInBBox(ctx context.Context, box domain.BoundingBox) ([]domain.Place, error) {
	lngFilter := `p.lng BETWEEN $3 AND $4`
	if box.CrossesAntimeridian() {
		lngFilter = `(p.lng >= $3 OR p.lng <= $4)`
	}

	query := `
		SELECT ` + placeColumns + `
		FROM places p
		JOIN cities c ON c.id = p.city_id
		WHERE p.status = $5
		  AND p.lat BETWEEN $1 AND $2
		  AND ` + lngFilter

	var rows []placeRow
	err := r.db.SelectContext(ctx, &rows, query,
		box.South, box.North, box.West, box.East, string(domain.PlaceStatusPublished))
	if err != nil {
		r.logger.Error("Failed to list published places in bbox",
			zap.Float64("west", box.West),
			zap.Float64("south", box.South),
			zap.Float64("east", box.East),
			zap.Float64("north", box.North),
			zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	return toPlaces(rows), nil
}

func toPlaces(rows []placeRow) []domain.Place {
	places := make([]domain.Place, 0, len(rows))
	for _, row := range rows {
		places = append(places, row.toDomain())
	}
	return places
}
