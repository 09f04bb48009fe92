package mapview

import (
	"context"

	"github.com/tourist-map/internal/domain"
)

// Querier - источник данных карты (эндпоинт /places/map).
// Вызывается вне цикла карты, ответы могут приходить в любом порядке.
type Querier interface {
	ListRegions(ctx context.Context) ([]domain.Region, error)
	ListPlacesInRegion(ctx context.Context, citySlug string) ([]domain.Place, error)
	ListNearby(ctx context.Context, center domain.LatLng, radiusKm float64) ([]domain.Place, error)
}
