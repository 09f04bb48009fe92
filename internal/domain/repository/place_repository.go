package repository

import (
	"context"

	"github.com/tourist-map/internal/domain"
)

// PlaceRepository - чтение опубликованных мест для карты
type PlaceRepository interface {
	// CountPublishedByCity возвращает регионы, в которых есть хотя бы одно опубликованное место,
	// с количеством таких мест
	CountPublishedByCity(ctx context.Context) ([]domain.Region, error)

	// ListPublishedByCity возвращает опубликованные места региона с валидными координатами (не больше limit)
	ListPublishedByCity(ctx context.Context, citySlug string, limit int) ([]domain.Place, error)

	// ListPublishedInBBox возвращает опубликованные места внутри прямоугольника.
	// Прямоугольник с West > East пересекает антимеридиан.
	ListPublishedInBBox(ctx context.Context, box domain.BoundingBox) ([]domain.Place, error)
}
