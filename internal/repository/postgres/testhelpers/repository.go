package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/tourist-map/internal/domain/repository"
	"github.com/tourist-map/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewPlaceRepositoryForTest creates a place repository with test database and logger
func NewPlaceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PlaceRepository {
	return postgres.NewPlaceRepository(postgres.NewDBForTest(db, logger))
}
