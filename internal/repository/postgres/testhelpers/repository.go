package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/scooter-map/internal/domain/repository"
	"github.com/scooter-map/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewArchiveRepositoryForTest creates an archive repository with test database and logger
func NewArchiveRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ArchiveRepository {
	return postgres.NewArchiveRepository(NewDBForTest(db, logger))
}
