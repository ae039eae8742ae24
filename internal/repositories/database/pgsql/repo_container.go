package pgsql

import (
	portsrepo "github.com/SscSPs/hydration_tracker_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every repository over the same pool.
func NewRepositoryProvider(dbPool PgxPool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:  newPgxUserRepository(dbPool),
		WaterRepo: newPgxWaterRecordRepository(dbPool),
	}
}
