package repository

import (
	"context"

	"pms/internal/domain"
)

// Store opens units of work over the registry
type Store interface {
	// WithUnitOfWork runs fn inside one transaction. A nil return commits;
	// an error return rolls back and is returned unchanged.
	WithUnitOfWork(ctx context.Context, fn func(uow UnitOfWork) error) error

	// Close releases resources
	Close() error
}

// UnitOfWork exposes the repositories bound to one transaction
type UnitOfWork interface {
	Cities() Cities
	Neighborhoods() Neighborhoods
	Streets() Streets
	PoliceStations() PoliceStations
}

// Cities persists domain.City
type Cities interface {
	List(ctx context.Context) ([]domain.City, error)
	Get(ctx context.Context, id domain.ID) (domain.City, error)
	Create(ctx context.Context, fields domain.CityFields) (domain.City, error)
	Update(ctx context.Context, id domain.ID, fields domain.CityFields) (domain.City, error)
	Delete(ctx context.Context, id domain.ID) error
}

// Neighborhoods persists domain.Neighborhood. List filters by city when
// cityID is valid.
type Neighborhoods interface {
	List(ctx context.Context, cityID domain.NullID) ([]domain.Neighborhood, error)
	Get(ctx context.Context, id domain.ID) (domain.Neighborhood, error)
	Create(ctx context.Context, fields domain.NeighborhoodFields) (domain.Neighborhood, error)
	Update(ctx context.Context, id domain.ID, fields domain.NeighborhoodFields) (domain.Neighborhood, error)
	Delete(ctx context.Context, id domain.ID) error
}

// Streets persists domain.Street. List filters by neighborhood when
// neighborhoodID is valid.
type Streets interface {
	List(ctx context.Context, neighborhoodID domain.NullID) ([]domain.Street, error)
	Get(ctx context.Context, id domain.ID) (domain.Street, error)
	Create(ctx context.Context, fields domain.StreetFields) (domain.Street, error)
	Update(ctx context.Context, id domain.ID, fields domain.StreetFields) (domain.Street, error)
	Delete(ctx context.Context, id domain.ID) error
}

// PoliceStations persists domain.PoliceStation. List filters by city when
// cityID is valid.
type PoliceStations interface {
	List(ctx context.Context, cityID domain.NullID) ([]domain.PoliceStation, error)
	Get(ctx context.Context, id domain.ID) (domain.PoliceStation, error)
	Create(ctx context.Context, fields domain.PoliceStationFields) (domain.PoliceStation, error)
	Update(ctx context.Context, id domain.ID, fields domain.PoliceStationFields) (domain.PoliceStation, error)
	Delete(ctx context.Context, id domain.ID) error
}
