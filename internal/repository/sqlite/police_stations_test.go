package sqlite

import (
	"context"
	"errors"
	"testing"

	"pms/internal/domain"
	"pms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoliceStationListFilter(t *testing.T) {
	store := newTestStore(t)
	a := mustCity(t, store, "Springfield", "", "")
	b := mustCity(t, store, "Shelbyville", "", "")

	central := mustStation(t, store, "Central", domain.SomeID(a.ID), "1 Main St")
	north := mustStation(t, store, "North", domain.SomeID(b.ID), "")
	rural := mustStation(t, store, "County", domain.NoID, "Route 9")

	assert.Equal(t, []domain.PoliceStation{central, rural, north}, listStations(t, store, domain.NoID))
	assert.Equal(t, []domain.PoliceStation{central}, listStations(t, store, domain.SomeID(a.ID)))
	assert.Empty(t, listStations(t, store, domain.SomeID(999)))
}

func TestPoliceStationCreate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	city := mustCity(t, store, "Springfield", "", "")

	create := func(f domain.PoliceStationFields) (domain.PoliceStation, error) {
		return inUnit(t, store, func(uow repository.UnitOfWork) (domain.PoliceStation, error) {
			return uow.PoliceStations().Create(ctx, f)
		})
	}

	ps, err := create(domain.PoliceStationFields{Name: " Central ", CityID: domain.SomeID(city.ID), Address: " 1 Main St "})
	require.NoError(t, err)
	assert.Equal(t, domain.PoliceStation{ID: ps.ID, Name: "Central", CityID: domain.SomeID(city.ID), Address: "1 Main St"}, ps)

	t.Run("duplicate within city", func(t *testing.T) {
		_, err := create(domain.PoliceStationFields{Name: "Central", CityID: domain.SomeID(city.ID)})
		var dup *domain.DuplicateError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, domain.EntityPoliceStation, dup.Entity)
	})

	t.Run("same name without city", func(t *testing.T) {
		_, err := create(domain.PoliceStationFields{Name: "Central"})
		require.NoError(t, err)

		_, err = create(domain.PoliceStationFields{Name: "Central"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("nonexistent city", func(t *testing.T) {
		_, err := create(domain.PoliceStationFields{Name: "South", CityID: domain.SomeID(999)})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "city_id", verr.Field)
	})
}

func TestPoliceStationUpdateDetaches(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	city := mustCity(t, store, "Springfield", "", "")
	ps := mustStation(t, store, "Central", domain.SomeID(city.ID), "1 Main St")

	updated, err := inUnit(t, store, func(uow repository.UnitOfWork) (domain.PoliceStation, error) {
		return uow.PoliceStations().Update(ctx, ps.ID, domain.PoliceStationFields{Name: "Central", Address: ""})
	})
	require.NoError(t, err)
	assert.False(t, updated.CityID.Valid)
	assert.Empty(t, updated.Address)

	got, err := inUnit(t, store, func(uow repository.UnitOfWork) (domain.PoliceStation, error) {
		return uow.PoliceStations().Get(ctx, ps.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, []domain.City{city}, listCities(t, store))
}

func TestPoliceStationNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := inUnit(t, store, func(uow repository.UnitOfWork) (domain.PoliceStation, error) {
		return uow.PoliceStations().Update(ctx, 7, domain.PoliceStationFields{Name: "Central"})
	})
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, domain.EntityPoliceStation, nf.Entity)
	assert.Equal(t, domain.ID(7), nf.ID)

	err = store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		return uow.PoliceStations().Delete(ctx, 7)
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPoliceStationDeleteLeavesCity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	city := mustCity(t, store, "Springfield", "", "")
	ps := mustStation(t, store, "Central", domain.SomeID(city.ID), "")

	require.NoError(t, store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		return uow.PoliceStations().Delete(ctx, ps.ID)
	}))
	assert.Empty(t, listStations(t, store, domain.NoID))
	assert.Equal(t, []domain.City{city}, listCities(t, store))
}
