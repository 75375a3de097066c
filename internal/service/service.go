package service

import (
	"context"
	"fmt"
	"io"

	"pms/internal/codec"
	"pms/internal/domain"
	"pms/internal/repository"

	"go.uber.org/zap"
)

// Directory provides the registry operations, one unit of work per call
type Directory struct {
	store  repository.Store
	events *EventBus
	log    *zap.Logger
}

// NewDirectory creates a directory over store. events may be nil.
func NewDirectory(store repository.Store, events *EventBus, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{
		store:  store,
		events: events,
		log:    logger.Named("directory"),
	}
}

// within runs fn in its own unit of work and returns its result
func within[T any](ctx context.Context, store repository.Store, fn func(uow repository.UnitOfWork) (T, error)) (T, error) {
	var out T
	err := store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		out, err = fn(uow)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (d *Directory) changed(t EventType, entity domain.Entity, id domain.ID) {
	d.log.Info(string(t), zap.String("entity", string(entity)), zap.Int64("id", int64(id)))
	d.events.Publish(Event{Type: t, Entity: entity, ID: id})
}

// ============================================================================
// Cities
// ============================================================================

// ListCities returns every city ordered by name
func (d *Directory) ListCities(ctx context.Context) ([]domain.City, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) ([]domain.City, error) {
		return uow.Cities().List(ctx)
	})
}

// GetCity retrieves a single city
func (d *Directory) GetCity(ctx context.Context, id domain.ID) (domain.City, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) (domain.City, error) {
		return uow.Cities().Get(ctx, id)
	})
}

// CreateCity creates a city
func (d *Directory) CreateCity(ctx context.Context, fields domain.CityFields) (domain.City, error) {
	city, err := within(ctx, d.store, func(uow repository.UnitOfWork) (domain.City, error) {
		return uow.Cities().Create(ctx, fields)
	})
	if err != nil {
		return city, err
	}
	d.changed(EventCreated, domain.EntityCity, city.ID)
	return city, nil
}

// UpdateCity rewrites a city
func (d *Directory) UpdateCity(ctx context.Context, id domain.ID, fields domain.CityFields) (domain.City, error) {
	city, err := within(ctx, d.store, func(uow repository.UnitOfWork) (domain.City, error) {
		return uow.Cities().Update(ctx, id, fields)
	})
	if err != nil {
		return city, err
	}
	d.changed(EventUpdated, domain.EntityCity, id)
	return city, nil
}

// DeleteCity removes a city with its neighborhoods and their streets, and
// detaches its police stations
func (d *Directory) DeleteCity(ctx context.Context, id domain.ID) error {
	err := d.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		return uow.Cities().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	d.changed(EventDeleted, domain.EntityCity, id)
	return nil
}

// ============================================================================
// Neighborhoods
// ============================================================================

// ListNeighborhoods returns neighborhoods, optionally restricted to one city
func (d *Directory) ListNeighborhoods(ctx context.Context, cityID domain.NullID) ([]domain.Neighborhood, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) ([]domain.Neighborhood, error) {
		return uow.Neighborhoods().List(ctx, cityID)
	})
}

// GetNeighborhood retrieves a single neighborhood
func (d *Directory) GetNeighborhood(ctx context.Context, id domain.ID) (domain.Neighborhood, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) (domain.Neighborhood, error) {
		return uow.Neighborhoods().Get(ctx, id)
	})
}

// CreateNeighborhood creates a neighborhood
func (d *Directory) CreateNeighborhood(ctx context.Context, fields domain.NeighborhoodFields) (domain.Neighborhood, error) {
	nb, err := within(ctx, d.store, func(uow repository.UnitOfWork) (domain.Neighborhood, error) {
		return uow.Neighborhoods().Create(ctx, fields)
	})
	if err != nil {
		return nb, err
	}
	d.changed(EventCreated, domain.EntityNeighborhood, nb.ID)
	return nb, nil
}

// UpdateNeighborhood rewrites a neighborhood
func (d *Directory) UpdateNeighborhood(ctx context.Context, id domain.ID, fields domain.NeighborhoodFields) (domain.Neighborhood, error) {
	nb, err := within(ctx, d.store, func(uow repository.UnitOfWork) (domain.Neighborhood, error) {
		return uow.Neighborhoods().Update(ctx, id, fields)
	})
	if err != nil {
		return nb, err
	}
	d.changed(EventUpdated, domain.EntityNeighborhood, id)
	return nb, nil
}

// DeleteNeighborhood removes a neighborhood and its streets
func (d *Directory) DeleteNeighborhood(ctx context.Context, id domain.ID) error {
	err := d.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		return uow.Neighborhoods().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	d.changed(EventDeleted, domain.EntityNeighborhood, id)
	return nil
}

// ============================================================================
// Streets
// ============================================================================

// ListStreets returns streets, optionally restricted to one neighborhood
func (d *Directory) ListStreets(ctx context.Context, neighborhoodID domain.NullID) ([]domain.Street, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) ([]domain.Street, error) {
		return uow.Streets().List(ctx, neighborhoodID)
	})
}

// GetStreet retrieves a single street
func (d *Directory) GetStreet(ctx context.Context, id domain.ID) (domain.Street, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) (domain.Street, error) {
		return uow.Streets().Get(ctx, id)
	})
}

// CreateStreet creates a street
func (d *Directory) CreateStreet(ctx context.Context, fields domain.StreetFields) (domain.Street, error) {
	st, err := within(ctx, d.store, func(uow repository.UnitOfWork) (domain.Street, error) {
		return uow.Streets().Create(ctx, fields)
	})
	if err != nil {
		return st, err
	}
	d.changed(EventCreated, domain.EntityStreet, st.ID)
	return st, nil
}

// UpdateStreet rewrites a street
func (d *Directory) UpdateStreet(ctx context.Context, id domain.ID, fields domain.StreetFields) (domain.Street, error) {
	st, err := within(ctx, d.store, func(uow repository.UnitOfWork) (domain.Street, error) {
		return uow.Streets().Update(ctx, id, fields)
	})
	if err != nil {
		return st, err
	}
	d.changed(EventUpdated, domain.EntityStreet, id)
	return st, nil
}

// DeleteStreet removes a street
func (d *Directory) DeleteStreet(ctx context.Context, id domain.ID) error {
	err := d.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		return uow.Streets().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	d.changed(EventDeleted, domain.EntityStreet, id)
	return nil
}

// ============================================================================
// Police stations
// ============================================================================

// ListPoliceStations returns police stations, optionally restricted to one city
func (d *Directory) ListPoliceStations(ctx context.Context, cityID domain.NullID) ([]domain.PoliceStation, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) ([]domain.PoliceStation, error) {
		return uow.PoliceStations().List(ctx, cityID)
	})
}

// GetPoliceStation retrieves a single police station
func (d *Directory) GetPoliceStation(ctx context.Context, id domain.ID) (domain.PoliceStation, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) (domain.PoliceStation, error) {
		return uow.PoliceStations().Get(ctx, id)
	})
}

// CreatePoliceStation creates a police station
func (d *Directory) CreatePoliceStation(ctx context.Context, fields domain.PoliceStationFields) (domain.PoliceStation, error) {
	ps, err := within(ctx, d.store, func(uow repository.UnitOfWork) (domain.PoliceStation, error) {
		return uow.PoliceStations().Create(ctx, fields)
	})
	if err != nil {
		return ps, err
	}
	d.changed(EventCreated, domain.EntityPoliceStation, ps.ID)
	return ps, nil
}

// UpdatePoliceStation rewrites a police station
func (d *Directory) UpdatePoliceStation(ctx context.Context, id domain.ID, fields domain.PoliceStationFields) (domain.PoliceStation, error) {
	ps, err := within(ctx, d.store, func(uow repository.UnitOfWork) (domain.PoliceStation, error) {
		return uow.PoliceStations().Update(ctx, id, fields)
	})
	if err != nil {
		return ps, err
	}
	d.changed(EventUpdated, domain.EntityPoliceStation, id)
	return ps, nil
}

// DeletePoliceStation removes a police station
func (d *Directory) DeletePoliceStation(ctx context.Context, id domain.ID) error {
	err := d.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		return uow.PoliceStations().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	d.changed(EventDeleted, domain.EntityPoliceStation, id)
	return nil
}

// ============================================================================
// Import / export
// ============================================================================

// ImportResult represents the result of an import operation
type ImportResult struct {
	Created domain.HierarchyCounts `json:"created"`
}

// Import creates every entity in h in one unit of work. On error nothing
// is created.
func (d *Directory) Import(ctx context.Context, h *domain.Hierarchy) (ImportResult, error) {
	var result ImportResult
	if h == nil {
		return result, nil
	}

	err := d.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		result = ImportResult{}
		for _, ce := range h.Cities {
			city, err := uow.Cities().Create(ctx, domain.CityFields{Name: ce.Name, State: ce.State, Country: ce.Country})
			if err != nil {
				return fmt.Errorf("city %q: %w", ce.Name, err)
			}
			result.Created.Cities++

			for _, ne := range ce.Neighborhoods {
				nb, err := uow.Neighborhoods().Create(ctx, domain.NeighborhoodFields{Name: ne.Name, CityID: domain.SomeID(city.ID)})
				if err != nil {
					return fmt.Errorf("city %q: neighborhood %q: %w", ce.Name, ne.Name, err)
				}
				result.Created.Neighborhoods++

				for _, name := range ne.Streets {
					_, err := uow.Streets().Create(ctx, domain.StreetFields{Name: name, NeighborhoodID: domain.SomeID(nb.ID)})
					if err != nil {
						return fmt.Errorf("city %q: neighborhood %q: street %q: %w", ce.Name, ne.Name, name, err)
					}
					result.Created.Streets++
				}
			}

			for _, se := range ce.Stations {
				if err := createStation(ctx, uow, se, domain.SomeID(city.ID)); err != nil {
					return fmt.Errorf("city %q: %w", ce.Name, err)
				}
				result.Created.PoliceStations++
			}
		}

		for _, se := range h.Stations {
			if err := createStation(ctx, uow, se, domain.NoID); err != nil {
				return err
			}
			result.Created.PoliceStations++
		}
		return nil
	})
	if err != nil {
		d.log.Warn("import rolled back", zap.Error(err))
		return ImportResult{}, err
	}

	counts := result.Created
	d.log.Info(string(EventImported),
		zap.Int("cities", counts.Cities),
		zap.Int("neighborhoods", counts.Neighborhoods),
		zap.Int("streets", counts.Streets),
		zap.Int("police_stations", counts.PoliceStations),
	)
	d.events.Publish(Event{Type: EventImported, Counts: &counts})
	return result, nil
}

func createStation(ctx context.Context, uow repository.UnitOfWork, se domain.StationEntry, cityID domain.NullID) error {
	_, err := uow.PoliceStations().Create(ctx, domain.PoliceStationFields{Name: se.Name, CityID: cityID, Address: se.Address})
	if err != nil {
		return fmt.Errorf("police station %q: %w", se.Name, err)
	}
	return nil
}

// ImportFrom parses a document with imp and imports it
func (d *Directory) ImportFrom(ctx context.Context, imp codec.Importer, r io.Reader) (ImportResult, error) {
	h, err := imp.Parse(r)
	if err != nil {
		return ImportResult{}, err
	}
	return d.Import(ctx, h)
}

// Export reads the whole registry in one unit of work and nests it. Stations
// without a city are listed at the top level.
func (d *Directory) Export(ctx context.Context) (*domain.Hierarchy, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) (*domain.Hierarchy, error) {
		cities, err := uow.Cities().List(ctx)
		if err != nil {
			return nil, err
		}
		nbs, err := uow.Neighborhoods().List(ctx, domain.NoID)
		if err != nil {
			return nil, err
		}
		streets, err := uow.Streets().List(ctx, domain.NoID)
		if err != nil {
			return nil, err
		}
		stations, err := uow.PoliceStations().List(ctx, domain.NoID)
		if err != nil {
			return nil, err
		}
		return nest(cities, nbs, streets, stations), nil
	})
}

// ExportTo writes the registry with exp
func (d *Directory) ExportTo(ctx context.Context, exp codec.Exporter, w io.Writer) error {
	h, err := d.Export(ctx)
	if err != nil {
		return err
	}
	return exp.Export(h, w)
}

// nest assembles flat name-ordered lists into a hierarchy, keeping that order
func nest(cities []domain.City, nbs []domain.Neighborhood, streets []domain.Street, stations []domain.PoliceStation) *domain.Hierarchy {
	streetsByNb := make(map[domain.ID][]string)
	for _, st := range streets {
		streetsByNb[st.NeighborhoodID] = append(streetsByNb[st.NeighborhoodID], st.Name)
	}

	nbsByCity := make(map[domain.ID][]domain.NeighborhoodEntry)
	for _, nb := range nbs {
		nbsByCity[nb.CityID] = append(nbsByCity[nb.CityID], domain.NeighborhoodEntry{
			Name:    nb.Name,
			Streets: streetsByNb[nb.ID],
		})
	}

	h := domain.NewHierarchy()
	stationsByCity := make(map[domain.ID][]domain.StationEntry)
	for _, ps := range stations {
		entry := domain.StationEntry{Name: ps.Name, Address: ps.Address}
		if !ps.CityID.Valid {
			h.AddStation(entry)
			continue
		}
		stationsByCity[ps.CityID.ID] = append(stationsByCity[ps.CityID.ID], entry)
	}

	for _, c := range cities {
		h.AddCity(domain.CityEntry{
			Name:          c.Name,
			State:         c.State,
			Country:       c.Country,
			Neighborhoods: nbsByCity[c.ID],
			Stations:      stationsByCity[c.ID],
		})
	}
	return h
}
