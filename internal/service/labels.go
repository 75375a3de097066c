package service

import (
	"context"
	"strings"

	"pms/internal/domain"
	"pms/internal/repository"
)

// CityLabel renders a city as its non-empty name, state and country joined
// by ", "
func CityLabel(c domain.City) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Name, c.State, c.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// NeighborhoodLabel renders a neighborhood with its city's label, or
// "Unknown City" when the city is not in cities
func NeighborhoodLabel(nb domain.Neighborhood, cities map[domain.ID]domain.City) string {
	return nb.Name + " (" + cityLabelOf(cities, nb.CityID) + ")"
}

// CityIndex maps cities by ID
func CityIndex(cities []domain.City) map[domain.ID]domain.City {
	idx := make(map[domain.ID]domain.City, len(cities))
	for _, c := range cities {
		idx[c.ID] = c
	}
	return idx
}

// NeighborhoodView is a neighborhood with its city label
type NeighborhoodView struct {
	domain.Neighborhood
	City string
}

// StreetView is a street with its neighborhood label
type StreetView struct {
	domain.Street
	Neighborhood string
}

// PoliceStationView is a police station with its city label, empty when
// the station has no city
type PoliceStationView struct {
	domain.PoliceStation
	City string
}

// ListNeighborhoodViews lists neighborhoods with their city labels in one
// unit of work
func (d *Directory) ListNeighborhoodViews(ctx context.Context, cityID domain.NullID) ([]NeighborhoodView, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) ([]NeighborhoodView, error) {
		cities, err := uow.Cities().List(ctx)
		if err != nil {
			return nil, err
		}
		nbs, err := uow.Neighborhoods().List(ctx, cityID)
		if err != nil {
			return nil, err
		}
		idx := CityIndex(cities)
		views := make([]NeighborhoodView, 0, len(nbs))
		for _, nb := range nbs {
			views = append(views, NeighborhoodView{Neighborhood: nb, City: cityLabelOf(idx, nb.CityID)})
		}
		return views, nil
	})
}

// ListStreetViews lists streets with their neighborhood labels in one unit
// of work
func (d *Directory) ListStreetViews(ctx context.Context, neighborhoodID domain.NullID) ([]StreetView, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) ([]StreetView, error) {
		cities, err := uow.Cities().List(ctx)
		if err != nil {
			return nil, err
		}
		nbs, err := uow.Neighborhoods().List(ctx, domain.NoID)
		if err != nil {
			return nil, err
		}
		streets, err := uow.Streets().List(ctx, neighborhoodID)
		if err != nil {
			return nil, err
		}

		idx := CityIndex(cities)
		nbLabels := make(map[domain.ID]string, len(nbs))
		for _, nb := range nbs {
			nbLabels[nb.ID] = NeighborhoodLabel(nb, idx)
		}
		views := make([]StreetView, 0, len(streets))
		for _, st := range streets {
			views = append(views, StreetView{Street: st, Neighborhood: nbLabels[st.NeighborhoodID]})
		}
		return views, nil
	})
}

// ListPoliceStationViews lists police stations with their city labels in
// one unit of work
func (d *Directory) ListPoliceStationViews(ctx context.Context, cityID domain.NullID) ([]PoliceStationView, error) {
	return within(ctx, d.store, func(uow repository.UnitOfWork) ([]PoliceStationView, error) {
		cities, err := uow.Cities().List(ctx)
		if err != nil {
			return nil, err
		}
		stations, err := uow.PoliceStations().List(ctx, cityID)
		if err != nil {
			return nil, err
		}
		idx := CityIndex(cities)
		views := make([]PoliceStationView, 0, len(stations))
		for _, ps := range stations {
			var city string
			if ps.CityID.Valid {
				city = cityLabelOf(idx, ps.CityID.ID)
			}
			views = append(views, PoliceStationView{PoliceStation: ps, City: city})
		}
		return views, nil
	})
}

func cityLabelOf(idx map[domain.ID]domain.City, id domain.ID) string {
	if c, ok := idx[id]; ok {
		return CityLabel(c)
	}
	return "Unknown City"
}
