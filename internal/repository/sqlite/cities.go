package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"pms/internal/domain"
	"pms/internal/repository"

	"go.uber.org/zap"
)

// CityRepository implements repository.Cities
type CityRepository struct {
	q   queryer
	log *zap.Logger
}

var _ repository.Cities = (*CityRepository)(nil)

// List returns every city ordered by name
func (r *CityRepository) List(ctx context.Context) ([]domain.City, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+cityColumns+`
		FROM cities
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}

	cities, err := collectRows(rows, scanCity)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cities: %w", err)
	}

	r.log.Debug("listed", zap.Int("count", len(cities)))
	return cities, nil
}

// Get retrieves a single city by ID
func (r *CityRepository) Get(ctx context.Context, id domain.ID) (domain.City, error) {
	city, err := scanCity(r.q.QueryRowContext(ctx, `
		SELECT `+cityColumns+` FROM cities WHERE id = ?
	`, int64(id)))
	if err == sql.ErrNoRows {
		return domain.City{}, &domain.NotFoundError{Entity: domain.EntityCity, ID: id}
	}
	if err != nil {
		return domain.City{}, fmt.Errorf("failed to query city: %w", err)
	}
	return city, nil
}

// Create inserts a new city
func (r *CityRepository) Create(ctx context.Context, fields domain.CityFields) (domain.City, error) {
	f := fields.Normalize()
	if err := f.Validate(); err != nil {
		return domain.City{}, err
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO cities (name, state, country) VALUES (?, ?, ?)
	`, f.Name, stringToNull(f.State), stringToNull(f.Country))
	if err != nil {
		return domain.City{}, translateIntegrity(domain.EntityCity, fmt.Errorf("failed to insert city: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.City{}, fmt.Errorf("failed to read city id: %w", err)
	}

	r.log.Debug("created", idField(domain.ID(id)), zap.String("name", f.Name))
	return domain.City{ID: domain.ID(id), Name: f.Name, State: f.State, Country: f.Country}, nil
}

// Update rewrites the fields of an existing city
func (r *CityRepository) Update(ctx context.Context, id domain.ID, fields domain.CityFields) (domain.City, error) {
	if err := r.mustExist(ctx, id); err != nil {
		return domain.City{}, err
	}

	f := fields.Normalize()
	if err := f.Validate(); err != nil {
		return domain.City{}, err
	}

	_, err := r.q.ExecContext(ctx, `
		UPDATE cities
		SET name = ?, state = ?, country = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, f.Name, stringToNull(f.State), stringToNull(f.Country), int64(id))
	if err != nil {
		return domain.City{}, translateIntegrity(domain.EntityCity, fmt.Errorf("failed to update city: %w", err))
	}

	r.log.Debug("updated", idField(id))
	return domain.City{ID: id, Name: f.Name, State: f.State, Country: f.Country}, nil
}

// Delete removes a city. Streets of its neighborhoods and the neighborhoods
// themselves are deleted; its police stations are detached and kept.
func (r *CityRepository) Delete(ctx context.Context, id domain.ID) error {
	if err := r.mustExist(ctx, id); err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, `
		DELETE FROM streets
		WHERE neighborhood_id IN (SELECT id FROM neighborhoods WHERE city_id = ?)
	`, int64(id))
	if err != nil {
		return fmt.Errorf("failed to delete streets of city %d: %w", id, err)
	}
	streets := affected(res)

	res, err = r.q.ExecContext(ctx, `DELETE FROM neighborhoods WHERE city_id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("failed to delete neighborhoods of city %d: %w", id, err)
	}
	neighborhoods := affected(res)

	// Detaching can collide with a same-named station that already has no city
	res, err = r.q.ExecContext(ctx, `
		UPDATE police_stations
		SET city_id = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE city_id = ?
	`, int64(id))
	if err != nil {
		return translateIntegrity(domain.EntityPoliceStation, fmt.Errorf("failed to detach police stations of city %d: %w", id, err))
	}
	stations := affected(res)

	if _, err := r.q.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, int64(id)); err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}

	r.log.Debug("deleted",
		idField(id),
		zap.Int64("streets_deleted", streets),
		zap.Int64("neighborhoods_deleted", neighborhoods),
		zap.Int64("stations_detached", stations),
	)
	return nil
}

func (r *CityRepository) mustExist(ctx context.Context, id domain.ID) error {
	ok, err := exists(ctx, r.q, tableCities, id)
	if err != nil {
		return err
	}
	if !ok {
		r.log.Warn("not found", idField(id))
		return &domain.NotFoundError{Entity: domain.EntityCity, ID: id}
	}
	return nil
}

// requireCity checks a parent city reference held by another entity
func requireCity(ctx context.Context, q queryer, id domain.ID) error {
	ok, err := exists(ctx, q, tableCities, id)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ValidationError{Field: "city_id", Reason: fmt.Sprintf("city %d does not exist", id)}
	}
	return nil
}
