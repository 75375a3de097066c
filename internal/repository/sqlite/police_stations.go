package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"pms/internal/domain"
	"pms/internal/repository"

	"go.uber.org/zap"
)

// PoliceStationRepository implements repository.PoliceStations
type PoliceStationRepository struct {
	q   queryer
	log *zap.Logger
}

var _ repository.PoliceStations = (*PoliceStationRepository)(nil)

// List returns police stations ordered by name, restricted to one city when
// cityID is valid. Stations without a city only appear unfiltered.
func (r *PoliceStationRepository) List(ctx context.Context, cityID domain.NullID) ([]domain.PoliceStation, error) {
	query := `SELECT ` + policeStationColumns + ` FROM police_stations`
	var args []any
	if cityID.Valid {
		query += ` WHERE city_id = ?`
		args = append(args, int64(cityID.ID))
	}
	query += ` ORDER BY name, id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query police stations: %w", err)
	}

	stations, err := collectRows(rows, scanPoliceStation)
	if err != nil {
		return nil, fmt.Errorf("failed to scan police stations: %w", err)
	}

	r.log.Debug("listed", zap.Stringer("city_id", cityID), zap.Int("count", len(stations)))
	return stations, nil
}

// Get retrieves a single police station by ID
func (r *PoliceStationRepository) Get(ctx context.Context, id domain.ID) (domain.PoliceStation, error) {
	ps, err := scanPoliceStation(r.q.QueryRowContext(ctx, `
		SELECT `+policeStationColumns+` FROM police_stations WHERE id = ?
	`, int64(id)))
	if err == sql.ErrNoRows {
		return domain.PoliceStation{}, &domain.NotFoundError{Entity: domain.EntityPoliceStation, ID: id}
	}
	if err != nil {
		return domain.PoliceStation{}, fmt.Errorf("failed to query police station: %w", err)
	}
	return ps, nil
}

// Create inserts a new police station, optionally linked to a city
func (r *PoliceStationRepository) Create(ctx context.Context, fields domain.PoliceStationFields) (domain.PoliceStation, error) {
	f, err := r.prepare(ctx, fields)
	if err != nil {
		return domain.PoliceStation{}, err
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO police_stations (name, city_id, address) VALUES (?, ?, ?)
	`, f.Name, idToNull(f.CityID), stringToNull(f.Address))
	if err != nil {
		return domain.PoliceStation{}, translateIntegrity(domain.EntityPoliceStation, fmt.Errorf("failed to insert police station: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.PoliceStation{}, fmt.Errorf("failed to read police station id: %w", err)
	}

	r.log.Debug("created", idField(domain.ID(id)), zap.String("name", f.Name), zap.Stringer("city_id", f.CityID))
	return domain.PoliceStation{ID: domain.ID(id), Name: f.Name, CityID: f.CityID, Address: f.Address}, nil
}

// Update rewrites an existing police station. An absent city detaches it.
func (r *PoliceStationRepository) Update(ctx context.Context, id domain.ID, fields domain.PoliceStationFields) (domain.PoliceStation, error) {
	if err := r.mustExist(ctx, id); err != nil {
		return domain.PoliceStation{}, err
	}

	f, err := r.prepare(ctx, fields)
	if err != nil {
		return domain.PoliceStation{}, err
	}

	_, err = r.q.ExecContext(ctx, `
		UPDATE police_stations
		SET name = ?, city_id = ?, address = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, f.Name, idToNull(f.CityID), stringToNull(f.Address), int64(id))
	if err != nil {
		return domain.PoliceStation{}, translateIntegrity(domain.EntityPoliceStation, fmt.Errorf("failed to update police station: %w", err))
	}

	r.log.Debug("updated", idField(id))
	return domain.PoliceStation{ID: id, Name: f.Name, CityID: f.CityID, Address: f.Address}, nil
}

// Delete removes a police station
func (r *PoliceStationRepository) Delete(ctx context.Context, id domain.ID) error {
	if err := r.mustExist(ctx, id); err != nil {
		return err
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM police_stations WHERE id = ?`, int64(id)); err != nil {
		return fmt.Errorf("failed to delete police station: %w", err)
	}
	r.log.Debug("deleted", idField(id))
	return nil
}

func (r *PoliceStationRepository) prepare(ctx context.Context, fields domain.PoliceStationFields) (domain.PoliceStationFields, error) {
	f := fields.Normalize()
	if err := f.Validate(); err != nil {
		return f, err
	}
	if f.CityID.Valid {
		if err := requireCity(ctx, r.q, f.CityID.ID); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (r *PoliceStationRepository) mustExist(ctx context.Context, id domain.ID) error {
	ok, err := exists(ctx, r.q, tablePoliceStations, id)
	if err != nil {
		return err
	}
	if !ok {
		r.log.Warn("not found", idField(id))
		return &domain.NotFoundError{Entity: domain.EntityPoliceStation, ID: id}
	}
	return nil
}
