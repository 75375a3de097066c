package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"pms/internal/domain"
	"pms/internal/repository"

	"go.uber.org/zap"
)

// NeighborhoodRepository implements repository.Neighborhoods
type NeighborhoodRepository struct {
	q   queryer
	log *zap.Logger
}

var _ repository.Neighborhoods = (*NeighborhoodRepository)(nil)

// List returns neighborhoods ordered by name, restricted to one city when
// cityID is valid
func (r *NeighborhoodRepository) List(ctx context.Context, cityID domain.NullID) ([]domain.Neighborhood, error) {
	query := `SELECT ` + neighborhoodColumns + ` FROM neighborhoods`
	var args []any
	if cityID.Valid {
		query += ` WHERE city_id = ?`
		args = append(args, int64(cityID.ID))
	}
	query += ` ORDER BY name, id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query neighborhoods: %w", err)
	}

	nbs, err := collectRows(rows, scanNeighborhood)
	if err != nil {
		return nil, fmt.Errorf("failed to scan neighborhoods: %w", err)
	}

	r.log.Debug("listed", zap.Stringer("city_id", cityID), zap.Int("count", len(nbs)))
	return nbs, nil
}

// Get retrieves a single neighborhood by ID
func (r *NeighborhoodRepository) Get(ctx context.Context, id domain.ID) (domain.Neighborhood, error) {
	nb, err := scanNeighborhood(r.q.QueryRowContext(ctx, `
		SELECT `+neighborhoodColumns+` FROM neighborhoods WHERE id = ?
	`, int64(id)))
	if err == sql.ErrNoRows {
		return domain.Neighborhood{}, &domain.NotFoundError{Entity: domain.EntityNeighborhood, ID: id}
	}
	if err != nil {
		return domain.Neighborhood{}, fmt.Errorf("failed to query neighborhood: %w", err)
	}
	return nb, nil
}

// Create inserts a new neighborhood under an existing city
func (r *NeighborhoodRepository) Create(ctx context.Context, fields domain.NeighborhoodFields) (domain.Neighborhood, error) {
	f, err := r.prepare(ctx, fields)
	if err != nil {
		return domain.Neighborhood{}, err
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO neighborhoods (name, city_id) VALUES (?, ?)
	`, f.Name, int64(f.CityID.ID))
	if err != nil {
		return domain.Neighborhood{}, translateIntegrity(domain.EntityNeighborhood, fmt.Errorf("failed to insert neighborhood: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Neighborhood{}, fmt.Errorf("failed to read neighborhood id: %w", err)
	}

	r.log.Debug("created", idField(domain.ID(id)), zap.String("name", f.Name), zap.Int64("city_id", int64(f.CityID.ID)))
	return domain.Neighborhood{ID: domain.ID(id), Name: f.Name, CityID: f.CityID.ID}, nil
}

// Update rewrites an existing neighborhood, possibly moving it to another city
func (r *NeighborhoodRepository) Update(ctx context.Context, id domain.ID, fields domain.NeighborhoodFields) (domain.Neighborhood, error) {
	if err := r.mustExist(ctx, id); err != nil {
		return domain.Neighborhood{}, err
	}

	f, err := r.prepare(ctx, fields)
	if err != nil {
		return domain.Neighborhood{}, err
	}

	_, err = r.q.ExecContext(ctx, `
		UPDATE neighborhoods
		SET name = ?, city_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, f.Name, int64(f.CityID.ID), int64(id))
	if err != nil {
		return domain.Neighborhood{}, translateIntegrity(domain.EntityNeighborhood, fmt.Errorf("failed to update neighborhood: %w", err))
	}

	r.log.Debug("updated", idField(id))
	return domain.Neighborhood{ID: id, Name: f.Name, CityID: f.CityID.ID}, nil
}

// Delete removes a neighborhood and all of its streets
func (r *NeighborhoodRepository) Delete(ctx context.Context, id domain.ID) error {
	if err := r.mustExist(ctx, id); err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, `DELETE FROM streets WHERE neighborhood_id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("failed to delete streets of neighborhood %d: %w", id, err)
	}
	streets := affected(res)

	if _, err := r.q.ExecContext(ctx, `DELETE FROM neighborhoods WHERE id = ?`, int64(id)); err != nil {
		return fmt.Errorf("failed to delete neighborhood: %w", err)
	}

	r.log.Debug("deleted", idField(id), zap.Int64("streets_deleted", streets))
	return nil
}

// prepare normalizes and validates fields and checks the parent city
func (r *NeighborhoodRepository) prepare(ctx context.Context, fields domain.NeighborhoodFields) (domain.NeighborhoodFields, error) {
	f := fields.Normalize()
	if err := f.Validate(); err != nil {
		return f, err
	}
	if err := requireCity(ctx, r.q, f.CityID.ID); err != nil {
		return f, err
	}
	return f, nil
}

func (r *NeighborhoodRepository) mustExist(ctx context.Context, id domain.ID) error {
	ok, err := exists(ctx, r.q, tableNeighborhoods, id)
	if err != nil {
		return err
	}
	if !ok {
		r.log.Warn("not found", idField(id))
		return &domain.NotFoundError{Entity: domain.EntityNeighborhood, ID: id}
	}
	return nil
}
