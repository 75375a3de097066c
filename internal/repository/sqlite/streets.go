package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"pms/internal/domain"
	"pms/internal/repository"

	"go.uber.org/zap"
)

// StreetRepository implements repository.Streets
type StreetRepository struct {
	q   queryer
	log *zap.Logger
}

var _ repository.Streets = (*StreetRepository)(nil)

// List returns streets ordered by name, restricted to one neighborhood when
// neighborhoodID is valid
func (r *StreetRepository) List(ctx context.Context, neighborhoodID domain.NullID) ([]domain.Street, error) {
	query := `SELECT ` + streetColumns + ` FROM streets`
	var args []any
	if neighborhoodID.Valid {
		query += ` WHERE neighborhood_id = ?`
		args = append(args, int64(neighborhoodID.ID))
	}
	query += ` ORDER BY name, id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query streets: %w", err)
	}

	streets, err := collectRows(rows, scanStreet)
	if err != nil {
		return nil, fmt.Errorf("failed to scan streets: %w", err)
	}

	r.log.Debug("listed", zap.Stringer("neighborhood_id", neighborhoodID), zap.Int("count", len(streets)))
	return streets, nil
}

// Get retrieves a single street by ID
func (r *StreetRepository) Get(ctx context.Context, id domain.ID) (domain.Street, error) {
	st, err := scanStreet(r.q.QueryRowContext(ctx, `
		SELECT `+streetColumns+` FROM streets WHERE id = ?
	`, int64(id)))
	if err == sql.ErrNoRows {
		return domain.Street{}, &domain.NotFoundError{Entity: domain.EntityStreet, ID: id}
	}
	if err != nil {
		return domain.Street{}, fmt.Errorf("failed to query street: %w", err)
	}
	return st, nil
}

// Create inserts a new street under an existing neighborhood
func (r *StreetRepository) Create(ctx context.Context, fields domain.StreetFields) (domain.Street, error) {
	f, err := r.prepare(ctx, fields)
	if err != nil {
		return domain.Street{}, err
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO streets (name, neighborhood_id) VALUES (?, ?)
	`, f.Name, int64(f.NeighborhoodID.ID))
	if err != nil {
		return domain.Street{}, translateIntegrity(domain.EntityStreet, fmt.Errorf("failed to insert street: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Street{}, fmt.Errorf("failed to read street id: %w", err)
	}

	r.log.Debug("created", idField(domain.ID(id)), zap.String("name", f.Name))
	return domain.Street{ID: domain.ID(id), Name: f.Name, NeighborhoodID: f.NeighborhoodID.ID}, nil
}

// Update rewrites an existing street
func (r *StreetRepository) Update(ctx context.Context, id domain.ID, fields domain.StreetFields) (domain.Street, error) {
	if err := r.mustExist(ctx, id); err != nil {
		return domain.Street{}, err
	}

	f, err := r.prepare(ctx, fields)
	if err != nil {
		return domain.Street{}, err
	}

	_, err = r.q.ExecContext(ctx, `
		UPDATE streets
		SET name = ?, neighborhood_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, f.Name, int64(f.NeighborhoodID.ID), int64(id))
	if err != nil {
		return domain.Street{}, translateIntegrity(domain.EntityStreet, fmt.Errorf("failed to update street: %w", err))
	}

	r.log.Debug("updated", idField(id))
	return domain.Street{ID: id, Name: f.Name, NeighborhoodID: f.NeighborhoodID.ID}, nil
}

// Delete removes a street
func (r *StreetRepository) Delete(ctx context.Context, id domain.ID) error {
	if err := r.mustExist(ctx, id); err != nil {
		return err
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM streets WHERE id = ?`, int64(id)); err != nil {
		return fmt.Errorf("failed to delete street: %w", err)
	}
	r.log.Debug("deleted", idField(id))
	return nil
}

func (r *StreetRepository) prepare(ctx context.Context, fields domain.StreetFields) (domain.StreetFields, error) {
	f := fields.Normalize()
	if err := f.Validate(); err != nil {
		return f, err
	}
	ok, err := exists(ctx, r.q, tableNeighborhoods, f.NeighborhoodID.ID)
	if err != nil {
		return f, err
	}
	if !ok {
		return f, &domain.ValidationError{
			Field:  "neighborhood_id",
			Reason: fmt.Sprintf("neighborhood %d does not exist", f.NeighborhoodID.ID),
		}
	}
	return f, nil
}

func (r *StreetRepository) mustExist(ctx context.Context, id domain.ID) error {
	ok, err := exists(ctx, r.q, tableStreets, id)
	if err != nil {
		return err
	}
	if !ok {
		r.log.Warn("not found", idField(id))
		return &domain.NotFoundError{Entity: domain.EntityStreet, ID: id}
	}
	return nil
}
