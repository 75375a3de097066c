package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"pms/internal/domain"

	"go.uber.org/zap"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull converts an absent (empty) string to NULL
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullToID converts a nullable integer column to domain.NullID
func nullToID(ni sql.NullInt64) domain.NullID {
	if !ni.Valid {
		return domain.NoID
	}
	return domain.SomeID(domain.ID(ni.Int64))
}

// idToNull converts domain.NullID to a nullable integer argument
func idToNull(id domain.NullID) sql.NullInt64 {
	if !id.Valid {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(id.ID), Valid: true}
}

// ============================================================================
// Query Helpers
// ============================================================================

// queryer is the subset of *sql.Tx the repositories use
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// collectRows scans every row and closes rows. The result is never nil so an
// unmatched filter yields an empty slice.
func collectRows[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return items, nil
}

// exists reports whether table has a row with the given id. table is always
// a package constant.
func exists(ctx context.Context, q queryer, table string, id domain.ID) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, int64(id)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s %d: %w", table, id, err)
	}
	return true, nil
}

// affected returns RowsAffected, treating a driver that cannot report it as zero
func affected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

func idField(id domain.ID) zap.Field {
	return zap.Int64("id", int64(id))
}

func entityField(e domain.Entity) zap.Field {
	return zap.String("entity", string(e))
}

// ============================================================================
// Schema Evolution Guide
// ============================================================================
//
// To add a column to one of the entity tables:
// 1. Add the field to the matching *Row struct below
// 2. APPEND it to scanArgs() and to the *Columns constant (same order)
// 3. Map it in toDomain()
// 4. Add it to the CREATE TABLE in schema.go
// 5. Update the INSERT/UPDATE statements of the repository
//
// CRITICAL: Column order must match between the *Columns constant and
// scanArgs().

// ============================================================================
// City Row Scanner
// ============================================================================

// cityRow holds all columns from a city query for scanning
type cityRow struct {
	ID      int64
	Name    string
	State   sql.NullString
	Country sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match cityColumns order exactly: id, name, state, country
func (r *cityRow) scanArgs() []any {
	return []any{&r.ID, &r.Name, &r.State, &r.Country}
}

// toDomain converts the scanned row to a domain.City
func (r *cityRow) toDomain() domain.City {
	return domain.City{
		ID:      domain.ID(r.ID),
		Name:    r.Name,
		State:   nullToString(r.State),
		Country: nullToString(r.Country),
	}
}

const cityColumns = `id, name, state, country`

func scanCity(s scanner) (domain.City, error) {
	var row cityRow
	if err := s.Scan(row.scanArgs()...); err != nil {
		return domain.City{}, err
	}
	return row.toDomain(), nil
}

// ============================================================================
// Neighborhood Row Scanner
// ============================================================================

// neighborhoodRow holds all columns from a neighborhood query for scanning
type neighborhoodRow struct {
	ID     int64
	Name   string
	CityID int64
}

// scanArgs MUST match neighborhoodColumns order exactly: id, name, city_id
func (r *neighborhoodRow) scanArgs() []any {
	return []any{&r.ID, &r.Name, &r.CityID}
}

func (r *neighborhoodRow) toDomain() domain.Neighborhood {
	return domain.Neighborhood{
		ID:     domain.ID(r.ID),
		Name:   r.Name,
		CityID: domain.ID(r.CityID),
	}
}

const neighborhoodColumns = `id, name, city_id`

func scanNeighborhood(s scanner) (domain.Neighborhood, error) {
	var row neighborhoodRow
	if err := s.Scan(row.scanArgs()...); err != nil {
		return domain.Neighborhood{}, err
	}
	return row.toDomain(), nil
}

// ============================================================================
// Street Row Scanner
// ============================================================================

// streetRow holds all columns from a street query for scanning
type streetRow struct {
	ID             int64
	Name           string
	NeighborhoodID int64
}

// scanArgs MUST match streetColumns order exactly: id, name, neighborhood_id
func (r *streetRow) scanArgs() []any {
	return []any{&r.ID, &r.Name, &r.NeighborhoodID}
}

func (r *streetRow) toDomain() domain.Street {
	return domain.Street{
		ID:             domain.ID(r.ID),
		Name:           r.Name,
		NeighborhoodID: domain.ID(r.NeighborhoodID),
	}
}

const streetColumns = `id, name, neighborhood_id`

func scanStreet(s scanner) (domain.Street, error) {
	var row streetRow
	if err := s.Scan(row.scanArgs()...); err != nil {
		return domain.Street{}, err
	}
	return row.toDomain(), nil
}

// ============================================================================
// Police Station Row Scanner
// ============================================================================

// policeStationRow holds all columns from a police station query for scanning
type policeStationRow struct {
	ID      int64
	Name    string
	CityID  sql.NullInt64
	Address sql.NullString
}

// scanArgs MUST match policeStationColumns order exactly:
// id, name, city_id, address
func (r *policeStationRow) scanArgs() []any {
	return []any{&r.ID, &r.Name, &r.CityID, &r.Address}
}

func (r *policeStationRow) toDomain() domain.PoliceStation {
	return domain.PoliceStation{
		ID:      domain.ID(r.ID),
		Name:    r.Name,
		CityID:  nullToID(r.CityID),
		Address: nullToString(r.Address),
	}
}

const policeStationColumns = `id, name, city_id, address`

func scanPoliceStation(s scanner) (domain.PoliceStation, error) {
	var row policeStationRow
	if err := s.Scan(row.scanArgs()...); err != nil {
		return domain.PoliceStation{}, err
	}
	return row.toDomain(), nil
}
