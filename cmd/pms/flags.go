package main

import (
	"fmt"

	"pms/internal/domain"
)

// parseID parses a positional or flag identity for field
func parseID(field, s string) (domain.ID, error) {
	id, err := domain.ParseID(s)
	if err != nil {
		return 0, &domain.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not an identity", s)}
	}
	return id, nil
}

// parseRef parses an optional reference flag; empty means absent
func parseRef(field, s string) (domain.NullID, error) {
	if s == "" {
		return domain.NoID, nil
	}
	id, err := parseID(field, s)
	if err != nil {
		return domain.NoID, err
	}
	return domain.SomeID(id), nil
}
