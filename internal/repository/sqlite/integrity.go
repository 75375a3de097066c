package sqlite

import (
	"errors"
	"strings"

	"pms/internal/domain"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// translateIntegrity turns a uniqueness violation into *domain.DuplicateError
// and drops the engine's message. Any other error, including nil, is
// returned as is.
func translateIntegrity(entity domain.Entity, err error) error {
	if isUniqueViolation(err) {
		return &domain.DuplicateError{Entity: entity}
	}
	return err
}

// isUniqueViolation reports whether err carries an SQLite UNIQUE or
// PRIMARY KEY constraint failure
func isUniqueViolation(err error) bool {
	var serr *moderncsqlite.Error
	if !errors.As(err, &serr) {
		return false
	}

	code := serr.Code()
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return false
	}
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// Extended codes disabled on this connection
		return strings.Contains(serr.Error(), "UNIQUE constraint failed")
	}
	return false
}
