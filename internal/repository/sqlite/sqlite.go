package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pms/internal/domain"
	"pms/internal/repository"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

const defaultBusyTimeout = 5 * time.Second

// Options configure Open
type Options struct {
	// Path of the database file, or MemoryPath
	Path string
	// BusyTimeout bounds how long SQLite waits on a locked database
	BusyTimeout time.Duration
	// Logger receives debug output for every unit of work; nil disables logging
	Logger *zap.Logger
}

// Store implements repository.Store using SQLite
type Store struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

var _ repository.Store = (*Store)(nil)

// Open creates or opens the database at opts.Path and ensures the schema exists
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("database path required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("store")

	if opts.Path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: writers are serialized and an in-memory database is
	// shared by every unit of work.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	store := &Store{db: db, path: opts.Path, log: log}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Debug("database opened", zap.String("path", opts.Path))
	return store, nil
}

// dsn builds a modernc DSN carrying the per-connection pragmas
func dsn(opts Options) string {
	timeout := opts.BusyTimeout
	if timeout <= 0 {
		timeout = defaultBusyTimeout
	}
	params := fmt.Sprintf("_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", timeout.Milliseconds())
	if opts.Path == MemoryPath {
		return MemoryPath + "?" + params
	}
	return opts.Path + "?" + params + "&_pragma=journal_mode(WAL)"
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Path returns the database path the store was opened with
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	s.log.Debug("database closed", zap.String("path", s.path))
	return s.db.Close()
}

// WithUnitOfWork runs fn inside one transaction.
//
// A nil return from fn commits. An error from fn rolls back and is returned
// unchanged. A failed commit is returned through the integrity translator.
// A panic in fn rolls back and propagates. The connection is released on
// every path.
func (s *Store) WithUnitOfWork(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	s.log.Debug("unit of work opened")

	// Rollback after a successful Commit is a no-op returning sql.ErrTxDone.
	defer func() {
		_ = tx.Rollback()
		s.log.Debug("unit of work closed")
	}()

	if err := fn(newUnitOfWork(tx, s.log)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			s.log.Warn("rollback failed", zap.Error(rbErr))
		}
		s.log.Debug("unit of work rolled back", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.log.Debug("commit failed", zap.Error(err))
		return translateIntegrity("", fmt.Errorf("failed to commit transaction: %w", err))
	}
	s.log.Debug("unit of work committed")
	return nil
}

// UnitOfWork binds the repositories to one transaction. It must not be used
// after WithUnitOfWork returns.
type UnitOfWork struct {
	tx  *sql.Tx
	log *zap.Logger
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

func newUnitOfWork(tx *sql.Tx, log *zap.Logger) *UnitOfWork {
	return &UnitOfWork{tx: tx, log: log}
}

// Cities returns the city repository for this unit of work
func (u *UnitOfWork) Cities() repository.Cities {
	return &CityRepository{q: u.tx, log: u.log.With(entityField(domain.EntityCity))}
}

// Neighborhoods returns the neighborhood repository for this unit of work
func (u *UnitOfWork) Neighborhoods() repository.Neighborhoods {
	return &NeighborhoodRepository{q: u.tx, log: u.log.With(entityField(domain.EntityNeighborhood))}
}

// Streets returns the street repository for this unit of work
func (u *UnitOfWork) Streets() repository.Streets {
	return &StreetRepository{q: u.tx, log: u.log.With(entityField(domain.EntityStreet))}
}

// PoliceStations returns the police station repository for this unit of work
func (u *UnitOfWork) PoliceStations() repository.PoliceStations {
	return &PoliceStationRepository{q: u.tx, log: u.log.With(entityField(domain.EntityPoliceStation))}
}
