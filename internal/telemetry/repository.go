package telemetry

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/devstatd/internal/errors"
	"codeberg.org/mutker/devstatd/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type repository struct {
	db *sql.DB
}

// NewRepository opens the local reading store. When telemetry is disabled
// it returns a sink that writes readings to the log instead.
func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		logger.Debug().Msg("Telemetry store disabled, readings go to the log")
		return &logRepository{}, nil
	}

	logger.Debug().Msgf("Initializing telemetry repository at: %s", cfg.DBPath)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	logger.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Telemetry repository initialized")

	return &repository{db: db}, nil
}

// Acquire begins one round's reporting session. The session holds a
// transaction; readings become durable when the session is closed.
func (r *repository) Acquire() (Session, error) {
	errFactory := errors.New()

	tx, err := r.db.Begin()
	if err != nil {
		return nil, errFactory.Wrap(ErrSinkUnavailable, err)
	}

	stmt, err := tx.Prepare(insertReadingSQL)
	if err != nil {
		if err := tx.Rollback(); err != nil {
			logger.Debug().Err(err).Msg("Failed to rollback session transaction")
		}
		return nil, errFactory.Wrap(ErrSinkUnavailable, err)
	}

	return &dbSession{tx: tx, stmt: stmt}, nil
}

func (r *repository) Close() error {
	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		logger.Debug().Err(err).Msg("Failed to checkpoint WAL")
	}

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}

	return nil
}

type dbSession struct {
	tx     *sql.Tx
	stmt   *sql.Stmt
	closed bool
}

func (s *dbSession) Report(r Reading) error {
	errFactory := errors.New()

	if s.closed {
		return errFactory.New(ErrSessionClosed)
	}

	now := time.Now().Unix()

	var err error
	switch v := r.(type) {
	case ChargeCycles:
		_, err = s.stmt.Exec(now, "charge_cycles", nil, nil, nil, nil, v.Bins)
	case HardwareFault:
		_, err = s.stmt.Exec(now, "hardware_fault", string(v.Component), nil, nil, v.Code, nil)
	case SlowIo:
		_, err = s.stmt.Exec(now, "slow_io", nil, string(v.Operation), nil, v.Count, nil)
	case SpeakerImpedance:
		_, err = s.stmt.Exec(now, "speaker_impedance", nil, nil, v.Channel, v.MilliOhms, nil)
	default:
		return errFactory.New(ErrInvalidReading)
	}

	if err != nil {
		return errFactory.Wrap(ErrReportFailed, err)
	}

	return nil
}

func (s *dbSession) Close() error {
	errFactory := errors.New()

	if s.closed {
		return errFactory.New(ErrSessionClosed)
	}
	s.closed = true

	if err := s.stmt.Close(); err != nil {
		logger.Debug().Err(err).Msg("Failed to close insert statement")
	}

	if err := s.tx.Commit(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}

	return nil
}
