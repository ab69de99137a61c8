package telemetry

import (
	"database/sql"

	"codeberg.org/mutker/devstatd/internal/errors"
	"codeberg.org/mutker/devstatd/internal/logger"
)

const (
	SchemaVersion = 1

	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS readings (
	       id           INTEGER PRIMARY KEY AUTOINCREMENT,
	       collected_at INTEGER NOT NULL,
	       kind         TEXT NOT NULL,
	       component    TEXT,
	       operation    TEXT,
	       channel      INTEGER,
	       value        INTEGER,
	       detail       TEXT
	   );`

	insertReadingSQL = `
    INSERT INTO readings (
        collected_at, kind, component, operation, channel, value, detail
    ) VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// initSchema creates the reading tables and records the schema version.
func initSchema(db *sql.DB) error {
	errFactory := errors.New()

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInit, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				logger.Debug().Err(err).Msg("Failed to rollback schema transaction")
			}
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.Wrap(ErrSchemaInit, err)
	}

	if _, err := tx.Exec(`
        INSERT OR IGNORE INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.WithData(ErrSchemaInit, struct {
			Phase string
			Error string
		}{
			Phase: "record_version",
			Error: err.Error(),
		})
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInit, err)
	}
	committed = true

	return nil
}
