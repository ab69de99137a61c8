package telemetry

import "codeberg.org/mutker/devstatd/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("telemetry_invalid_db_path")

	// Storage Errors
	ErrStorageInit  = errors.ErrorCode("telemetry_storage_init_failed")
	ErrStorageClose = errors.ErrorCode("telemetry_storage_close_failed")
	ErrSchemaInit   = errors.ErrorCode("telemetry_schema_init_failed")

	// Reporting Errors
	ErrSinkUnavailable = errors.ErrorCode("telemetry_sink_unavailable")
	ErrReportFailed    = errors.ErrorCode("telemetry_report_failed")
	ErrInvalidReading  = errors.ErrorCode("telemetry_invalid_reading")
	ErrSessionClosed   = errors.ErrorCode("telemetry_session_closed")
)
