package collector

import "codeberg.org/mutker/devstatd/internal/errors"

const (
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrMissingPath   = errors.ErrorCode("collector_missing_path")
	ErrParseFailed   = errors.ErrorCode("collector_parse_failed")
)
