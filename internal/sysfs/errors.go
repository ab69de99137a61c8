package sysfs

import "codeberg.org/mutker/devstatd/internal/errors"

const (
	ErrReadFailed  = errors.ErrorCode("sysfs_read_failed")
	ErrWriteFailed = errors.ErrorCode("sysfs_write_failed")
)
