// Package sysfs provides read and write access to the monitored sysfs
// nodes. It is the only package that touches the filesystem; everything
// above it consumes the Source interface.
package sysfs

import (
	"os"

	"codeberg.org/mutker/devstatd/internal/errors"
)

const defaultFilePerm = 0o644

// Source abstracts the monitored pseudo-files. Read returns the full
// textual contents of a node, never a partial read. Write overwrites a
// node's contents and is used to clear consume-on-read counters.
type Source interface {
	Read(path string) (string, error)
	Write(path, contents string) error
}

type fileSource struct{}

// NewSource returns a Source backed by the operating system.
func NewSource() Source {
	return &fileSource{}
}

func (*fileSource) Read(path string) (string, error) {
	errFactory := errors.New()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errFactory.Wrap(ErrReadFailed, err).WithData(path)
	}

	return string(data), nil
}

func (*fileSource) Write(path, contents string) error {
	errFactory := errors.New()

	if err := os.WriteFile(path, []byte(contents), defaultFilePerm); err != nil {
		return errFactory.Wrap(ErrWriteFailed, err).WithData(path)
	}

	return nil
}
