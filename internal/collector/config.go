package collector

import "codeberg.org/mutker/devstatd/internal/errors"

// Config holds the sysfs nodes each collector family reads.
type Config struct {
	CycleCountBinsPath   string
	CodecStatePath       string
	SlowioReadPath       string
	SlowioWritePath      string
	SlowioUnmapPath      string
	SlowioSyncPath       string
	SpeakerImpedancePath string
}

func (c Config) Validate() error {
	errFactory := errors.New()

	paths := map[string]string{
		"cycle_count_bins":  c.CycleCountBinsPath,
		"codec_state":       c.CodecStatePath,
		"slowio_read":       c.SlowioReadPath,
		"slowio_write":      c.SlowioWritePath,
		"slowio_unmap":      c.SlowioUnmapPath,
		"slowio_sync":       c.SlowioSyncPath,
		"speaker_impedance": c.SpeakerImpedancePath,
	}
	for name, path := range paths {
		if path == "" {
			return errFactory.WithData(ErrMissingPath, name)
		}
	}

	return nil
}
