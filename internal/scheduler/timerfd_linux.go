package scheduler

import (
	"time"

	"codeberg.org/mutker/devstatd/internal/errors"
	"golang.org/x/sys/unix"
)

// bootTimeTicker is a Ticker over a timerfd measured against
// CLOCK_BOOTTIME, so the collection period keeps counting across
// suspend/resume cycles.
type bootTimeTicker struct {
	fd int
}

// NewBootTimeTicker creates a suspend-tolerant periodic ticker.
func NewBootTimeTicker() (Ticker, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_BOOTTIME, 0)
	if err != nil {
		return nil, errors.New().Wrap(ErrTimerCreate, err)
	}

	return &bootTimeTicker{fd: fd}, nil
}

func (t *bootTimeTicker) Start(initial, interval time.Duration) error {
	spec := unix.ItimerSpec{
		Interval: unix.NsecToTimespec(interval.Nanoseconds()),
		Value:    unix.NsecToTimespec(initial.Nanoseconds()),
	}
	if err := unix.TimerfdSettime(t.fd, 0, &spec, nil); err != nil {
		return errors.New().Wrap(ErrTimerArm, err)
	}

	return nil
}

func (t *bootTimeTicker) Wait() error {
	// Expiration count, unused; one Wait is one tick regardless of how
	// many periods elapsed while blocked
	buf := make([]byte, 8)
	for {
		_, err := unix.Read(t.fd, buf)
		if err == nil {
			return nil
		}
		if errors.Is(err, unix.EINTR) {
			continue
		}

		return errors.New().Wrap(ErrTimerWait, err)
	}
}

func (t *bootTimeTicker) Close() error {
	if err := unix.Close(t.fd); err != nil {
		return errors.New().Wrap(errors.ErrShutdownFailed, err)
	}

	return nil
}
