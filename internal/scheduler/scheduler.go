// Package scheduler drives the fixed-period collection loop: one round
// shortly after startup, then one per interval forever. Only timer
// failures terminate the loop; everything the rounds do is isolated
// below it.
package scheduler

import (
	"context"
	"time"

	"codeberg.org/mutker/devstatd/internal/errors"
	"codeberg.org/mutker/devstatd/internal/logger"
)

type Config struct {
	// Interval between collection rounds
	Interval time.Duration

	// StartupDelay before the first round, letting dependent hardware
	// drivers finish initializing
	StartupDelay time.Duration
}

type Scheduler struct {
	runner    Runner
	cfg       Config
	newTicker func() (Ticker, error)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTicker overrides how the periodic ticker is created.
func WithTicker(newTicker func() (Ticker, error)) Option {
	return func(s *Scheduler) {
		s.newTicker = newTicker
	}
}

func New(runner Runner, cfg Config, opts ...Option) *Scheduler {
	s := &Scheduler{
		runner:    runner,
		cfg:       cfg,
		newTicker: NewBootTimeTicker,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes the collection loop until the context is canceled or the
// timer subsystem fails. Timer failures are logged and returned; once Run
// returns, no further collection happens.
func (s *Scheduler) Run(ctx context.Context) error {
	errFactory := errors.New()

	if s.cfg.Interval <= 0 {
		return errFactory.WithData(ErrInvalidInterval, s.cfg.Interval)
	}

	ticker, err := s.newTicker()
	if err != nil {
		wrapped := errFactory.Wrap(ErrTimerCreate, err)
		logger.ErrorWithCode(wrapped).Msg("Unable to create collection timer")
		return wrapped
	}
	defer ticker.Close()

	select {
	case <-ctx.Done():
		return nil
	case <-time.After(s.cfg.StartupDelay):
	}

	// First round on startup
	s.runner.CollectAll()

	if err := ticker.Start(s.cfg.Interval, s.cfg.Interval); err != nil {
		wrapped := errFactory.Wrap(ErrTimerArm, err)
		logger.ErrorWithCode(wrapped).Msg("Unable to arm collection timer")
		return wrapped
	}

	logger.Info().
		Dur("interval", s.cfg.Interval).
		Msg("Collection timer armed")

	ticks := make(chan struct{})
	waitErrs := make(chan error, 1)
	go func() {
		for {
			if err := ticker.Wait(); err != nil {
				waitErrs <- err
				return
			}
			select {
			case ticks <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-waitErrs:
			wrapped := errFactory.Wrap(ErrTimerWait, err)
			logger.ErrorWithCode(wrapped).Msg("Collection timer failed, no further rounds will run")
			return wrapped
		case <-ticks:
			s.runner.CollectAll()
		}
	}
}
