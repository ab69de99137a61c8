package scheduler

import "time"

// Ticker delivers a tick every fixed interval of elapsed boot time,
// including time the system spends suspended, after a configurable
// initial delay.
type Ticker interface {
	// Start arms the timer: first tick after initial, then one per interval
	Start(initial, interval time.Duration) error

	// Wait blocks until the next tick. Benign signal interruptions are
	// retried transparently; any returned error is unrecoverable.
	Wait() error

	Close() error
}

// Runner executes one collection round.
type Runner interface {
	CollectAll()
}
