package telemetry

// IoOperation identifies which storage operation a slow-IO counter tracks.
type IoOperation string

const (
	IoRead  IoOperation = "read"
	IoWrite IoOperation = "write"
	IoUnmap IoOperation = "unmap"
	IoSync  IoOperation = "sync"
)

// Component identifies the hardware block a fault reading refers to.
type Component string

const (
	ComponentCodec Component = "codec"
)

// Fault error codes reported alongside a component.
const (
	FaultComplete = 0
)

// Reading is one typed metric observation. Readings are immutable values
// constructed by a collector and handed to a Session; they are never
// retained across a round.
type Reading interface {
	reading()
}

// ChargeCycles carries the battery charge cycle histogram as an ordered,
// comma-separated list of bin counts.
type ChargeCycles struct {
	Bins string
}

// HardwareFault reports a failed hardware block.
type HardwareFault struct {
	Component Component
	Code      int
}

// SlowIo reports the number of slow storage operations of one kind since
// the counter was last cleared.
type SlowIo struct {
	Operation IoOperation
	Count     int
}

// SpeakerImpedance reports the last-detected impedance of one speaker
// channel in milliohms.
type SpeakerImpedance struct {
	Channel   int
	MilliOhms int
}

func (ChargeCycles) reading()     {}
func (HardwareFault) reading()    {}
func (SlowIo) reading()           {}
func (SpeakerImpedance) reading() {}

// Sink hands out reporting sessions, one collection round at a time.
type Sink interface {
	Acquire() (Session, error)
}

// Session is one round's connection to the sink. Report is best-effort;
// Close must be called exactly once, on every exit path of the round.
type Session interface {
	Report(r Reading) error
	Close() error
}

// Repository is a Sink with a process lifetime.
type Repository interface {
	Sink
	Close() error
}
