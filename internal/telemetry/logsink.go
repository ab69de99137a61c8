package telemetry

import "codeberg.org/mutker/devstatd/internal/logger"

// logRepository is the sink used when the telemetry store is disabled.
// Readings are written to the log at info level and otherwise discarded.
type logRepository struct{}

func (*logRepository) Acquire() (Session, error) {
	return &logSession{}, nil
}

func (*logRepository) Close() error {
	return nil
}

type logSession struct{}

func (*logSession) Report(r Reading) error {
	switch v := r.(type) {
	case ChargeCycles:
		logger.Info().Str("bins", v.Bins).Msg("Battery charge cycles")
	case HardwareFault:
		logger.Info().
			Str("component", string(v.Component)).
			Int("code", v.Code).
			Msg("Hardware fault")
	case SlowIo:
		logger.Info().
			Str("operation", string(v.Operation)).
			Int("count", v.Count).
			Msg("Slow IO operations")
	case SpeakerImpedance:
		logger.Info().
			Int("channel", v.Channel).
			Int("milliohms", v.MilliOhms).
			Msg("Speaker impedance")
	}

	return nil
}

func (*logSession) Close() error {
	return nil
}
