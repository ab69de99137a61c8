// Package collector reads device-health counters from sysfs, parses them
// into typed readings and forwards them to the telemetry sink. Each metric
// family has its own collector with its own reporting policy; failures are
// isolated per family and never abort a round.
package collector

import (
	"codeberg.org/mutker/devstatd/internal/errors"
	"codeberg.org/mutker/devstatd/internal/logger"
	"codeberg.org/mutker/devstatd/internal/sysfs"
	"codeberg.org/mutker/devstatd/internal/telemetry"
)

const (
	// Codec state content meaning no failure was latched
	noFaultSentinel = "0"

	// Value written back to clear a consume-on-read counter
	slowIoResetValue = "0"

	ohmsToMilliOhms = 1000
)

type Collector struct {
	source sysfs.Source
	sink   telemetry.Sink
	cfg    Config
}

func New(source sysfs.Source, sink telemetry.Sink, cfg Config) (*Collector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.New().Wrap(ErrInvalidConfig, err)
	}

	return &Collector{
		source: source,
		sink:   sink,
		cfg:    cfg,
	}, nil
}

// CollectAll runs one collection round: acquire a sink session, run every
// collector in fixed order, release the session. If no session can be
// acquired the round is skipped until the next scheduled one.
func (c *Collector) CollectAll() {
	session, err := c.sink.Acquire()
	if err != nil {
		logger.Error().Err(err).Msg("Unable to acquire telemetry session")
		return
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to release telemetry session")
		}
	}()

	c.collectChargeCycles(session)
	c.collectCodecState(session)
	c.collectSlowIo(session)
	c.collectSpeakerImpedance(session)
}

// collectChargeCycles reports the battery charge cycle histogram. The file
// holds N space-delimited buckets, the nth counting charge events into the
// n/N% full bucket.
func (c *Collector) collectChargeCycles(session telemetry.Session) {
	contents, err := c.source.Read(c.cfg.CycleCountBinsPath)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to read battery charge cycles")
		return
	}

	reading := telemetry.ChargeCycles{Bins: parseCycleBins(contents)}
	if err := session.Report(reading); err != nil {
		logger.Error().Err(err).Msg("Failed to report charge cycles")
	}
}

// collectCodecState checks whether the audio codec latched a failure since
// the last round. The sentinel value "0" means nothing to report.
func (c *Collector) collectCodecState(session telemetry.Session) {
	contents, err := c.source.Read(c.cfg.CodecStatePath)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to read codec state")
		return
	}
	if contents == noFaultSentinel {
		return
	}

	reading := telemetry.HardwareFault{
		Component: telemetry.ComponentCodec,
		Code:      telemetry.FaultComplete,
	}
	if err := session.Report(reading); err != nil {
		logger.Error().Err(err).Msg("Failed to report codec fault")
	}
}

func (c *Collector) collectSlowIo(session telemetry.Session) {
	c.reportSlowIoFromFile(session, c.cfg.SlowioReadPath, telemetry.IoRead)
	c.reportSlowIoFromFile(session, c.cfg.SlowioWritePath, telemetry.IoWrite)
	c.reportSlowIoFromFile(session, c.cfg.SlowioUnmapPath, telemetry.IoUnmap)
	c.reportSlowIoFromFile(session, c.cfg.SlowioSyncPath, telemetry.IoSync)
}

// reportSlowIoFromFile reports one slow-IO counter when it is positive.
// The counter is consume-on-read: it is cleared after every successful
// read, whether or not anything was reported. A crash between read and
// clear can double-count on the next round; this matches the counter's
// best-effort contract.
func (c *Collector) reportSlowIoFromFile(session telemetry.Session, path string, op telemetry.IoOperation) {
	contents, err := c.source.Read(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Unable to read slow IO counter")
		return
	}

	count, err := parseLeadingInt(contents)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Str("raw", contents).Msg("Unable to parse slow IO counter")
	} else if count > 0 {
		if err := session.Report(telemetry.SlowIo{Operation: op, Count: count}); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("Failed to report slow IO")
		}
	}

	// Clear the counter so the next round only sees new events
	if err := c.source.Write(path, slowIoResetValue); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Unable to clear slow IO counter")
	}
}

// collectSpeakerImpedance reports the last-detected impedance of the left
// and right speakers as two channel readings in milliohms. Both values
// must parse or neither channel is reported.
func (c *Collector) collectSpeakerImpedance(session telemetry.Session) {
	contents, err := c.source.Read(c.cfg.SpeakerImpedancePath)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to read speaker impedance")
		return
	}

	left, right, err := parseFloatPair(contents)
	if err != nil {
		logger.Error().Err(err).Str("raw", contents).Msg("Unable to parse speaker impedance")
		return
	}

	for channel, ohms := range []float64{left, right} {
		reading := telemetry.SpeakerImpedance{
			Channel:   channel,
			MilliOhms: int(ohms * ohmsToMilliOhms),
		}
		if err := session.Report(reading); err != nil {
			logger.Error().Err(err).Int("channel", channel).Msg("Failed to report speaker impedance")
		}
	}
}
