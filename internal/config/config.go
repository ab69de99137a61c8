package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/devstatd/internal/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel     = "info"
	defaultInterval     = 86400 // seconds; one round per day
	defaultStartupDelay = 30    // seconds; lets device drivers finish loading
	defaultDatabase     = "/var/lib/devstatd/readings.db"

	configName = "devstatd"
	configType = "toml"
	configPath = "/etc"
	envPrefix  = "DEVSTATD"
)

// Config holds the daemon configuration. All values are immutable after
// loading.
type Config struct {
	Interval     int    `mapstructure:"interval"`      // seconds between collection rounds
	StartupDelay int    `mapstructure:"startup_delay"` // seconds before the first round
	LogLevel     string `mapstructure:"log_level"`
	Telemetry    bool   `mapstructure:"telemetry"`
	Database     string `mapstructure:"database"`
	Paths        Paths  `mapstructure:"paths"`
}

// Paths holds the sysfs nodes monitored by the collectors. The defaults
// match the device this daemon ships on; overriding them does not change
// collection behavior.
type Paths struct {
	CycleCountBins   string `mapstructure:"cycle_count_bins"`
	CodecState       string `mapstructure:"codec_state"`
	SlowioRead       string `mapstructure:"slowio_read"`
	SlowioWrite      string `mapstructure:"slowio_write"`
	SlowioUnmap      string `mapstructure:"slowio_unmap"`
	SlowioSync       string `mapstructure:"slowio_sync"`
	SpeakerImpedance string `mapstructure:"speaker_impedance"`
}

// DefaultPaths returns the sysfs nodes of the shipped device.
func DefaultPaths() Paths {
	return Paths{
		CycleCountBins:   "/sys/class/power_supply/maxfg/cycle_counts_bins",
		CodecState:       "/sys/devices/platform/soc/171c0000.slim/tavil-slim-pgd/tavil_codec/codec_state",
		SlowioRead:       "/sys/devices/platform/soc/1d84000.ufshc/slowio_read_cnt",
		SlowioWrite:      "/sys/devices/platform/soc/1d84000.ufshc/slowio_write_cnt",
		SlowioUnmap:      "/sys/devices/platform/soc/1d84000.ufshc/slowio_unmap_cnt",
		SlowioSync:       "/sys/devices/platform/soc/1d84000.ufshc/slowio_sync_cnt",
		SpeakerImpedance: "/sys/class/misc/msm_cirrus_playback/resistance_left_right",
	}
}

// Load reads configuration from the config file, environment and command
// line flags, in increasing order of precedence.
func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	setDefaults(v)

	fs := pflag.NewFlagSet("devstatd", pflag.ContinueOnError)
	fs.Int("interval", defaultInterval, "Seconds between collection rounds")
	fs.Int("startup-delay", defaultStartupDelay, "Seconds to wait before the first round")
	fs.String("log-level", DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	fs.Bool("telemetry", true, "Enable the telemetry store")
	fs.String("database", defaultDatabase, "Path to the telemetry database")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	bindings := map[string]string{
		"interval":      "interval",
		"startup_delay": "startup-delay",
		"log_level":     "log-level",
		"telemetry":     "telemetry",
		"database":      "database",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	// An explicit config file wins over the /etc default
	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(configPath)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the loaded configuration for values the daemon cannot
// run with.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}
	if c.StartupDelay < 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.StartupDelay)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if c.Telemetry && c.Database == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "telemetry enabled without a database path")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("interval", defaultInterval)
	v.SetDefault("startup_delay", defaultStartupDelay)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("telemetry", true)
	v.SetDefault("database", defaultDatabase)

	paths := DefaultPaths()
	v.SetDefault("paths.cycle_count_bins", paths.CycleCountBins)
	v.SetDefault("paths.codec_state", paths.CodecState)
	v.SetDefault("paths.slowio_read", paths.SlowioRead)
	v.SetDefault("paths.slowio_write", paths.SlowioWrite)
	v.SetDefault("paths.slowio_unmap", paths.SlowioUnmap)
	v.SetDefault("paths.slowio_sync", paths.SlowioSync)
	v.SetDefault("paths.speaker_impedance", paths.SpeakerImpedance)
}
