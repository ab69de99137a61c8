package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/devstatd/internal/collector"
	"codeberg.org/mutker/devstatd/internal/config"
	"codeberg.org/mutker/devstatd/internal/logger"
	"codeberg.org/mutker/devstatd/internal/pid"
	"codeberg.org/mutker/devstatd/internal/scheduler"
	"codeberg.org/mutker/devstatd/internal/sysfs"
	"codeberg.org/mutker/devstatd/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, logger.IsService()); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug().Msg("Config loaded")

	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write PID file")
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Error().Err(err).Msg("failed to remove PID file")
		}
	}()

	sink, err := telemetry.NewRepository(telemetry.Config{
		DBPath:  cfg.Database,
		Enabled: cfg.Telemetry,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telemetry sink")
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close telemetry sink")
		}
	}()

	coll, err := collector.New(sysfs.NewSource(), sink, collector.Config{
		CycleCountBinsPath:   cfg.Paths.CycleCountBins,
		CodecStatePath:       cfg.Paths.CodecState,
		SlowioReadPath:       cfg.Paths.SlowioRead,
		SlowioWritePath:      cfg.Paths.SlowioWrite,
		SlowioUnmapPath:      cfg.Paths.SlowioUnmap,
		SlowioSyncPath:       cfg.Paths.SlowioSync,
		SpeakerImpedancePath: cfg.Paths.SpeakerImpedance,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize collectors")
	}

	sched := scheduler.New(coll, scheduler.Config{
		Interval:     time.Duration(cfg.Interval) * time.Second,
		StartupDelay: time.Duration(cfg.StartupDelay) * time.Second,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sched.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}
	logger.Info().Msg("Exiting...")
}
