package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/photonqueue/opm/pkg/config"
	"github.com/photonqueue/opm/pkg/meter"
	"github.com/photonqueue/opm/pkg/render"
)

var (
	logLevel   = "info"
	configPath = "config.yaml"
	useMock    = false
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.Kitchen,
	})
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "opm",
		Short: "Dual-channel optical power monitor",
		Long: "opm samples two photodiode channels through a transimpedance\n" +
			"amplifier model, calibrates a zero-power baseline, and renders\n" +
			"live power readings and gauges on an ST7789 LCD.",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", configPath, "Configuration file path")
	flags.StringVar(&logLevel, "log-level", logLevel, "Log level (debug, info, warn, error)")
	flags.BoolVar(&useMock, "mock", useMock, "Use mocked voltage sources instead of the ADC bus")

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	if err := setupLogger(); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if useMock {
		cfg.Source = config.SourceMock
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := initHost(); err != nil {
		return err
	}

	ch1, ch2, err := openSources(cfg)
	if err != nil {
		return err
	}
	defer ch1.Close()
	defer ch2.Close()

	panel, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := panel.Halt(); err != nil {
			logrus.Errorf("Failed to halt display: %v", err)
		}
	}()

	face := render.LoadFace(cfg.Display.FontPath, cfg.Display.FontSize)
	smallFace := render.LoadFace(cfg.Display.FontPath, cfg.Display.FontSize-10)
	renderer := render.New(&cfg.Display, panel, face, smallFace)

	logrus.Infof("Starting meter, source=%s display=%dx%d", cfg.Source, cfg.Display.Width, cfg.Display.Height)

	err = meter.New(cfg, ch1, ch2, renderer).Run(ctx)
	if errors.Is(err, context.Canceled) {
		logrus.Info("Shutting down")
		return nil
	}
	return err
}
