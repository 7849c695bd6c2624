package main

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/photonqueue/opm/pkg/adc"
	"github.com/photonqueue/opm/pkg/config"
	"github.com/photonqueue/opm/pkg/display"
)

// initHost loads the periph host drivers. The display is always real
// hardware here, so this runs even when the voltage sources are mocked.
func initHost() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize host: %w", err)
	}
	return nil
}

// openSources builds the two per-channel voltage sources from the
// configured backend.
func openSources(cfg *config.Config) (ch1, ch2 adc.VoltageSource, err error) {
	switch cfg.Source {
	case config.SourceADS1115:
		bus, err := i2creg.Open(cfg.ADC.Bus)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open I2C bus: %w", err)
		}
		ch1, err := adc.NewADS1115(bus, cfg.ADC.Address1, &cfg.ADC)
		if err != nil {
			return nil, nil, err
		}
		ch2, err := adc.NewADS1115(bus, cfg.ADC.Address2, &cfg.ADC)
		if err != nil {
			return nil, nil, err
		}
		return ch1, ch2, nil

	case config.SourceSerial:
		frontend := adc.NewSerial(&cfg.Serial)
		if err := frontend.Connect(); err != nil {
			return nil, nil, err
		}
		return frontend.Channel(adc.Channel1), frontend.Channel(adc.Channel2), nil

	case config.SourceMock:
		return adc.NewMock(&cfg.Mock, &cfg.TIA, adc.Channel1),
			adc.NewMock(&cfg.Mock, &cfg.TIA, adc.Channel2), nil

	default:
		return nil, nil, fmt.Errorf("unknown voltage source %q", cfg.Source)
	}
}

// openDisplay opens the SPI port and control pins and initializes the
// panel.
func openDisplay(cfg *config.Config) (*display.ST7789, error) {
	port, err := spireg.Open(cfg.Display.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port: %w", err)
	}

	dc, err := pinByName(cfg.Display.DCPin)
	if err != nil {
		return nil, err
	}
	rst, err := pinByName(cfg.Display.ResetPin)
	if err != nil {
		return nil, err
	}
	backlight, err := pinByName(cfg.Display.Backlight)
	if err != nil {
		return nil, err
	}

	panel, err := display.NewST7789(port, dc, rst, backlight, display.ST7789Opts{
		Width:    cfg.Display.Width,
		Height:   cfg.Display.Height,
		Rotation: cfg.Display.Rotation,
		SpeedHz:  cfg.Display.SPISpeedHz,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	return panel, nil
}

func pinByName(name string) (gpio.PinOut, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("failed to find GPIO pin %q", name)
	}
	return pin, nil
}
