package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"github.com/sirupsen/logrus"

	"github.com/photonqueue/opm/pkg/adc"
	"github.com/photonqueue/opm/pkg/config"
	"github.com/photonqueue/opm/pkg/display"
	"github.com/photonqueue/opm/pkg/meter"
	"github.com/photonqueue/opm/pkg/render"
)

// opmsim runs the full meter pipeline against mock voltage sources and a
// window standing in for the LCD, so the layout and the calibration flow
// can be exercised without hardware.
func main() {
	var (
		configFlag     = flag.String("config", "config.yaml", "Configuration file path")
		calSamplesFlag = flag.Int("cal-samples", 25, "Calibration sample count override")
		calDelayFlag   = flag.Duration("cal-delay", 20*time.Millisecond, "Calibration inter-sample delay override")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Shorten calibration so the simulator reaches the live screen quickly.
	cfg.Calibration.Samples = *calSamplesFlag
	cfg.Calibration.Delay = *calDelayFlag

	application := app.NewWithID("com.photonqueue.opmsim")
	window := application.NewWindow("PhotonQueue Simulator")

	surface := display.NewWindow(cfg.Display.Width, cfg.Display.Height)
	window.SetContent(container.NewCenter(surface.CanvasObject()))
	window.Resize(fyne.NewSize(float32(cfg.Display.Width)+40, float32(cfg.Display.Height)+40))
	window.CenterOnScreen()

	ch1 := adc.NewMock(&cfg.Mock, &cfg.TIA, adc.Channel1)
	ch2 := adc.NewMock(&cfg.Mock, &cfg.TIA, adc.Channel2)

	face := render.LoadFace(cfg.Display.FontPath, cfg.Display.FontSize)
	smallFace := render.LoadFace(cfg.Display.FontPath, cfg.Display.FontSize-10)
	renderer := render.New(&cfg.Display, surface, face, smallFace)

	ctx, cancel := context.WithCancel(context.Background())
	window.SetOnClosed(cancel)

	go func() {
		err := meter.New(cfg, ch1, ch2, renderer).Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logrus.Errorf("Meter stopped: %v", err)
			fyne.Do(application.Quit)
		}
	}()

	window.ShowAndRun()
}
