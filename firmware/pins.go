//go:build tinygo

package main

import (
	"machine"
	"time"
)

// Wiring for the Seeed XIAO SAMD21 frontend.
const (
	PIN_CH1 = machine.A0 // Photodiode channel 1 TIA output
	PIN_CH2 = machine.A1 // Photodiode channel 2 TIA output

	// Hardware resolution; Get() upscales readings to 16 bits.
	ADC_RESOLUTION = 12

	SAMPLE_INTERVAL = time.Millisecond
	REPORT_INTERVAL = 10 * time.Millisecond
)
