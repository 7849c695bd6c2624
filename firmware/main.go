//go:build tinygo

//go:generate tinygo flash -target=xiao

package main

import (
	"machine"
	"strconv"
	"time"
)

// Streams both photodiode channels over UART as "unix_micros,ch1,ch2"
// lines for the serial voltage source. Readings are averaged between
// reports to knock down ADC noise.

var (
	adcCh1 machine.ADC
	adcCh2 machine.ADC
	uart   = machine.UART0

	sum1, sum2 uint32
	count      int
)

func main() {
	machine.InitADC()

	PIN_CH1.Configure(machine.PinConfig{Mode: machine.PinInput})
	PIN_CH2.Configure(machine.PinConfig{Mode: machine.PinInput})

	adcCh1 = machine.ADC{Pin: PIN_CH1}
	adcCh2 = machine.ADC{Pin: PIN_CH2}
	adcCh1.Configure(machine.ADCConfig{Resolution: ADC_RESOLUTION})
	adcCh2.Configure(machine.ADCConfig{Resolution: ADC_RESOLUTION})

	lastReport := time.Now()

	for {
		sum1 += uint32(adcCh1.Get())
		sum2 += uint32(adcCh2.Get())
		count++

		if time.Since(lastReport) >= REPORT_INTERVAL {
			report(sum1/uint32(count), sum2/uint32(count))
			sum1, sum2, count = 0, 0, 0
			lastReport = time.Now()
		}

		time.Sleep(SAMPLE_INTERVAL)
	}
}

// report writes one CSV sample line: unix_micros,ch1,ch2.
func report(ch1, ch2 uint32) {
	line := strconv.FormatInt(time.Now().UnixMicro(), 10) +
		"," + strconv.FormatUint(uint64(ch1), 10) +
		"," + strconv.FormatUint(uint64(ch2), 10) + "\n"
	uart.Write([]byte(line))
}
