// Program gaugewatch polls a MAX17048/49 fuel gauge on a host I²C bus and
// prints battery voltage and relative state of charge.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"fuelgauge-go/drivers/max1704x"
	"fuelgauge-go/gauge"
)

// Flags.
var (
	busName   string
	variant49 bool
	interval  time.Duration
	threshold int
	noRefresh bool
)

func init() {
	flag.StringVar(&busName, "bus", "", "I²C bus name from the periph.io registry; empty picks the first bus")
	flag.BoolVar(&variant49, "max17049", false, "gauge is a MAX17049 (2S pack, 2.5 mV per LSB)")
	flag.DurationVar(&interval, "interval", 10*time.Second, "poll interval")
	flag.IntVar(&threshold, "threshold", 0, "alert threshold percent [1,32]; 0 leaves the device as-is")
	flag.BoolVar(&noRefresh, "norefresh", false, "do not restart the gauge before each read")
}

func main() {
	flag.Parse()
	if threshold < 0 || threshold > 32 {
		log.Fatalf("-threshold must be in [1,32], got %d", threshold)
	}

	// Initialize periph.
	if _, err := host.Init(); err != nil {
		log.Fatalf("Failed to initialize periph: %v", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		log.Fatalf("Failed to open I²C bus: %v", err)
	}
	defer bus.Close()

	cfg := max1704x.DefaultConfig()
	cfg.ForceRefresh = !noRefresh
	if variant49 {
		cfg.Variant = max1704x.MAX17049
	}
	dev := max1704x.New(bus, cfg)

	v, err := dev.Version()
	if err != nil {
		log.Fatalf("Failed to read gauge version (wiring, address 0x36?): %v", err)
	}
	log.Printf("MAX1704x production version 0x%04x on %s", v, bus)

	if threshold != 0 {
		if err := dev.SetAlertThreshold(uint8(threshold)); err != nil {
			log.Fatalf("Failed to set alert threshold: %v", err)
		}
		log.Printf("Alert threshold set to %d%%", threshold)
	}

	mon := gauge.New(dev, gauge.Config{Interval: interval})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go mon.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-mon.Events():
			switch ev.Kind {
			case gauge.KindSample:
				s := ev.Snapshot
				log.Printf("vcell=%.3fV soc=%.1f%% threshold=%d%% asleep=%v",
					float64(s.MicroVolts)/1e6, float64(s.DeciPercent)/10,
					s.Threshold, s.Asleep)
			case gauge.KindAlert:
				if ev.Err != nil {
					log.Printf("alert service failed: %v", ev.Err)
					continue
				}
				log.Printf("ALERT fired=%v threshold=%d%%", ev.Alert.Fired, ev.Alert.Threshold)
			}
		}
	}
}
