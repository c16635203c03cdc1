// Package indicator drives the status LEDs and the buzzer of a scanner.
package indicator

import (
	"fmt"
	"time"

	"github.com/antigloss/go/logger"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

type outPin interface {
	Out(l gpio.Level) error
}

// Pin is a GPIO output, active high.
type Pin struct {
	name string
	pin  outPin
}

// Open looks the pin up by its name (e.g. "GPIO17") and drives it low.
func Open(name string) (*Pin, error) {
	// Load gpio drivers:
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("failed to find %s", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Pin{name: name, pin: p}, nil
}

// Pulse sets the pin high for d and then low again.
func (p *Pin) Pulse(d time.Duration) error {
	logger.Trace("pulse %s for %s", p.name, d)
	if err := p.pin.Out(gpio.High); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	time.Sleep(d)
	if err := p.pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	return nil
}

func (p *Pin) String() string {
	return p.name
}
