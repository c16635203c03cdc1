package display

import (
	"errors"
	"fmt"

	"github.com/antigloss/go/logger"
)

// ErrNotInitialized is returned by ShowMessage when Init has not succeeded yet.
var ErrNotInitialized = errors.New("display not initialized")

// Interface definition for LCD and OLED
type Display interface {
	// Init resets the device and clears the screen. It may be called again.
	Init() error
	// ShowMessage replaces the screen content with text.
	ShowMessage(text string) error
	// Capacity returns the number of visible characters on the message line.
	Capacity() int
	Close() error
}

// Driver is the part of a vendor display library a Display forwards to.
type Driver interface {
	// Reset runs the power-on configuration and leaves an empty screen.
	Reset() error
	Clear() error
	// Write renders text at the default position.
	Write(text string) error
	Capacity() int
	Close() error
}

type screen struct {
	name        string
	drv         Driver
	initialized bool
}

// New binds drv to a Display. No bus traffic happens until Init.
func New(name string, drv Driver) Display {
	return &screen{name: name, drv: drv}
}

func (s *screen) Init() error {
	logger.Trace("%s initializing...", s.name)
	if err := s.drv.Reset(); err != nil {
		logger.Error("%s: reset failed: %s", s.name, err)
		return fmt.Errorf("%s: reset: %w", s.name, err)
	}
	s.initialized = true
	return nil
}

func (s *screen) ShowMessage(text string) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if n := len(text); n > s.drv.Capacity() {
		logger.Warn("%s: message of %d chars exceeds capacity %d", s.name, n, s.drv.Capacity())
	}
	if err := s.drv.Clear(); err != nil {
		logger.Error("%s: clear failed: %s", s.name, err)
		return fmt.Errorf("%s: clear: %w", s.name, err)
	}
	if err := s.drv.Write(text); err != nil {
		logger.Error("%s: write failed: %s", s.name, err)
		return fmt.Errorf("%s: write: %w", s.name, err)
	}
	return nil
}

func (s *screen) Capacity() int {
	return s.drv.Capacity()
}

func (s *screen) Close() error {
	return s.drv.Close()
}

func (s *screen) String() string {
	return s.name
}
