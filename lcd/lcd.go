package lcd

import (
	"fmt"
	"time"

	log "github.com/antigloss/go/logger"
	device "github.com/d2r2/go-hd44780"
	"github.com/d2r2/go-i2c"
	"github.com/d2r2/go-logger"
	"github.com/todamoon/scannerdisplay/display"
)

const (
	DefaultAddress = 0x27
	DefaultBus     = 1
)

// time the controller needs after a clear before it accepts new characters
var clearSettle = 100 * time.Millisecond

// Config binds the LCD to its place on the I2C bus.
type Config struct {
	Address   uint8
	Bus       int
	Type      device.LcdType
	InitDelay time.Duration
}

// DefaultConfig is a 16x2 module behind a PCF8574 backpack on /dev/i2c-1.
var DefaultConfig = Config{
	Address: DefaultAddress,
	Bus:     DefaultBus,
	Type:    device.LCD_16x2,
}

// controller is what we use of *device.Lcd.
type controller interface {
	BacklightOn() error
	Clear() error
	ShowMessage(text string, options device.ShowOptions) error
}

type lcd struct {
	cfg     Config
	i2cbus  *i2c.I2C
	dev     controller
	options device.ShowOptions
	connect func() (controller, error)
}

// ParseType converts a "16x2" or "20x4" flag value.
func ParseType(s string) (device.LcdType, error) {
	switch s {
	case "16x2":
		return device.LCD_16x2, nil
	case "20x4":
		return device.LCD_20x4, nil
	}
	return device.LCD_UNKNOWN, fmt.Errorf("unknown lcd type %q", s)
}

func newDriver(cfg Config) *lcd {
	l := &lcd{
		cfg:     cfg,
		options: device.SHOW_LINE_1 | device.SHOW_ELIPSE_IF_NOT_FIT | device.SHOW_BLANK_PADDING,
	}
	l.connect = l.open
	return l
}

// New binds the LC-Display to cfg. The bus is opened by Init.
func New(cfg Config) display.Display {
	return display.New("lcd", newDriver(cfg))
}

func (l *lcd) open() (controller, error) {
	if l.i2cbus == nil {
		_ = logger.ChangePackageLogLevel("i2c", logger.WarnLevel)
		bus, err := i2c.NewI2C(l.cfg.Address, l.cfg.Bus)
		if err != nil {
			return nil, err
		}
		l.i2cbus = bus
		time.Sleep(l.cfg.InitDelay)
	}
	dev, err := device.NewLcd(l.i2cbus, l.cfg.Type)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

func (l *lcd) Reset() error {
	dev, err := l.connect()
	if err != nil {
		return err
	}
	l.dev = dev
	if err = l.dev.BacklightOn(); err != nil {
		return err
	}
	return l.Clear()
}

func (l *lcd) Clear() error {
	if err := l.dev.Clear(); err != nil {
		return err
	}
	time.Sleep(clearSettle)
	return nil
}

func (l *lcd) Write(text string) error {
	if len(text) == 0 {
		text = " " // the library panics on empty strings
	}
	return l.dev.ShowMessage(text, l.options)
}

func (l *lcd) Capacity() int {
	if l.cfg.Type == device.LCD_20x4 {
		return 20
	}
	return 16
}

func (l *lcd) Close() error {
	if l.i2cbus == nil {
		return nil
	}
	err := l.i2cbus.Close()
	l.i2cbus = nil
	if err != nil {
		log.Error(err.Error())
	}
	return err
}
