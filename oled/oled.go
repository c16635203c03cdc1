package oled

import (
	"image"

	"github.com/antigloss/go/logger"
	"github.com/todamoon/scannerdisplay/display"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/devices/ssd1306"
	"periph.io/x/periph/devices/ssd1306/image1bit"
	"periph.io/x/periph/host"
)

var face = basicfont.Face7x13

// Config selects the bus and panel size. An empty Bus picks the first available I²C bus.
type Config struct {
	Bus    string
	Width  int
	Height int
}

var DefaultConfig = Config{Width: 128, Height: 64}

// panel is what we use of *ssd1306.Dev.
type panel interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Halt() error
}

type oled struct {
	cfg     Config
	bus     i2c.BusCloser
	dev     panel
	img     *image1bit.VerticalLSB
	connect func() (panel, error)
}

func newDriver(cfg Config) *oled {
	o := &oled{cfg: cfg}
	o.connect = o.open
	return o
}

// New binds the OLED Display to cfg. Nothing is sent before Init.
func New(cfg Config) display.Display {
	return display.New("oled", newDriver(cfg))
}

func (o *oled) open() (panel, error) {
	if o.bus == nil {
		// Make sure periph is initialized.
		if _, err := host.Init(); err != nil {
			return nil, err
		}
		bus, err := i2creg.Open(o.cfg.Bus)
		if err != nil {
			return nil, err
		}
		o.bus = bus
	}
	opts := ssd1306.DefaultOpts
	opts.W = o.cfg.Width
	opts.H = o.cfg.Height
	dev, err := ssd1306.NewI2C(o.bus, &opts)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

func (o *oled) Reset() error {
	dev, err := o.connect()
	if err != nil {
		return err
	}
	o.dev = dev
	o.img = image1bit.NewVerticalLSB(dev.Bounds())
	return o.Clear()
}

func (o *oled) Clear() error {
	for i := range o.img.Pix {
		o.img.Pix[i] = 0
	}
	return o.flush()
}

func (o *oled) Write(text string) error {
	drawer := font.Drawer{
		Dst:  o.img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	drawer.DrawString(text)
	return o.flush()
}

func (o *oled) flush() error {
	return o.dev.Draw(o.dev.Bounds(), o.img, image.Point{})
}

func (o *oled) Capacity() int {
	return o.cfg.Width / face.Advance
}

func (o *oled) Close() error {
	if o.dev != nil {
		if err := o.dev.Halt(); err != nil {
			logger.Warn("oled halt: %s", err)
		}
	}
	if o.bus == nil {
		return nil
	}
	err := o.bus.Close()
	o.bus = nil
	return err
}
