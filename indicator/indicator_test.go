package indicator

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"periph.io/x/periph/conn/gpio"
)

type fakePin struct {
	levels []gpio.Level
	fail   error
}

func (f *fakePin) Out(l gpio.Level) error {
	f.levels = append(f.levels, l)
	return f.fail
}

func TestPulse(t *testing.T) {
	fp := &fakePin{}
	p := &Pin{name: "GPIO17", pin: fp}
	if err := p.Pulse(time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fp.levels, []gpio.Level{gpio.High, gpio.Low}) {
		t.Error("levels:", fp.levels)
	}
}

func TestPulseError(t *testing.T) {
	fp := &fakePin{fail: errors.New("gpio busy")}
	p := &Pin{name: "GPIO27", pin: fp}
	if err := p.Pulse(time.Millisecond); !errors.Is(err, fp.fail) {
		t.Error(err)
	}
	if len(fp.levels) != 1 {
		t.Error("pin driven after error:", fp.levels)
	}
}
