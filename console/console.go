// Package console is a stand-in display for machines without a panel on the
// I²C bus. Messages are printed to a writer, one line per message.
package console

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/todamoon/scannerdisplay/display"
)

type console struct {
	w     io.Writer
	au    aurora.Aurora
	width int
}

func newDriver(w io.Writer, width int, colors bool) *console {
	return &console{w: w, au: aurora.NewAurora(colors), width: width}
}

// New returns a Display printing to w, cutting messages to width characters.
func New(w io.Writer, width int, colors bool) display.Display {
	return display.New("console", newDriver(w, width, colors))
}

func (c *console) Reset() error {
	_, err := fmt.Fprintln(c.w, c.au.Bold(fmt.Sprintf("[display %d chars]", c.width)))
	return err
}

func (c *console) Clear() error {
	_, err := fmt.Fprint(c.w, "\r")
	return err
}

func (c *console) Write(text string) error {
	if len(text) > c.width {
		if c.width > 3 {
			text = text[:c.width-3] + "..."
		} else {
			text = text[:c.width]
		}
	}
	_, err := fmt.Fprintln(c.w, c.au.Green(text))
	return err
}

func (c *console) Capacity() int {
	return c.width
}

func (c *console) Close() error {
	return nil
}
