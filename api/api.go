// Package api serves the HTTP endpoints the scanner scripts call on the device.
package api

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/antigloss/go/logger"
	"github.com/gin-gonic/gin"
	"github.com/todamoon/scannerdisplay/display"
)

const maxBody = 1024

// Pulser is a momentary output such as an LED or a buzzer.
type Pulser interface {
	Pulse(d time.Duration) error
}

type Options struct {
	GreenLED  Pulser
	RedLED    Pulser
	Buzzer    Pulser
	PulseTime time.Duration
	// OnMessage is called after a message was shown successfully.
	OnMessage func()
}

type API struct {
	disp display.Display
	opts Options

	mu   sync.Mutex
	last string
}

func NewRouter(disp display.Display, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := &API{disp: disp, opts: opts}

	r.POST("/display_message", api.displayMessage)
	r.GET("/green_led", api.pulse(opts.GreenLED))
	r.GET("/red_led", api.pulse(opts.RedLED))
	r.GET("/activate_buzzer", api.pulse(opts.Buzzer))
	r.GET("/status", api.status)
	return r
}

func (a *API) displayMessage(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBody))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	text := display.Beautify(string(body))
	if text == "" {
		c.String(http.StatusBadRequest, "empty message")
		return
	}
	if err := a.disp.ShowMessage(text); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("Message: %s", text)
	a.mu.Lock()
	a.last = text
	a.mu.Unlock()
	if a.opts.OnMessage != nil {
		a.opts.OnMessage()
	}
	c.String(http.StatusOK, "OK")
}

func (a *API) pulse(p Pulser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p == nil {
			c.String(http.StatusNotFound, "not configured")
			return
		}
		if err := p.Pulse(a.opts.PulseTime); err != nil {
			logger.Error(err.Error())
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, "OK")
	}
}

func (a *API) status(c *gin.Context) {
	a.mu.Lock()
	last := a.last
	a.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"display":  fmt.Sprint(a.disp),
		"capacity": a.disp.Capacity(),
		"message":  last,
	})
}
