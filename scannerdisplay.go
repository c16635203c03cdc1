package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"
	"time"

	"github.com/todamoon/scannerdisplay/api"
	"github.com/todamoon/scannerdisplay/console"
	"github.com/todamoon/scannerdisplay/debouncer"
	"github.com/todamoon/scannerdisplay/display"
	"github.com/todamoon/scannerdisplay/indicator"
	"github.com/todamoon/scannerdisplay/lcd"
	"github.com/todamoon/scannerdisplay/oled"

	"github.com/antigloss/go/logger"
)

var (
	oledPtr       *bool
	consolePtr    *bool
	listenPtr     *string
	lcdTypePtr    *string
	lcdAddrPtr    *int
	lcdBusPtr     *int
	lcdDelayPtr   *int
	oledBusPtr    *string
	oledHeightPtr *int
	readyPtr      *string
	idleTimePtr   *int
	greenPinPtr   *string
	redPinPtr     *string
	buzzerPinPtr  *string
	pulseTimePtr  *int
	homePath      string
)

func getHomeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "~/"
	}
	return usr.HomeDir
}

// clamp keeps a command line value inside [min, max]
func clamp(v *int, min, max int) {
	if *v < min {
		*v = min
	}
	if *v > max {
		*v = max
	}
}

// builds the display selected on the command line
func newDisplay() (display.Display, error) {
	switch {
	case *consolePtr:
		return console.New(os.Stdout, 16, true), nil
	case *oledPtr:
		cfg := oled.DefaultConfig
		cfg.Bus = *oledBusPtr
		cfg.Height = *oledHeightPtr
		return oled.New(cfg), nil
	}
	lcdType, err := lcd.ParseType(*lcdTypePtr)
	if err != nil {
		return nil, err
	}
	return lcd.New(lcd.Config{
		Address:   uint8(*lcdAddrPtr),
		Bus:       *lcdBusPtr,
		Type:      lcdType,
		InitDelay: time.Duration(*lcdDelayPtr) * time.Second,
	}), nil
}

// opens a GPIO output; an empty name means the indicator is not fitted
func openPin(name string) api.Pulser {
	if name == "" {
		return nil
	}
	p, err := indicator.Open(name)
	if err != nil {
		logger.Error("Couldn't open %s: %s", name, err)
		return nil
	}
	return p
}

func main() {
	homePath = filepath.Join(getHomeDir(), ".scannerdisplay")
	_ = os.MkdirAll(homePath, os.ModePerm)
	_ = logger.Init(filepath.Join(homePath, "log"), 30, 2, 10, true)

	logger.Trace("Starting scannerdisplay...")

	// Commandline parameters
	oledPtr = flag.Bool("oled", false, "set to use the SSD1306 OLED display")
	consolePtr = flag.Bool("console", false, "set to print messages on stdout instead of a display")
	listenPtr = flag.String("listen", ":80", "address of the http server")
	lcdTypePtr = flag.String("lcdType", "16x2", "LCD geometry (16x2 or 20x4)")
	lcdAddrPtr = flag.Int("lcdAddr", lcd.DefaultAddress, "I2C address of the LCD backpack")
	lcdBusPtr = flag.Int("lcdBus", lcd.DefaultBus, "I2C bus number of the LCD")
	lcdDelayPtr = flag.Int("lcdDelay", 1, "initial delay for LCD in s (0s...10s)")
	oledBusPtr = flag.String("oledBus", "", "I2C bus name of the OLED, empty for the first one")
	oledHeightPtr = flag.Int("oledHeight", 64, "OLED height in pixels (32 or 64)")
	readyPtr = flag.String("ready", "READY", "idle message")
	idleTimePtr = flag.Int("idleTime", 5, "show the idle message again after s (0 = never, max 3600s)")
	greenPinPtr = flag.String("greenLed", "", "GPIO of the green LED")
	redPinPtr = flag.String("redLed", "", "GPIO of the red LED")
	buzzerPinPtr = flag.String("buzzer", "", "GPIO of the buzzer")
	pulseTimePtr = flag.Int("pulseTime", 200, "LED/buzzer on time in ms (10ms...5000ms)")
	flag.Parse()
	clamp(lcdDelayPtr, 0, 10)
	clamp(idleTimePtr, 0, 3600)
	clamp(pulseTimePtr, 10, 5000)
	clamp(lcdAddrPtr, 0x03, 0x77)
	if *oledHeightPtr != 32 {
		*oledHeightPtr = 64
	}

	dev, err := newDisplay()
	if err != nil {
		logger.Error("Couldn't create display: %s", err)
		os.Exit(1)
	}
	// the http handlers and the idle timer both write to the display
	disp := display.Locked(dev)
	if err = disp.Init(); err != nil {
		logger.Error("Couldn't initialize display: %s", err)
		os.Exit(1)
	}
	_ = disp.ShowMessage(*readyPtr)

	idle := debouncer.New(time.Duration(*idleTimePtr) * time.Second)
	showIdle := func() {
		_ = disp.ShowMessage(*readyPtr)
	}

	opts := api.Options{
		GreenLED:  openPin(*greenPinPtr),
		RedLED:    openPin(*redPinPtr),
		Buzzer:    openPin(*buzzerPinPtr),
		PulseTime: time.Duration(*pulseTimePtr) * time.Millisecond,
	}
	if *idleTimePtr > 0 {
		opts.OnMessage = func() { idle.Trigger(showIdle) }
	}
	srv := &http.Server{
		Addr:              *listenPtr,
		Handler:           api.NewRouter(disp, opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// this goroutine is waiting for scannerdisplay being stopped
	ctrlChan := make(chan os.Signal, 1)
	signal.Notify(ctrlChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlChan
		logger.Trace("Signal received... Exiting")
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	logger.Info("Listening on %s", *listenPtr)
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err.Error())
	}
	idle.Stop()
	if err = disp.Close(); err != nil {
		logger.Error(err.Error())
	}
}
