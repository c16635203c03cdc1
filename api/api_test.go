package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/antigloss/go/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "api-log")
	if err == nil {
		_ = logger.Init(dir, 1, 1, 1, false)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type fakeDisplay struct {
	shown []string
	fail  error
}

func (f *fakeDisplay) Init() error { return nil }
func (f *fakeDisplay) ShowMessage(text string) error {
	if f.fail != nil {
		return f.fail
	}
	f.shown = append(f.shown, text)
	return nil
}
func (f *fakeDisplay) Capacity() int  { return 16 }
func (f *fakeDisplay) Close() error   { return nil }
func (f *fakeDisplay) String() string { return "fake" }

type fakePulser struct {
	pulses []time.Duration
}

func (f *fakePulser) Pulse(d time.Duration) error {
	f.pulses = append(f.pulses, d)
	return nil
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestDisplayMessage(t *testing.T) {
	fd := &fakeDisplay{}
	notified := 0
	r := NewRouter(fd, Options{OnMessage: func() { notified++ }})

	w := do(t, r, http.MethodPost, "/display_message", "Joined success! Balance: 20.00")
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatal(w.Code, w.Body.String())
	}
	if len(fd.shown) != 1 || fd.shown[0] != "Joined success! Balance: 20.00" {
		t.Error("shown:", fd.shown)
	}
	if notified != 1 {
		t.Error("OnMessage not called")
	}
}

func TestDisplayMessageIsBeautified(t *testing.T) {
	fd := &fakeDisplay{}
	r := NewRouter(fd, Options{})
	_ = do(t, r, http.MethodPost, "/display_message", " Grüße\n")
	if len(fd.shown) != 1 || fd.shown[0] != "Gruesse" {
		t.Error("shown:", fd.shown)
	}
}

func TestDisplayMessageEmpty(t *testing.T) {
	fd := &fakeDisplay{}
	r := NewRouter(fd, Options{})
	w := do(t, r, http.MethodPost, "/display_message", "  ")
	if w.Code != http.StatusBadRequest {
		t.Error(w.Code)
	}
	if len(fd.shown) != 0 {
		t.Error("shown:", fd.shown)
	}
}

func TestDisplayMessageDriverError(t *testing.T) {
	fd := &fakeDisplay{fail: errors.New("lcd: write: i2c timeout")}
	r := NewRouter(fd, Options{})
	w := do(t, r, http.MethodPost, "/display_message", "SCAN FAIL")
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "i2c timeout") {
		t.Error(w.Code, w.Body.String())
	}
}

func TestIndicators(t *testing.T) {
	green, buzzer := &fakePulser{}, &fakePulser{}
	r := NewRouter(&fakeDisplay{}, Options{GreenLED: green, Buzzer: buzzer, PulseTime: 5 * time.Millisecond})

	if w := do(t, r, http.MethodGet, "/green_led", ""); w.Code != http.StatusOK {
		t.Error("green:", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/activate_buzzer", ""); w.Code != http.StatusOK {
		t.Error("buzzer:", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/red_led", ""); w.Code != http.StatusNotFound {
		t.Error("red:", w.Code)
	}
	if len(green.pulses) != 1 || green.pulses[0] != 5*time.Millisecond || len(buzzer.pulses) != 1 {
		t.Error("pulses:", green.pulses, buzzer.pulses)
	}
}

func TestStatus(t *testing.T) {
	r := NewRouter(&fakeDisplay{}, Options{})
	_ = do(t, r, http.MethodPost, "/display_message", "READY")
	w := do(t, r, http.MethodGet, "/status", "")
	var st struct {
		Display  string `json:"display"`
		Capacity int    `json:"capacity"`
		Message  string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Display != "fake" || st.Capacity != 16 || st.Message != "READY" {
		t.Error("status:", st)
	}
}
