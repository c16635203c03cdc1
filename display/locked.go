package display

import (
	"fmt"
	"sync"
)

type locked struct {
	mu  sync.Mutex
	dev Display
}

// Locked serializes all calls to d. Use it when more than one goroutine
// talks to the same physical display.
func Locked(d Display) Display {
	return &locked{dev: d}
}

func (l *locked) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dev.Init()
}

func (l *locked) ShowMessage(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dev.ShowMessage(text)
}

func (l *locked) Capacity() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dev.Capacity()
}

func (l *locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dev.Close()
}

func (l *locked) String() string {
	return fmt.Sprint(l.dev)
}
