package services

import (
	"context"
	"log"
	"sync"
	"time"

	"ScreenTone-Go/hardware"
)

const defaultPollInterval = 5 * time.Second

// DisplayWatcher periodically re-enumerates the connected displays and
// reports when the set changes (monitor plugged in or removed). The
// OnChange and OnError callbacks are invoked from the watcher goroutine.
type DisplayWatcher struct {
	driver   hardware.MonitorDriver
	interval time.Duration

	OnChange func(monitors []hardware.Monitor)
	OnError  func(err error)

	ctx    context.Context
	cancel context.CancelFunc
	last   []hardware.Monitor
	mutex  sync.Mutex
}

// NewDisplayWatcher creates a watcher over the given driver. A
// non-positive interval falls back to the default.
func NewDisplayWatcher(driver hardware.MonitorDriver, interval time.Duration) *DisplayWatcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &DisplayWatcher{
		driver:   driver,
		interval: interval,
	}
}

// Start begins watching. The baseline display set is whatever the next
// enumeration returns, so Start should be called after the initial
// display load.
func (w *DisplayWatcher) Start() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())

	go w.watch(w.ctx)
}

// Stop terminates the watcher goroutine.
func (w *DisplayWatcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *DisplayWatcher) watch(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.mutex.Lock()
	w.last = nil
	w.mutex.Unlock()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			monitors, err := w.driver.Enumerate()
			if err != nil {
				log.Printf("Warning: display re-enumeration failed: %v", err)
				if w.OnError != nil {
					w.OnError(err)
				}
				continue
			}

			w.mutex.Lock()
			changed := w.last != nil && !sameMonitors(w.last, monitors)
			w.last = monitors
			w.mutex.Unlock()

			if changed {
				log.Printf("Display set changed: %d display(s) now connected", len(monitors))
				if w.OnChange != nil {
					w.OnChange(monitors)
				}
			}
		}
	}
}

func sameMonitors(a, b []hardware.Monitor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
