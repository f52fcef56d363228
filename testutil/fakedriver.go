package testutil

import (
	"fmt"
	"sync"

	"ScreenTone-Go/hardware"
)

// SetCall records one SetBrightness invocation on the fake driver.
type SetCall struct {
	Display int
	Value   int
}

// FakeDriver is an in-memory hardware.MonitorDriver for tests. It
// records every SetBrightness call and can be told to fail writes.
type FakeDriver struct {
	mu       sync.Mutex
	monitors []hardware.Monitor
	levels   map[int]int
	setCalls []SetCall
	failSet  bool
}

// NewFakeDriver creates a fake with the given number of displays, all
// starting at the given brightness level.
func NewFakeDriver(displays, level int) *FakeDriver {
	d := &FakeDriver{levels: make(map[int]int)}
	for i := 0; i < displays; i++ {
		d.monitors = append(d.monitors, hardware.Monitor{
			Index: i,
			Name:  fmt.Sprintf("Fake Monitor %d", i+1),
		})
		d.levels[i] = level
	}
	return d
}

func (d *FakeDriver) Enumerate() ([]hardware.Monitor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]hardware.Monitor(nil), d.monitors...), nil
}

func (d *FakeDriver) GetBrightness(index int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	level, ok := d.levels[index]
	if !ok {
		return 0, fmt.Errorf("no such display: %d", index)
	}
	return level, nil
}

func (d *FakeDriver) SetBrightness(index int, value int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failSet {
		return fmt.Errorf("injected write failure for display %d", index)
	}
	if _, ok := d.levels[index]; !ok {
		return fmt.Errorf("no such display: %d", index)
	}
	d.levels[index] = value
	d.setCalls = append(d.setCalls, SetCall{Display: index, Value: value})
	return nil
}

func (d *FakeDriver) Close() {}

// FailWrites makes every subsequent SetBrightness call return an error.
func (d *FakeDriver) FailWrites() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failSet = true
}

// SetMonitors replaces the monitor set, simulating a hot-plug event.
func (d *FakeDriver) SetMonitors(monitors []hardware.Monitor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.monitors = append([]hardware.Monitor(nil), monitors...)
	for _, m := range monitors {
		if _, ok := d.levels[m.Index]; !ok {
			d.levels[m.Index] = 50
		}
	}
}

// SetCalls returns a copy of the recorded SetBrightness calls.
func (d *FakeDriver) SetCalls() []SetCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]SetCall(nil), d.setCalls...)
}

// CallsFor returns the recorded calls for one display, in order.
func (d *FakeDriver) CallsFor(display int) []SetCall {
	var out []SetCall
	for _, call := range d.SetCalls() {
		if call.Display == display {
			out = append(out, call)
		}
	}
	return out
}

// Level returns the last written (or initial) level of a display.
func (d *FakeDriver) Level(display int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.levels[display]
}
