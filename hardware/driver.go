//go:build windows

package hardware

import (
	"fmt"
	"log"
	"sync"
)

// mappedMonitor routes one ordinal display index to a backend driver
// and its backend-local index.
type mappedMonitor struct {
	driver MonitorDriver
	local  int
	name   string
}

// compositeDriver flattens the available backends (DDC/CI monitors
// first, then WMI panels) into a single ordinal index space.
type compositeDriver struct {
	backends []MonitorDriver
	monitors []mappedMonitor
	mutex    sync.Mutex
}

// NewMonitorDriver assembles the available brightness backends. Each
// backend is optional; the driver fails only when neither backend finds
// a controllable display.
func NewMonitorDriver() (MonitorDriver, error) {
	d := &compositeDriver{}

	ddc, err := NewDdcDriver()
	if err != nil {
		log.Printf("Warning: DDC/CI backend unavailable: %v", err)
	} else {
		d.backends = append(d.backends, ddc)
	}

	wmiDrv, err := NewWmiDriver()
	if err != nil {
		log.Printf("Warning: WMI brightness backend unavailable: %v", err)
	} else {
		d.backends = append(d.backends, wmiDrv)
	}

	if len(d.backends) == 0 {
		return nil, fmt.Errorf("no brightness backend available: no controllable display was found")
	}
	if _, err := d.Enumerate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Enumerate re-queries every backend and rebuilds the index mapping.
func (d *compositeDriver) Enumerate() ([]Monitor, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.monitors = nil
	for _, backend := range d.backends {
		monitors, err := backend.Enumerate()
		if err != nil {
			log.Printf("Warning: backend enumeration failed: %v", err)
			continue
		}
		for _, m := range monitors {
			d.monitors = append(d.monitors, mappedMonitor{
				driver: backend,
				local:  m.Index,
				name:   m.Name,
			})
		}
	}

	out := make([]Monitor, len(d.monitors))
	for i, m := range d.monitors {
		out[i] = Monitor{Index: i, Name: m.name}
	}
	return out, nil
}

func (d *compositeDriver) GetBrightness(index int) (int, error) {
	m, err := d.lookup(index)
	if err != nil {
		return 0, err
	}
	return m.driver.GetBrightness(m.local)
}

func (d *compositeDriver) SetBrightness(index int, value int) error {
	m, err := d.lookup(index)
	if err != nil {
		return err
	}
	return m.driver.SetBrightness(m.local, value)
}

func (d *compositeDriver) Close() {
	for _, backend := range d.backends {
		backend.Close()
	}
}

func (d *compositeDriver) lookup(index int) (mappedMonitor, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if index < 0 || index >= len(d.monitors) {
		return mappedMonitor{}, fmt.Errorf("invalid display index: %d", index)
	}
	return d.monitors[index], nil
}
