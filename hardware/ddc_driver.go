//go:build windows

package hardware

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"
)

var (
	user32 = syscall.NewLazyDLL("user32.dll")
	dxva2  = syscall.NewLazyDLL("dxva2.dll")

	procEnumDisplayMonitors    = user32.NewProc("EnumDisplayMonitors")
	procGetNumPhysicalMonitors = dxva2.NewProc("GetNumberOfPhysicalMonitorsFromHMONITOR")
	procGetPhysicalMonitors    = dxva2.NewProc("GetPhysicalMonitorsFromHMONITOR")
	procGetMonitorBrightness   = dxva2.NewProc("GetMonitorBrightness")
	procSetMonitorBrightness   = dxva2.NewProc("SetMonitorBrightness")
	procDestroyPhysicalMonitor = dxva2.NewProc("DestroyPhysicalMonitor")
)

// physicalMonitor mirrors the Win32 PHYSICAL_MONITOR structure.
type physicalMonitor struct {
	handle      syscall.Handle
	description [128]uint16
}

// enumCallback is created once: Windows never releases callbacks made
// with syscall.NewCallback, so allocating one per enumeration would
// eventually exhaust the process-wide callback limit. The lparam carries
// the destination slice.
var enumCallback = syscall.NewCallback(func(hMonitor, hdc, rect, lparam uintptr) uintptr {
	hmonitors := (*[]uintptr)(unsafe.Pointer(lparam))
	*hmonitors = append(*hmonitors, hMonitor)
	return 1 // continue enumeration
})

type ddcMonitor struct {
	handle syscall.Handle
	name   string
	// Brightness range reported by the monitor. DDC/CI values are raw
	// device units, not percentages.
	minRaw uint32
	maxRaw uint32
}

// DdcDriver controls external monitors over DDC/CI via dxva2.dll.
// It ensures thread-safe access to the physical monitor handles.
type DdcDriver struct {
	monitors []ddcMonitor
	mutex    sync.Mutex
}

// NewDdcDriver loads dxva2.dll and enumerates the DDC/CI-capable
// monitors. It returns an error if the DLL cannot be loaded or no
// controllable monitor is found.
func NewDdcDriver() (*DdcDriver, error) {
	if err := dxva2.Load(); err != nil {
		return nil, fmt.Errorf("failed to load dxva2.dll: %w", err)
	}

	d := &DdcDriver{}
	if err := d.enumerate(); err != nil {
		return nil, err
	}
	if len(d.monitors) == 0 {
		return nil, fmt.Errorf("no DDC/CI-capable monitors found")
	}
	return d, nil
}

// Enumerate re-scans the connected monitors and returns the current set.
func (d *DdcDriver) Enumerate() ([]Monitor, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.releaseHandles()
	if err := d.enumerate(); err != nil {
		return nil, err
	}

	out := make([]Monitor, len(d.monitors))
	for i, m := range d.monitors {
		out[i] = Monitor{Index: i, Name: m.name}
	}
	return out, nil
}

// GetBrightness reads the current brightness of a monitor as a percentage.
func (d *DdcDriver) GetBrightness(index int) (int, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	m, err := d.monitor(index)
	if err != nil {
		return 0, err
	}

	var minRaw, curRaw, maxRaw uint32
	ok, _, callErr := procGetMonitorBrightness.Call(
		uintptr(m.handle),
		uintptr(unsafe.Pointer(&minRaw)),
		uintptr(unsafe.Pointer(&curRaw)),
		uintptr(unsafe.Pointer(&maxRaw)),
	)
	if ok == 0 {
		return 0, fmt.Errorf("GetMonitorBrightness failed for monitor %d: %w", index, callErr)
	}
	return rawToPercent(curRaw, minRaw, maxRaw), nil
}

// SetBrightness pushes a brightness percentage to a monitor.
func (d *DdcDriver) SetBrightness(index int, value int) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	m, err := d.monitor(index)
	if err != nil {
		return err
	}

	raw := percentToRaw(value, m.minRaw, m.maxRaw)
	ok, _, callErr := procSetMonitorBrightness.Call(uintptr(m.handle), uintptr(raw))
	if ok == 0 {
		return fmt.Errorf("SetMonitorBrightness failed for monitor %d: %w", index, callErr)
	}
	return nil
}

// Close releases all physical monitor handles.
func (d *DdcDriver) Close() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.releaseHandles()
}

func (d *DdcDriver) monitor(index int) (ddcMonitor, error) {
	if index < 0 || index >= len(d.monitors) {
		return ddcMonitor{}, fmt.Errorf("invalid monitor index: %d", index)
	}
	return d.monitors[index], nil
}

// enumerate walks the display monitors and collects a physical monitor
// handle for each one that answers a DDC/CI brightness query. Monitors
// that do not support brightness control are skipped. Caller must hold
// the mutex.
func (d *DdcDriver) enumerate() error {
	var hmonitors []uintptr
	ok, _, callErr := procEnumDisplayMonitors.Call(0, 0, enumCallback, uintptr(unsafe.Pointer(&hmonitors)))
	if ok == 0 {
		return fmt.Errorf("EnumDisplayMonitors failed: %w", callErr)
	}

	d.monitors = nil
	for _, hMonitor := range hmonitors {
		var count uint32
		ok, _, _ := procGetNumPhysicalMonitors.Call(hMonitor, uintptr(unsafe.Pointer(&count)))
		if ok == 0 || count == 0 {
			continue
		}

		physMonitors := make([]physicalMonitor, count)
		ok, _, _ = procGetPhysicalMonitors.Call(
			hMonitor,
			uintptr(count),
			uintptr(unsafe.Pointer(&physMonitors[0])),
		)
		if ok == 0 {
			continue
		}

		for _, pm := range physMonitors {
			var minRaw, curRaw, maxRaw uint32
			ok, _, _ := procGetMonitorBrightness.Call(
				uintptr(pm.handle),
				uintptr(unsafe.Pointer(&minRaw)),
				uintptr(unsafe.Pointer(&curRaw)),
				uintptr(unsafe.Pointer(&maxRaw)),
			)
			if ok == 0 || maxRaw <= minRaw {
				// No DDC/CI brightness support, hand the handle back.
				procDestroyPhysicalMonitor.Call(uintptr(pm.handle))
				continue
			}
			d.monitors = append(d.monitors, ddcMonitor{
				handle: pm.handle,
				name:   syscall.UTF16ToString(pm.description[:]),
				minRaw: minRaw,
				maxRaw: maxRaw,
			})
		}
	}
	return nil
}

// releaseHandles destroys every held physical monitor handle. Caller
// must hold the mutex.
func (d *DdcDriver) releaseHandles() {
	for _, m := range d.monitors {
		procDestroyPhysicalMonitor.Call(uintptr(m.handle))
	}
	d.monitors = nil
}

func rawToPercent(cur, minRaw, maxRaw uint32) int {
	if maxRaw <= minRaw {
		return int(cur)
	}
	if cur < minRaw {
		cur = minRaw
	}
	percent := int((cur - minRaw) * 100 / (maxRaw - minRaw))
	return clampPercent(percent)
}

func percentToRaw(percent int, minRaw, maxRaw uint32) uint32 {
	p := uint32(clampPercent(percent))
	return minRaw + (maxRaw-minRaw)*p/100
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
