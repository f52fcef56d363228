//go:build windows

package hardware

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/yusufpapurcu/wmi"
)

// wmiMonitorBrightness represents the structure of the data returned by
// the WmiMonitorBrightness WMI class.
type wmiMonitorBrightness struct {
	InstanceName      string
	CurrentBrightness uint8
	Active            bool
}

// WmiDriver controls internal laptop panels through the WMI brightness
// classes. External monitors do not appear here; they are handled over
// DDC/CI by DdcDriver.
type WmiDriver struct {
	panels []string // WMI instance names, in enumeration order
	mutex  sync.Mutex
}

// NewWmiDriver queries WMI for brightness-capable panels. It returns an
// error when the query fails or no panel is found, which is normal on
// desktop machines.
func NewWmiDriver() (*WmiDriver, error) {
	d := &WmiDriver{}
	if _, err := d.Enumerate(); err != nil {
		return nil, err
	}
	if len(d.panels) == 0 {
		return nil, fmt.Errorf("no WMI brightness-capable panels found")
	}
	return d, nil
}

// Enumerate re-queries WMI and returns the current panel set.
func (d *WmiDriver) Enumerate() ([]Monitor, error) {
	panels, err := queryPanels()
	if err != nil {
		return nil, err
	}

	d.mutex.Lock()
	d.panels = make([]string, len(panels))
	for i, p := range panels {
		d.panels[i] = p.InstanceName
	}
	d.mutex.Unlock()

	out := make([]Monitor, len(panels))
	for i := range panels {
		out[i] = Monitor{Index: i, Name: "Internal Display"}
	}
	return out, nil
}

// GetBrightness reads the current brightness of a panel as a percentage.
func (d *WmiDriver) GetBrightness(index int) (int, error) {
	name, err := d.instanceName(index)
	if err != nil {
		return 0, err
	}

	panels, err := queryPanels()
	if err != nil {
		return 0, err
	}
	for _, p := range panels {
		if p.InstanceName == name {
			return clampPercent(int(p.CurrentBrightness)), nil
		}
	}
	return 0, fmt.Errorf("panel %q no longer present", name)
}

// SetBrightness invokes WmiSetBrightness on the matching
// WmiMonitorBrightnessMethods instance.
func (d *WmiDriver) SetBrightness(index int, value int) error {
	name, err := d.instanceName(index)
	if err != nil {
		return err
	}

	ole.CoInitialize(0)
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return fmt.Errorf("failed to create WMI locator: %w", err)
	}
	defer unknown.Release()

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("failed to query WMI locator interface: %w", err)
	}
	defer locator.Release()

	serviceRaw, err := oleutil.CallMethod(locator, "ConnectServer", nil, `\\.\root\wmi`)
	if err != nil {
		return fmt.Errorf("failed to connect to root\\wmi: %w", err)
	}
	service := serviceRaw.ToIDispatch()
	defer service.Release()

	query := fmt.Sprintf(
		"SELECT * FROM WmiMonitorBrightnessMethods WHERE InstanceName='%s'",
		strings.ReplaceAll(name, `\`, `\\`),
	)
	resultRaw, err := oleutil.CallMethod(service, "ExecQuery", query)
	if err != nil {
		return fmt.Errorf("WmiMonitorBrightnessMethods query failed: %w", err)
	}
	result := resultRaw.ToIDispatch()
	defer result.Release()

	itemRaw, err := oleutil.CallMethod(result, "ItemIndex", 0)
	if err != nil {
		return fmt.Errorf("no brightness method instance for panel %q: %w", name, err)
	}
	item := itemRaw.ToIDispatch()
	defer item.Release()

	// First argument is the timeout in seconds for the transition.
	if _, err := oleutil.CallMethod(item, "WmiSetBrightness", 1, clampPercent(value)); err != nil {
		return fmt.Errorf("WmiSetBrightness failed for panel %q: %w", name, err)
	}
	return nil
}

// Close is a no-op; the WMI connection is per-call.
func (d *WmiDriver) Close() {}

func (d *WmiDriver) instanceName(index int) (string, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if index < 0 || index >= len(d.panels) {
		return "", fmt.Errorf("invalid panel index: %d", index)
	}
	return d.panels[index], nil
}

func queryPanels() ([]wmiMonitorBrightness, error) {
	var dst []wmiMonitorBrightness
	// Note the namespace `root\wmi`, same as the monitor method classes.
	query := "SELECT InstanceName, CurrentBrightness, Active FROM WmiMonitorBrightness"
	if err := wmi.QueryNamespace(query, &dst, `root\wmi`); err != nil {
		return nil, fmt.Errorf("WMI brightness query failed: %w", err)
	}

	active := dst[:0]
	for _, p := range dst {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}
