package hardware

// Monitor describes one enumerated display. The index is ordinal within
// the current enumeration; it is assumed stable for the session but
// carries no identity across reboots or hot-plug events.
type Monitor struct {
	Index int
	Name  string
}

// MonitorDriver defines the interface for the brightness backends.
// This abstracts the hardware-specific implementations (DDC/CI through
// dxva2.dll, WMI for internal panels) from the core application logic,
// making it easier to test and maintain.
type MonitorDriver interface {
	// Enumerate lists the displays the backend can control, in a stable
	// order. It may be called again to pick up hot-plugged displays.
	Enumerate() ([]Monitor, error)

	// GetBrightness queries the current brightness of a display as a
	// percentage in [0,100].
	GetBrightness(index int) (int, error)

	// SetBrightness pushes a brightness percentage in [0,100] to a display.
	SetBrightness(index int, value int) error

	// Close releases any resources held by the driver (physical monitor
	// handles, loaded DLLs).
	Close()
}
