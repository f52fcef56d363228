//go:build !windows

package hardware

import "fmt"

// NewMonitorDriver returns an error on non-Windows systems.
func NewMonitorDriver() (MonitorDriver, error) {
	return nil, fmt.Errorf("monitor brightness control is only available on Windows")
}
