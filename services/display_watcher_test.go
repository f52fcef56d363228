package services

import (
	"testing"
	"time"

	"ScreenTone-Go/hardware"
	"ScreenTone-Go/testutil"
)

func TestDisplayWatcherReportsChange(t *testing.T) {
	driver := testutil.NewFakeDriver(1, 50)
	w := NewDisplayWatcher(driver, 10*time.Millisecond)

	changed := make(chan []hardware.Monitor, 1)
	w.OnChange = func(monitors []hardware.Monitor) {
		select {
		case changed <- monitors:
		default:
		}
	}

	w.Start()
	defer w.Stop()

	// Let the watcher establish its baseline before plugging in.
	time.Sleep(50 * time.Millisecond)
	driver.SetMonitors([]hardware.Monitor{
		{Index: 0, Name: "Fake Monitor 1"},
		{Index: 1, Name: "Fake Monitor 2"},
	})

	select {
	case monitors := <-changed:
		if len(monitors) != 2 {
			t.Errorf("OnChange reported %d monitors, want 2", len(monitors))
		}
	case <-time.After(time.Second):
		t.Fatal("OnChange was not called after the display set changed")
	}
}

func TestDisplayWatcherStableSetStaysQuiet(t *testing.T) {
	driver := testutil.NewFakeDriver(2, 50)
	w := NewDisplayWatcher(driver, 10*time.Millisecond)

	calls := make(chan struct{}, 16)
	w.OnChange = func([]hardware.Monitor) {
		calls <- struct{}{}
	}

	w.Start()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	select {
	case <-calls:
		t.Error("OnChange fired although the display set never changed")
	default:
	}
}

func TestDisplayWatcherStopTerminates(t *testing.T) {
	driver := testutil.NewFakeDriver(1, 50)
	w := NewDisplayWatcher(driver, 10*time.Millisecond)

	fired := make(chan struct{}, 1)
	w.OnChange = func([]hardware.Monitor) {
		select {
		case fired <- struct{}{}:
		default:
		}
	}

	w.Start()
	time.Sleep(30 * time.Millisecond)
	w.Stop()

	// A change after Stop must not be reported.
	driver.SetMonitors([]hardware.Monitor{
		{Index: 0, Name: "Fake Monitor 1"},
		{Index: 1, Name: "Fake Monitor 2"},
	})

	select {
	case <-fired:
		t.Error("OnChange fired after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}
