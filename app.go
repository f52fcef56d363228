//go:build windows

package main

import (
	"ScreenTone-Go/controller"
	"ScreenTone-Go/hardware"
	"ScreenTone-Go/models"
	"ScreenTone-Go/services"
	"ScreenTone-Go/store"
	"ScreenTone-Go/tray"
	"ScreenTone-Go/utils"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"golang.org/x/sys/windows/registry"
)

// App struct holds the application's state and dependencies.
type App struct {
	ctx         context.Context
	driver      hardware.MonitorDriver
	brightness  *controller.BrightnessController
	watcher     *services.DisplayWatcher
	prefStore   *store.PrefStore
	presetStore *store.PresetStore
	trayIcon    *tray.Tray
	paths       store.Paths
	autoStart   bool
	forceExit   bool
}

// NewApp creates a new App application struct.
func NewApp() *App {
	return &App{}
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	paths, err := utils.DefaultPaths()
	if err != nil {
		// Fall back to the executable's directory so the app still runs.
		log.Printf("Warning: could not resolve app data directory: %v", err)
		exePath, _ := os.Executable()
		base := filepath.Dir(exePath)
		paths = store.Paths{
			PrefsFile:  filepath.Join(base, "user_prefs.json"),
			PresetsDir: filepath.Join(base, "presets"),
			RestoreDir: filepath.Join(base, "presetrestore"),
		}
		os.MkdirAll(paths.PresetsDir, 0755)
		os.MkdirAll(paths.RestoreDir, 0755)
	}
	a.paths = paths
	a.prefStore = store.NewPrefStore(paths.PrefsFile)
	a.presetStore = store.NewPresetStore(paths)

	driver, err := hardware.NewMonitorDriver()
	if err != nil {
		runtime.MessageDialog(a.ctx, runtime.MessageDialogOptions{
			Type:    runtime.ErrorDialog,
			Title:   "No Controllable Display",
			Message: fmt.Sprintf("No display with a supported brightness interface (DDC/CI or WMI) was found.\n\n%v", err),
		})
		os.Exit(1)
	}
	a.driver = driver
	a.brightness = controller.NewBrightnessController(driver, a.presetStore)
	a.brightness.Start()

	a.watcher = services.NewDisplayWatcher(driver, 0)
	a.watcher.OnChange = func(monitors []hardware.Monitor) {
		if err := a.brightness.LoadDisplays(); err != nil {
			log.Printf("Warning: failed to reload displays: %v", err)
			return
		}
		runtime.EventsEmit(a.ctx, "state:changed")
	}

	a.trayIcon = tray.New("ScreenTone", utils.TrayIconPNG())
	a.trayIcon.OnShow = func() {
		runtime.Show(a.ctx)
	}
	a.trayIcon.OnExit = func() {
		a.forceExit = true
		runtime.Quit(a.ctx)
	}
	a.trayIcon.Start()

	a.restoreWindowPosition()
}

// domReady runs after the first render, so the window is visible before
// the (slow) display enumeration starts.
func (a *App) domReady(ctx context.Context) {
	if err := a.brightness.LoadDisplays(); err != nil {
		log.Printf("Error loading displays: %v", err)
		runtime.EventsEmit(a.ctx, "state:changed")
		return
	}

	prefs, err := a.prefStore.Load()
	if err != nil {
		log.Printf("Warning: could not load preferences, using defaults: %v", err)
	}
	if prefs != nil {
		a.autoStart = prefs.AutoStart
		a.brightness.ApplyPreferences(prefs)
	}

	a.watcher.Start()
	runtime.EventsEmit(a.ctx, "state:changed")
}

// beforeClose intercepts the window close request: preferences are
// flushed either way, and unless the tray's Exit entry was used the
// window only hides to the tray.
func (a *App) beforeClose(ctx context.Context) bool {
	a.saveUserPrefs()
	if !a.forceExit {
		runtime.Hide(a.ctx)
		return true // prevent close
	}
	return false
}

// shutdown is called when the app is closing.
func (a *App) shutdown(ctx context.Context) {
	log.Println("Shutting down...")
	a.trayIcon.Stop()
	a.watcher.Stop()
	a.brightness.Stop()
	a.driver.Close()
}

// GetState returns the current controller state to the frontend.
func (a *App) GetState() controller.PublicState {
	return a.brightness.State()
}

// SliderChanged records a slider movement for a display.
func (a *App) SliderChanged(display int, value int) controller.PublicState {
	a.brightness.SliderChanged(display, value)
	return a.brightness.State()
}

// ApplyPreset applies the named preset to all displays.
func (a *App) ApplyPreset(name string) controller.PublicState {
	a.brightness.ApplyPreset(name)
	return a.brightness.State()
}

// SavePreset asks the user for a preset name and saves the current
// slider values under it. An empty selection means the user cancelled.
func (a *App) SavePreset() (controller.PublicState, error) {
	selection, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:            "Save Preset",
		DefaultDirectory: a.paths.PresetsDir,
		Filters: []runtime.FileFilter{
			{DisplayName: "JSON Files (*.json)", Pattern: "*.json"},
		},
	})
	if err != nil {
		return a.brightness.State(), err
	}
	if selection == "" {
		return a.brightness.State(), nil // User cancelled
	}

	if err := a.brightness.SavePreset(filepath.Base(selection)); err != nil {
		log.Printf("Warning: failed to save preset: %v", err)
		return a.brightness.State(), err
	}
	return a.brightness.State(), nil
}

// DeletePreset moves the named preset to the restore directory.
func (a *App) DeletePreset(name string) controller.PublicState {
	a.brightness.DeletePreset(name)
	return a.brightness.State()
}

// GetAutoStart reports whether the app is set to run at login.
func (a *App) GetAutoStart() bool {
	return a.autoStart
}

// SetAutoStart adds or removes the application from the Windows startup
// registry and remembers the choice in the preferences.
func (a *App) SetAutoStart(enabled bool) error {
	const appName = "ScreenTone"
	key, err := registry.OpenKey(registry.CURRENT_USER, `Software\Microsoft\Windows\CurrentVersion\Run`, registry.SET_VALUE|registry.QUERY_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	if enabled {
		exePath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get executable path: %w", err)
		}
		if err := key.SetStringValue(appName, fmt.Sprintf(`"%s"`, exePath)); err != nil {
			return err
		}
	} else {
		// Safe to call even if the value doesn't exist.
		if err := key.DeleteValue(appName); err != nil && err != registry.ErrNotExist {
			return err
		}
	}

	a.autoStart = enabled
	a.saveUserPrefs()
	return nil
}

// --- Helper methods ---

// saveUserPrefs overwrites the preferences file with the current window
// position and slider values. Best-effort: failures are logged only.
func (a *App) saveUserPrefs() {
	x, y := runtime.WindowGetPosition(a.ctx)
	prefs := models.Preferences{
		WindowPosition:   []int{x, y},
		BrightnessLevels: a.brightness.Levels(),
		AutoStart:        a.autoStart,
	}
	if err := a.prefStore.Save(prefs); err != nil {
		log.Printf("Warning: failed to save preferences: %v", err)
	}
}

// restoreWindowPosition moves the window to the stored position, or to
// the bottom-right corner with a margin when none is stored.
func (a *App) restoreWindowPosition() {
	prefs, err := a.prefStore.Load()
	if err != nil {
		log.Printf("Warning: could not read preferences for window position: %v", err)
	}
	if prefs.HasWindowPosition() {
		runtime.WindowSetPosition(a.ctx, prefs.WindowPosition[0], prefs.WindowPosition[1])
		return
	}
	a.positionBottomRightWithMargin()
}

func (a *App) positionBottomRightWithMargin() {
	screens, err := runtime.ScreenGetAll(a.ctx)
	if err != nil {
		log.Printf("Warning: could not query screens: %v", err)
		return
	}
	for _, screen := range screens {
		if screen.IsCurrent {
			x := screen.Size.Width - windowWidth - 20
			y := screen.Size.Height - windowHeight - 60
			runtime.WindowSetPosition(a.ctx, x, y)
			return
		}
	}
}
