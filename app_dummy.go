//go:build !windows

package main

import (
	"ScreenTone-Go/controller"
	"context"
	"log"
)

// App is a dummy struct for non-Windows systems.
type App struct {
	ctx       context.Context
	forceExit bool
}

// NewApp creates a new App application struct.
func NewApp() *App {
	return &App{}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	log.Println("Dummy App started on non-Windows platform.")
}

func (a *App) GetState() controller.PublicState {
	// Return a mock state so the UI can render something.
	return controller.PublicState{
		Displays: []controller.PublicDisplayState{
			{Name: "Monitor 1 (Dummy)", Level: 70},
			{Name: "Monitor 2 (Dummy)", Level: 40},
		},
		Dropdown: []string{controller.UnsavedPreset},
		Selected: controller.UnsavedPreset,
		Unsaved:  true,
	}
}

func (a *App) SliderChanged(display int, value int) controller.PublicState {
	log.Printf("Dummy SliderChanged called: display=%d, value=%d", display, value)
	return a.GetState()
}

func (a *App) ApplyPreset(name string) controller.PublicState {
	log.Printf("Dummy ApplyPreset called: %s", name)
	return a.GetState()
}

func (a *App) SavePreset() (controller.PublicState, error) {
	log.Println("Dummy SavePreset called")
	return a.GetState(), nil
}

func (a *App) DeletePreset(name string) controller.PublicState {
	log.Printf("Dummy DeletePreset called: %s", name)
	return a.GetState()
}

func (a *App) GetAutoStart() bool {
	return false
}

func (a *App) SetAutoStart(enabled bool) error {
	log.Printf("Dummy SetAutoStart called: %v", enabled)
	return nil
}
