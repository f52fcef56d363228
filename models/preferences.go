package models

// Preferences holds the persisted user state.
// These are stored in user_prefs.json and rewritten in full whenever the
// window is hidden to the tray or the application quits.
type Preferences struct {
	WindowPosition   []int `json:"window_position,omitempty"`
	BrightnessLevels []int `json:"brightness_levels"`
	AutoStart        bool  `json:"auto_start,omitempty"`
}

// HasWindowPosition reports whether a usable window position was stored.
func (p *Preferences) HasWindowPosition() bool {
	return p != nil && len(p.WindowPosition) >= 2
}
