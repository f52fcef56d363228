package controller

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bep/debounce"

	"ScreenTone-Go/hardware"
	"ScreenTone-Go/models"
	"ScreenTone-Go/store"
)

// UnsavedPreset is the dropdown sentinel shown whenever the current
// slider values match no saved preset.
const UnsavedPreset = "UnsavedPreset"

const (
	// defaultLevel is applied to every display after a preset is deleted.
	defaultLevel = 50
	// debounceDelay is how long a slider has to stay still before its
	// value is pushed to the hardware.
	debounceDelay = 50 * time.Millisecond
)

// PublicState is a snapshot of the controller's state for UI rendering.
type PublicState struct {
	Displays []PublicDisplayState
	Dropdown []string
	Selected string
	Unsaved  bool
}

type PublicDisplayState struct {
	Name  string
	Level int
}

// BrightnessController owns the slider values, the preset selection and
// the debounced write path to the monitor driver. All state mutation
// happens under stateMutex; hardware writes run on a single writer
// goroutine so that per-display set calls are never issued out of order.
type BrightnessController struct {
	driver  hardware.MonitorDriver
	presets *store.PresetStore

	displays    []hardware.Monitor
	levels      []int
	presetNames []string
	selected    string

	debouncers    map[int]func(func())
	debounceDelay time.Duration

	pending  map[int]int // display index -> latest level awaiting a write
	kick     chan struct{}
	inflight sync.WaitGroup

	stateMutex sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBrightnessController creates a new, uninitialized controller.
func NewBrightnessController(driver hardware.MonitorDriver, presets *store.PresetStore) *BrightnessController {
	return &BrightnessController{
		driver:        driver,
		presets:       presets,
		selected:      UnsavedPreset,
		debouncers:    make(map[int]func(func())),
		debounceDelay: debounceDelay,
		pending:       make(map[int]int),
		kick:          make(chan struct{}, 1),
	}
}

// Start launches the brightness writer goroutine.
func (c *BrightnessController) Start() {
	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()

	if c.cancel != nil {
		return // Already running
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.wg.Add(1)
	go c.writeLoop()
	log.Println("Brightness controller started.")
}

// Stop gracefully terminates the writer goroutine. Pending writes that
// were already picked up complete; the rest are dropped.
func (c *BrightnessController) Stop() {
	c.stateMutex.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.stateMutex.Unlock()

	if cancel != nil {
		cancel()
		c.wg.Wait()
		log.Println("Brightness controller stopped.")
	}
}

// LoadDisplays enumerates the connected displays and initializes each
// slider from the hardware-reported brightness. It also refreshes the
// preset list. Called at startup (after the window has rendered) and
// again when the display set changes.
func (c *BrightnessController) LoadDisplays() error {
	monitors, err := c.driver.Enumerate()
	if err != nil {
		return fmt.Errorf("display enumeration failed: %w", err)
	}

	levels := make([]int, len(monitors))
	for i := range monitors {
		value, err := c.driver.GetBrightness(i)
		if err != nil {
			log.Printf("Warning: failed to read brightness of display %d: %v", i, err)
			value = defaultLevel
		}
		levels[i] = value
	}

	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()
	c.displays = monitors
	c.levels = levels
	c.selected = UnsavedPreset
	c.reloadPresetsLocked()
	return nil
}

// ApplyPreferences pushes the remembered brightness levels to the
// displays and reconciles the preset selection: the first preset in
// sorted order whose full stored sequence equals the preference sequence
// becomes selected. Levels beyond the current display count are ignored,
// but matching is done against the full stored sequence.
func (c *BrightnessController) ApplyPreferences(prefs *models.Preferences) {
	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()

	if prefs == nil || prefs.BrightnessLevels == nil {
		return
	}

	for i, value := range prefs.BrightnessLevels {
		if i >= len(c.levels) {
			break
		}
		c.levels[i] = clampLevel(value)
		c.enqueueLocked(i, c.levels[i])
	}

	c.selected = UnsavedPreset
	for _, name := range c.presetNames {
		stored, err := c.presets.Load(name)
		if err != nil {
			log.Printf("Warning: could not read preset %q: %v", name, err)
			continue
		}
		if models.LevelsEqual(stored, prefs.BrightnessLevels) {
			c.selected = name
			break
		}
	}
}

// SliderChanged records a slider movement. Editing deselects a matched
// preset, and the hardware write is debounced so that only the final
// value of a burst of movements is issued.
func (c *BrightnessController) SliderChanged(display, value int) {
	value = clampLevel(value)

	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()

	if display < 0 || display >= len(c.levels) {
		return
	}
	if c.levels[display] == value {
		return
	}
	c.levels[display] = value
	c.selected = UnsavedPreset

	debounced, ok := c.debouncers[display]
	if !ok {
		debounced = debounce.New(c.debounceDelay)
		c.debouncers[display] = debounced
	}
	debounced(func() {
		c.enqueue(display, value)
	})
}

// ApplyPreset loads the named preset and pushes its levels to the
// displays. Entries beyond the display count are ignored. On a load
// failure the current state is left untouched.
func (c *BrightnessController) ApplyPreset(name string) {
	if name == "" || name == UnsavedPreset {
		return
	}

	levels, err := c.presets.Load(name)
	if err != nil {
		log.Printf("Warning: could not apply preset %q: %v", name, err)
		return
	}

	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()
	for i, value := range levels {
		if i >= len(c.levels) {
			break
		}
		c.levels[i] = clampLevel(value)
		c.enqueueLocked(i, c.levels[i])
	}
	c.selected = name
}

// SavePreset writes the current slider values under the given name and
// selects the freshly saved preset.
func (c *BrightnessController) SavePreset(name string) error {
	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()

	saved, err := c.presets.Save(name, append([]int(nil), c.levels...))
	if err != nil {
		return err
	}
	c.reloadPresetsLocked()
	c.selected = saved
	return nil
}

// DeletePreset soft-deletes the named preset, resets every display to
// the default level and deselects. Deleting a preset that does not
// exist leaves levels and selection untouched. A failed move is logged
// and ignored; the preset then simply remains listed.
func (c *BrightnessController) DeletePreset(name string) {
	if name == "" || name == UnsavedPreset {
		return
	}

	existed, err := c.presets.Delete(name)
	if err != nil {
		log.Printf("Warning: could not delete preset %q: %v", name, err)
	}
	if !existed {
		return
	}

	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()
	c.reloadPresetsLocked()
	for i := range c.levels {
		c.levels[i] = defaultLevel
		c.enqueueLocked(i, defaultLevel)
	}
	c.selected = UnsavedPreset
}

// Levels returns a copy of the current slider values.
func (c *BrightnessController) Levels() []int {
	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()
	return append([]int(nil), c.levels...)
}

// State returns a snapshot for UI rendering. When no preset is matched
// the dropdown starts with the sentinel entry, followed by all known
// preset names in sorted order.
func (c *BrightnessController) State() PublicState {
	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()

	state := PublicState{
		Displays: make([]PublicDisplayState, len(c.displays)),
		Selected: c.selected,
		Unsaved:  c.selected == UnsavedPreset,
	}
	for i, m := range c.displays {
		state.Displays[i] = PublicDisplayState{Name: m.Name, Level: c.levels[i]}
	}
	if state.Unsaved {
		state.Dropdown = append([]string{UnsavedPreset}, c.presetNames...)
	} else {
		state.Dropdown = append([]string(nil), c.presetNames...)
	}
	return state
}

// WaitIdle blocks until every enqueued hardware write has completed.
// Used by tests to make write completion observable.
func (c *BrightnessController) WaitIdle() {
	c.inflight.Wait()
}

// reloadPresetsLocked re-derives the preset list by directory scan.
// Caller must hold stateMutex.
func (c *BrightnessController) reloadPresetsLocked() {
	names, err := c.presets.List()
	if err != nil {
		log.Printf("Warning: could not list presets: %v", err)
		return
	}
	c.presetNames = names
}

func (c *BrightnessController) enqueue(display, value int) {
	c.stateMutex.Lock()
	c.enqueueLocked(display, value)
	c.stateMutex.Unlock()
}

// enqueueLocked records the latest wanted level for a display and wakes
// the writer. An already-pending value for the same display is replaced,
// so only the newest value is ever written. Caller must hold stateMutex.
func (c *BrightnessController) enqueueLocked(display, value int) {
	if _, ok := c.pending[display]; !ok {
		c.inflight.Add(1)
	}
	c.pending[display] = value
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// writeLoop is the single brightness writer. Draining one display at a
// time keeps per-display writes ordered while allowing different
// displays to be served in any order.
func (c *BrightnessController) writeLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.kick:
			for {
				c.stateMutex.Lock()
				display, value, ok := takePending(c.pending)
				c.stateMutex.Unlock()
				if !ok {
					break
				}
				if err := c.driver.SetBrightness(display, value); err != nil {
					log.Printf("Warning: failed to set brightness on display %d: %v", display, err)
				}
				c.inflight.Done()
			}
		}
	}
}

func takePending(pending map[int]int) (display, value int, ok bool) {
	for d, v := range pending {
		delete(pending, d)
		return d, v, true
	}
	return 0, 0, false
}

func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
