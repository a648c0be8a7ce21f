package model

// Default values for bar settings
const (
	DefaultScale         = 0.3
	DefaultEnlargedScale = 0.85
	DefaultEnlargedSize  = 500.0
	DefaultTaskbarSize   = 50.0
	DefaultDisplayTitles = true
	DefaultDirection     = DirectionSouth
	DefaultDisplayMode   = ModePiP
)

// Bounds for user-editable values
const (
	MinScale       = 0.05
	MaxScale       = 1.0
	MinPixelSize   = 16.0
	MaxPixelSize   = 4096.0
	MinTaskbarSize = 16.0
)

// Settings holds the display settings of a bar. It is persisted together
// with the slot specs of a collection.
type Settings struct {
	Scale         [2]float64 // PiP bar size relative to the host (width, height)
	EnlargedScale float64    // PiP: enlarged slot size relative to the host
	EnlargedSize  float64    // standalone taskbar: enlarged slot extent in pixels
	DisplayTitles bool
	Direction     Direction
	DisplayMode   DisplayMode
	TaskbarSize   float64 // taskbar modes: icon size in pixels
	Sizes         []int   // splitter sizes, best effort
}

// DefaultSettings returns settings for a fresh bar
func DefaultSettings() Settings {
	return Settings{
		Scale:         [2]float64{DefaultScale, DefaultScale},
		EnlargedScale: DefaultEnlargedScale,
		EnlargedSize:  DefaultEnlargedSize,
		DisplayTitles: DefaultDisplayTitles,
		Direction:     DefaultDirection,
		DisplayMode:   DefaultDisplayMode,
		TaskbarSize:   DefaultTaskbarSize,
	}
}

// Clone returns a copy that shares no memory with s
func (s Settings) Clone() Settings {
	c := s
	if s.Sizes != nil {
		c.Sizes = append([]int(nil), s.Sizes...)
	}
	return c
}

// Normalized returns a copy with out-of-range values clamped and unknown
// enums replaced by defaults
func (s Settings) Normalized() Settings {
	c := s.Clone()
	for i := range c.Scale {
		c.Scale[i] = clamp(c.Scale[i], MinScale, MaxScale, DefaultScale)
	}
	c.EnlargedScale = clamp(c.EnlargedScale, MinScale, MaxScale, DefaultEnlargedScale)
	c.EnlargedSize = clamp(c.EnlargedSize, MinPixelSize, MaxPixelSize, DefaultEnlargedSize)
	c.TaskbarSize = clamp(c.TaskbarSize, MinTaskbarSize, MaxPixelSize, DefaultTaskbarSize)
	if !c.Direction.IsValid() {
		c.Direction = DefaultDirection
	}
	if !c.DisplayMode.IsValid() {
		c.DisplayMode = DefaultDisplayMode
	}
	return c
}

// ForMode returns a copy prepared for mode: settings that only apply to
// taskbar modes are reset when moving to PIP, and layout sizes are dropped
// whenever the mode changes.
func (s Settings) ForMode(mode DisplayMode) Settings {
	c := s.Clone()
	if c.DisplayMode != mode {
		c.Sizes = nil
	}
	if !mode.IsTaskbar() {
		c.TaskbarSize = DefaultTaskbarSize
	}
	if mode != ModeStandaloneTaskbar {
		c.EnlargedSize = DefaultEnlargedSize
	}
	c.DisplayMode = mode
	return c
}

// clamp returns def for zero values, otherwise v limited to [lo, hi]
func clamp(v, lo, hi, def float64) float64 {
	if v == 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
