package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/popupbar/internal/model"
	"github.com/ytget/popupbar/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyGroupDir           = "group_directory"
	KeyLastGroup          = "last_group"
	KeyLastCollection     = "last_collection"
	KeyDefaultDisplayMode = "default_display_mode"
	KeyDefaultDirection   = "default_direction"
	KeyPiPScale           = "pip_scale"
	KeyEnlargedScale      = "enlarged_scale"
	KeyEnlargedSize       = "enlarged_size"
	KeyTaskbarSize        = "taskbar_size"
	KeyDisplayTitles      = "display_titles"
	KeySwapKey            = "swap_key"
	KeyResizeDebounce     = "resize_debounce_ms"
	KeyLanguage           = "app_language"
)

// Default values
const (
	DefaultSwapKey        = string(fyne.KeyTab)
	DefaultResizeDebounce = 100 * time.Millisecond
	DefaultLanguage       = "system"
	DefaultGroupName      = "default"
)

// Limits for the resize debounce
const (
	MinResizeDebounce = 10 * time.Millisecond
	MaxResizeDebounce = 2 * time.Second
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetGroupDirectory returns the directory holding group files
func (s *Settings) GetGroupDirectory() string {
	dir := s.app.Preferences().String(KeyGroupDir)
	if dir == "" {
		defaultDir, err := platform.DefaultGroupDir()
		if err != nil {
			defaultDir = "/tmp/popupbar"
		}
		s.SetGroupDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetGroupDirectory sets the directory holding group files
func (s *Settings) SetGroupDirectory(dir string) {
	s.app.Preferences().SetString(KeyGroupDir, dir)
}

// GetLastGroup returns the path of the last opened group, empty if none
func (s *Settings) GetLastGroup() string {
	return s.app.Preferences().String(KeyLastGroup)
}

// SetLastGroup remembers the opened group
func (s *Settings) SetLastGroup(path string) {
	s.app.Preferences().SetString(KeyLastGroup, path)
}

// GetLastCollection returns the last loaded collection, empty if none
func (s *Settings) GetLastCollection() string {
	return s.app.Preferences().String(KeyLastCollection)
}

// SetLastCollection remembers the loaded collection
func (s *Settings) SetLastCollection(name string) {
	s.app.Preferences().SetString(KeyLastCollection, name)
}

// GetDefaultDisplayMode returns the display mode of new bars
func (s *Settings) GetDefaultDisplayMode() model.DisplayMode {
	mode, err := model.ParseDisplayMode(s.app.Preferences().String(KeyDefaultDisplayMode))
	if err != nil {
		s.SetDefaultDisplayMode(model.DefaultDisplayMode)
		return model.DefaultDisplayMode
	}
	return mode
}

// SetDefaultDisplayMode sets the display mode of new bars
func (s *Settings) SetDefaultDisplayMode(mode model.DisplayMode) {
	if !mode.IsValid() {
		mode = model.DefaultDisplayMode
	}
	s.app.Preferences().SetString(KeyDefaultDisplayMode, string(mode))
}

// GetDefaultDirection returns the screen edge of new bars
func (s *Settings) GetDefaultDirection() model.Direction {
	dir, err := model.ParseDirection(s.app.Preferences().String(KeyDefaultDirection))
	if err != nil {
		s.SetDefaultDirection(model.DefaultDirection)
		return model.DefaultDirection
	}
	return dir
}

// SetDefaultDirection sets the screen edge of new bars
func (s *Settings) SetDefaultDirection(dir model.Direction) {
	if !dir.IsValid() {
		dir = model.DefaultDirection
	}
	s.app.Preferences().SetString(KeyDefaultDirection, string(dir))
}

// GetPiPScale returns the bar size relative to the host
func (s *Settings) GetPiPScale() float64 {
	return s.app.Preferences().FloatWithFallback(KeyPiPScale, model.DefaultScale)
}

// SetPiPScale sets the bar size relative to the host
func (s *Settings) SetPiPScale(scale float64) {
	s.app.Preferences().SetFloat(KeyPiPScale, clamp(scale, model.MinScale, model.MaxScale))
}

// GetEnlargedScale returns the enlarged slot size relative to the host
func (s *Settings) GetEnlargedScale() float64 {
	return s.app.Preferences().FloatWithFallback(KeyEnlargedScale, model.DefaultEnlargedScale)
}

// SetEnlargedScale sets the enlarged slot size relative to the host
func (s *Settings) SetEnlargedScale(scale float64) {
	s.app.Preferences().SetFloat(KeyEnlargedScale, clamp(scale, model.MinScale, model.MaxScale))
}

// GetEnlargedSize returns the enlarged slot extent in standalone taskbar mode
func (s *Settings) GetEnlargedSize() float64 {
	return s.app.Preferences().FloatWithFallback(KeyEnlargedSize, model.DefaultEnlargedSize)
}

// SetEnlargedSize sets the enlarged slot extent in standalone taskbar mode
func (s *Settings) SetEnlargedSize(size float64) {
	s.app.Preferences().SetFloat(KeyEnlargedSize, clamp(size, model.MinPixelSize, model.MaxPixelSize))
}

// GetTaskbarSize returns the taskbar icon size
func (s *Settings) GetTaskbarSize() float64 {
	return s.app.Preferences().FloatWithFallback(KeyTaskbarSize, model.DefaultTaskbarSize)
}

// SetTaskbarSize sets the taskbar icon size
func (s *Settings) SetTaskbarSize(size float64) {
	s.app.Preferences().SetFloat(KeyTaskbarSize, clamp(size, model.MinTaskbarSize, model.MaxPixelSize))
}

// GetDisplayTitles returns whether tiles show slot titles
func (s *Settings) GetDisplayTitles() bool {
	return s.app.Preferences().BoolWithFallback(KeyDisplayTitles, model.DefaultDisplayTitles)
}

// SetDisplayTitles sets whether tiles show slot titles
func (s *Settings) SetDisplayTitles(show bool) {
	s.app.Preferences().SetBool(KeyDisplayTitles, show)
}

// GetSwapKey returns the key that swaps the main view
func (s *Settings) GetSwapKey() fyne.KeyName {
	key := s.app.Preferences().String(KeySwapKey)
	if key == "" {
		s.SetSwapKey(fyne.KeyName(DefaultSwapKey))
		return fyne.KeyName(DefaultSwapKey)
	}
	return fyne.KeyName(key)
}

// SetSwapKey sets the key that swaps the main view
func (s *Settings) SetSwapKey(key fyne.KeyName) {
	if key == "" {
		key = fyne.KeyName(DefaultSwapKey)
	}
	s.app.Preferences().SetString(KeySwapKey, string(key))
}

// GetResizeDebounce returns the idle time before geometry is recomputed
// after a resize
func (s *Settings) GetResizeDebounce() time.Duration {
	ms := s.app.Preferences().Int(KeyResizeDebounce)
	if ms <= 0 {
		s.SetResizeDebounce(DefaultResizeDebounce)
		return DefaultResizeDebounce
	}
	return time.Duration(ms) * time.Millisecond
}

// SetResizeDebounce sets the resize debounce
func (s *Settings) SetResizeDebounce(d time.Duration) {
	if d < MinResizeDebounce {
		d = MinResizeDebounce
	}
	if d > MaxResizeDebounce {
		d = MaxResizeDebounce
	}
	s.app.Preferences().SetInt(KeyResizeDebounce, int(d/time.Millisecond))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// BarSettings returns the settings for a new bar built from the preferences
func (s *Settings) BarSettings() model.Settings {
	bs := model.DefaultSettings()
	scale := s.GetPiPScale()
	bs.Scale = [2]float64{scale, scale}
	bs.EnlargedScale = s.GetEnlargedScale()
	bs.EnlargedSize = s.GetEnlargedSize()
	bs.TaskbarSize = s.GetTaskbarSize()
	bs.DisplayTitles = s.GetDisplayTitles()
	bs.Direction = s.GetDefaultDirection()
	bs.DisplayMode = s.GetDefaultDisplayMode()
	return bs.Normalized()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
