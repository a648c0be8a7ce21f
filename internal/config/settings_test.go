package config

import (
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/ytget/popupbar/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestGroupDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetGroupDirectory()
	if dir == "" {
		t.Error("Group directory should not be empty")
	}
	if filepath.Base(dir) != ".popupbar" && dir != "/tmp/popupbar" {
		t.Errorf("Unexpected default group directory %s", dir)
	}

	// Test setting custom value
	customDir := "/custom/groups"
	settings.SetGroupDirectory(customDir)

	if got := settings.GetGroupDirectory(); got != customDir {
		t.Errorf("Expected group directory %s, got %s", customDir, got)
	}
}

func TestLastGroupAndCollection(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetLastGroup() != "" || settings.GetLastCollection() != "" {
		t.Error("Last group and collection should start empty")
	}

	settings.SetLastGroup("/groups/main.json")
	settings.SetLastCollection("Foo")

	if got := settings.GetLastGroup(); got != "/groups/main.json" {
		t.Errorf("Expected last group /groups/main.json, got %s", got)
	}
	if got := settings.GetLastCollection(); got != "Foo" {
		t.Errorf("Expected last collection Foo, got %s", got)
	}
}

func TestDefaultDisplayMode(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if mode := settings.GetDefaultDisplayMode(); mode != model.DefaultDisplayMode {
		t.Errorf("Expected default mode %s, got %s", model.DefaultDisplayMode, mode)
	}

	settings.SetDefaultDisplayMode(model.ModeStandaloneTaskbar)
	if mode := settings.GetDefaultDisplayMode(); mode != model.ModeStandaloneTaskbar {
		t.Errorf("Expected mode %s, got %s", model.ModeStandaloneTaskbar, mode)
	}

	// Invalid values fall back to the default
	settings.SetDefaultDisplayMode("SIDEWAYS")
	if mode := settings.GetDefaultDisplayMode(); mode != model.DefaultDisplayMode {
		t.Errorf("Invalid mode should fall back to %s, got %s", model.DefaultDisplayMode, mode)
	}
}

func TestDefaultDirection(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if dir := settings.GetDefaultDirection(); dir != model.DefaultDirection {
		t.Errorf("Expected default direction %s, got %s", model.DefaultDirection, dir)
	}

	settings.SetDefaultDirection(model.DirectionWest)
	if dir := settings.GetDefaultDirection(); dir != model.DirectionWest {
		t.Errorf("Expected direction west, got %s", dir)
	}
}

func TestScalesAreClamped(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetPiPScale(); got != model.DefaultScale {
		t.Errorf("Expected default scale %v, got %v", model.DefaultScale, got)
	}

	settings.SetPiPScale(3)
	if got := settings.GetPiPScale(); got != model.MaxScale {
		t.Errorf("Scale should be clamped to %v, got %v", model.MaxScale, got)
	}

	settings.SetEnlargedScale(0.001)
	if got := settings.GetEnlargedScale(); got != model.MinScale {
		t.Errorf("Enlarged scale should be clamped to %v, got %v", model.MinScale, got)
	}

	settings.SetEnlargedSize(1e6)
	if got := settings.GetEnlargedSize(); got != model.MaxPixelSize {
		t.Errorf("Enlarged size should be clamped to %v, got %v", model.MaxPixelSize, got)
	}

	settings.SetTaskbarSize(2)
	if got := settings.GetTaskbarSize(); got != model.MinTaskbarSize {
		t.Errorf("Taskbar size should be clamped to %v, got %v", model.MinTaskbarSize, got)
	}
}

func TestSwapKey(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if key := settings.GetSwapKey(); key != fyne.KeyTab {
		t.Errorf("Expected default swap key Tab, got %s", key)
	}

	settings.SetSwapKey(fyne.KeySpace)
	if key := settings.GetSwapKey(); key != fyne.KeySpace {
		t.Errorf("Expected swap key Space, got %s", key)
	}

	settings.SetSwapKey("")
	if key := settings.GetSwapKey(); key != fyne.KeyTab {
		t.Errorf("Empty swap key should default to Tab, got %s", key)
	}
}

func TestResizeDebounce(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if d := settings.GetResizeDebounce(); d != DefaultResizeDebounce {
		t.Errorf("Expected default debounce %v, got %v", DefaultResizeDebounce, d)
	}

	settings.SetResizeDebounce(250 * time.Millisecond)
	if d := settings.GetResizeDebounce(); d != 250*time.Millisecond {
		t.Errorf("Expected debounce 250ms, got %v", d)
	}

	settings.SetResizeDebounce(time.Hour)
	if d := settings.GetResizeDebounce(); d != MaxResizeDebounce {
		t.Errorf("Debounce should be clamped to %v, got %v", MaxResizeDebounce, d)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("en")
	if lang := settings.GetLanguage(); lang != "en" {
		t.Errorf("Expected language 'en', got %s", lang)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}

func TestBarSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)
	settings.SetPiPScale(0.4)
	settings.SetDefaultDirection(model.DirectionNorth)
	settings.SetDisplayTitles(false)

	bs := settings.BarSettings()
	if bs.Scale != [2]float64{0.4, 0.4} {
		t.Errorf("Expected scale (0.4, 0.4), got %v", bs.Scale)
	}
	if bs.Direction != model.DirectionNorth {
		t.Errorf("Expected direction north, got %s", bs.Direction)
	}
	if bs.DisplayTitles {
		t.Error("Display titles should be off")
	}
}
