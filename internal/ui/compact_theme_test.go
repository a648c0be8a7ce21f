package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

func TestPanelThemeSizes(t *testing.T) {
	th := NewPanelTheme(false)
	if got, want := th.Size(theme.SizeNamePadding), theme.DefaultTheme().Size(theme.SizeNamePadding); got != want {
		t.Errorf("Regular padding = %v, want %v", got, want)
	}

	th.SetCompact(true)
	if !th.Compact() {
		t.Fatal("Theme should be compact")
	}
	if got := th.Size(theme.SizeNamePadding); got != 2 {
		t.Errorf("Compact padding = %v, want 2", got)
	}
	if got, want := th.Size(theme.SizeNameSeparatorThickness), theme.DefaultTheme().Size(theme.SizeNameSeparatorThickness); got != want {
		t.Errorf("Unlisted sizes should come from the default theme, got %v want %v", got, want)
	}
}

func TestPanelThemeColors(t *testing.T) {
	th := NewPanelTheme(false)

	for _, name := range []fyne.ThemeColorName{ColorNameSpacer, ColorNameTile, ColorNameTileHover, ColorNameHost} {
		if th.Color(name, theme.VariantLight) == nil {
			t.Errorf("Color %s should be defined", name)
		}
	}

	light := th.Color(ColorNameTile, theme.VariantLight)
	dark := th.Color(ColorNameTile, theme.VariantDark)
	if light == dark {
		t.Error("Tile color should follow the variant")
	}

	if th.Color(theme.ColorNamePrimary, theme.VariantLight) == nil {
		t.Error("Stock colors should come from the default theme")
	}
}
