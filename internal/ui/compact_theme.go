package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Colors the bar adds on top of the stock theme
const (
	ColorNameSpacer    fyne.ThemeColorName = "popupbarSpacer"
	ColorNameTile      fyne.ThemeColorName = "popupbarTile"
	ColorNameTileHover fyne.ThemeColorName = "popupbarTileHover"
	ColorNameHost      fyne.ThemeColorName = "popupbarHost"
)

// PanelTheme is the theme context shared by the bar, its tiles and the
// enlarged presentation. Compact mode shrinks padding and text for taskbar
// style bars.
type PanelTheme struct {
	compact bool
}

// NewPanelTheme creates the application theme
func NewPanelTheme(compact bool) *PanelTheme {
	return &PanelTheme{compact: compact}
}

// Compact reports whether reduced sizes are in use
func (t *PanelTheme) Compact() bool {
	return t.compact
}

// SetCompact switches between regular and compact sizes
func (t *PanelTheme) SetCompact(compact bool) {
	t.compact = compact
}

// Color returns theme colors
func (t *PanelTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case ColorNameSpacer:
		if dark {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 24}
		}
		return color.NRGBA{R: 0, G: 0, B: 0, A: 20}
	case ColorNameTile:
		if dark {
			return color.NRGBA{R: 40, G: 40, B: 40, A: 255}
		}
		return color.NRGBA{R: 236, G: 236, B: 236, A: 255}
	case ColorNameTileHover:
		return color.NRGBA{R: 25, G: 118, B: 210, A: 64}
	case ColorNameHost:
		if dark {
			return color.NRGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 25, G: 118, B: 210, A: 255}
	case theme.ColorNameError:
		return color.NRGBA{R: 183, G: 28, B: 28, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *PanelTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *PanelTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes, reduced in compact mode
func (t *PanelTheme) Size(name fyne.ThemeSizeName) float32 {
	if !t.compact {
		return theme.DefaultTheme().Size(name)
	}

	switch name {
	case theme.SizeNamePadding:
		return 2
	case theme.SizeNameInnerPadding:
		return 4
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 10
	case theme.SizeNameText:
		return 12
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}

// themeColor reads a color from the running app's theme
func themeColor(name fyne.ThemeColorName) color.Color {
	app := fyne.CurrentApp()
	if app == nil {
		return theme.DefaultTheme().Color(name, theme.VariantLight)
	}
	return app.Settings().Theme().Color(name, app.Settings().ThemeVariant())
}
