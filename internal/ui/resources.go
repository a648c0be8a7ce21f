package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const (
	AppIcon = "popupbar.png"
)

// LoadLogoResource loads the application icon from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// NewOverlayImage shows a resolved overlay image file scaled into its tile
func NewOverlayImage(path string) *canvas.Image {
	img := canvas.NewImageFromFile(path)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(TileMinSize, TileMinSize))
	return img
}

// NewOverlayLabel shows overlay text when a slot has no usable image
func NewOverlayLabel(text string) *widget.Label {
	runes := []rune(text)
	if len(runes) > TitleMaxLen {
		text = string(runes[:TitleMaxLen-1]) + "…"
	}
	label := widget.NewLabel(text)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.Truncation = fyne.TextTruncateEllipsis
	return label
}
