package factory

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/popupbar/internal/model"
)

// Built-in widget type names
const (
	TypeLabel    = "label"
	TypeMarkdown = "markdown"
	TypeEntry    = "entry"
	TypeSlider   = "slider"
	TypeColor    = "color"
	TypeImage    = "image"
	TypeProgress = "progress"
)

func builtins() map[string]Constructor {
	return map[string]Constructor{
		TypeLabel:    newLabel,
		TypeMarkdown: newMarkdown,
		TypeEntry:    newEntry,
		TypeSlider:   newSlider,
		TypeColor:    newColor,
		TypeImage:    newImage,
		TypeProgress: newProgress,
	}
}

func newLabel(r model.Recipe) (fyne.CanvasObject, error) {
	l := widget.NewLabel(r.Get("text", ""))
	l.Wrapping = fyne.TextWrapWord
	l.Alignment = fyne.TextAlignCenter
	return l, nil
}

func newMarkdown(r model.Recipe) (fyne.CanvasObject, error) {
	rt := widget.NewRichTextFromMarkdown(r.Get("text", ""))
	rt.Wrapping = fyne.TextWrapWord
	return rt, nil
}

func newEntry(r model.Recipe) (fyne.CanvasObject, error) {
	multi, err := boolParam(r, "multiline", false)
	if err != nil {
		return nil, err
	}
	var e *widget.Entry
	if multi {
		e = widget.NewMultiLineEntry()
		e.Wrapping = fyne.TextWrapWord
	} else {
		e = widget.NewEntry()
	}
	e.SetPlaceHolder(r.Get("placeholder", ""))
	e.SetText(r.Get("text", ""))
	return e, nil
}

func newSlider(r model.Recipe) (fyne.CanvasObject, error) {
	lo, err := floatParam(r, "min", 0)
	if err != nil {
		return nil, err
	}
	hi, err := floatParam(r, "max", 100)
	if err != nil {
		return nil, err
	}
	if hi <= lo {
		return nil, fmt.Errorf("slider range [%g, %g] is empty", lo, hi)
	}
	step, err := floatParam(r, "step", 1)
	if err != nil {
		return nil, err
	}
	value, err := floatParam(r, "value", lo)
	if err != nil {
		return nil, err
	}

	s := widget.NewSlider(lo, hi)
	s.Step = step
	s.SetValue(value)
	if v := r.Get("orientation", ""); strings.EqualFold(v, "vertical") {
		s.Orientation = widget.Vertical
	}
	return s, nil
}

func newColor(r model.Recipe) (fyne.CanvasObject, error) {
	c, err := ParseHexColor(r.Get("hex", "#808080"))
	if err != nil {
		return nil, err
	}
	rect := canvas.NewRectangle(c)
	rect.CornerRadius = 4
	rect.SetMinSize(fyne.NewSize(32, 32))
	return rect, nil
}

func newImage(r model.Recipe) (fyne.CanvasObject, error) {
	path := r.Get("path", "")
	if path == "" {
		return nil, fmt.Errorf("image: missing path parameter")
	}
	img := canvas.NewImageFromFile(path)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(32, 32))
	return img, nil
}

func newProgress(r model.Recipe) (fyne.CanvasObject, error) {
	value, err := floatParam(r, "value", 0)
	if err != nil {
		return nil, err
	}
	if value < 0 || value > 1 {
		return nil, fmt.Errorf("progress value %g outside [0, 1]", value)
	}
	p := widget.NewProgressBar()
	p.SetValue(value)
	return p, nil
}

// ParseHexColor parses #rgb or #rrggbb (the # is optional)
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
