package ui

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/popupbar/internal/model"
)

var errEmptyName = errors.New("name must not be empty")

// ShowSlotDialog asks for a new slot. onSubmit receives the validated spec;
// its error is shown to the user.
func ShowSlotDialog(window fyne.Window, localization *Localization, types []string, onSubmit func(model.SlotSpec) error) {
	nameEntry := widget.NewEntry()
	nameEntry.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errEmptyName
		}
		return nil
	}

	typeSelect := widget.NewSelect(types, nil)
	if len(types) > 0 {
		typeSelect.SetSelected(types[0])
	}

	paramsEntry := widget.NewEntry()
	paramsEntry.SetPlaceHolder("text=Hello&size=2")
	paramsEntry.Validator = func(s string) error {
		_, err := model.ParseRecipe(buildRecipe(typeSelect.Selected, s))
		return err
	}

	overlayTextEntry := widget.NewEntry()
	overlayImageEntry := widget.NewEntry()
	overlayImageEntry.SetPlaceHolder("icons/panel.png")

	items := []*widget.FormItem{
		widget.NewFormItem(localization.GetText(KeySlotName), nameEntry),
		widget.NewFormItem(localization.GetText(KeyWidgetType), typeSelect),
		widget.NewFormItem(localization.GetText(KeyWidgetParams), paramsEntry),
		widget.NewFormItem(localization.GetText(KeyOverlayText), overlayTextEntry),
		widget.NewFormItem(localization.GetText(KeyOverlayImage), overlayImageEntry),
	}

	d := dialog.NewForm(localization.GetText(KeyAddSlot), localization.GetText(KeySave), localization.GetText(KeyCancel), items, func(confirmed bool) {
		if !confirmed {
			return
		}
		spec := model.SlotSpec{
			Name:         strings.TrimSpace(nameEntry.Text),
			Recipe:       buildRecipe(typeSelect.Selected, paramsEntry.Text),
			OverlayText:  overlayTextEntry.Text,
			OverlayImage: strings.TrimSpace(overlayImageEntry.Text),
		}
		if err := onSubmit(spec); err != nil {
			dialog.ShowError(err, window)
		}
	}, window)
	d.Resize(fyne.NewSize(SlotDialogWidth, SlotDialogHeight))
	d.Show()
}

// buildRecipe joins a widget type and its query parameters into a recipe
func buildRecipe(typeName, params string) string {
	params = strings.TrimPrefix(strings.TrimSpace(params), "?")
	if params == "" {
		return typeName
	}
	return typeName + "?" + params
}
