package ui

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/popupbar/internal/config"
	"github.com/ytget/popupbar/internal/model"
)

// SwapKeyOptions lists the keys offered for swapping the enlarged slot
var SwapKeyOptions = []fyne.KeyName{
	fyne.KeyTab,
	fyne.KeySpace,
	fyne.KeyReturn,
	fyne.KeyF1,
	fyne.KeyF2,
	fyne.KeyF3,
	fyne.KeyF4,
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	groupDirEntry       *widget.Entry
	pipScaleSlider      *widget.Slider
	pipScaleLabel       *widget.Label
	enlargedScaleSlider *widget.Slider
	enlargedScaleLabel  *widget.Label
	enlargedSizeEntry   *widget.Entry
	taskbarSizeEntry    *widget.Entry
	displayTitlesCheck  *widget.Check
	modeSelect          *widget.Select
	directionSelect     *widget.Select
	swapKeySelect       *widget.Select
	debounceEntry       *widget.Entry
	languageSelect      *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog shows the settings dialog and calls onSaved after the
// preferences were written
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	// Group directory selection
	sd.groupDirEntry = widget.NewEntry()
	sd.groupDirEntry.SetPlaceHolder("~/.popupbar")

	browseDirBtn := widget.NewButton(loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	groupDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.groupDirEntry)

	// Scales
	sd.pipScaleLabel = widget.NewLabel("")
	sd.pipScaleSlider = newScaleSlider(0.05, 0.5, sd.pipScaleLabel)
	sd.enlargedScaleLabel = widget.NewLabel("")
	sd.enlargedScaleSlider = newScaleSlider(0.1, 1, sd.enlargedScaleLabel)

	// Sizes
	sd.enlargedSizeEntry = widget.NewEntry()
	sd.enlargedSizeEntry.SetPlaceHolder("100-2000")
	sd.taskbarSizeEntry = widget.NewEntry()
	sd.taskbarSizeEntry.SetPlaceHolder("16-200")

	sd.displayTitlesCheck = widget.NewCheck(loc.GetText(KeyDisplayTitles), nil)

	// Defaults for new bars
	modeOptions := []string{}
	for _, mode := range model.DisplayModes() {
		modeOptions = append(modeOptions, mode.String())
	}
	sd.modeSelect = widget.NewSelect(modeOptions, nil)

	directionOptions := []string{}
	for _, dir := range model.Directions() {
		directionOptions = append(directionOptions, dir.String())
	}
	sd.directionSelect = widget.NewSelect(directionOptions, nil)

	// Keyboard
	keyOptions := []string{}
	for _, key := range SwapKeyOptions {
		keyOptions = append(keyOptions, string(key))
	}
	sd.swapKeySelect = widget.NewSelect(keyOptions, nil)

	sd.debounceEntry = widget.NewEntry()
	sd.debounceEntry.SetPlaceHolder("ms")

	// Language selection
	languageOptions := []string{}
	languageLabels := sd.settings.GetLanguageOptions()
	for code := range languageLabels {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = loc.GetText(KeyLanguage)

	label := func(key string) *widget.Label {
		return widget.NewLabel(loc.GetText(key) + ":")
	}

	// Create form
	form := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyBarSettings)),
		widget.NewSeparator(),

		label(KeyGroupDirectory),
		groupDirRow,

		label(KeyPiPScale),
		container.NewBorder(nil, nil, nil, sd.pipScaleLabel, sd.pipScaleSlider),

		label(KeyEnlargedScale),
		container.NewBorder(nil, nil, nil, sd.enlargedScaleLabel, sd.enlargedScaleSlider),

		container.NewGridWithColumns(2,
			container.NewVBox(label(KeyEnlargedSize), sd.enlargedSizeEntry),
			container.NewVBox(label(KeyTaskbarSize), sd.taskbarSizeEntry),
		),

		container.NewGridWithColumns(2,
			container.NewVBox(label(KeyDefaultMode), sd.modeSelect),
			container.NewVBox(label(KeyDefaultDirection), sd.directionSelect),
		),

		sd.displayTitlesCheck,

		widget.NewSeparator(),
		widget.NewLabel(loc.GetText(KeyInterfaceSettings)),
		widget.NewSeparator(),

		container.NewGridWithColumns(2,
			container.NewVBox(label(KeySwapKey), sd.swapKeySelect),
			container.NewVBox(label(KeyResizeDebounce), sd.debounceEntry),
		),

		label(KeyLanguage),
		sd.languageSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// newScaleSlider creates a slider for a share of the window. The label
// follows the value as a percentage.
func newScaleSlider(lo, hi float64, label *widget.Label) *widget.Slider {
	s := widget.NewSlider(lo, hi)
	s.Step = 0.01
	s.OnChanged = func(v float64) {
		label.SetText(formatPercent(v))
	}
	return s
}

// formatPercent formats a share as a whole percentage
func formatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.groupDirEntry.SetText(sd.settings.GetGroupDirectory())
	sd.pipScaleSlider.SetValue(sd.settings.GetPiPScale())
	sd.pipScaleLabel.SetText(formatPercent(sd.settings.GetPiPScale()))
	sd.enlargedScaleSlider.SetValue(sd.settings.GetEnlargedScale())
	sd.enlargedScaleLabel.SetText(formatPercent(sd.settings.GetEnlargedScale()))
	sd.enlargedSizeEntry.SetText(strconv.FormatFloat(sd.settings.GetEnlargedSize(), 'f', -1, 64))
	sd.taskbarSizeEntry.SetText(strconv.FormatFloat(sd.settings.GetTaskbarSize(), 'f', -1, 64))
	sd.displayTitlesCheck.SetChecked(sd.settings.GetDisplayTitles())
	sd.modeSelect.SetSelected(sd.settings.GetDefaultDisplayMode().String())
	sd.directionSelect.SetSelected(sd.settings.GetDefaultDirection().String())
	sd.swapKeySelect.SetSelected(string(sd.settings.GetSwapKey()))
	sd.debounceEntry.SetText(strconv.FormatInt(sd.settings.GetResizeDebounce().Milliseconds(), 10))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.groupDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Save group directory
	if dir := sd.groupDirEntry.Text; dir != "" {
		sd.settings.SetGroupDirectory(dir)
	}

	sd.settings.SetPiPScale(sd.pipScaleSlider.Value)
	sd.settings.SetEnlargedScale(sd.enlargedScaleSlider.Value)

	// Validate and save sizes; unparsable input keeps the old value
	if size, err := strconv.ParseFloat(sd.enlargedSizeEntry.Text, 64); err == nil {
		sd.settings.SetEnlargedSize(size)
	}
	if size, err := strconv.ParseFloat(sd.taskbarSizeEntry.Text, 64); err == nil {
		sd.settings.SetTaskbarSize(size)
	}

	sd.settings.SetDisplayTitles(sd.displayTitlesCheck.Checked)

	if mode, err := model.ParseDisplayMode(sd.modeSelect.Selected); err == nil {
		sd.settings.SetDefaultDisplayMode(mode)
	}
	if dir, err := model.ParseDirection(sd.directionSelect.Selected); err == nil {
		sd.settings.SetDefaultDirection(dir)
	}

	if sd.swapKeySelect.Selected != "" {
		sd.settings.SetSwapKey(fyne.KeyName(sd.swapKeySelect.Selected))
	}
	if ms, err := strconv.Atoi(sd.debounceEntry.Text); err == nil {
		sd.settings.SetResizeDebounce(time.Duration(ms) * time.Millisecond)
	}

	// Save language
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
		return
	}

	// Show confirmation
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
