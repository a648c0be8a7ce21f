package ui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/popupbar/internal/config"
	"github.com/ytget/popupbar/internal/enlarge"
	"github.com/ytget/popupbar/internal/model"
	"github.com/ytget/popupbar/internal/persist"
	"github.com/ytget/popupbar/internal/pip"
	"github.com/ytget/popupbar/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	theme        *PanelTheme

	manager   *pip.Manager
	popupBar  *PopupBar
	scheduler *LoopScheduler
	resize    *Debouncer
	store     *persist.Store
	watcher   *persist.Watcher
	organizer *Organizer

	// UI components
	host       *fyne.Container
	hostHint   *widget.Label
	area       *fyne.Container
	areaLayout *areaLayout

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationMutex     sync.Mutex
	notificationGen       int
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		scheduler:    NewLoopScheduler(),
	}

	ui.popupBar = NewPopupBar(window, localization, ui.scheduler)
	ui.popupBar.SetErrorHandler(ui.showError)
	ui.manager = pip.NewManager(pip.Options{
		Settings:  settings.BarSettings(),
		Presenter: ui.popupBar,
		Scheduler: ui.scheduler,
	})
	ui.resize = NewDebouncer(settings.GetResizeDebounce(), func() {
		fyne.Do(ui.onResizeSettled)
	})

	ui.theme = NewPanelTheme(ui.manager.Bar().DisplayMode().IsTaskbar())
	app.Settings().SetTheme(ui.theme)

	ui.openStore(settings.GetGroupDirectory())

	ui.setupUI()

	// The bar subscribes first so tiles exist before the host is refreshed
	ui.popupBar.Bind(ui.manager)
	ui.manager.Subscribe(ui.onManagerChange)
	ui.manager.SetRects(ui.hostRect, ui.popupBar.Rect)

	ui.openLastGroup()
	ui.refreshHost()
	ui.refreshUITexts()

	window.SetOnClosed(ui.shutdown)

	log.Printf("RootUI initialized with group directory %s", ui.store.Dir())
	return ui
}

// Manager returns the popup bar manager
func (ui *RootUI) Manager() *pip.Manager {
	return ui.manager
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	// Host view showing the main view slot
	ui.hostHint = widget.NewLabel(ui.localization.GetText(KeyNoMainView))
	ui.hostHint.Alignment = fyne.TextAlignCenter
	ui.hostHint.Wrapping = fyne.TextWrapWord
	ui.host = container.NewStack(canvas.NewRectangle(themeColor(ColorNameHost)))

	ui.areaLayout = &areaLayout{
		settings: func() model.Settings { return ui.manager.Bar().Settings() },
		onResize: func(fyne.Size) { ui.resize.Trigger() },
	}
	ui.area = container.New(ui.areaLayout, ui.host, ui.popupBar.Object())

	// Create notification panel (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Truncation = fyne.TextTruncateEllipsis
	ui.notificationContainer = container.NewPadded(ui.notificationLabel)
	ui.notificationContainer.Hide()

	// The float layer shares the area's origin so rects match
	content := container.NewBorder(
		ui.notificationContainer, // top
		nil,                      // bottom
		nil,                      // left
		nil,                      // right
		container.NewStack(ui.area, ui.popupBar.FloatLayer()),
	)

	ui.window.SetContent(content)
	ui.window.Canvas().SetOnTypedKey(ui.onTypedKey)

	// UI setup completed
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	loc := ui.localization

	// File menu
	openItem := fyne.NewMenuItem(loc.GetText(KeyOpenGroup), ui.onOpenGroup)
	newItem := fyne.NewMenuItem(loc.GetText(KeyNewGroup), ui.onNewGroup)
	duplicateItem := fyne.NewMenuItem(loc.GetText(KeyDuplicateGroup), ui.onDuplicateGroup)
	revealItem := fyne.NewMenuItem(loc.GetText(KeyRevealGroup), ui.onRevealGroup)
	editItem := fyne.NewMenuItem(loc.GetText(KeyEditGroupFile), ui.onEditGroupFile)
	lockItem := fyne.NewMenuItem(loc.GetText(KeyLockGroup), ui.onToggleLock)
	saveItem := fyne.NewMenuItem(loc.GetText(KeySaveCollection), ui.onSaveCollection)
	saveAsItem := fyne.NewMenuItem(loc.GetText(KeySaveCollectionAs), ui.onSaveCollectionAs)
	organizerItem := fyne.NewMenuItem(loc.GetText(KeyOrganizer), ui.onShowOrganizer)
	settingsItem := fyne.NewMenuItem(loc.GetText(KeySettings), ui.onShowSettings)

	if ui.manager != nil {
		g := ui.manager.Group()
		if g == nil {
			for _, item := range []*fyne.MenuItem{duplicateItem, revealItem, editItem, lockItem, saveItem, saveAsItem} {
				item.Disabled = true
			}
		} else if g.Locked {
			lockItem.Label = loc.GetText(KeyUnlockGroup)
			saveItem.Disabled = true
			saveAsItem.Disabled = true
		}
	}

	fileMenu := fyne.NewMenu(loc.GetText(KeyFile),
		openItem, newItem, duplicateItem, revealItem, editItem, lockItem,
		fyne.NewMenuItemSeparator(),
		saveItem, saveAsItem, organizerItem,
		fyne.NewMenuItemSeparator(),
		settingsItem,
	)

	// Bar menu
	addItem := fyne.NewMenuItem(loc.GetText(KeyAddSlot), ui.onAddSlot)
	clearItem := fyne.NewMenuItem(loc.GetText(KeyClearBar), ui.onClearBar)
	releaseItem := fyne.NewMenuItem(loc.GetText(KeyReleaseMain), ui.onReleaseMain)

	modeItem := fyne.NewMenuItem(loc.GetText(KeyDisplayMode), nil)
	modeItem.ChildMenu = fyne.NewMenu("")
	directionItem := fyne.NewMenuItem(loc.GetText(KeyDirection), nil)
	directionItem.ChildMenu = fyne.NewMenu("")
	if ui.manager != nil {
		current := ui.manager.Bar().Settings()
		for _, mode := range model.DisplayModes() {
			mode := mode
			item := fyne.NewMenuItem(mode.String(), func() { ui.onConvert(mode) })
			item.Checked = current.DisplayMode == mode
			modeItem.ChildMenu.Items = append(modeItem.ChildMenu.Items, item)
		}
		for _, dir := range model.Directions() {
			dir := dir
			item := fyne.NewMenuItem(dir.String(), func() { ui.manager.SetDirection(dir) })
			item.Checked = current.Direction == dir
			directionItem.ChildMenu.Items = append(directionItem.ChildMenu.Items, item)
		}
	}

	barMenu := fyne.NewMenu(loc.GetText(KeyBar),
		addItem, releaseItem, clearItem,
		fyne.NewMenuItemSeparator(),
		modeItem, directionItem,
	)

	// Language submenu
	languageMenu := fyne.NewMenu(loc.GetText(KeyLanguage))

	availableLanguages := loc.GetAvailableLanguages()
	codes := make([]string, 0, len(availableLanguages))
	for code := range availableLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if loc.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, barMenu, languageMenu))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	// Update localization
	ui.localization.SetLanguage(langCode)

	// Save to settings
	ui.settings.SetLanguage(langCode)

	// Update UI texts
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.updateTitle()
	ui.hostHint.SetText(ui.localization.GetText(KeyNoMainView))

	// Recreate menu to update labels and checkmarks
	ui.createMenu()
	ui.popupBar.Rebuild()
	if ui.organizer != nil {
		ui.organizer.Refresh()
	}
}

// updateTitle shows the open group and collection in the window title
func (ui *RootUI) updateTitle() {
	title := ui.localization.GetText(KeyAppTitle)
	if g := ui.manager.Group(); g != nil {
		name := g.Name()
		if g.Locked {
			name = fmt.Sprintf(LockedTitleFormat, name)
		}
		title += MiddleDotSeparator + name
		if c := ui.manager.CollectionName(); c != "" {
			title += MiddleDotSeparator + c
		}
	}
	ui.window.SetTitle(title)
}

// onManagerChange follows the manager state
func (ui *RootUI) onManagerChange(c pip.Change) {
	switch c.Kind {
	case pip.ChangeCurrent:
		ui.refreshHost()
	case pip.ChangeBar, pip.ChangeSettings:
		compact := ui.manager.Bar().DisplayMode().IsTaskbar()
		if compact != ui.theme.Compact() {
			ui.theme.SetCompact(compact)
			ui.app.Settings().SetTheme(ui.theme)
		}
		ui.refreshHost()
		ui.area.Refresh()
		ui.createMenu()
		ui.resize.Trigger()
	case pip.ChangeGroup:
		ui.updateTitle()
		ui.createMenu()
		if g := ui.manager.Group(); g != nil {
			ui.settings.SetLastGroup(g.Path)
		}
		ui.settings.SetLastCollection(ui.manager.CollectionName())
		if ui.organizer != nil {
			ui.organizer.Refresh()
		}
	case pip.ChangeSlots:
		if ui.organizer != nil {
			ui.organizer.Refresh()
		}
	}
}

// refreshHost shows the main view slot in the host area
func (ui *RootUI) refreshHost() {
	if ui.host == nil {
		return
	}
	objects := []fyne.CanvasObject{canvas.NewRectangle(themeColor(ColorNameHost))}
	if cur := ui.manager.Current(); cur != nil {
		objects = append(objects, ui.popupBar.ContentFor(cur))
	} else {
		objects = append(objects, container.NewCenter(ui.hostHint))
	}
	ui.host.Objects = objects
	ui.host.Refresh()
}

// hostRect returns the host area in float layer coordinates. Without a
// host the whole window stands in for the screen.
func (ui *RootUI) hostRect() enlarge.Rect {
	if !ui.manager.Bar().DisplayMode().HasHost() {
		size := ui.area.Size()
		return enlarge.NewRect(0, 0, float64(size.Width), float64(size.Height))
	}
	pos := ui.host.Position()
	size := ui.host.Size()
	return enlarge.NewRect(float64(pos.X), float64(pos.Y), float64(size.Width), float64(size.Height))
}

// onResizeSettled moves an enlarged slot after the window stopped resizing
func (ui *RootUI) onResizeSettled() {
	ui.manager.Enlarge().Relayout()
}

// onTypedKey handles the keyboard shortcuts of the window
func (ui *RootUI) onTypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		ui.manager.Escape()
		return
	case ui.settings.GetSwapKey():
		ui.manager.Swap()
		return
	}
	if n, ok := hotkeyNumber(ev.Name); ok {
		ui.manager.Hotkey(n)
	}
}

// hotkeyNumber maps the digit keys 1 to 5 to their number
func hotkeyNumber(key fyne.KeyName) (int, bool) {
	switch key {
	case fyne.Key1:
		return 1, true
	case fyne.Key2:
		return 2, true
	case fyne.Key3:
		return 3, true
	case fyne.Key4:
		return 4, true
	case fyne.Key5:
		return 5, true
	}
	return 0, false
}

// openStore switches to the group directory dir and watches it
func (ui *RootUI) openStore(dir string) {
	// Ensure directory exists
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		log.Printf("Error creating group directory %s: %v", dir, err)
	}

	store, err := persist.NewStore(dir)
	if err != nil {
		log.Printf("Error opening group directory %s: %v", dir, err)
		fallback, derr := platform.DefaultGroupDir()
		if derr != nil {
			fallback = "."
		}
		store, _ = persist.NewStore(fallback)
	}
	ui.store = store
	if ui.organizer != nil {
		ui.organizer.SetStore(store)
	}

	if ui.watcher != nil {
		if err := ui.watcher.Close(); err != nil {
			log.Printf("Error closing group watcher: %v", err)
		}
		ui.watcher = nil
	}
	w, err := persist.NewWatcher(store.Dir(), func(path string) {
		fyne.Do(func() { ui.onGroupFileChanged(path) })
	})
	if err != nil {
		log.Printf("Group directory is not watched: %v", err)
		return
	}
	ui.watcher = w
}

// onGroupFileChanged reloads the open group after it changed on disk
func (ui *RootUI) onGroupFileChanged(path string) {
	if ui.organizer != nil {
		ui.organizer.Refresh()
	}
	g := ui.manager.Group()
	if g == nil || !samePath(g.Path, path) {
		return
	}
	if err := ui.manager.ReloadGroup(); err != nil {
		log.Printf("Reloading group %s failed: %v", path, err)
	}
}

// openLastGroup opens the group and collection of the previous session
func (ui *RootUI) openLastGroup() {
	path := ui.settings.GetLastGroup()
	collection := ui.settings.GetLastCollection()
	if path == "" {
		path = ui.store.PathFor(config.DefaultGroupName)
	}
	if err := ui.manager.OpenGroup(path); err != nil {
		log.Printf("Opening last group %s failed: %v", path, err)
		if err := ui.manager.OpenGroup(ui.store.PathFor(config.DefaultGroupName)); err != nil {
			log.Printf("Opening default group failed: %v", err)
			return
		}
	}
	if collection == "" {
		return
	}
	if _, ok := ui.manager.Group().Collection(collection); !ok {
		return
	}
	if err := ui.manager.Load(collection); err != nil {
		log.Printf("Loading last collection %q failed: %v", collection, err)
	}
}

// openGroup opens the group file at path
func (ui *RootUI) openGroup(path string) {
	if err := ui.manager.OpenGroup(path); err != nil {
		ui.showError(err)
		return
	}
	log.Printf("Group opened: %s", path)
}

// onOpenGroup picks a group file of the group directory
func (ui *RootUI) onOpenGroup() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		ui.openGroup(path)
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{persist.FileExt}))
	if lister, err := storage.ListerForURI(storage.NewFileURI(ui.store.Dir())); err == nil {
		d.SetLocation(lister)
	}
	d.Show()
}

// onNewGroup opens an empty group; its file is written on the first save
func (ui *RootUI) onNewGroup() {
	ui.askName(KeyNewGroup, KeyGroupName, "", func(name string) {
		path := ui.store.PathFor(name)
		if _, err := os.Stat(path); err == nil {
			ui.openGroup(path)
			return
		}
		ui.manager.SetGroup(persist.NewGroup(path))
	})
}

// onDuplicateGroup copies the open group into a new, unlocked group file
func (ui *RootUI) onDuplicateGroup() {
	g := ui.manager.Group()
	if g == nil {
		ui.showNotification(ui.localization.GetText(KeyNoGroupOpen))
		return
	}
	ui.askName(KeyDuplicateGroup, KeyGroupName, g.Name()+"-copy", func(name string) {
		dup, err := persist.Duplicate(g, ui.store.PathFor(name))
		if err != nil {
			ui.showError(err)
			return
		}
		ui.manager.SetGroup(dup)
	})
}

// onRevealGroup shows the open group file in the system file manager
func (ui *RootUI) onRevealGroup() {
	g := ui.manager.Group()
	if g == nil {
		ui.showNotification(ui.localization.GetText(KeyNoGroupOpen))
		return
	}
	if err := platform.OpenFileInManager(g.Path); err != nil {
		log.Printf("Error revealing group %s: %v", g.Path, err)
		ui.showError(err)
	}
}

// onEditGroupFile opens the group file in the application registered for
// JSON. The watcher reloads the group once the file is saved.
func (ui *RootUI) onEditGroupFile() {
	g := ui.manager.Group()
	if g == nil {
		ui.showNotification(ui.localization.GetText(KeyNoGroupOpen))
		return
	}
	if err := platform.OpenWithDefaultApp(g.Path); err != nil {
		log.Printf("Error opening group %s: %v", g.Path, err)
		ui.showError(err)
	}
}

// onToggleLock locks or unlocks the open group
func (ui *RootUI) onToggleLock() {
	g := ui.manager.Group()
	if g == nil {
		ui.showNotification(ui.localization.GetText(KeyNoGroupOpen))
		return
	}
	if err := ui.manager.SetLocked(!g.Locked); err != nil {
		ui.showError(err)
	}
}

// onSaveCollection saves over the selected collection
func (ui *RootUI) onSaveCollection() {
	name := ui.manager.CollectionName()
	if name == "" {
		ui.onSaveCollectionAs()
		return
	}
	ui.saveCollection(name)
}

// onSaveCollectionAs saves the bar under a new collection name
func (ui *RootUI) onSaveCollectionAs() {
	ui.askName(KeySaveCollectionAs, KeyCollectionName, ui.manager.CollectionName(), ui.saveCollection)
}

func (ui *RootUI) saveCollection(name string) {
	if err := ui.manager.Save(name); err != nil {
		ui.showError(err)
		return
	}
	ui.showNotification(fmt.Sprintf("%s: %s", ui.localization.GetText(KeyCollectionSaved), name))
}

// onShowOrganizer shows the group and collection organizer
func (ui *RootUI) onShowOrganizer() {
	if ui.organizer == nil {
		ui.organizer = NewOrganizer(ui.window, ui.localization, ui.manager, ui.store)
		ui.organizer.SetCallbacks(ui.openGroup, ui.showError, func(name string) {
			ui.showNotification(fmt.Sprintf("%s: %s", ui.localization.GetText(KeyCollectionLoaded), name))
		})
	}
	ui.organizer.Show()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.applySettings)
}

// applySettings pushes saved preferences into the running bar
func (ui *RootUI) applySettings() {
	s := ui.manager.Bar().Settings()
	scale := ui.settings.GetPiPScale()
	s.Scale = [2]float64{scale, scale}
	s.EnlargedScale = ui.settings.GetEnlargedScale()
	s.EnlargedSize = ui.settings.GetEnlargedSize()
	s.TaskbarSize = ui.settings.GetTaskbarSize()
	s.DisplayTitles = ui.settings.GetDisplayTitles()
	ui.manager.UpdateSettings(s.Normalized())

	ui.resize.SetDelay(ui.settings.GetResizeDebounce())

	if dir := ui.settings.GetGroupDirectory(); !samePath(dir, ui.store.Dir()) {
		ui.openStore(dir)
	}

	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.onLanguageChange(lang)
	}

	ui.showNotification(ui.localization.GetText(KeySettingsSaved))
}

// onAddSlot asks for a new slot and appends it to the bar
func (ui *RootUI) onAddSlot() {
	ShowSlotDialog(ui.window, ui.localization, ui.manager.Factory().Types(), func(spec model.SlotSpec) error {
		_, err := ui.manager.AddSlot(spec, -1)
		return err
	})
}

// onClearBar removes every slot after confirmation
func (ui *RootUI) onClearBar() {
	dialog.ShowConfirm(ui.localization.GetText(KeyClearBar), ui.localization.GetText(KeyClearBar)+"?", func(ok bool) {
		if ok {
			ui.manager.Clear()
		}
	}, ui.window)
}

// onReleaseMain returns the main view slot to the bar
func (ui *RootUI) onReleaseMain() {
	if err := ui.manager.ReleaseMain(); err != nil {
		ui.showError(err)
	}
}

// onConvert switches the display mode of the bar
func (ui *RootUI) onConvert(mode model.DisplayMode) {
	if err := ui.manager.Convert(mode); err != nil {
		ui.showError(err)
	}
}

// askName shows a form with one validated name entry
func (ui *RootUI) askName(titleKey, labelKey, initial string, onName func(string)) {
	entry := widget.NewEntry()
	entry.SetText(initial)
	entry.Validator = persist.ValidateName
	items := []*widget.FormItem{widget.NewFormItem(ui.localization.GetText(labelKey), entry)}
	d := dialog.NewForm(ui.localization.GetText(titleKey), ui.localization.GetText(KeySave), ui.localization.GetText(KeyCancel), items, func(ok bool) {
		if ok {
			onName(entry.Text)
		}
	}, ui.window)
	d.Resize(fyne.NewSize(SlotDialogWidth, 0))
	d.Show()
}

// showError reports err in a dialog
func (ui *RootUI) showError(err error) {
	if errors.Is(err, model.ErrGroupLocked) {
		err = fmt.Errorf("%s: %w", ui.localization.GetText(KeyGroupLocked), err)
	}
	if errors.Is(err, persist.ErrDamagedGroup) {
		err = fmt.Errorf("%s: %w", ui.localization.GetText(KeyGroupDamaged), err)
	}
	log.Printf("Error: %v", err)
	dialog.ShowError(err, ui.window)
}

// showNotification displays a message in the notification panel. It hides
// itself after a while.
func (ui *RootUI) showNotification(message string) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil {
		return
	}

	ui.notificationMutex.Lock()
	ui.notificationGen++
	gen := ui.notificationGen
	ui.notificationMutex.Unlock()

	ui.notificationLabel.SetText(message)
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()

	time.AfterFunc(NotificationAutoHide, func() {
		ui.notificationMutex.Lock()
		stale := gen != ui.notificationGen
		ui.notificationMutex.Unlock()
		if stale {
			return
		}
		fyne.Do(ui.hideNotification)
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil {
		return
	}
	ui.notificationContainer.Hide()
}

// shutdown releases background resources when the window closes
func (ui *RootUI) shutdown() {
	ui.resize.Stop()
	if ui.watcher != nil {
		if err := ui.watcher.Close(); err != nil {
			log.Printf("Error closing group watcher: %v", err)
		}
	}
	ui.settings.SetLastCollection(ui.manager.CollectionName())
	log.Printf("RootUI shut down")
}

// samePath reports whether a and b name the same file
func samePath(a, b string) bool {
	if a == b {
		return true
	}
	ca, errA := filepath.Abs(a)
	cb, errB := filepath.Abs(b)
	return errA == nil && errB == nil && filepath.Clean(ca) == filepath.Clean(cb)
}
