package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFile              = "file"
	KeyBar               = "bar"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyOpenGroup         = "open_group"
	KeyNewGroup          = "new_group"
	KeyDuplicateGroup    = "duplicate_group"
	KeyRevealGroup       = "reveal_group"
	KeyEditGroupFile     = "edit_group_file"
	KeyLockGroup         = "lock_group"
	KeyUnlockGroup       = "unlock_group"
	KeyGroupName         = "group_name"
	KeySaveCollection    = "save_collection"
	KeySaveCollectionAs  = "save_collection_as"
	KeyOrganizer         = "organizer"
	KeyCollectionName    = "collection_name"
	KeyCollections       = "collections"
	KeyGroups            = "groups"
	KeySlots             = "slots"
	KeyLoad              = "load"
	KeyRename            = "rename"
	KeyDelete            = "delete"
	KeyMoveUp            = "move_up"
	KeyMoveDown          = "move_down"
	KeyAddSlot           = "add_slot"
	KeyRemoveSlot        = "remove_slot"
	KeyPromote           = "promote"
	KeyEditOverlay       = "edit_overlay"
	KeyOpenOverlayImage  = "open_overlay_image"
	KeyClearBar          = "clear_bar"
	KeyReleaseMain       = "release_main"
	KeyDisplayMode       = "display_mode"
	KeyDirection         = "direction"
	KeySlotName          = "slot_name"
	KeyWidgetType        = "widget_type"
	KeyWidgetParams      = "widget_params"
	KeyOverlayText       = "overlay_text"
	KeyOverlayImage      = "overlay_image"
	KeyNoMainView        = "no_main_view"
	KeyNoGroupOpen       = "no_group_open"
	KeyGroupLocked       = "group_locked"
	KeyGroupDamaged      = "group_damaged"
	KeyCollectionSaved   = "collection_saved"
	KeyCollectionLoaded  = "collection_loaded"
	KeyGroupReloaded     = "group_reloaded"
	KeyGroupDirectory    = "group_directory"
	KeyPiPScale          = "pip_scale"
	KeyEnlargedScale     = "enlarged_scale"
	KeyEnlargedSize      = "enlarged_size"
	KeyTaskbarSize       = "taskbar_size"
	KeyDisplayTitles     = "display_titles"
	KeyDefaultMode       = "default_mode"
	KeyDefaultDirection  = "default_direction"
	KeySwapKey           = "swap_key"
	KeyResizeDebounce    = "resize_debounce"
	KeySettingsSaved     = "settings_saved"
	KeyBarSettings       = "bar_settings"
	KeyInterfaceSettings = "interface_settings"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Popup Bar",
		KeyFile:              "File",
		KeyBar:               "Bar",
		KeySettings:          "Settings",
		KeyLanguage:          "Language",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyOpenGroup:         "Open Group...",
		KeyNewGroup:          "New Group...",
		KeyDuplicateGroup:    "Duplicate Group...",
		KeyRevealGroup:       "Reveal Group File",
		KeyEditGroupFile:     "Edit Group File",
		KeyLockGroup:         "Lock Group",
		KeyUnlockGroup:       "Unlock Group",
		KeyGroupName:         "Group name",
		KeySaveCollection:    "Save Collection",
		KeySaveCollectionAs:  "Save Collection As...",
		KeyOrganizer:         "Organizer",
		KeyCollectionName:    "Collection name",
		KeyCollections:       "Collections",
		KeyGroups:            "Groups",
		KeySlots:             "Slots",
		KeyLoad:              "Load",
		KeyRename:            "Rename",
		KeyDelete:            "Delete",
		KeyMoveUp:            "Move Up",
		KeyMoveDown:          "Move Down",
		KeyAddSlot:           "Add Slot...",
		KeyRemoveSlot:        "Remove",
		KeyPromote:           "Show in Main View",
		KeyEditOverlay:       "Edit Overlay...",
		KeyOpenOverlayImage:  "Open Overlay Image",
		KeyClearBar:          "Clear Bar",
		KeyReleaseMain:       "Return Main Panel to Bar",
		KeyDisplayMode:       "Display Mode",
		KeyDirection:         "Direction",
		KeySlotName:          "Name",
		KeyWidgetType:        "Widget",
		KeyWidgetParams:      "Parameters (key=value&...)",
		KeyOverlayText:       "Overlay text",
		KeyOverlayImage:      "Overlay image",
		KeyNoMainView:        "Hover a slot to enlarge it, click to show it here",
		KeyNoGroupOpen:       "No group open",
		KeyGroupLocked:       "Group is locked",
		KeyGroupDamaged:      "Group file is damaged; use Duplicate to save a copy",
		KeyCollectionSaved:   "Collection saved",
		KeyCollectionLoaded:  "Collection loaded",
		KeyGroupReloaded:     "Group reloaded from disk",
		KeyGroupDirectory:    "Group Directory",
		KeyPiPScale:          "Bar Scale",
		KeyEnlargedScale:     "Enlarged Scale",
		KeyEnlargedSize:      "Enlarged Size (px)",
		KeyTaskbarSize:       "Taskbar Size (px)",
		KeyDisplayTitles:     "Display Titles",
		KeyDefaultMode:       "Default Display Mode",
		KeyDefaultDirection:  "Default Direction",
		KeySwapKey:           "Swap Key",
		KeyResizeDebounce:    "Resize Debounce (ms)",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyBarSettings:       "Bar Settings",
		KeyInterfaceSettings: "Interface Settings",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Всплывающая панель",
		KeyFile:              "Файл",
		KeyBar:               "Панель",
		KeySettings:          "Настройки",
		KeyLanguage:          "Язык",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyOpenGroup:         "Открыть группу...",
		KeyNewGroup:          "Новая группа...",
		KeyDuplicateGroup:    "Дублировать группу...",
		KeyRevealGroup:       "Показать файл группы",
		KeyEditGroupFile:     "Редактировать файл группы",
		KeyLockGroup:         "Заблокировать группу",
		KeyUnlockGroup:       "Разблокировать группу",
		KeyGroupName:         "Имя группы",
		KeySaveCollection:    "Сохранить коллекцию",
		KeySaveCollectionAs:  "Сохранить коллекцию как...",
		KeyOrganizer:         "Органайзер",
		KeyCollectionName:    "Имя коллекции",
		KeyCollections:       "Коллекции",
		KeyGroups:            "Группы",
		KeySlots:             "Слоты",
		KeyLoad:              "Загрузить",
		KeyRename:            "Переименовать",
		KeyDelete:            "Удалить",
		KeyMoveUp:            "Вверх",
		KeyMoveDown:          "Вниз",
		KeyAddSlot:           "Добавить слот...",
		KeyRemoveSlot:        "Убрать",
		KeyPromote:           "Показать в главном окне",
		KeyEditOverlay:       "Изменить подпись...",
		KeyOpenOverlayImage:  "Открыть изображение подписи",
		KeyClearBar:          "Очистить панель",
		KeyReleaseMain:       "Вернуть главную панель",
		KeyDisplayMode:       "Режим отображения",
		KeyDirection:         "Направление",
		KeySlotName:          "Имя",
		KeyWidgetType:        "Виджет",
		KeyWidgetParams:      "Параметры (ключ=значение&...)",
		KeyOverlayText:       "Текст подписи",
		KeyOverlayImage:      "Изображение подписи",
		KeyNoMainView:        "Наведите на слот, чтобы увеличить, нажмите, чтобы показать здесь",
		KeyNoGroupOpen:       "Группа не открыта",
		KeyGroupLocked:       "Группа заблокирована",
		KeyGroupDamaged:      "Файл группы повреждён; сохраните копию через «Дублировать»",
		KeyCollectionSaved:   "Коллекция сохранена",
		KeyCollectionLoaded:  "Коллекция загружена",
		KeyGroupReloaded:     "Группа перечитана с диска",
		KeyGroupDirectory:    "Папка групп",
		KeyPiPScale:          "Масштаб панели",
		KeyEnlargedScale:     "Масштаб увеличения",
		KeyEnlargedSize:      "Размер увеличения (px)",
		KeyTaskbarSize:       "Размер панели задач (px)",
		KeyDisplayTitles:     "Показывать названия",
		KeyDefaultMode:       "Режим по умолчанию",
		KeyDefaultDirection:  "Направление по умолчанию",
		KeySwapKey:           "Клавиша переключения",
		KeyResizeDebounce:    "Задержка при изменении размера (мс)",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyBarSettings:       "Настройки панели",
		KeyInterfaceSettings: "Настройки интерфейса",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Barra Popup",
		KeyFile:              "Arquivo",
		KeyBar:               "Barra",
		KeySettings:          "Configurações",
		KeyLanguage:          "Idioma",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyOpenGroup:         "Abrir Grupo...",
		KeyNewGroup:          "Novo Grupo...",
		KeyDuplicateGroup:    "Duplicar Grupo...",
		KeyRevealGroup:       "Mostrar Arquivo do Grupo",
		KeyEditGroupFile:     "Editar Arquivo do Grupo",
		KeyLockGroup:         "Bloquear Grupo",
		KeyUnlockGroup:       "Desbloquear Grupo",
		KeyGroupName:         "Nome do grupo",
		KeySaveCollection:    "Salvar Coleção",
		KeySaveCollectionAs:  "Salvar Coleção Como...",
		KeyOrganizer:         "Organizador",
		KeyCollectionName:    "Nome da coleção",
		KeyCollections:       "Coleções",
		KeyGroups:            "Grupos",
		KeySlots:             "Slots",
		KeyLoad:              "Carregar",
		KeyRename:            "Renomear",
		KeyDelete:            "Excluir",
		KeyMoveUp:            "Mover para Cima",
		KeyMoveDown:          "Mover para Baixo",
		KeyAddSlot:           "Adicionar Slot...",
		KeyRemoveSlot:        "Remover",
		KeyPromote:           "Mostrar na Vista Principal",
		KeyEditOverlay:       "Editar Sobreposição...",
		KeyOpenOverlayImage:  "Abrir Imagem de Sobreposição",
		KeyClearBar:          "Limpar Barra",
		KeyReleaseMain:       "Devolver Painel Principal à Barra",
		KeyDisplayMode:       "Modo de Exibição",
		KeyDirection:         "Direção",
		KeySlotName:          "Nome",
		KeyWidgetType:        "Widget",
		KeyWidgetParams:      "Parâmetros (chave=valor&...)",
		KeyOverlayText:       "Texto da sobreposição",
		KeyOverlayImage:      "Imagem da sobreposição",
		KeyNoMainView:        "Passe o mouse sobre um slot para ampliá-lo, clique para mostrá-lo aqui",
		KeyNoGroupOpen:       "Nenhum grupo aberto",
		KeyGroupLocked:       "O grupo está bloqueado",
		KeyGroupDamaged:      "O arquivo do grupo está danificado; use Duplicar para salvar uma cópia",
		KeyCollectionSaved:   "Coleção salva",
		KeyCollectionLoaded:  "Coleção carregada",
		KeyGroupReloaded:     "Grupo recarregado do disco",
		KeyGroupDirectory:    "Diretório de Grupos",
		KeyPiPScale:          "Escala da Barra",
		KeyEnlargedScale:     "Escala Ampliada",
		KeyEnlargedSize:      "Tamanho Ampliado (px)",
		KeyTaskbarSize:       "Tamanho da Barra de Tarefas (px)",
		KeyDisplayTitles:     "Exibir Títulos",
		KeyDefaultMode:       "Modo de Exibição Padrão",
		KeyDefaultDirection:  "Direção Padrão",
		KeySwapKey:           "Tecla de Troca",
		KeyResizeDebounce:    "Atraso de Redimensionamento (ms)",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyBarSettings:       "Configurações da Barra",
		KeyInterfaceSettings: "Configurações da Interface",
	}
}
