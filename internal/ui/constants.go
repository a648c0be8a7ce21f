package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconClose    = "×"
	IconLock     = "🔒"
	IconUnlock   = "🔓"
	IconMenu     = "☰"
	IconAdd      = "+"
	IconUp       = "▲"
	IconDown     = "▼"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	LockedTitleFormat  = "%s " + IconLock
)

// Layout sizing
const (
	HostMinWidth  float32 = 640
	HostMinHeight float32 = 420

	// TileMinSize is the smallest extent of a collapsed tile on either axis
	TileMinSize float32 = 24
	// TitleMaxLen truncates tile titles in taskbar modes
	TitleMaxLen = 12

	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 480
	OrganizerWidth       float32 = 640
	OrganizerHeight      float32 = 420
	SlotDialogWidth      float32 = 420
	SlotDialogHeight     float32 = 260
)

// Notification behavior
const (
	NotificationAutoHide = 3 * time.Second
)

// Drag tracking
const (
	DefaultDragThreshold float32 = 6
)
