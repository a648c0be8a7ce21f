package ui

// Package ui contains the Fyne-based desktop user interface of the popup bar.
// It renders the bar, the main view and the enlarged slot, forwards pointer,
// drag and keyboard events to pip.Manager, and hosts the organizer and
// settings dialogs. All UI strings are localized via Localization.
