package model

import (
	"fmt"
	"strings"
)

// Direction is the screen edge a bar hugs
type Direction string

const (
	// DirectionNorth places the bar along the top edge
	DirectionNorth Direction = "north"

	// DirectionSouth places the bar along the bottom edge
	DirectionSouth Direction = "south"

	// DirectionEast places the bar along the right edge
	DirectionEast Direction = "east"

	// DirectionWest places the bar along the left edge
	DirectionWest Direction = "west"
)

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// IsVertical returns true if the bar runs top to bottom (east/west edges)
func (d Direction) IsVertical() bool {
	return d == DirectionEast || d == DirectionWest
}

// Opposite returns the edge across the screen
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionNorth:
		return DirectionSouth
	case DirectionSouth:
		return DirectionNorth
	case DirectionEast:
		return DirectionWest
	case DirectionWest:
		return DirectionEast
	default:
		return d
	}
}

// IsValid reports whether d is one of the four known edges
func (d Direction) IsValid() bool {
	switch d {
	case DirectionNorth, DirectionSouth, DirectionEast, DirectionWest:
		return true
	}
	return false
}

// ParseDirection accepts any case ("SOUTH", "south", "South")
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("unknown direction: %q", s)
	}
	return d, nil
}

// Directions returns all directions in menu order
func Directions() []Direction {
	return []Direction{DirectionNorth, DirectionSouth, DirectionEast, DirectionWest}
}

// DisplayMode selects one of the three rendering strategies of a bar
type DisplayMode string

const (
	// ModePiP overlays the bar on a separate host view
	ModePiP DisplayMode = "PIP"

	// ModePiPTaskbar overlays the bar on the host view and shows collapsed
	// slots as fixed-size taskbar icons
	ModePiPTaskbar DisplayMode = "PIP TASKBAR"

	// ModeStandaloneTaskbar is a free-standing row/column of fixed-size icons
	ModeStandaloneTaskbar DisplayMode = "STANDALONE TASKBAR"
)

// String returns the string representation of DisplayMode
func (m DisplayMode) String() string {
	return string(m)
}

// IsTaskbar returns true if collapsed slots are drawn as taskbar icons
func (m DisplayMode) IsTaskbar() bool {
	return m == ModePiPTaskbar || m == ModeStandaloneTaskbar
}

// HasHost returns true if the mode overlays a host (main) view
func (m DisplayMode) HasHost() bool {
	return m == ModePiP || m == ModePiPTaskbar
}

// IsValid reports whether m is one of the known display modes
func (m DisplayMode) IsValid() bool {
	switch m {
	case ModePiP, ModePiPTaskbar, ModeStandaloneTaskbar:
		return true
	}
	return false
}

// ParseDisplayMode accepts the persisted spelling with any case and either
// spaces or underscores ("PIP_TASKBAR" == "pip taskbar")
func ParseDisplayMode(s string) (DisplayMode, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "_", " ")
	m := DisplayMode(norm)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown display mode: %q", s)
	}
	return m, nil
}

// DisplayModes returns all display modes in menu order
func DisplayModes() []DisplayMode {
	return []DisplayMode{ModePiP, ModePiPTaskbar, ModeStandaloneTaskbar}
}
