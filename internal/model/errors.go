package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the bar, persistence and factory packages.
var (
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrDuplicateName      = errors.New("duplicate slot name")
	ErrSlotNotFound       = errors.New("slot not found")
	ErrPlaceholderSlot    = errors.New("placeholder slots cannot be modified")
	ErrGroupLocked        = errors.New("group is locked")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrModeMismatch       = errors.New("display mode mismatch")
	ErrUnknownWidgetType  = errors.New("unknown widget type")
)

// IndexError reports an insert or move outside the valid range
type IndexError struct {
	Op    string
	Index int
	Max   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d]", e.Op, e.Index, e.Max)
}

// Unwrap lets errors.Is match ErrIndexOutOfRange
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// DuplicateNameError reports an insert of a name already present in a bar
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("slot %q already exists", e.Name)
}

// Unwrap lets errors.Is match ErrDuplicateName
func (e *DuplicateNameError) Unwrap() error {
	return ErrDuplicateName
}
