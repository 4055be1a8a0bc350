package session

import "errors"

var (
	// ErrNotFound is returned when no session exists for the given ID
	ErrNotFound = errors.New("session not found")

	// ErrUnknownField is returned for an answer field outside the form
	ErrUnknownField = errors.New("unknown answer field")

	// ErrInvalidValue is returned when an answer value is not a valid
	// variant for its field
	ErrInvalidValue = errors.New("invalid answer value")

	// ErrUnknownSlot is returned for a file-presence update on a slot key
	// outside the document catalog
	ErrUnknownSlot = errors.New("unknown document slot")
)
