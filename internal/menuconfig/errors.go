package menuconfig

import "errors"

var (
	// ErrNotFound is returned for unknown or non-editable records.
	ErrNotFound = errors.New("menuconfig: menu item not found")
	// ErrConflict is returned when deleting a required or unresolvable entry.
	ErrConflict = errors.New("menuconfig: menu item cannot be deleted")
	// ErrInvalidChoice is returned for entry ids which are not proposed.
	ErrInvalidChoice = errors.New("menuconfig: invalid entry choice")
	// ErrInvalidName is returned for empty or too long container names.
	ErrInvalidName = errors.New("menuconfig: invalid name")
)
