package menu

import "errors"

var (
	// ErrInvalidID is returned for identifiers containing quote characters.
	ErrInvalidID = errors.New("menu: id cannot contain quote characters")
	// ErrDuplicateID is returned when an id is already used in a list.
	ErrDuplicateID = errors.New("menu: duplicated id")
	// ErrAlreadyOwned is returned when adding an item which belongs to a list.
	ErrAlreadyOwned = errors.New("menu: item already belongs to a list")
	// ErrNotFound is returned by Get/Pop for unknown ids.
	ErrNotFound = errors.New("menu: item not found")
	// ErrNotContainer is returned by Get when a path goes through a leaf.
	ErrNotContainer = errors.New("menu: item is not a container")
	// ErrTypeMismatch is returned by GetOrCreate when the existing item has another type.
	ErrTypeMismatch = errors.New("menu: existing item has another type")
	// ErrNestedGroup is returned when a group is added into a group.
	ErrNestedGroup = errors.New("menu: groups cannot be nested")
	// ErrGroupRender is returned when a group is rendered instead of flattened.
	ErrGroupRender = errors.New("menu: a group must be flattened, not rendered")
	// ErrMissingURL is returned by view helpers without URL.
	ErrMissingURL = errors.New("menu: no URL given and the model has no default URL")
	// ErrMissingArgument is returned when a manual link lacks label, url or perm.
	ErrMissingArgument = errors.New("menu: missing argument")
	// ErrMissingContext is returned when rendering needs a collaborator absent from the Context.
	ErrMissingContext = errors.New("menu: missing render context value")
)
