package grants

import "errors"

var (
	// ErrUnknownRole is returned when a role name is not in the catalog.
	ErrUnknownRole = errors.New("grants.unknown_role")

	// ErrEmptyRole is returned when a role name is blank.
	ErrEmptyRole = errors.New("grants.empty_role")

	// ErrInvalidScope is returned when a scope token is neither the
	// global sentinel nor a valid tenant ID.
	ErrInvalidScope = errors.New("grants.invalid_scope")

	// ErrInvalidCatalog is returned when a role catalog cannot be parsed.
	ErrInvalidCatalog = errors.New("grants.invalid_catalog")
)
