package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a tenant cannot be found.
	ErrTenantNotFound = errors.New("tenant.not_found")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("tenant.user_not_found")

	// ErrTenantExists is returned when creating a tenant with an ID that is already taken.
	ErrTenantExists = errors.New("tenant.already_exists")

	// ErrUserExists is returned when creating a user with an ID that is already taken.
	ErrUserExists = errors.New("tenant.user_already_exists")

	// ErrNoTenantInContext is returned when a required tenant is missing from context.
	ErrNoTenantInContext = errors.New("tenant.not_in_context")
)
