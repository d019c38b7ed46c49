package action

import "errors"

// Invariant guards. All of these are checked before any write happens,
// so a rejected action leaves no partial mutation behind.
var (
	// ErrOwnerRoleReserved is returned when the owner role is requested
	// through invite or assign; it is granted only at tenant creation.
	ErrOwnerRoleReserved = errors.New("action.owner_role_reserved")

	// ErrCannotRemoveOwner is returned when remove-member targets the
	// tenant's owner.
	ErrCannotRemoveOwner = errors.New("action.cannot_remove_owner")

	// ErrCannotReassignOwner is returned when assign-role targets the
	// tenant's owner.
	ErrCannotReassignOwner = errors.New("action.cannot_reassign_owner")

	// ErrNotMember is returned when the target of assign-role or the
	// actor of switch-context lacks membership.
	ErrNotMember = errors.New("action.not_a_member")

	// ErrRoleNotAssignable is returned when the catalog marks the
	// requested role as not assignable through the general operation.
	ErrRoleNotAssignable = errors.New("action.role_not_assignable")

	// ErrEmptyName is returned when a tenant name is blank.
	ErrEmptyName = errors.New("action.empty_name")
)
