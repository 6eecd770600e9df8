package auth

import (
	"pressroom/internal/models"
)

// Owned is implemented by resources that belong to a single user.
type Owned interface {
	OwnerID() uint
}

// RequireRole permits the identity iff its role is in the allowed set.
// Callers authenticate first; an identity never reaches here without a
// verified credential.
func RequireRole(identity Identity, allowed models.RoleSet) error {
	if !allowed.Contains(identity.Role) {
		return models.NewForbiddenError("Forbidden")
	}
	return nil
}

// RequireOwner permits the identity iff it owns the resource. The caller is
// responsible for fetching the resource (absent → NotFound) and keeps the
// fetched value, so no duplicate fetch and no hidden request-scoped stash is
// needed. Lifecycle-state preconditions are checked separately by the caller.
func RequireOwner(identity Identity, resource Owned) error {
	if resource.OwnerID() != identity.UserID {
		return models.NewForbiddenError("Forbidden: not owner")
	}
	return nil
}
