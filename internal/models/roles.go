// Package models contains data structures for the application's domain models.
package models

import "strings"

// Role determines the coarse-grained actions a user may perform.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleAuthor Role = "author"
	// RoleReader is the least-privilege default for self-service registration.
	RoleReader Role = "reader"
)

// AllRoles is the closed enumeration of valid roles.
var AllRoles = []Role{RoleAdmin, RoleEditor, RoleAuthor, RoleReader}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleAuthor, RoleReader:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole normalizes and validates a role string. An empty string maps to
// the reader default.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return RoleReader, true
	}
	return r, r.Valid()
}

// RoleSet is a set of roles allowed to perform some action.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether the set allows the given role.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Action→allowed-roles mappings. Checks are set membership, never rank
// comparison; adding a role to an action is a one-line change here.
var (
	// PostCreators may open new drafts (owned by themselves).
	PostCreators = NewRoleSet(RoleAuthor)
	// PostPublishers may publish any author's draft.
	PostPublishers = NewRoleSet(RoleEditor, RoleAdmin)
	// PostDeleters may hard-delete a post in any status.
	PostDeleters = NewRoleSet(RoleAdmin)
	// CommentModerators may approve pending comments.
	CommentModerators = NewRoleSet(RoleEditor, RoleAdmin)
	// UserProvisioners may register users with an arbitrary role.
	UserProvisioners = NewRoleSet(RoleAdmin)
)
