package services

import (
	"slices"

	"hrdocs-api/internal/core/domain"
)

// Authorize decides whether principal may access a route that requires one of
// the given roles. No required roles means the route is open to everyone.
// Roles are compared by set membership only: admin does not imply recruiter.
func Authorize(required []domain.Role, principal *domain.Principal) bool {
	if len(required) == 0 {
		return true
	}
	if !principal.HasRole() {
		return false
	}
	return slices.Contains(required, principal.Role)
}
