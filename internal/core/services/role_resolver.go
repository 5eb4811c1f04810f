package services

import (
	"context"
	"log"

	"hrdocs-api/internal/adapters/persistence/models"
	"hrdocs-api/internal/core/domain"
)

// RoleResolver derives the authorization role of a user.
// Priority: admin > recruiter > employee > none.
type RoleResolver struct {
	employees EmploymentChecker
}

// NewRoleResolver creates a new role resolver
func NewRoleResolver(employees EmploymentChecker) *RoleResolver {
	return &RoleResolver{employees: employees}
}

// Resolve returns the user without password and with its role attached.
// A failed employment lookup is logged and treated as "no record".
func (r *RoleResolver) Resolve(ctx context.Context, user *models.User) *domain.Principal {
	principal := user.ToPrincipal()

	switch {
	case user.IsAdmin:
		principal.Role = domain.RoleAdmin
	case user.IsStaff:
		principal.Role = domain.RoleRecruiter
	default:
		exists, err := r.employees.ExistsByUserID(ctx, user.ID)
		if err != nil {
			log.Printf("⚠️ Employee lookup failed for user ID %d, resolving without role: %v", user.ID, err)
			return principal
		}
		if exists {
			principal.Role = domain.RoleEmployee
		}
	}

	return principal
}
