package services

import (
	"context"
)

// Note: AuthService implementation is in auth_service.go
// Note: UserService implementation is in user_service.go

// EmploymentChecker reports whether a user has an employment record
type EmploymentChecker interface {
	ExistsByUserID(ctx context.Context, userID uint) (bool, error)
}
