package repositories

import (
	"context"
	"errors"
	"time"

	"hrdocs-api/internal/adapters/persistence/models"
)

// ErrTokenAlreadyRevoked is returned by Revoke when the session was already
// revoked, typically by a concurrent refresh or logout of the same token.
var ErrTokenAlreadyRevoked = errors.New("refresh token already revoked")

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	FindActiveByUserID(ctx context.Context, userID uint, now time.Time) ([]*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUserID(ctx context.Context, userID uint) (int64, error)
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
	CountActiveByUserID(ctx context.Context, userID uint, now time.Time) (int64, error)
	// Transaction runs fn with a repository bound to a single database transaction
	Transaction(ctx context.Context, fn func(repo RefreshTokenRepository) error) error
}

// EmployeeRepository defines employee repository interface
type EmployeeRepository interface {
	// Create inserts the employee and its user account in one transaction
	Create(ctx context.Context, employee *models.Employee, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	ExistsByUserID(ctx context.Context, userID uint) (bool, error)
	// Update saves the employee and its user account in one transaction
	Update(ctx context.Context, employee *models.Employee) error
	// Delete removes the employee together with the owned user and its sessions
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Employee, int64, error)
}
