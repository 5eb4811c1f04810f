package services

import (
	"context"
	"errors"

	"hrdocs-api/internal/adapters/persistence/models"
	"hrdocs-api/internal/adapters/persistence/repositories"
	"hrdocs-api/internal/pkg/password"

	"gorm.io/gorm"
)

// CredentialVerifier checks an identifier/password pair against stored users
type CredentialVerifier struct {
	userRepo repositories.UserRepository
}

// NewCredentialVerifier creates a new credential verifier
func NewCredentialVerifier(userRepo repositories.UserRepository) *CredentialVerifier {
	return &CredentialVerifier{userRepo: userRepo}
}

// Verify returns the user whose email or username equals identifier and whose
// password matches. It returns (nil, nil) when either check fails.
func (v *CredentialVerifier) Verify(ctx context.Context, identifier, plain string) (*models.User, error) {
	user, err := v.userRepo.GetByEmailOrUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !password.Verify(plain, user.Password) {
		return nil, nil
	}

	return user, nil
}
