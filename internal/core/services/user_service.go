package services

import (
	"context"
	"errors"
	"log"

	"hrdocs-api/internal/adapters/persistence/models"
	"hrdocs-api/internal/adapters/persistence/repositories"
	"hrdocs-api/internal/core/domain"
	"hrdocs-api/internal/pkg/pagination"

	"gorm.io/gorm"
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Username string `json:"username" validate:"required,min=3,max=15,alphanum"`
	Password string `json:"password" validate:"required,password"`
	IsAdmin  bool   `json:"is_admin"`
	IsStaff  bool   `json:"is_staff"`
}

// UpdateUserInput represents update user input
type UpdateUserInput struct {
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	Username *string `json:"username" validate:"omitempty,min=3,max=15,alphanum"`
	Password *string `json:"password" validate:"omitempty,password"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
	IsStaff  *bool   `json:"is_staff"`
}

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, params pagination.Params) (*pagination.Page[*models.UserResponse], error) {
	users, total, err := s.userRepo.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(users, params, total, (*models.User).ToResponse), nil
}

// GetUserByID gets a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// CreateUser creates a user account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.UserResponse, error) {
	if err := checkUnique(ctx, s.userRepo, input.Email, input.Username); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:         input.Email,
		Username:      input.Username,
		PlainPassword: input.Password,
		IsActive:      true,
		IsAdmin:       input.IsAdmin,
		IsStaff:       input.IsStaff,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, translateWriteError(err)
	}

	log.Printf("✅ User created: %s", user.Username)
	return user.ToResponse(), nil
}

// UpdateUser updates a user account. A new password is re-hashed on save.
func (s *UserService) UpdateUser(ctx context.Context, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyUserChanges(ctx, s.userRepo, user, input.Email, input.Username); err != nil {
		return nil, err
	}
	if input.Password != nil {
		user.PlainPassword = *input.Password
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if input.IsStaff != nil {
		user.IsStaff = *input.IsStaff
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, translateWriteError(err)
	}

	log.Printf("✅ User updated: %s", user.Username)
	return user.ToResponse(), nil
}

// DeleteUser deletes a user together with its employee record and sessions
func (s *UserService) DeleteUser(ctx context.Context, id, requesterID uint) error {
	if id == requesterID {
		return domain.ErrCannotDeleteSelf
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	log.Printf("✅ User deleted: ID %d", id)
	return nil
}

func (s *UserService) getUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// checkUnique fails when email or username is already used
func checkUnique(ctx context.Context, repo repositories.UserRepository, email, username string) error {
	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailTaken
	}

	exists, err = repo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrUsernameTaken
	}
	return nil
}

// translateWriteError maps a unique index violation to ErrDuplicateEntry.
// It covers concurrent writers that both passed checkUnique.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

// applyUserChanges sets a new email/username on user after checking uniqueness
func applyUserChanges(ctx context.Context, repo repositories.UserRepository, user *models.User, email, username *string) error {
	if email != nil && *email != user.Email {
		exists, err := repo.ExistsByEmail(ctx, *email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrEmailTaken
		}
		user.Email = *email
	}

	if username != nil && *username != user.Username {
		exists, err := repo.ExistsByUsername(ctx, *username)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrUsernameTaken
		}
		user.Username = *username
	}
	return nil
}
