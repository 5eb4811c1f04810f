package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hrdocs-api/internal/adapters/persistence/models"
	"hrdocs-api/internal/adapters/persistence/repositories"
	"hrdocs-api/internal/core/domain"
	"hrdocs-api/internal/pkg/jwt"
	"hrdocs-api/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles login, refresh token rotation and logout
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	verifier         *CredentialVerifier
	roles            *RoleResolver
	issuer           *jwt.Issuer
	now              func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	employees EmploymentChecker,
	issuer *jwt.Issuer,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		verifier:         NewCredentialVerifier(userRepo),
		roles:            NewRoleResolver(employees),
		issuer:           issuer,
		now:              time.Now,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Login authenticates a user by email or username and issues a token pair
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*domain.TokenPair, error) {
	// 1. Verify credentials
	user, err := s.verifier.Verify(ctx, input.Identifier, input.Password)
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	// 3. Issue and store tokens
	tokens, err := s.issueTokens(ctx, s.refreshTokenRepo, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)
	return tokens, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. A token can be rotated at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, domain.ErrMissingInput
	}

	// 1. Verify token and load its owner
	user, err := s.resolveOwner(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	// 2. Find the stored session for this token
	session, err := s.findSession(ctx, user.ID, refreshToken)
	if err != nil {
		return nil, err
	}

	// 3. Revoke the old session and store the new one atomically
	var tokens *domain.TokenPair
	err = s.refreshTokenRepo.Transaction(ctx, func(repo repositories.RefreshTokenRepository) error {
		if err := repo.Revoke(ctx, session.ID); err != nil {
			if errors.Is(err, repositories.ErrTokenAlreadyRevoked) {
				return domain.ErrTokenNotFound
			}
			return fmt.Errorf("revoke refresh token: %w", err)
		}

		var err error
		tokens, err = s.issueTokens(ctx, repo, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Username)
	return tokens, nil
}

// Logout revokes a refresh token. When requestingUserID is set, the token must
// belong to that user.
func (s *AuthService) Logout(ctx context.Context, refreshToken string, requestingUserID *uint) (*domain.Revocation, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, domain.ErrMissingInput
	}

	user, err := s.resolveOwner(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if requestingUserID != nil && *requestingUserID != user.ID {
		return nil, domain.ErrCallerMismatch
	}

	session, err := s.findSession(ctx, user.ID, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.refreshTokenRepo.Revoke(ctx, session.ID); err != nil {
		if errors.Is(err, repositories.ErrTokenAlreadyRevoked) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	log.Printf("✅ User logged out: %s", user.Username)
	return &domain.Revocation{Revoked: true}, nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) (int64, error) {
	n, err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke all refresh tokens: %w", err)
	}

	log.Printf("✅ %d sessions revoked for user ID: %d", n, userID)
	return n, nil
}

// CurrentIdentity validates an access token, re-reads the user and resolves its role
func (s *AuthService) CurrentIdentity(ctx context.Context, accessToken string) (*domain.Principal, error) {
	claims, err := s.issuer.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	user, err := s.loadUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.roles.Resolve(ctx, user), nil
}

// resolveOwner verifies a refresh token and loads the user it was issued to
func (s *AuthService) resolveOwner(ctx context.Context, refreshToken string) (*models.User, error) {
	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidOrExpiredToken
	}
	return s.loadUser(ctx, claims.UserID)
}

func (s *AuthService) loadUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownIdentity
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// findSession returns the first active session of the user whose hash matches
// the raw token
func (s *AuthService) findSession(ctx context.Context, userID uint, refreshToken string) (*models.RefreshToken, error) {
	now := s.now()
	sessions, err := s.refreshTokenRepo.FindActiveByUserID(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("load refresh tokens: %w", err)
	}

	for _, session := range sessions {
		if password.CompareToken(refreshToken, session.TokenHash) && session.IsActive(now) {
			return session, nil
		}
	}

	return nil, domain.ErrTokenNotFound
}

// issueTokens generates an access/refresh pair for user and stores the refresh token hash
func (s *AuthService) issueTokens(ctx context.Context, repo repositories.RefreshTokenRepository, user *models.User) (*domain.TokenPair, error) {
	identity := jwt.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		IsStaff:  user.IsStaff,
	}

	accessToken, err := s.issuer.IssueAccessToken(identity)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, expiresAt, err := s.issuer.IssueRefreshToken(identity)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	token := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: &expiresAt,
	}
	if err := repo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
