package repositories

import (
	"context"
	"time"

	"hrdocs-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// refreshTokenRepository implements RefreshTokenRepository interface
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create creates a new refresh token
func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Omit("User").Create(token).Error
}

// FindActiveByUserID gets the unrevoked, unexpired tokens of a user in insertion order
func (r *refreshTokenRepository) FindActiveByUserID(ctx context.Context, userID uint, now time.Time) ([]*models.RefreshToken, error) {
	var tokens []*models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("revoked = ?", false).
		Where("(expires_at IS NULL OR expires_at > ?)", now).
		Order("id").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Revoke revokes a refresh token by ID.
// The update only applies to an unrevoked row, so of two concurrent callers
// exactly one succeeds and the other gets ErrTokenAlreadyRevoked.
func (r *refreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ?", id).
		Where("revoked = ?", false).
		Updates(map[string]interface{}{
			"revoked":    true,
			"revoked_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenAlreadyRevoked
	}
	return nil
}

// RevokeAllByUserID revokes all refresh tokens for a user
func (r *refreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Where("revoked = ?", false).
		Updates(map[string]interface{}{
			"revoked":    true,
			"revoked_at": &now,
		})
	return result.RowsAffected, result.Error
}

// DeleteStale deletes tokens revoked or expired before cutoff (cleanup job)
func (r *refreshTokenRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("(revoked = ? AND revoked_at < ?) OR expires_at < ?", true, cutoff, cutoff).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

// CountActiveByUserID counts active tokens for a user
func (r *refreshTokenRepository) CountActiveByUserID(ctx context.Context, userID uint, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Where("revoked = ?", false).
		Where("(expires_at IS NULL OR expires_at > ?)", now).
		Count(&count).Error
	return count, err
}

// Transaction runs fn inside a database transaction
func (r *refreshTokenRepository) Transaction(ctx context.Context, fn func(repo RefreshTokenRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&refreshTokenRepository{db: tx})
	})
}
