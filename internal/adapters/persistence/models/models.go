package models

import (
	"time"

	"hrdocs-api/internal/core/domain"
	"hrdocs-api/internal/pkg/password"

	"gorm.io/gorm"
)

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Username  string    `gorm:"uniqueIndex;size:15;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// PlainPassword is hashed into Password by BeforeSave and never stored
	PlainPassword string `gorm:"-" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave re-hashes the password whenever a new one is set
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.PlainPassword == "" {
		return nil
	}

	hashed, err := password.Hash(u.PlainPassword)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.PlainPassword = ""
	return nil
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}

// ToPrincipal strips the password and returns a principal without role
func (u *User) ToPrincipal() *domain.Principal {
	return &domain.Principal{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RefreshToken represents refresh_tokens table.
// Only the SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	TokenHash string     `gorm:"size:64;not null;index" json:"-"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at"`
	Revoked   bool       `gorm:"not null;default:false;index" json:"revoked"`
	RevokedAt *time.Time `json:"revoked_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.Revoked
}

func (rt *RefreshToken) IsExpired(now time.Time) bool {
	return rt.ExpiresAt != nil && !now.Before(*rt.ExpiresAt)
}

// IsActive reports whether the session can still be used for refresh or logout
func (rt *RefreshToken) IsActive(now time.Time) bool {
	return !rt.IsRevoked() && !rt.IsExpired(now)
}

// Employee represents employees table (the employment record of a user)
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	HiredAt   time.Time `gorm:"type:date;not null" json:"hired_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeResponse DTO
type EmployeeResponse struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	HiredAt   string        `json:"hired_at"`
	User      *UserResponse `json:"user"`
	CreatedAt time.Time     `json:"created_at"`
}

func (e *Employee) ToResponse() *EmployeeResponse {
	return &EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		HiredAt:   e.HiredAt.Format("2006-01-02"),
		User:      e.User.ToResponse(),
		CreatedAt: e.CreatedAt,
	}
}

// AutoMigrate creates or updates the tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Employee{},
	)
}
