package domain

import "time"

// Role is the authorization label resolved for an authenticated user
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleEmployee  Role = "employee"
)

// Principal is the authenticated user as seen by handlers.
// It never carries the password hash.
type Principal struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	IsStaff   bool      `json:"is_staff"`
	Role      Role      `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRole reports whether a role was resolved
func (p *Principal) HasRole() bool {
	return p != nil && p.Role != ""
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Revocation is returned by logout
type Revocation struct {
	Revoked bool `json:"revoked"`
}
