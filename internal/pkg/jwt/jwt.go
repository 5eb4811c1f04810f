package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

const (
	issuerName = "hrdocs-api"

	typeAccess  = "access"
	typeRefresh = "refresh"
)

// Identity is the claim set embedded in both access and refresh tokens
type Identity struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	IsStaff  bool   `json:"is_staff"`
}

// Claims represents the JWT claims
type Claims struct {
	Identity
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies access and refresh tokens.
// Access and refresh tokens use distinct secrets and lifetimes.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewIssuer creates a new token issuer
func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// AccessTTL returns the access token lifetime
func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}

// RefreshTTL returns the refresh token lifetime
func (i *Issuer) RefreshTTL() time.Duration {
	return i.refreshTTL
}

// IssueAccessToken generates a new access token
func (i *Issuer) IssueAccessToken(identity Identity) (string, error) {
	token, _, err := i.sign(identity, typeAccess, i.accessSecret, i.accessTTL)
	return token, err
}

// IssueRefreshToken generates a new refresh token and returns its expiry
func (i *Issuer) IssueRefreshToken(identity Identity) (string, time.Time, error) {
	return i.sign(identity, typeRefresh, i.refreshSecret, i.refreshTTL)
}

// VerifyAccessToken validates an access token and returns claims
func (i *Issuer) VerifyAccessToken(tokenString string) (*Claims, error) {
	return i.verify(tokenString, typeAccess, i.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns claims
func (i *Issuer) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return i.verify(tokenString, typeRefresh, i.refreshSecret)
}

func (i *Issuer) sign(identity Identity, tokenType string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Identity:  identity,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps every token unique, even when issued within the same second
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(identity.UserID), 10),
			Issuer:    issuerName,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (i *Issuer) verify(tokenString, tokenType string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	},
		jwt.WithIssuer(issuerName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
