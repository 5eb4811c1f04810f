package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateEntry = errors.New("email or username already in use")
)

// Session errors. All of them are reported to the caller as authorization
// failures; none is fatal.
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrMissingInput          = errors.New("refresh token is required")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrUnknownIdentity       = errors.New("user not found")
	ErrTokenNotFound         = errors.New("refresh token not found")
	ErrCallerMismatch        = errors.New("refresh token does not belong to the caller")
	ErrUserInactive          = errors.New("user account is inactive")
)

// User errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already in use")
	ErrUsernameTaken    = errors.New("username already in use")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
)
