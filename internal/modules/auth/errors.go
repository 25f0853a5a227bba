package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	// ErrTokenNotFound covers unknown and revoked refresh tokens alike: once a
	// record is deleted there is nothing left to distinguish them by.
	ErrTokenNotFound  = errors.New("refresh token not found")
	ErrRefreshExpired = errors.New("refresh token expired")
)
