// Package common defines shared constants and sentinel errors used across
// the client core and the development backend. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Storage errors.
	ErrStorageNotInitialized = errors.New("storage not initialized")
	ErrStorageInit           = errors.New("failed to initialize secure storage")
	ErrSecretStore           = errors.New("secret store error")
	ErrSecretNotFound        = errors.New("secret not found")
	ErrKeyNotFound           = errors.New("key not found")
	ErrInvalidKeyLength      = errors.New("invalid encryption key length")

	// Network errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// Session errors.
	ErrLogin           = errors.New("login failed")
	ErrSignup          = errors.New("signup failed")
	ErrVerification    = errors.New("email verification failed")
	ErrResend          = errors.New("resend verification failed")
	ErrLoginInProgress = errors.New("login already in progress")

	// Preference errors.
	ErrInvalidPreference = errors.New("invalid preference value")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Backend errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("invalid email or password")
	ErrorNotVerified   = errors.New("email not verified")
	ErrorInvalidInput  = errors.New("invalid input")
)
