package models

import "time"

// VerificationToken is a one-time email verification token.
type VerificationToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
