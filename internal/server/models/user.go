// Package models holds the records stored by the development backend.
package models

import "time"

// User is an account. PasswordHash is argon2id(password, Salt).
type User struct {
	ID           string
	Email        string
	Name         *string
	Role         string
	PasswordHash []byte
	Salt         []byte
	Verified     bool
	CreatedAt    time.Time
}

// DefaultRole is assigned to accounts created through signup.
const DefaultRole = "customer"
