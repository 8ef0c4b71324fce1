// Package models defines the client-side data carried between the network
// layer, the state containers and the terminal shell.
package models

// UserProfile is the signed-in user as returned by the backend.
type UserProfile struct {
	ID    string  `json:"id" graphql:"id"`
	Email string  `json:"email" graphql:"email"`
	Name  *string `json:"name" graphql:"name"`
	Role  string  `json:"role" graphql:"role"`
}

// DisplayName returns the name when set, otherwise the email.
func (u UserProfile) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}

// Clone returns a deep copy of u. A nil u clones to nil.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	if u.Name != nil {
		name := *u.Name
		c.Name = &name
	}
	return &c
}

// AuthState is the session state. Only User is durable.
type AuthState struct {
	User        *UserProfile
	IsLoading   bool
	Error       string
	HasHydrated bool
}

// IsAuthenticated is derived from User so the two can never disagree.
func (s AuthState) IsAuthenticated() bool {
	return s.User != nil
}

// Clone returns a copy of s that shares no memory with it.
func (s AuthState) Clone() AuthState {
	s.User = s.User.Clone()
	return s
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// SignupResult is the payload of a successful signup. No session is created.
type SignupResult struct {
	Message              string `json:"message"`
	RequiresVerification bool   `json:"requiresVerification"`
	UserID               string `json:"userId"`
}

// VerifyResult reports the outcome of verifyEmail and resendVerification.
// LoginRequired is set when verification succeeded but no session was made.
type VerifyResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	LoginRequired bool   `json:"-"`
}
