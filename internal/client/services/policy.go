package services

import "fmt"

// VerifyPolicy decides what happens after a successful email verification.
type VerifyPolicy string

const (
	// VerifyThenLogin leaves the session untouched; the user logs in next.
	VerifyThenLogin VerifyPolicy = "verify-then-login"
	// VerifyAutoLogin logs in with the credentials of the signup made by
	// this process, when there is one.
	VerifyAutoLogin VerifyPolicy = "auto-login"
)

func ParseVerifyPolicy(s string) (VerifyPolicy, error) {
	switch p := VerifyPolicy(s); p {
	case VerifyThenLogin, VerifyAutoLogin:
		return p, nil
	case "":
		return VerifyThenLogin, nil
	}
	return "", fmt.Errorf("unknown verify policy %q", s)
}
