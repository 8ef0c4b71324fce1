package client

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sambulosenda/glamfric-mobile/internal/common"
)

// TokenExpired reports whether token is a JWT whose exp claim lies before now.
// The signature is not checked; the backend remains the authority. Tokens
// that are not JWTs yield common.ErrInvalidToken.
func TokenExpired(token string, now time.Time) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if exp == nil {
		return false, nil
	}
	return !now.Before(exp.Time), nil
}
