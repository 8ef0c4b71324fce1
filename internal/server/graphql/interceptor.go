package graphql

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserIDFromContext returns the authenticated caller, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// accessTokenInterceptor attaches the bearer token's user to the request
// context. Every operation is public, so an expired token downgrades the
// call to anonymous, but a forged or malformed one is rejected with 401.
func (s *Server) accessTokenInterceptor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			return next(c)
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return unauthenticated(c, "malformed authorization header")
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		switch {
		case errors.Is(err, common.ErrTokenExpired):
			s.logger.Debug(c.Request().Context(), "expired token, continuing anonymously")
			return next(c)
		case err != nil:
			return unauthenticated(c, "invalid token")
		}

		req := c.Request()
		c.SetRequest(req.WithContext(context.WithValue(req.Context(), userIDKey, userID)))
		return next(c)
	}
}

func unauthenticated(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, response{Errors: []gqlError{newError(CodeUnauthenticated, msg)}})
}
