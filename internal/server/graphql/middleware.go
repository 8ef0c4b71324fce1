package graphql

import (
	"time"

	"github.com/labstack/echo/v4"
)

// requestLogger logs every request with method, path, status, latency and
// the caller when known. 5xx log at error level, 4xx at warn.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		req := c.Request()
		res := c.Response()
		args := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", res.Status,
			"latency", time.Since(start),
			"request_id", res.Header().Get(echo.HeaderXRequestID),
		}
		if userID, ok := UserIDFromContext(req.Context()); ok {
			args = append(args, "user_id", userID)
		}

		switch {
		case res.Status >= 500:
			s.logger.Error(req.Context(), "request", args...)
		case res.Status >= 400:
			s.logger.Warn(req.Context(), "request", args...)
		default:
			s.logger.Info(req.Context(), "request", args...)
		}
		return err
	}
}
