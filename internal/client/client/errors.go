package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	graphql "github.com/hasura/go-graphql-client"

	"github.com/sambulosenda/glamfric-mobile/internal/common"
)

// ServerError is an error the backend reported in the GraphQL errors array.
type ServerError struct {
	Op      string
	Message string
	Code    string
}

func (e *ServerError) Error() string { return e.Message }

// ServerMessage returns the backend's message carried by err, or "".
func ServerMessage(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

func (c *GraphQLClient) mapError(ctx context.Context, op string, st *callStatus, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case st.code == http.StatusUnauthorized, st.code == http.StatusForbidden:
		return fmt.Errorf("%s: %w", op, common.ErrUnauthorized)
	case st.err != nil, st.code >= http.StatusInternalServerError,
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.logger.Warn(ctx, "backend unreachable", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, common.ErrUnavailable)
	}

	var gqlErrs graphql.Errors
	if st.code == http.StatusOK && errors.As(err, &gqlErrs) && len(gqlErrs) > 0 {
		se := &ServerError{Op: op, Message: gqlErrs[0].Message}
		if code, ok := gqlErrs[0].Extensions["code"].(string); ok {
			se.Code = code
		}
		return se
	}

	return fmt.Errorf("%s: %w", op, err)
}
