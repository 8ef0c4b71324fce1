package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/server/models"
	"github.com/sambulosenda/glamfric-mobile/internal/server/services"
)

// Users is the account service behind the auth mutations.
type Users interface {
	Signup(ctx context.Context, email, password string, name *string) (*services.SignupResult, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	VerifyEmail(ctx context.Context, token string) (*services.VerifyResult, error)
	ResendVerification(ctx context.Context, email string) (*services.VerifyResult, error)
}

// Businesses is the directory behind searchBusinesses.
type Businesses interface {
	Search(ctx context.Context, f models.BusinessFilter) (*services.BusinessSearchResult, error)
}

// ServeGraphQL executes the request against the schema. Failures of the
// operation itself are reported with status 200 in the errors array.
func (s *Server) ServeGraphQL(c echo.Context) error {
	ctx := c.Request().Context()

	var req Request
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response{Errors: []gqlError{newError(CodeParseFailed, "invalid request body")}})
	}
	if req.Variables == nil {
		req.Variables = map[string]any{}
	}

	resp := s.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	annotate(resp)

	return c.JSON(http.StatusOK, resp)
}

// resolver binds the root Query and Mutation fields.
type resolver struct {
	s *Server
}

func (r *resolver) Ping() string { return "OK" }

func (r *resolver) Login(ctx context.Context, args struct{ Input loginInput }) (*loginPayload, error) {
	res, err := r.s.users.Login(ctx, args.Input.Email, args.Input.Password)
	if err != nil {
		return nil, r.s.toGQLError(ctx, "login", err)
	}
	return toLoginPayload(res), nil
}

func (r *resolver) Signup(ctx context.Context, args struct{ Input signupInput }) (*signupPayload, error) {
	in := args.Input
	res, err := r.s.users.Signup(ctx, in.Email, in.Password, in.Name)
	if err != nil {
		return nil, r.s.toGQLError(ctx, "signup", err)
	}
	return &signupPayload{Message: res.Message, RequiresVerification: res.RequiresVerification, UserID: toID(res.UserID)}, nil
}

func (r *resolver) VerifyEmail(ctx context.Context, args struct{ Token string }) (*verifyPayload, error) {
	res, err := r.s.users.VerifyEmail(ctx, args.Token)
	if err != nil {
		return nil, r.s.toGQLError(ctx, "verifyEmail", err)
	}
	return &verifyPayload{Success: res.Success, Message: res.Message}, nil
}

func (r *resolver) ResendVerification(ctx context.Context, args struct{ Email string }) (*verifyPayload, error) {
	res, err := r.s.users.ResendVerification(ctx, args.Email)
	if err != nil {
		return nil, r.s.toGQLError(ctx, "resendVerification", err)
	}
	return &verifyPayload{Success: res.Success, Message: res.Message}, nil
}

func (r *resolver) SearchBusinesses(ctx context.Context, args struct{ Input *searchInput }) (*searchPayload, error) {
	res, err := r.s.businesses.Search(ctx, args.Input.filter())
	if err != nil {
		return nil, r.s.toGQLError(ctx, "searchBusinesses", err)
	}
	return toSearchPayload(res), nil
}

func (s *Server) toGQLError(ctx context.Context, field string, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return &codedError{code: CodeBadUserInput, message: ve.Message}
	case errors.Is(err, common.ErrorUnauthorized):
		return &codedError{code: CodeUnauthenticated, message: "Invalid email or password"}
	case errors.Is(err, common.ErrorNotVerified):
		return &codedError{code: CodeEmailNotVerified, message: "Please verify your email before logging in"}
	case errors.Is(err, common.ErrorAlreadyExists):
		return &codedError{code: CodeConflict, message: "An account with this email already exists"}
	default:
		s.logger.Error(ctx, "resolver failed", "field", field, "error", err)
		return &codedError{code: CodeInternal, message: "Internal server error"}
	}
}
