package graphql

import (
	gql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
)

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// response is written for failures that happen before execution.
type response struct {
	Data   any        `json:"data"`
	Errors []gqlError `json:"errors,omitempty"`
}

// Error codes reported in errors[].extensions.code.
const (
	CodeBadUserInput     = "BAD_USER_INPUT"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeEmailNotVerified = "EMAIL_NOT_VERIFIED"
	CodeConflict         = "CONFLICT"
	CodeValidationFailed = "GRAPHQL_VALIDATION_FAILED"
	CodeParseFailed      = "GRAPHQL_PARSE_FAILED"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
)

func newError(code, message string) gqlError {
	return gqlError{Message: message, Extensions: map[string]any{"code": code}}
}

// codedError is returned by resolvers. The executor copies Extensions into
// the reported error.
type codedError struct {
	code    string
	message string
}

func (e *codedError) Error() string { return e.message }

func (e *codedError) Extensions() map[string]any {
	return map[string]any{"code": e.code}
}

// annotate gives every error of resp a code. Errors raised by the executor
// itself carry no extensions: those with a validation rule are validation
// failures, except bad variable values, and those without a path come from
// the parser.
func annotate(resp *gql.Response) {
	for _, qe := range resp.Errors {
		if qe.Extensions != nil {
			continue
		}
		qe.Extensions = map[string]any{"code": codeFor(qe)}
	}
}

func codeFor(qe *gqlerrors.QueryError) string {
	switch {
	case qe.ResolverError != nil, len(qe.Path) > 0:
		return CodeInternal
	case qe.Rule == "VariablesOfCorrectType":
		return CodeBadUserInput
	case qe.Rule != "":
		return CodeValidationFailed
	default:
		return CodeParseFailed
	}
}
