package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sambulosenda/glamfric-mobile/internal/client/securestore"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

// callStatus records what the transport saw for a single operation.
type callStatus struct {
	code int
	err  error
}

type callStatusKey struct{}

func withCallStatus(ctx context.Context) (context.Context, *callStatus) {
	st := &callStatus{}
	return context.WithValue(ctx, callStatusKey{}, st), st
}

// authTransport attaches the stored credential and a request id to every
// outgoing request.
type authTransport struct {
	base    http.RoundTripper
	secrets securestore.Store
	logger  logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)

	token, err := t.secrets.Get(ctx, common.AuthTokenKey)
	switch {
	case err == nil && token != "":
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	case err != nil && !errors.Is(err, common.ErrSecretNotFound):
		t.logger.Warn(ctx, "credential unreadable, sending unauthenticated request", "error", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	resp, err := t.base.RoundTrip(req)

	if st, ok := ctx.Value(callStatusKey{}).(*callStatus); ok {
		st.err = err
		if resp != nil {
			st.code = resp.StatusCode
		}
	}
	if err != nil {
		t.logger.Debug(ctx, "request failed", "request_id", requestID, "error", err)
		return nil, err
	}

	t.logger.Debug(ctx, "request done", "request_id", requestID, "status", resp.StatusCode)
	return resp, nil
}
