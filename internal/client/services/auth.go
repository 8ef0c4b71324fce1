// Package services holds the app's state containers: the authenticated
// session and the UI preferences. Both are observable, persisted through the
// persist middleware and safe for concurrent use.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sambulosenda/glamfric-mobile/internal/client/client"
	"github.com/sambulosenda/glamfric-mobile/internal/client/models"
	"github.com/sambulosenda/glamfric-mobile/internal/client/persist"
	"github.com/sambulosenda/glamfric-mobile/internal/client/securestore"
	"github.com/sambulosenda/glamfric-mobile/internal/client/state"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

const (
	loginFailedMessage  = "Login failed. Please try again."
	signupFailedMessage = "Signup failed. Please try again."
	verifyFailedMessage = "Email verification failed. Please try again."
	resendFailedMessage = "Failed to resend verification email. Please try again."
)

// AuthService is the session container.
//
// The credential lives only in the secret store; the state holds the profile.
// A session is authenticated exactly when a profile is present.
type AuthService interface {
	State() models.AuthState
	Subscribe(fn func(models.AuthState)) (unsubscribe func())
	// Hydrate restores the persisted session once storage is ready.
	Hydrate()
	Phase() persist.Phase

	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, email, password, name string) (*models.SignupResult, error)
	VerifyEmail(ctx context.Context, token string) (*models.VerifyResult, error)
	ResendVerification(ctx context.Context, email string) (*models.VerifyResult, error)
	// Logout always succeeds; cleanup failures are logged.
	Logout(ctx context.Context) error

	ClearError()
	SetUser(user *models.UserProfile)
}

type AuthDeps struct {
	Client  client.Client
	Secrets securestore.Store
	Storage persist.Storage
	Policy  VerifyPolicy
	Logger  logging.Logger
	// Now is the clock used for credential expiry; time.Now if nil.
	Now func() time.Time
}

type authSnapshot struct {
	User *models.UserProfile `json:"user"`
}

type pendingSignup struct {
	email    string
	password []byte
}

type authService struct {
	client  client.Client
	secrets securestore.Store
	storage persist.Storage
	policy  VerifyPolicy
	logger  logging.Logger
	now     func() time.Time

	store     *state.Store[models.AuthState]
	persister *persist.Persister[models.AuthState, authSnapshot]

	loggingIn atomic.Bool

	pendingMu sync.Mutex
	pending   *pendingSignup
}

// NewAuthService builds the container and attaches persistence. When storage
// is already ready the session is hydrated and validated before returning.
func NewAuthService(deps AuthDeps) AuthService {
	a := &authService{
		client:  deps.Client,
		secrets: deps.Secrets,
		storage: deps.Storage,
		policy:  deps.Policy,
		logger:  deps.Logger.With("module", "auth"),
		now:     deps.Now,
		store:   state.New(models.AuthState{}, state.WithClone(models.AuthState.Clone)),
	}
	if a.policy == "" {
		a.policy = VerifyThenLogin
	}
	if a.now == nil {
		a.now = time.Now
	}

	a.persister = persist.Attach(a.store, deps.Storage, persist.Options[models.AuthState, authSnapshot]{
		Name:      common.AuthStorageName,
		Project:   func(s models.AuthState) authSnapshot { return authSnapshot{User: s.User} },
		Restore:   func(s *models.AuthState, p authSnapshot) { s.User = p.User },
		Hydrated:  func(s *models.AuthState) { s.HasHydrated = true },
		OnHydrate: a.validateSession,
	}, deps.Logger)

	return a
}

func (a *authService) State() models.AuthState { return a.store.Get() }

func (a *authService) Subscribe(fn func(models.AuthState)) func() { return a.store.Subscribe(fn) }

func (a *authService) Hydrate() { a.persister.Hydrate() }

func (a *authService) Phase() persist.Phase { return a.persister.Phase() }

// validateSession keeps the profile and the credential consistent after
// hydration: a profile without a live credential is dropped and a credential
// without a profile is deleted.
func (a *authService) validateSession(s models.AuthState) {
	ctx := context.Background()

	token, err := a.secrets.Get(ctx, common.AuthTokenKey)
	if err != nil && !errors.Is(err, common.ErrSecretNotFound) {
		a.logger.Warn(ctx, "credential unreadable during hydration", "error", err)
	}
	hasToken := err == nil && token != ""

	a.logger.Info(ctx, "session hydrated", "has_user", s.User != nil, "has_token", hasToken)

	switch {
	case s.User == nil && hasToken:
		if err := a.secrets.Delete(ctx, common.AuthTokenKey); err != nil {
			a.logger.Warn(ctx, "failed to delete orphaned credential", "error", err)
		}
	case s.User != nil && !hasToken:
		a.logger.Info(ctx, "credential missing, ending session")
		_ = a.Logout(ctx)
	case s.User != nil:
		expired, err := client.TokenExpired(token, a.now())
		if err != nil {
			a.logger.Debug(ctx, "credential is not a JWT, keeping session", "error", err)
			return
		}
		if expired {
			a.logger.Info(ctx, "credential expired, ending session")
			_ = a.Logout(ctx)
		}
	}
}

func (a *authService) begin() {
	a.store.Update(func(s *models.AuthState) {
		s.IsLoading = true
		s.Error = ""
	})
}

func (a *authService) done() {
	a.store.Update(func(s *models.AuthState) { s.IsLoading = false })
}

// fail records a user-facing message and returns the matching SessionError.
func (a *authService) fail(ctx context.Context, op, fallback string, kind, cause error) error {
	msg := client.ServerMessage(cause)
	if msg == "" {
		msg = fallback
	}

	a.logger.Warn(ctx, op+" failed", "error", cause)
	a.store.Update(func(s *models.AuthState) {
		s.IsLoading = false
		s.Error = msg
	})

	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %w", kind, cause)
	}
	return &SessionError{Op: op, Message: msg, Err: err}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	if !a.loggingIn.CompareAndSwap(false, true) {
		return common.ErrLoginInProgress
	}
	defer a.loggingIn.Store(false)

	a.begin()

	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return a.fail(ctx, "login", loginFailedMessage, common.ErrLogin, err)
	}

	if err := a.secrets.Set(ctx, common.AuthTokenKey, res.Token); err != nil {
		return a.fail(ctx, "login", loginFailedMessage, common.ErrLogin, err)
	}

	user := res.User
	a.saveUserData(ctx, &user)
	a.discardPending()

	a.store.Update(func(s *models.AuthState) {
		s.User = &user
		s.IsLoading = false
		s.Error = ""
	})

	a.logger.Info(ctx, "logged in", "user_id", user.ID)
	return nil
}

func (a *authService) saveUserData(ctx context.Context, user *models.UserProfile) {
	kv, err := a.storage.Primary()
	if err != nil {
		a.logger.Warn(ctx, "profile not mirrored, storage unavailable", "error", err)
		return
	}
	if err := kv.SetJSON(common.UserDataKey, user); err != nil {
		a.logger.Warn(ctx, "failed to mirror profile", "error", err)
	}
}

func (a *authService) Signup(ctx context.Context, email, password, name string) (*models.SignupResult, error) {
	a.begin()

	res, err := a.client.Signup(ctx, email, password, name)
	if err != nil {
		return nil, a.fail(ctx, "signup", signupFailedMessage, common.ErrSignup, err)
	}

	if a.policy == VerifyAutoLogin {
		a.pendingMu.Lock()
		a.wipePendingLocked()
		a.pending = &pendingSignup{email: email, password: []byte(password)}
		a.pendingMu.Unlock()
	}

	a.done()
	a.logger.Info(ctx, "signed up", "user_id", res.UserID, "requires_verification", res.RequiresVerification)
	return res, nil
}

func (a *authService) VerifyEmail(ctx context.Context, token string) (*models.VerifyResult, error) {
	a.begin()

	res, err := a.client.VerifyEmail(ctx, token)
	if err != nil {
		return nil, a.fail(ctx, "verifyEmail", verifyFailedMessage, common.ErrVerification, err)
	}
	if !res.Success {
		return res, a.rejected(ctx, "verifyEmail", res.Message, verifyFailedMessage, common.ErrVerification)
	}
	a.done()

	if a.policy != VerifyAutoLogin {
		res.LoginRequired = true
		return res, nil
	}

	email, password, ok := a.takePending()
	if !ok {
		res.LoginRequired = true
		return res, nil
	}
	defer common.WipeByteArray(password)

	if err := a.Login(ctx, email, string(password)); err != nil {
		res.LoginRequired = true
		return res, err
	}
	return res, nil
}

func (a *authService) ResendVerification(ctx context.Context, email string) (*models.VerifyResult, error) {
	a.begin()

	res, err := a.client.ResendVerification(ctx, email)
	if err != nil {
		return nil, a.fail(ctx, "resendVerification", resendFailedMessage, common.ErrResend, err)
	}
	if !res.Success {
		return res, a.rejected(ctx, "resendVerification", res.Message, resendFailedMessage, common.ErrResend)
	}

	a.done()
	return res, nil
}

// rejected handles a well-formed response whose success flag is false.
func (a *authService) rejected(ctx context.Context, op, serverMsg, fallback string, kind error) error {
	if serverMsg == "" {
		return a.fail(ctx, op, fallback, kind, nil)
	}
	return a.fail(ctx, op, fallback, kind, &client.ServerError{Op: op, Message: serverMsg})
}

func (a *authService) Logout(ctx context.Context) error {
	a.store.Update(func(s *models.AuthState) { s.IsLoading = true })

	if err := a.secrets.Delete(ctx, common.AuthTokenKey); err != nil {
		a.logger.Error(ctx, "failed to delete credential", "error", err)
	}

	if kv, err := a.storage.Primary(); err != nil {
		a.logger.Warn(ctx, "profile mirror not removed, storage unavailable", "error", err)
	} else if err := kv.Delete(common.UserDataKey); err != nil {
		a.logger.Error(ctx, "failed to delete profile mirror", "error", err)
	}

	if err := a.client.ClearStore(); err != nil {
		a.logger.Error(ctx, "failed to clear response cache", "error", err)
	}

	a.discardPending()

	a.store.Update(func(s *models.AuthState) {
		s.User = nil
		s.IsLoading = false
		s.Error = ""
	})

	a.logger.Info(ctx, "logged out")
	return nil
}

func (a *authService) ClearError() {
	a.store.Update(func(s *models.AuthState) { s.Error = "" })
}

// SetUser replaces the profile. A nil user ends the in-memory session but
// does not touch the credential; use Logout for that.
func (a *authService) SetUser(user *models.UserProfile) {
	cp := user.Clone()
	a.store.Update(func(s *models.AuthState) {
		s.User = cp
		s.Error = ""
	})
}

func (a *authService) takePending() (string, []byte, bool) {
	a.pendingMu.Lock()
	defer a.pendingMu.Unlock()

	if a.pending == nil {
		return "", nil, false
	}
	p := a.pending
	a.pending = nil
	return p.email, p.password, true
}

func (a *authService) discardPending() {
	a.pendingMu.Lock()
	defer a.pendingMu.Unlock()
	a.wipePendingLocked()
}

func (a *authService) wipePendingLocked() {
	if a.pending != nil {
		common.WipeByteArray(a.pending.password)
		a.pending = nil
	}
}
