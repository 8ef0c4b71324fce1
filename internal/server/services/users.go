// Package services contains the business logic of the development backend:
// accounts with email verification, and the business directory.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/cryptox"
	"github.com/sambulosenda/glamfric-mobile/internal/dbx"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
	"github.com/sambulosenda/glamfric-mobile/internal/server/auth"
	"github.com/sambulosenda/glamfric-mobile/internal/server/config"
	"github.com/sambulosenda/glamfric-mobile/internal/server/models"
	"github.com/sambulosenda/glamfric-mobile/internal/server/repositories/repomanager"
)

const (
	minPasswordLength     = 8
	verificationTokenSize = 32
)

type LoginResult struct {
	Token string
	User  *models.User
}

type SignupResult struct {
	UserID               string
	Message              string
	RequiresVerification bool
}

type VerifyResult struct {
	Success bool
	Message string
}

// UserService provides account operations:
// - Signup: create an unverified user and mail a verification token
// - Login: check credentials of a verified user and mint a session token
// - VerifyEmail / ResendVerification: the verification token lifecycle
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	mailer          Mailer
	logger          logging.Logger
	jwtSecret       []byte
	tokenTTL        time.Duration
	verificationTTL time.Duration
	now             func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, mailer Mailer, logger logging.Logger) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		mailer:          mailer,
		logger:          logger.With("module", "user_service"),
		jwtSecret:       []byte(cfg.SecretKey),
		tokenTTL:        cfg.TokenTTL,
		verificationTTL: cfg.VerificationTTL,
		now:             time.Now,
	}
}

// Signup creates the user and a verification token in one transaction and
// mails the token after commit. Mail failures are logged; the user can ask
// for a resend.
func (s *UserService) Signup(ctx context.Context, email, password string, name *string) (*SignupResult, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, &ValidationError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", minPasswordLength)}
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			name = nil
		} else {
			name = &trimmed
		}
	}

	salt := common.GenerateRandByteArray(16)
	user := &models.User{
		Email:        email,
		Name:         name,
		Role:         models.DefaultRole,
		PasswordHash: cryptox.DeriveKey([]byte(password), salt),
		Salt:         salt,
		CreatedAt:    s.now().UTC(),
	}

	var token string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		token, err = s.issueVerification(ctx, tx, created.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.sendVerification(ctx, email, token)

	return &SignupResult{
		UserID:               user.ID,
		Message:              "Account created. Check your email to verify your address.",
		RequiresVerification: true,
	}, nil
}

// Login returns a session token for a verified user. Unknown emails and wrong
// passwords are indistinguishable.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !s.checkPassword(user, password) {
		return nil, common.ErrorUnauthorized
	}
	if !user.Verified {
		return nil, common.ErrorNotVerified
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &LoginResult{Token: token, User: user}, nil
}

// VerifyEmail consumes token. Unknown or expired tokens are reported in the
// result, not as errors.
func (s *UserService) VerifyEmail(ctx context.Context, token string) (*VerifyResult, error) {
	repo := s.repomanager.Verifications(s.db)

	vt, err := repo.Find(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &VerifyResult{Success: false, Message: "Invalid verification token"}, nil
		}
		return nil, common.ErrorInternal
	}

	if s.now().After(vt.ExpiresAt) {
		if err := repo.Delete(ctx, vt.Token); err != nil {
			s.logger.Warn(ctx, "failed to delete expired verification token", "error", err)
		}
		return &VerifyResult{Success: false, Message: "Verification token has expired"}, nil
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).MarkVerified(ctx, vt.UserID); err != nil {
			return err
		}
		return s.repomanager.Verifications(tx).DeleteForUser(ctx, vt.UserID)
	})
	if err != nil {
		s.logger.Error(ctx, "verification failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &VerifyResult{Success: true, Message: "Email verified. You can now log in."}, nil
}

// ResendVerification replaces any outstanding token for email with a new
// one. Unknown emails get the same answer as known ones.
func (s *UserService) ResendVerification(ctx context.Context, email string) (*VerifyResult, error) {
	sent := &VerifyResult{Success: true, Message: "If the account exists, a verification email has been sent."}

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return sent, nil
		}
		return nil, common.ErrorInternal
	}
	if user.Verified {
		return &VerifyResult{Success: false, Message: "Email is already verified"}, nil
	}

	var token string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Verifications(tx).DeleteForUser(ctx, user.ID); err != nil {
			return err
		}
		token, err = s.issueVerification(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "resend verification failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.sendVerification(ctx, user.Email, token)
	return sent, nil
}

// --- helpers below ---

func (s *UserService) issueVerification(ctx context.Context, tx dbx.DBTX, userID string) (string, error) {
	token, err := common.MakeRandHexString(verificationTokenSize)
	if err != nil {
		return "", err
	}
	vt := &models.VerificationToken{Token: token, UserID: userID, ExpiresAt: s.now().Add(s.verificationTTL).UTC()}
	if err := s.repomanager.Verifications(tx).Create(ctx, vt); err != nil {
		return "", err
	}
	return token, nil
}

func (s *UserService) sendVerification(ctx context.Context, email, token string) {
	if err := s.mailer.SendVerification(ctx, email, token); err != nil {
		s.logger.Warn(ctx, "failed to send verification email", "email", email, "error", err)
	}
}

func (s *UserService) checkPassword(user *models.User, password string) bool {
	candidate := cryptox.DeriveKey([]byte(password), user.Salt)
	return subtle.ConstantTimeCompare(user.PasswordHash, candidate) == 1
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	return email, nil
}
