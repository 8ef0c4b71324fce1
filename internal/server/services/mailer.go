package services

import (
	"context"

	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

// Mailer delivers verification tokens to users.
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
}

// LogMailer writes verification tokens to the log instead of sending mail.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("module", "mailer")}
}

func (m *LogMailer) SendVerification(ctx context.Context, email, token string) error {
	m.logger.Info(ctx, "verification email", "email", email, "token", token)
	return nil
}
