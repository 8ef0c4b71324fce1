// Package verifications stores one-time email verification tokens.
package verifications

import (
	"context"

	"github.com/sambulosenda/glamfric-mobile/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.VerificationToken) error
	Find(ctx context.Context, token string) (*models.VerificationToken, error)
	Delete(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID string) error
}
