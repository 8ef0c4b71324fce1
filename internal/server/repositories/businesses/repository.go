// Package businesses is the read-only business directory behind search.
package businesses

import (
	"context"

	"github.com/sambulosenda/glamfric-mobile/internal/server/models"
)

type Repository interface {
	// Search returns one page of matches and the total number of matches.
	Search(ctx context.Context, filter models.BusinessFilter) ([]models.Business, int, error)
}
