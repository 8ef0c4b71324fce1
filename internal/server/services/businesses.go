package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sambulosenda/glamfric-mobile/internal/server/models"
	"github.com/sambulosenda/glamfric-mobile/internal/server/repositories/repomanager"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

type BusinessSearchResult struct {
	Businesses []models.Business
	Total      int
	HasMore    bool
}

type BusinessService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBusinessService(db *sql.DB, m repomanager.RepositoryManager) *BusinessService {
	return &BusinessService{db: db, repomanager: m}
}

// Search pages through the directory. Limit defaults to 20 and is capped
// at 50; negative offsets count from zero.
func (s *BusinessService) Search(ctx context.Context, f models.BusinessFilter) (*BusinessSearchResult, error) {
	if f.Limit <= 0 {
		f.Limit = defaultSearchLimit
	}
	if f.Limit > maxSearchLimit {
		f.Limit = maxSearchLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	items, total, err := s.repomanager.Businesses(s.db).Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error searching businesses: %w", err)
	}
	if items == nil {
		items = []models.Business{}
	}

	return &BusinessSearchResult{
		Businesses: items,
		Total:      total,
		HasMore:    f.Offset+len(items) < total,
	}, nil
}
