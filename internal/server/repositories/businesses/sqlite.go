package businesses

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sambulosenda/glamfric-mobile/internal/dbx"
	"github.com/sambulosenda/glamfric-mobile/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Search matches Query case-insensitively against name, category and city.
// Results are ordered by rating (unrated last), then name.
func (r *SQLiteRepository) Search(ctx context.Context, f models.BusinessFilter) ([]models.Business, int, error) {
	var (
		conds []string
		args  []any
	)
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		conds = append(conds, `(lower(business_name) LIKE ? OR lower(category) LIKE ? OR lower(coalesce(city, '')) LIKE ?)`)
		args = append(args, like, like, like)
	}
	if f.Category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, f.Category)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM businesses`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT id, business_name, slug, category, city, rating, total_reviews, is_verified FROM businesses` +
		where + ` ORDER BY rating IS NULL, rating DESC, business_name LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Business
	for rows.Next() {
		var (
			b      models.Business
			city   sql.NullString
			rating sql.NullFloat64
		)
		if err := rows.Scan(&b.ID, &b.BusinessName, &b.Slug, &b.Category, &city, &rating, &b.TotalReviews, &b.IsVerified); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		if city.Valid {
			b.City = &city.String
		}
		if rating.Valid {
			b.Rating = &rating.Float64
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}
