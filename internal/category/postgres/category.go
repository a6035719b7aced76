package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/internal/category"
)

type CategoryRepository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewCategoryRepository(db *sqlx.DB, logger *slog.Logger) category.RepositoryAPI {
	return &CategoryRepository{db: db, logger: logger}
}

const distinctPairsQuery = `SELECT DISTINCT category, subcategory FROM expenses WHERE user_id = ? ORDER BY category, subcategory`

func (r *CategoryRepository) DistinctPairs(ctx context.Context, ownerID uuid.UUID) ([]category.Pair, error) {
	pairs := make([]category.Pair, 0)
	err := r.db.SelectContext(ctx, &pairs, r.db.Rebind(distinctPairsQuery), ownerID)
	if err != nil {
		return nil, internal.NewPersistenceError("failed to list category pairs", err)
	}
	return pairs, nil
}
