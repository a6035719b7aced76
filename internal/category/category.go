package category

import (
	"context"

	"github.com/google/uuid"
)

// Pair is one distinct (category, subcategory) combination observed in the
// ledger. Subcategory is nil for rows recorded without one.
type Pair struct {
	Category    string  `db:"category" json:"category"`
	Subcategory *string `db:"subcategory" json:"subcategory,omitempty"`
}

// RepositoryAPI lists the category combinations present in the owner's
// expenses.
type RepositoryAPI interface {
	DistinctPairs(ctx context.Context, ownerID uuid.UUID) ([]Pair, error)
}
