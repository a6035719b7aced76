package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single ledger row. BaseAmount is OriginalAmount expressed in
// the deployment's base currency and is recomputed on every write that
// touches OriginalAmount or Currency; it is never stored stale.
type Expense struct {
	ID             int64           `db:"id" json:"id"`
	UserID         uuid.UUID       `db:"user_id" json:"user_id,omitempty"`
	ExpenseDate    Date            `db:"expense_date" json:"expense_date"`
	OriginalAmount decimal.Decimal `db:"original_amount" json:"original_amount"`
	BaseAmount     decimal.Decimal `db:"base_amount" json:"base_amount"`
	Category       string          `db:"category" json:"category"`
	Subcategory    *string         `db:"subcategory" json:"subcategory,omitempty"`
	Description    *string         `db:"description" json:"description,omitempty"`
	Currency       string          `db:"currency" json:"currency"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at,omitempty"`
}

// RepositoryAPI is the record access facade: it executes built statements
// against the store and maps rows back to the entity. Implementations wrap
// execution failures as PersistenceError and keep the owner scope on every
// statement.
type RepositoryAPI interface {
	Create(ctx context.Context, ownerID uuid.UUID, e *Expense) (int64, error)
	GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*Expense, error)
	Search(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]*Expense, error)
	Update(ctx context.Context, ownerID uuid.UUID, id int64, assignments []Assignment) (int64, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) (int64, error)
}
