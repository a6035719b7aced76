// Package postgres executes the built expense statements over sqlx. The
// builders emit `?` bindvars; Rebind translates them for the active driver,
// so the same statements run on postgres in production and on sqlite in
// the repository tests.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/internal/expense"
)

type ExpenseRepository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewExpenseRepository(db *sqlx.DB, logger *slog.Logger) expense.RepositoryAPI {
	return &ExpenseRepository{db: db, logger: logger}
}

func (r *ExpenseRepository) Create(ctx context.Context, ownerID uuid.UUID, e *expense.Expense) (int64, error) {
	query, args := expense.BuildInsert(ownerID, e)

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&id)
	if err != nil {
		return 0, internal.NewPersistenceError("failed to create expense", err)
	}

	return id, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*expense.Expense, error) {
	query, args := expense.BuildGet(id, ownerID)

	var e expense.Expense
	err := r.db.GetContext(ctx, &e, r.db.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrExpenseNotFound
		}
		return nil, internal.NewPersistenceError("failed to fetch expense", err)
	}

	return &e, nil
}

func (r *ExpenseRepository) Search(ctx context.Context, ownerID uuid.UUID, filters expense.ListFilters) ([]*expense.Expense, error) {
	query, args, appErr := expense.BuildSelect(ownerID, filters)
	if appErr != nil {
		return nil, appErr
	}

	records := make([]*expense.Expense, 0)
	err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...)
	if err != nil {
		return nil, internal.NewPersistenceError("failed to list expenses", err)
	}

	return records, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, ownerID uuid.UUID, id int64, assignments []expense.Assignment) (int64, error) {
	query, args, appErr := expense.BuildUpdate(id, ownerID, assignments)
	if appErr != nil {
		return 0, appErr
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, internal.NewPersistenceError("failed to update expense", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, internal.NewPersistenceError("failed to read update row count", err)
	}

	return rows, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) (int64, error) {
	query, args := expense.BuildDelete(id, ownerID)

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, internal.NewPersistenceError("failed to delete expense", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, internal.NewPersistenceError("failed to read delete row count", err)
	}

	return rows, nil
}
