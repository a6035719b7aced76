package expense

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/internal/core/validation"
	"github.com/adikrishnan/expense-ledger/internal/currency"
)

// Service orchestrates the expense operations: validate, reconcile,
// convert, build, execute. Validation and reconciliation failures abort
// before any statement is issued, so a failed operation never leaves
// partial state behind.
type Service struct {
	repo         RepositoryAPI
	reconciler   *Reconciler
	converter    currency.Converter
	baseCurrency string
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, converter currency.Converter, baseCurrency string, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		reconciler:   NewReconciler(converter, baseCurrency),
		converter:    converter,
		baseCurrency: baseCurrency,
		logger:       logger,
	}
}

// AddExpense validates every field, computes the base-currency amount, and
// inserts the row. The converter skips the external lookup when the
// expense is already in the base currency.
func (s *Service) AddExpense(ctx context.Context, ownerID uuid.UUID, dto AddExpenseDTO) (int64, error) {
	parsedDate, vErr := validation.Date(dto.ExpenseDate)
	if vErr != nil {
		return 0, vErr
	}
	amount, vErr := validation.Amount(dto.OriginalAmount)
	if vErr != nil {
		return 0, vErr
	}
	currencyCode, vErr := validation.Currency(dto.Currency)
	if vErr != nil {
		return 0, vErr
	}
	category, vErr := validation.RequiredText(ColumnCategory, dto.Category)
	if vErr != nil {
		return 0, vErr
	}
	subcategory, vErr := validation.OptionalText(ColumnSubcategory, dto.Subcategory)
	if vErr != nil {
		return 0, vErr
	}
	description, vErr := validation.OptionalText(ColumnDescription, dto.Description)
	if vErr != nil {
		return 0, vErr
	}

	baseAmount, err := s.converter.Convert(ctx, amount, currencyCode, s.baseCurrency)
	if err != nil {
		s.logger.Error("base amount conversion failed", "currency", currencyCode, "error", err)
		return 0, err
	}

	exp := &Expense{
		ExpenseDate:    NewDate(parsedDate),
		OriginalAmount: amount,
		BaseAmount:     baseAmount,
		Category:       category,
		Subcategory:    subcategory,
		Description:    description,
		Currency:       currencyCode,
	}

	id, err := s.repo.Create(ctx, ownerID, exp)
	if err != nil {
		s.logger.Error("failed to create expense", "owner_id", ownerID, "error", err)
		return 0, err
	}

	s.logger.Info("expense created",
		"expense_id", id,
		"owner_id", ownerID,
		"amount", amount.String(),
		"currency", currencyCode,
		"base_amount", baseAmount.String())

	return id, nil
}

// ListExpenses normalizes the supplied filters and runs the filtered
// select. The query builder enforces the at-least-one-filter policy and
// the range checks.
func (s *Service) ListExpenses(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]*Expense, error) {
	normalized, err := normalizeFilters(filters)
	if err != nil {
		return nil, err
	}

	records, repoErr := s.repo.Search(ctx, ownerID, normalized)
	if repoErr != nil {
		s.logger.Error("failed to list expenses", "owner_id", ownerID, "error", repoErr)
		return nil, repoErr
	}

	return records, nil
}

func (s *Service) GetExpense(ctx context.Context, ownerID uuid.UUID, id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return exp, nil
}

// UpdateExpense reads the current row, reconciles the proposed changes
// against it, and applies the resulting assignment set. The read doubles
// as the not-found check. The read-then-write pair is not guarded against
// a concurrent writer; with a single owner per deployment a lost update is
// an accepted trade-off.
func (s *Service) UpdateExpense(ctx context.Context, ownerID uuid.UUID, id int64, dto UpdateExpenseDTO) (int64, error) {
	current, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return 0, err
	}

	assignments, err := s.reconciler.Reconcile(ctx, current, dto)
	if err != nil {
		return 0, err
	}

	rows, err := s.repo.Update(ctx, ownerID, id, assignments)
	if err != nil {
		s.logger.Error("failed to update expense", "expense_id", id, "owner_id", ownerID, "error", err)
		return 0, err
	}

	s.logger.Info("expense updated", "expense_id", id, "owner_id", ownerID, "columns", len(assignments), "rows_affected", rows)
	return rows, nil
}

// DeleteExpense hard-deletes a single row; zero affected rows means the id
// does not exist under this owner.
func (s *Service) DeleteExpense(ctx context.Context, ownerID uuid.UUID, id int64) (int64, error) {
	rows, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		s.logger.Error("failed to delete expense", "expense_id", id, "owner_id", ownerID, "error", err)
		return 0, err
	}
	if rows == 0 {
		return 0, internal.ErrExpenseNotFound
	}

	s.logger.Info("expense deleted", "expense_id", id, "owner_id", ownerID)
	return rows, nil
}

func normalizeFilters(filters ListFilters) (ListFilters, error) {
	normalized := ListFilters{}

	if filters.MinAmount != nil {
		amount, vErr := validation.Amount(*filters.MinAmount)
		if vErr != nil {
			return ListFilters{}, vErr.WithField("min_amount")
		}
		normalized.MinAmount = &amount
	}
	if filters.MaxAmount != nil {
		amount, vErr := validation.Amount(*filters.MaxAmount)
		if vErr != nil {
			return ListFilters{}, vErr.WithField("max_amount")
		}
		normalized.MaxAmount = &amount
	}
	if filters.Category != nil {
		category, vErr := validation.RequiredText(ColumnCategory, *filters.Category)
		if vErr != nil {
			return ListFilters{}, vErr
		}
		normalized.Category = &category
	}
	if filters.Subcategory != nil {
		subcategory, vErr := validation.RequiredText(ColumnSubcategory, *filters.Subcategory)
		if vErr != nil {
			return ListFilters{}, vErr
		}
		normalized.Subcategory = &subcategory
	}
	if filters.StartDate != nil {
		date, vErr := validation.FilterDate("start_date", *filters.StartDate)
		if vErr != nil {
			return ListFilters{}, vErr
		}
		normalized.StartDate = &date
	}
	if filters.EndDate != nil {
		date, vErr := validation.FilterDate("end_date", *filters.EndDate)
		if vErr != nil {
			return ListFilters{}, vErr
		}
		normalized.EndDate = &date
	}
	if filters.Currency != nil {
		code, vErr := validation.Currency(*filters.Currency)
		if vErr != nil {
			return ListFilters{}, vErr
		}
		normalized.Currency = &code
	}

	return normalized, nil
}
