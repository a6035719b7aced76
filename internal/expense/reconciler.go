package expense

import (
	"context"
	"fmt"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/internal/core/validation"
	"github.com/adikrishnan/expense-ledger/internal/currency"
)

// Column names of the expenses table referenced by the builders and the
// reconciler. These are the only strings that ever reach SQL text.
const (
	ColumnUserID         = "user_id"
	ColumnExpenseDate    = "expense_date"
	ColumnOriginalAmount = "original_amount"
	ColumnCurrency       = "currency"
	ColumnBaseAmount     = "base_amount"
	ColumnCategory       = "category"
	ColumnSubcategory    = "subcategory"
	ColumnDescription    = "description"
)

// Assignment is one validated column write, ready for the update builder.
type Assignment struct {
	Column string
	Value  any
}

// mutableField pairs a column with its pairing constraint. The slice is the
// closed allow-list of caller-updatable columns, iterated in this order so
// the assignment set (and the built SET clause) is deterministic.
type mutableField struct {
	column       string
	requiresPair bool
}

var mutableFields = []mutableField{
	{column: ColumnExpenseDate},
	{column: ColumnOriginalAmount, requiresPair: true},
	{column: ColumnCurrency, requiresPair: true},
	{column: ColumnCategory},
	{column: ColumnSubcategory},
	{column: ColumnDescription},
}

// Reconciler turns a partial update request plus the currently stored row
// into the minimal effective assignment set. It performs no storage access:
// the caller hands it the "before" values from a prior read.
type Reconciler struct {
	converter    currency.Converter
	baseCurrency string
}

func NewReconciler(converter currency.Converter, baseCurrency string) *Reconciler {
	return &Reconciler{
		converter:    converter,
		baseCurrency: baseCurrency,
	}
}

// Reconcile validates each supplied field, rejects no-op changes, enforces
// the amount/currency coupling rule, and recomputes base_amount whenever
// the effective amount or currency differs from the stored pair.
func (r *Reconciler) Reconcile(ctx context.Context, current *Expense, dto UpdateExpenseDTO) ([]Assignment, error) {
	if dto.IsEmpty() {
		return nil, internal.ErrNoChangesRequested
	}

	// Coupling rule: one of the pair without the other cannot be
	// reinterpreted, so it is rejected before any field is looked at.
	if (dto.OriginalAmount == nil) != (dto.Currency == nil) {
		return nil, internal.ErrMissingPairedField
	}

	var assignments []Assignment

	for _, field := range mutableFields {
		switch field.column {
		case ColumnExpenseDate:
			if dto.ExpenseDate == nil {
				continue
			}
			parsed, vErr := validation.Date(*dto.ExpenseDate)
			if vErr != nil {
				return nil, vErr
			}
			newDate := NewDate(parsed)
			if newDate.Equal(current.ExpenseDate) {
				return nil, noEffectiveChange(ColumnExpenseDate)
			}
			assignments = append(assignments, Assignment{Column: ColumnExpenseDate, Value: newDate})

		case ColumnOriginalAmount:
			if dto.OriginalAmount == nil {
				continue
			}
			pairAssignments, err := r.reconcileAmountAndCurrency(ctx, current, dto)
			if err != nil {
				return nil, err
			}
			assignments = append(assignments, pairAssignments...)

		case ColumnCurrency:
			// handled together with original_amount

		case ColumnCategory:
			if dto.Category == nil {
				continue
			}
			normalized, vErr := validation.RequiredText(ColumnCategory, *dto.Category)
			if vErr != nil {
				return nil, vErr
			}
			if normalized == current.Category {
				return nil, noEffectiveChange(ColumnCategory)
			}
			assignments = append(assignments, Assignment{Column: ColumnCategory, Value: normalized})

		case ColumnSubcategory:
			assignment, err := reconcileOptionalText(ColumnSubcategory, dto.Subcategory, current.Subcategory)
			if err != nil {
				return nil, err
			}
			if assignment != nil {
				assignments = append(assignments, *assignment)
			}

		case ColumnDescription:
			assignment, err := reconcileOptionalText(ColumnDescription, dto.Description, current.Description)
			if err != nil {
				return nil, err
			}
			if assignment != nil {
				assignments = append(assignments, *assignment)
			}
		}
	}

	if len(assignments) == 0 {
		return nil, internal.ErrNoChangesRequested
	}

	return assignments, nil
}

// reconcileAmountAndCurrency handles the coupled pair. Both values are
// validated, at least one must effectively change, and base_amount is
// recomputed from the effective (new) pair and appended to the assignment
// set even though the caller never names it.
func (r *Reconciler) reconcileAmountAndCurrency(ctx context.Context, current *Expense, dto UpdateExpenseDTO) ([]Assignment, error) {
	newAmount, vErr := validation.Amount(*dto.OriginalAmount)
	if vErr != nil {
		return nil, vErr
	}
	newCurrency, vErr := validation.Currency(*dto.Currency)
	if vErr != nil {
		return nil, vErr
	}

	amountChanged := !newAmount.Equal(current.OriginalAmount)
	currencyChanged := newCurrency != current.Currency

	if !amountChanged && !currencyChanged {
		return nil, internal.NewValidationError(
			"both amount and currency are identical to the stored values",
			internal.ErrCodeNoEffectiveChange)
	}

	var assignments []Assignment
	if amountChanged {
		assignments = append(assignments, Assignment{Column: ColumnOriginalAmount, Value: newAmount})
	}
	if currencyChanged {
		assignments = append(assignments, Assignment{Column: ColumnCurrency, Value: newCurrency})
	}

	baseAmount, err := r.converter.Convert(ctx, newAmount, newCurrency, r.baseCurrency)
	if err != nil {
		return nil, err
	}
	assignments = append(assignments, Assignment{Column: ColumnBaseAmount, Value: baseAmount})

	return assignments, nil
}

func reconcileOptionalText(column string, proposed, stored *string) (*Assignment, error) {
	if proposed == nil {
		return nil, nil
	}
	normalized, vErr := validation.RequiredText(column, *proposed)
	if vErr != nil {
		return nil, vErr
	}
	if stored != nil && normalized == *stored {
		return nil, noEffectiveChange(column)
	}
	return &Assignment{Column: column, Value: normalized}, nil
}

func noEffectiveChange(column string) *internal.AppError {
	return internal.NewValidationError(
		fmt.Sprintf("new %s is identical to the stored value", column),
		internal.ErrCodeNoEffectiveChange)
}
