package expense

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adikrishnan/expense-ledger/internal"
)

// The builders assemble parameterized statements with `?` bindvars; the
// repository rebinds them to the driver's placeholder style. Caller values
// only ever travel as parameters. The only strings interpolated into SQL
// text are column names, and those are checked against the allow-list
// below before use.

const selectColumns = "id, expense_date, original_amount, base_amount, category, subcategory, description, currency"

// assignableColumns are the columns an UPDATE may set. base_amount is here
// because the reconciler appends it whenever amount or currency changes,
// even though callers never name it directly.
var assignableColumns = map[string]struct{}{
	ColumnExpenseDate:    {},
	ColumnOriginalAmount: {},
	ColumnCurrency:       {},
	ColumnCategory:       {},
	ColumnSubcategory:    {},
	ColumnDescription:    {},
	ColumnBaseAmount:     {},
}

// BuildInsert produces the insert statement for a validated expense. The
// mandatory columns appear in a fixed order; subcategory and description
// are appended only when supplied.
func BuildInsert(ownerID uuid.UUID, e *Expense) (string, []any) {
	columns := []string{ColumnUserID, ColumnExpenseDate, ColumnOriginalAmount, ColumnCurrency, ColumnBaseAmount, ColumnCategory}
	args := []any{ownerID, e.ExpenseDate, e.OriginalAmount, e.Currency, e.BaseAmount, e.Category}

	if e.Subcategory != nil {
		columns = append(columns, ColumnSubcategory)
		args = append(args, *e.Subcategory)
	}
	if e.Description != nil {
		columns = append(columns, ColumnDescription)
		args = append(args, *e.Description)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO expenses (%s) VALUES (%s) RETURNING id",
		strings.Join(columns, ", "), placeholders)

	return query, args
}

// BuildSelect produces the filtered list statement. The owner scope is
// mandatory but does not count as a filter: at least one real filter must
// be present, which guards against accidental full-ledger listings.
// Conditions are appended in a fixed order so the statement text is
// deterministic for any given filter subset.
func BuildSelect(ownerID uuid.UUID, f ListFilters) (string, []any, *internal.AppError) {
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return "", nil, internal.NewValidationError(
			"minimum amount cannot be larger than maximum amount", internal.ErrCodeInvalidRange)
	}
	// Dates are normalized to YYYY-MM-DD, so string order is date order.
	if f.StartDate != nil && f.EndDate != nil && *f.StartDate > *f.EndDate {
		return "", nil, internal.NewValidationError(
			"start date cannot be after end date", internal.ErrCodeInvalidRange)
	}

	var conditions []string
	args := []any{ownerID}

	if f.MinAmount != nil {
		conditions = append(conditions, ColumnBaseAmount+" >= ?")
		args = append(args, *f.MinAmount)
	}
	if f.MaxAmount != nil {
		conditions = append(conditions, ColumnBaseAmount+" <= ?")
		args = append(args, *f.MaxAmount)
	}
	if f.Category != nil {
		conditions = append(conditions, ColumnCategory+" = ?")
		args = append(args, *f.Category)
	}
	if f.Subcategory != nil {
		conditions = append(conditions, ColumnSubcategory+" = ?")
		args = append(args, *f.Subcategory)
	}
	if f.StartDate != nil {
		conditions = append(conditions, ColumnExpenseDate+" >= ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		conditions = append(conditions, ColumnExpenseDate+" <= ?")
		args = append(args, *f.EndDate)
	}
	if f.Currency != nil {
		conditions = append(conditions, ColumnCurrency+" = ?")
		args = append(args, *f.Currency)
	}

	if len(conditions) == 0 {
		return "", nil, internal.ErrNoFilterProvided
	}

	query := fmt.Sprintf(
		"SELECT %s FROM expenses WHERE user_id = ? AND %s ORDER BY expense_date DESC, base_amount DESC",
		selectColumns, strings.Join(conditions, " AND "))

	return query, args, nil
}

// BuildUpdate produces the partial update statement from the reconciler's
// ordered assignment set, scoped by row id and owner.
func BuildUpdate(id int64, ownerID uuid.UUID, assignments []Assignment) (string, []any, *internal.AppError) {
	if len(assignments) == 0 {
		return "", nil, internal.ErrNoChangesRequested
	}

	setClauses := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments)+2)

	for _, assignment := range assignments {
		if _, ok := assignableColumns[assignment.Column]; !ok {
			return "", nil, internal.NewValidationError(
				fmt.Sprintf("column %q cannot be updated", assignment.Column),
				internal.ErrCodeUnknownField)
		}
		setClauses = append(setClauses, assignment.Column+" = ?")
		args = append(args, assignment.Value)
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf("UPDATE expenses SET %s WHERE id = ? AND user_id = ?",
		strings.Join(setClauses, ", "))

	return query, args, nil
}

// BuildGet produces the single-row read, scoped by id and owner.
func BuildGet(id int64, ownerID uuid.UUID) (string, []any) {
	query := fmt.Sprintf("SELECT %s FROM expenses WHERE id = ? AND user_id = ?", selectColumns)
	return query, []any{id, ownerID}
}

// BuildDelete produces the single-row hard delete, scoped by id and owner.
// Zero affected rows is the caller's signal for "not found"; the builder
// itself takes no position on it.
func BuildDelete(id int64, ownerID uuid.UUID) (string, []any) {
	return "DELETE FROM expenses WHERE id = ? AND user_id = ?", []any{id, ownerID}
}
