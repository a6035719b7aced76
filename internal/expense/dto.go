package expense

import (
	"github.com/shopspring/decimal"
)

// AddExpenseDTO is the create payload. Subcategory and description are
// optional; a supplied-but-blank value is rejected by validation.
type AddExpenseDTO struct {
	ExpenseDate    string          `json:"expense_date"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Currency       string          `json:"currency"`
	Category       string          `json:"category"`
	Subcategory    *string         `json:"subcategory,omitempty"`
	Description    *string         `json:"description,omitempty"`
}

// UpdateExpenseDTO carries a partial field set: nil means "not provided".
// The set of keys is closed; unknown JSON keys are rejected at the
// transport edge before this DTO is ever populated.
type UpdateExpenseDTO struct {
	ExpenseDate    *string          `json:"expense_date,omitempty"`
	OriginalAmount *decimal.Decimal `json:"original_amount,omitempty"`
	Currency       *string          `json:"currency,omitempty"`
	Category       *string          `json:"category,omitempty"`
	Subcategory    *string          `json:"subcategory,omitempty"`
	Description    *string          `json:"description,omitempty"`
}

// IsEmpty reports whether no updatable field was supplied at all.
func (dto UpdateExpenseDTO) IsEmpty() bool {
	return dto.ExpenseDate == nil &&
		dto.OriginalAmount == nil &&
		dto.Currency == nil &&
		dto.Category == nil &&
		dto.Subcategory == nil &&
		dto.Description == nil
}

// ListFilters is the recognized filter subset for the filtered select.
// Amount bounds apply to the base-currency amount so mixed-currency rows
// stay comparable.
type ListFilters struct {
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	Category    *string
	Subcategory *string
	StartDate   *string
	EndDate     *string
	Currency    *string
}

// ListResponse is the payload for the list operation.
type ListResponse struct {
	Count   int        `json:"count"`
	Records []*Expense `json:"records"`
}

// RowsAffectedResponse reports write fan-out for update and delete.
type RowsAffectedResponse struct {
	RowsAffected int64 `json:"rows_affected"`
}
