package expense

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/internal/transport"
	"github.com/adikrishnan/expense-ledger/pkg/logger"
)

type ServiceAPI interface {
	AddExpense(ctx context.Context, ownerID uuid.UUID, dto AddExpenseDTO) (int64, error)
	ListExpenses(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]*Expense, error)
	GetExpense(ctx context.Context, ownerID uuid.UUID, id int64) (*Expense, error)
	UpdateExpense(ctx context.Context, ownerID uuid.UUID, id int64, dto UpdateExpenseDTO) (int64, error)
	DeleteExpense(ctx context.Context, ownerID uuid.UUID, id int64) (int64, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := internal.OwnerFromContext(r.Context())
	if !ok {
		h.Logger.Error("AddExpense: owner not found in context")
		h.WriteBadRequest(w, "missing owner scope")
		return
	}

	var dto AddExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AddExpense: invalid request body", "error", err)
		h.WriteBadRequest(w, "invalid request body")
		return
	}

	id, err := h.Service.AddExpense(r.Context(), ownerID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteResult(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := internal.OwnerFromContext(r.Context())
	if !ok {
		h.Logger.Error("ListExpenses: owner not found in context")
		h.WriteBadRequest(w, "missing owner scope")
		return
	}

	filters, err := parseListFilters(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	records, err := h.Service.ListExpenses(r.Context(), ownerID, filters)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteResult(w, http.StatusOK, ListResponse{Count: len(records), Records: records})
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := internal.OwnerFromContext(r.Context())
	if !ok {
		h.Logger.Error("GetExpense: owner not found in context")
		h.WriteBadRequest(w, "missing owner scope")
		return
	}

	id, appErr := expenseIDFromURL(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	record, err := h.Service.GetExpense(r.Context(), ownerID, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteResult(w, http.StatusOK, map[string]*Expense{"expense_record": record})
}

// UpdateExpense decodes the partial field set with DisallowUnknownFields:
// a field name outside the closed updatable set is a hard rejection, not
// something to silently drop.
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := internal.OwnerFromContext(r.Context())
	if !ok {
		h.Logger.Error("UpdateExpense: owner not found in context")
		h.WriteBadRequest(w, "missing owner scope")
		return
	}

	id, appErr := expenseIDFromURL(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var dto UpdateExpenseDTO
	if err := decoder.Decode(&dto); err != nil {
		h.Logger.Warn("UpdateExpense: rejected request body", "expense_id", id, "error", err)
		h.WriteAppError(w, internal.NewValidationError(
			"request body contains an invalid or unknown field", internal.ErrCodeUnknownField))
		return
	}

	rows, err := h.Service.UpdateExpense(r.Context(), ownerID, id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteResult(w, http.StatusOK, RowsAffectedResponse{RowsAffected: rows})
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := internal.OwnerFromContext(r.Context())
	if !ok {
		h.Logger.Error("DeleteExpense: owner not found in context")
		h.WriteBadRequest(w, "missing owner scope")
		return
	}

	id, appErr := expenseIDFromURL(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	rows, err := h.Service.DeleteExpense(r.Context(), ownerID, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteResult(w, http.StatusOK, RowsAffectedResponse{RowsAffected: rows})
}

func expenseIDFromURL(r *http.Request) (int64, *internal.AppError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal.NewValidationError("invalid expense id", internal.ErrCodeInvalidFormat)
	}
	return id, nil
}

func parseListFilters(r *http.Request) (ListFilters, error) {
	query := r.URL.Query()
	filters := ListFilters{}

	if raw := query.Get("min_amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return ListFilters{}, internal.NewValidationError(
				"min_amount must be a decimal number", internal.ErrCodeInvalidAmount).WithField("min_amount")
		}
		filters.MinAmount = &amount
	}
	if raw := query.Get("max_amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return ListFilters{}, internal.NewValidationError(
				"max_amount must be a decimal number", internal.ErrCodeInvalidAmount).WithField("max_amount")
		}
		filters.MaxAmount = &amount
	}
	if raw := query.Get("category"); raw != "" {
		filters.Category = &raw
	}
	if raw := query.Get("subcategory"); raw != "" {
		filters.Subcategory = &raw
	}
	if raw := query.Get("start_date"); raw != "" {
		filters.StartDate = &raw
	}
	if raw := query.Get("end_date"); raw != "" {
		filters.EndDate = &raw
	}
	if raw := query.Get("currency"); raw != "" {
		filters.Currency = &raw
	}

	return filters, nil
}
