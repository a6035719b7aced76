package currency

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/internal/transport"
	"github.com/adikrishnan/expense-ledger/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

// Convert handles GET /convert?amount=&source_currency=&target_currency=.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	amount, err := decimal.NewFromString(query.Get("amount"))
	if err != nil {
		h.WriteAppError(w, internal.NewValidationError(
			"amount must be a decimal number", internal.ErrCodeInvalidAmount).WithField("amount"))
		return
	}

	converted, convErr := h.Service.Convert(r.Context(), amount,
		query.Get("source_currency"), query.Get("target_currency"))
	if convErr != nil {
		h.WriteAppError(w, convErr)
		return
	}

	h.WriteResult(w, http.StatusOK, map[string]decimal.Decimal{"amount": converted})
}
