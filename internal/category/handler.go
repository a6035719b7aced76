package category

import (
	"net/http"
	"strconv"

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

// ListCategories returns either the flat sorted category list or, with
// list_subcategories=true, the category-to-subcategories mapping. An empty
// ledger yields the literal "No categories." result.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := internal.OwnerFromContext(r.Context())
	if !ok {
		h.Logger.Error("ListCategories: owner not found in context")
		h.WriteBadRequest(w, "missing owner scope")
		return
	}

	withSubcategories, _ := strconv.ParseBool(r.URL.Query().Get("list_subcategories"))

	if withSubcategories {
		grouped, err := h.Service.ListCategoriesWithSubcategories(r.Context(), ownerID)
		if err != nil {
			h.WriteAppError(w, err)
			return
		}
		if len(grouped) == 0 {
			h.WriteResult(w, http.StatusOK, "No categories.")
			return
		}
		h.WriteResult(w, http.StatusOK, map[string]any{"categories": grouped})
		return
	}

	names, err := h.Service.ListCategoryNames(r.Context(), ownerID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if len(names) == 0 {
		h.WriteResult(w, http.StatusOK, "No categories.")
		return
	}
	h.WriteResult(w, http.StatusOK, map[string]any{"categories": names})
}

// Taxonomy serves the static category reference document, re-read from its
// backing file on every request.
func (h *Handler) Taxonomy(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Service.Taxonomy()
	if err != nil {
		h.WriteAppError(w, internal.NewPersistenceError("failed to load category taxonomy", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.Logger.Error("failed to write taxonomy response", "error", err)
	}
}
