package httpapi

import (
	"errors"
	"net/http"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

type InvoicesHandler struct {
	repo *repository.Repository
}

func NewInvoicesHandler(repo *repository.Repository) *InvoicesHandler {
	return &InvoicesHandler{repo: repo}
}

func (h *InvoicesHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.repo.ListInvoices(r.Context(), h.repo.DB())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list invoices")
		return
	}
	if invoices == nil {
		invoices = []*domain.Invoice{}
	}
	respondJSON(w, http.StatusOK, invoices)
}

func (h *InvoicesHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, chi.URLParam(r, "user_id"), "user_id")
	if !ok {
		return
	}

	if _, err := h.repo.GetUserByID(r.Context(), h.repo.DB(), userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list invoices")
		return
	}

	invoices, err := h.repo.ListInvoicesByUserID(r.Context(), h.repo.DB(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list invoices")
		return
	}
	if invoices == nil {
		invoices = []*domain.Invoice{}
	}
	respondJSON(w, http.StatusOK, invoices)
}

// ListMine returns the authenticated customer's own invoices.
func (h *InvoicesHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	invoices, err := h.repo.ListInvoicesByUserID(r.Context(), h.repo.DB(), id.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list invoices")
		return
	}
	if invoices == nil {
		invoices = []*domain.Invoice{}
	}
	respondJSON(w, http.StatusOK, invoices)
}

func (h *InvoicesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "invoice_id"), "invoice_id")
	if !ok {
		return
	}

	invoice, err := h.repo.GetInvoiceByID(r.Context(), h.repo.DB(), id)
	if errors.Is(err, repository.ErrInvoiceNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "invoice not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch invoice")
		return
	}

	items, err := h.repo.GetInvoiceItems(r.Context(), h.repo.DB(), invoice.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch invoice items")
		return
	}
	if items == nil {
		items = []domain.InvoiceItem{}
	}

	respondJSON(w, http.StatusOK, domain.InvoiceWithItems{Invoice: *invoice, Items: items})
}

type updateInvoiceStatusDTO struct {
	Status domain.InvoiceStatus `json:"status"`
}

// UpdateStatus is the only operation that moves an invoice to
// 'completed'; checkout always leaves it 'pending'.
func (h *InvoicesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "invoice_id"), "invoice_id")
	if !ok {
		return
	}

	var req updateInvoiceStatusDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "status must be pending or completed")
		return
	}

	invoice, err := h.repo.UpdateInvoiceStatus(r.Context(), h.repo.DB(), id, req.Status)
	if errors.Is(err, repository.ErrInvoiceNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "invoice not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update invoice status")
		return
	}
	respondJSON(w, http.StatusOK, invoice)
}

func (h *InvoicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "invoice_id"), "invoice_id")
	if !ok {
		return
	}

	if err := h.repo.DeleteInvoice(r.Context(), h.repo.DB(), id); err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "invoice not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete invoice")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
