package httpapi

import (
	"errors"
	"net/http"

	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/AdamBrutsaert/trinity-sub000/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.GetCart(r.Context(), id.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch cart")
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req addItemRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	productID, ok := parseUUIDParam(w, req.ProductID, "product_id")
	if !ok {
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	item, err := h.carts.AddItem(r.Context(), id.UserID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add item to cart")
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	productID, ok := parseUUIDParam(w, chi.URLParam(r, "product_id"), "product_id")
	if !ok {
		return
	}

	var req updateQuantityRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	item, err := h.carts.UpdateQuantity(r.Context(), id.UserID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "cart item not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart item")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	productID, ok := parseUUIDParam(w, chi.URLParam(r, "product_id"), "product_id")
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(r.Context(), id.UserID, productID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "cart item not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove cart item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.carts.Clear(r.Context(), id.UserID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
