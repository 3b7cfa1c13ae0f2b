package httpapi

import (
	"errors"
	"net/http"

	"github.com/AdamBrutsaert/trinity-sub000/internal/service"
)

type OrdersHandler struct {
	checkout *service.CheckoutService
}

func NewOrdersHandler(checkout *service.CheckoutService) *OrdersHandler {
	return &OrdersHandler{checkout: checkout}
}

type createOrderResponseDTO struct {
	OrderID string `json:"orderId"`
}

// CreateOrder takes no body: the caller's cart is the sole source of line
// items. Upstream provider failures answer 502, local persistence
// failures 500; only the latter can leave an orphaned external order.
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	orderID, err := h.checkout.PlaceOrder(r.Context(), id.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		case errors.Is(err, service.ErrPaymentUnreachable):
			respondError(w, http.StatusBadGateway, "payment_unreachable", "failed to reach payment provider")
		case errors.Is(err, service.ErrPaymentBadResponse):
			respondError(w, http.StatusBadGateway, "payment_bad_response", "invalid response from payment provider")
		case errors.Is(err, service.ErrPaymentRejected):
			respondError(w, http.StatusBadGateway, "payment_rejected", "payment provider rejected the order")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		}
		return
	}

	respondJSON(w, http.StatusOK, createOrderResponseDTO{OrderID: orderID})
}
