package service

import (
	"context"
	"errors"
	"testing"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartLine(name string, price string, qty int) domain.CartLine {
	return domain.CartLine{
		ProductID:   uuid.New(),
		ProductName: name,
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    qty,
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	store := newMockCheckoutStore()
	userID := uuid.New()
	store.carts[userID] = []domain.CartLine{
		cartLine("Milk", "10.00", 2),
		cartLine("Bread", "20.00", 1),
	}
	pay := &mockPaymentClient{orderID: "PAYPAL-123"}
	svc := NewCheckoutService(store, pay)

	orderID, err := svc.PlaceOrder(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "PAYPAL-123", orderID)

	// Exactly one invoice, one item per cart line, cart emptied.
	require.Len(t, store.invoices, 1)
	inv := store.invoices[0]
	assert.Equal(t, userID, inv.UserID)
	assert.Equal(t, domain.InvoiceStatusPending, inv.Status)
	assert.Equal(t, "40.00", inv.TotalAmount.StringFixed(2))
	assert.Len(t, store.items[inv.ID], 2)
	assert.Empty(t, store.carts[userID])

	// One provider call carrying the exact total.
	require.Equal(t, 1, pay.callCount())
	assert.Equal(t, "40.00", pay.calls[0].Amount.StringFixed(2))
	assert.Equal(t, "EUR", pay.calls[0].Currency)
}

func TestPlaceOrder_DecimalExactTotal(t *testing.T) {
	store := newMockCheckoutStore()
	userID := uuid.New()
	store.carts[userID] = []domain.CartLine{
		cartLine("A", "10.99", 2),
		cartLine("B", "25.50", 3),
	}
	pay := &mockPaymentClient{orderID: "PAYPAL-42"}
	svc := NewCheckoutService(store, pay)

	_, err := svc.PlaceOrder(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, store.invoices, 1)
	assert.Equal(t, "98.48", store.invoices[0].TotalAmount.StringFixed(2))
	assert.Equal(t, "98.48", pay.calls[0].Amount.StringFixed(2))
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	store := newMockCheckoutStore()
	pay := &mockPaymentClient{orderID: "PAYPAL-1"}
	svc := NewCheckoutService(store, pay)

	_, err := svc.PlaceOrder(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, store.invoices)
	assert.Empty(t, store.items)
	assert.Zero(t, pay.callCount())
}

func TestPlaceOrder_FetchCartItemsFailed(t *testing.T) {
	store := newMockCheckoutStore()
	store.linesErr = errors.New("connection reset")
	pay := &mockPaymentClient{orderID: "PAYPAL-1"}
	svc := NewCheckoutService(store, pay)

	_, err := svc.PlaceOrder(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrFetchCartItems)
	assert.Zero(t, pay.callCount())
}

func TestPlaceOrder_PaymentErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		paymentErr error
		want       error
	}{
		{"unreachable", payment.ErrUnreachable, ErrPaymentUnreachable},
		{"bad response", payment.ErrBadResponse, ErrPaymentBadResponse},
		{"rejected", payment.ErrRejected, ErrPaymentRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockCheckoutStore()
			userID := uuid.New()
			store.carts[userID] = []domain.CartLine{cartLine("Milk", "1.50", 1)}
			pay := &mockPaymentClient{err: tt.paymentErr}
			svc := NewCheckoutService(store, pay)

			_, err := svc.PlaceOrder(context.Background(), userID)

			assert.ErrorIs(t, err, tt.want)
			// Provider failure leaves no partial invoice and the cart intact.
			assert.Empty(t, store.invoices)
			assert.Len(t, store.carts[userID], 1)
		})
	}
}

func TestPlaceOrder_RetryAfterPaymentFailureSucceeds(t *testing.T) {
	store := newMockCheckoutStore()
	userID := uuid.New()
	store.carts[userID] = []domain.CartLine{cartLine("Milk", "1.50", 2)}
	pay := &mockPaymentClient{err: payment.ErrUnreachable}
	svc := NewCheckoutService(store, pay)

	_, err := svc.PlaceOrder(context.Background(), userID)
	require.ErrorIs(t, err, ErrPaymentUnreachable)

	// Same cart, provider back up: no manual cleanup needed.
	pay.err = nil
	pay.orderID = "PAYPAL-RETRY"
	orderID, err := svc.PlaceOrder(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "PAYPAL-RETRY", orderID)
	require.Len(t, store.invoices, 1)
	assert.Equal(t, "3.00", store.invoices[0].TotalAmount.StringFixed(2))
	assert.Empty(t, store.carts[userID])
}

func TestPlaceOrder_LocalWriteFailuresRollBack(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*mockCheckoutStore)
		want  error
	}{
		{"invoice write", func(m *mockCheckoutStore) { m.invoiceErr = errors.New("disk full") }, ErrInvoiceWrite},
		{"invoice items write", func(m *mockCheckoutStore) { m.itemsErr = errors.New("disk full") }, ErrInvoiceItemsWrite},
		{"cart clear", func(m *mockCheckoutStore) { m.clearErr = errors.New("disk full") }, ErrCartClear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockCheckoutStore()
			userID := uuid.New()
			store.carts[userID] = []domain.CartLine{cartLine("Milk", "1.50", 1)}
			tt.setup(store)
			pay := &mockPaymentClient{orderID: "PAYPAL-1"}
			svc := NewCheckoutService(store, pay)

			_, err := svc.PlaceOrder(context.Background(), userID)

			assert.ErrorIs(t, err, tt.want)
			// The whole transaction rolled back: cart exactly as before.
			assert.Empty(t, store.invoices)
			assert.Empty(t, store.items)
			assert.Len(t, store.carts[userID], 1)
		})
	}
}

func TestPlaceOrder_UsersDoNotInterfere(t *testing.T) {
	store := newMockCheckoutStore()
	alice := uuid.New()
	bob := uuid.New()
	store.carts[alice] = []domain.CartLine{cartLine("Milk", "2.00", 1)}
	store.carts[bob] = []domain.CartLine{cartLine("Eggs", "3.00", 2)}
	pay := &mockPaymentClient{orderID: "PAYPAL-A"}
	svc := NewCheckoutService(store, pay)

	_, err := svc.PlaceOrder(context.Background(), alice)
	require.NoError(t, err)

	// Bob's cart untouched, exactly one invoice and it belongs to Alice.
	assert.Len(t, store.carts[bob], 1)
	require.Len(t, store.invoices, 1)
	assert.Equal(t, alice, store.invoices[0].UserID)
}

func TestCartTotal_RoundsHalfUp(t *testing.T) {
	lines := []domain.CartLine{
		cartLine("A", "0.335", 1),
		cartLine("B", "1.00", 1),
	}
	assert.Equal(t, "1.34", CartTotal(lines).StringFixed(2))
}
