package service

import (
	"context"
	"sync"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// mockCheckoutStore keeps carts and invoices in memory and mimics
// transaction semantics: writes made inside WithTx are discarded when
// the callback fails.
type mockCheckoutStore struct {
	mu       sync.Mutex
	carts    map[uuid.UUID][]domain.CartLine
	invoices []*domain.Invoice
	items    map[uuid.UUID][]domain.CartLine

	linesErr   error
	invoiceErr error
	itemsErr   error
	clearErr   error
}

func newMockCheckoutStore() *mockCheckoutStore {
	return &mockCheckoutStore{
		carts: make(map[uuid.UUID][]domain.CartLine),
		items: make(map[uuid.UUID][]domain.CartLine),
	}
}

func (m *mockCheckoutStore) WithTx(_ context.Context, fn func(q repository.DBTX) error) error {
	m.mu.Lock()
	cartsSnapshot := make(map[uuid.UUID][]domain.CartLine, len(m.carts))
	for k, v := range m.carts {
		cartsSnapshot[k] = append([]domain.CartLine(nil), v...)
	}
	invoicesSnapshot := append([]*domain.Invoice(nil), m.invoices...)
	itemsSnapshot := make(map[uuid.UUID][]domain.CartLine, len(m.items))
	for k, v := range m.items {
		itemsSnapshot[k] = append([]domain.CartLine(nil), v...)
	}
	m.mu.Unlock()

	if err := fn(nil); err != nil {
		m.mu.Lock()
		m.carts = cartsSnapshot
		m.invoices = invoicesSnapshot
		m.items = itemsSnapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *mockCheckoutStore) GetCartLines(_ context.Context, _ repository.DBTX, userID uuid.UUID) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.linesErr != nil {
		return nil, m.linesErr
	}
	return append([]domain.CartLine(nil), m.carts[userID]...), nil
}

func (m *mockCheckoutStore) CreateInvoice(_ context.Context, _ repository.DBTX, userID uuid.UUID, paypalOrderID string, total decimal.Decimal) (*domain.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.invoiceErr != nil {
		return nil, m.invoiceErr
	}
	inv := &domain.Invoice{
		ID:            uuid.New(),
		UserID:        userID,
		PaypalOrderID: paypalOrderID,
		Status:        domain.InvoiceStatusPending,
		TotalAmount:   total,
	}
	m.invoices = append(m.invoices, inv)
	return inv, nil
}

func (m *mockCheckoutStore) CreateInvoiceItems(_ context.Context, _ repository.DBTX, invoiceID uuid.UUID, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.itemsErr != nil {
		return m.itemsErr
	}
	m.items[invoiceID] = append([]domain.CartLine(nil), lines...)
	return nil
}

func (m *mockCheckoutStore) ClearCart(_ context.Context, _ repository.DBTX, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.carts, userID)
	return nil
}

type paymentCall struct {
	Amount   decimal.Decimal
	Currency string
}

type mockPaymentClient struct {
	mu      sync.Mutex
	orderID string
	err     error
	calls   []paymentCall
}

func (m *mockPaymentClient) CreateOrder(_ context.Context, amount decimal.Decimal, currency string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, paymentCall{Amount: amount, Currency: currency})
	if m.err != nil {
		return "", m.err
	}
	return m.orderID, nil
}

func (m *mockPaymentClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
