package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/payment"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency is fixed for every order; the cart carries no currency of its own.
const Currency = "EUR"

// CheckoutStore is the slice of the repository the checkout transaction
// needs. Every operation takes the transaction handle WithTx provides.
type CheckoutStore interface {
	WithTx(ctx context.Context, fn func(q repository.DBTX) error) error
	GetCartLines(ctx context.Context, q repository.DBTX, userID uuid.UUID) ([]domain.CartLine, error)
	CreateInvoice(ctx context.Context, q repository.DBTX, userID uuid.UUID, paypalOrderID string, total decimal.Decimal) (*domain.Invoice, error)
	CreateInvoiceItems(ctx context.Context, q repository.DBTX, invoiceID uuid.UUID, lines []domain.CartLine) error
	ClearCart(ctx context.Context, q repository.DBTX, userID uuid.UUID) error
}

type CheckoutService struct {
	store   CheckoutStore
	payment payment.Client
}

func NewCheckoutService(store CheckoutStore, paymentClient payment.Client) *CheckoutService {
	return &CheckoutService{
		store:   store,
		payment: paymentClient,
	}
}

// CartTotal rounds the summed line totals to cents, half up. Money never
// passes through binary floating point.
func CartTotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total.Round(2)
}

// PlaceOrder turns the user's cart into a paid-pending invoice:
// read cart, create the external payment order, persist invoice plus item
// snapshot, clear the cart. All local writes share one transaction; any
// failure after the payment call rolls them back together and leaves the
// cart untouched.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uuid.UUID) (string, error) {
	var paypalOrderID string

	err := s.store.WithTx(ctx, func(q repository.DBTX) error {
		lines, err := s.store.GetCartLines(ctx, q, userID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFetchCartItems, err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		total := CartTotal(lines)

		// The external call sits after cart validation and before any
		// local write, so a provider failure leaves no partial invoice.
		orderID, err := s.payment.CreateOrder(ctx, total, Currency)
		if err != nil {
			return mapPaymentError(err)
		}
		paypalOrderID = orderID

		invoice, err := s.store.CreateInvoice(ctx, q, userID, orderID, total)
		if err != nil {
			logOrphanedOrder(userID, orderID, err)
			return fmt.Errorf("%w: %v", ErrInvoiceWrite, err)
		}

		if err := s.store.CreateInvoiceItems(ctx, q, invoice.ID, lines); err != nil {
			logOrphanedOrder(userID, orderID, err)
			return fmt.Errorf("%w: %v", ErrInvoiceItemsWrite, err)
		}

		if err := s.store.ClearCart(ctx, q, userID); err != nil {
			logOrphanedOrder(userID, orderID, err)
			return fmt.Errorf("%w: %v", ErrCartClear, err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return paypalOrderID, nil
}

func mapPaymentError(err error) error {
	switch {
	case errors.Is(err, payment.ErrBadResponse):
		return fmt.Errorf("%w: %v", ErrPaymentBadResponse, err)
	case errors.Is(err, payment.ErrRejected):
		return fmt.Errorf("%w: %v", ErrPaymentRejected, err)
	default:
		return fmt.Errorf("%w: %v", ErrPaymentUnreachable, err)
	}
}

// An external order now exists without a local invoice. There is no
// automatic reconciliation; the log line is what operators alert on.
func logOrphanedOrder(userID uuid.UUID, paypalOrderID string, err error) {
	log.Printf("ORPHANED payment order: paypal_order_id=%s user_id=%s local persistence failed: %v",
		paypalOrderID, userID, err)
}
