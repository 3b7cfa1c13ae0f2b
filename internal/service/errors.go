package service

import "errors"

// Checkout failures, one per caller-visible outcome. The first three
// guarantee nothing was written anywhere; the payment errors guarantee no
// local write happened; the last three mean an external payment order was
// created but local persistence rolled back.
var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrFetchCartItems     = errors.New("failed to fetch cart items")
	ErrPaymentUnreachable = errors.New("payment provider unreachable")
	ErrPaymentBadResponse = errors.New("invalid response from payment provider")
	ErrPaymentRejected    = errors.New("payment provider rejected the order")
	ErrInvoiceWrite       = errors.New("failed to create invoice")
	ErrInvoiceItemsWrite  = errors.New("failed to create invoice items")
	ErrCartClear          = errors.New("failed to clear cart")
)
