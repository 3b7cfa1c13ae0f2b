package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `id, user_id, paypal_order_id, status, total_amount, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }, inv *domain.Invoice) error {
	return row.Scan(
		&inv.ID,
		&inv.UserID,
		&inv.PaypalOrderID,
		&inv.Status,
		&inv.TotalAmount,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
}

func (r *Repository) CreateInvoice(ctx context.Context, q DBTX, userID uuid.UUID, paypalOrderID string, total decimal.Decimal) (*domain.Invoice, error) {
	query := `INSERT INTO invoices (user_id, paypal_order_id, status, total_amount)
	          VALUES ($1, $2, 'pending', $3)
	          RETURNING ` + invoiceColumns

	var inv domain.Invoice
	err := scanInvoice(q.QueryRowContext(ctx, query, userID, paypalOrderID, total), &inv)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	return &inv, nil
}

// CreateInvoiceItems bulk-inserts the snapshot rows for one invoice.
// The rows are immutable after this call.
func (r *Repository) CreateInvoiceItems(ctx context.Context, q DBTX, invoiceID uuid.UUID, lines []domain.CartLine) error {
	if len(lines) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO invoice_items (invoice_id, product_id, product_name, unit_price, quantity) VALUES `)
	args := make([]any, 0, 1+len(lines)*4)
	args = append(args, invoiceID)
	for i, l := range lines {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := len(args)
		fmt.Fprintf(&sb, "($1, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4)
		args = append(args, l.ProductID, l.ProductName, l.UnitPrice, l.Quantity)
	}

	if _, err := q.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert invoice items: %w", err)
	}
	return nil
}

func (r *Repository) GetInvoiceByID(ctx context.Context, q DBTX, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	var inv domain.Invoice
	err := scanInvoice(q.QueryRowContext(ctx, query, id), &inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query invoice by id: %w", err)
	}
	return &inv, nil
}

func (r *Repository) GetInvoiceItems(ctx context.Context, q DBTX, invoiceID uuid.UUID) ([]domain.InvoiceItem, error) {
	query := `SELECT id, invoice_id, product_id, product_name, unit_price, quantity, created_at
	          FROM invoice_items WHERE invoice_id = $1 ORDER BY created_at`

	rows, err := q.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("query invoice items: %w", err)
	}
	defer rows.Close()

	var items []domain.InvoiceItem
	for rows.Next() {
		var it domain.InvoiceItem
		if err := rows.Scan(
			&it.ID,
			&it.InvoiceID,
			&it.ProductID,
			&it.ProductName,
			&it.UnitPrice,
			&it.Quantity,
			&it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}

func (r *Repository) ListInvoices(ctx context.Context, q DBTX) ([]*domain.Invoice, error) {
	return r.listInvoices(ctx, q,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
}

func (r *Repository) ListInvoicesByUserID(ctx context.Context, q DBTX, userID uuid.UUID) ([]*domain.Invoice, error) {
	return r.listInvoices(ctx, q,
		`SELECT `+invoiceColumns+` FROM invoices WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *Repository) listInvoices(ctx context.Context, q DBTX, query string, args ...any) ([]*domain.Invoice, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return invoices, nil
}

// UpdateInvoiceStatus is the only path an invoice takes to 'completed'.
// Checkout never touches an invoice after creating it.
func (r *Repository) UpdateInvoiceStatus(ctx context.Context, q DBTX, id uuid.UUID, status domain.InvoiceStatus) (*domain.Invoice, error) {
	query := `UPDATE invoices SET status = $2, updated_at = NOW() WHERE id = $1
	          RETURNING ` + invoiceColumns

	var inv domain.Invoice
	err := scanInvoice(q.QueryRowContext(ctx, query, id, status), &inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update invoice status: %w", err)
	}
	return &inv, nil
}

func (r *Repository) DeleteInvoice(ctx context.Context, q DBTX, id uuid.UUID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete invoice rows affected: %w", err)
	}
	if affected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
