package repository

import (
	"context"
	"fmt"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderStats struct {
	TotalRevenue    decimal.Decimal
	TotalOrders     int
	CompletedOrders int
	PendingOrders   int
}

// GetOrderStats sums completed invoices only; pending invoices count
// toward the order totals but contribute nothing to revenue.
func (r *Repository) GetOrderStats(ctx context.Context, q DBTX) (OrderStats, error) {
	var stats OrderStats
	query := `SELECT
	              COALESCE(SUM(CASE WHEN status = 'completed' THEN total_amount ELSE 0 END), 0),
	              COUNT(*),
	              COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
	              COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0)
	          FROM invoices`

	err := q.QueryRowContext(ctx, query).Scan(
		&stats.TotalRevenue,
		&stats.TotalOrders,
		&stats.CompletedOrders,
		&stats.PendingOrders,
	)
	if err != nil {
		return stats, fmt.Errorf("query order stats: %w", err)
	}
	return stats, nil
}

func (r *Repository) CountCustomers(ctx context.Context, q DBTX) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = 'customer'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

// GetTopProducts returns up to limit products ranked by total quantity
// sold across completed invoices. Ties between equal quantities come
// back in arbitrary order.
func (r *Repository) GetTopProducts(ctx context.Context, q DBTX, limit int) ([]domain.TopProduct, error) {
	query := `SELECT ii.product_id, ii.product_name,
	                 SUM(ii.quantity), SUM(ii.unit_price * ii.quantity)
	          FROM invoice_items ii
	          JOIN invoices i ON i.id = ii.invoice_id
	          WHERE i.status = 'completed'
	          GROUP BY ii.product_id, ii.product_name
	          ORDER BY SUM(ii.quantity) DESC
	          LIMIT $1`

	rows, err := q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query top products: %w", err)
	}
	defer rows.Close()

	var top []domain.TopProduct
	for rows.Next() {
		var p domain.TopProduct
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.TotalQuantity, &p.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		top = append(top, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return top, nil
}
