package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TopProduct struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// Report aggregates completed invoices. Pending invoices only contribute
// to the order counts, never to revenue or top products.
type Report struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalOrders       int             `json:"total_orders"`
	CompletedOrders   int             `json:"completed_orders"`
	PendingOrders     int             `json:"pending_orders"`
	TotalCustomers    int             `json:"total_customers"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	TopProducts       []TopProduct    `json:"top_products"`
}
