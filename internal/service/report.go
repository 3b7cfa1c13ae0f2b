package service

import (
	"context"
	"fmt"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/shopspring/decimal"
)

const topProductsLimit = 10

type ReportStore interface {
	DB() repository.DBTX
	GetOrderStats(ctx context.Context, q repository.DBTX) (repository.OrderStats, error)
	CountCustomers(ctx context.Context, q repository.DBTX) (int, error)
	GetTopProducts(ctx context.Context, q repository.DBTX, limit int) ([]domain.TopProduct, error)
}

type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// Generate rolls up completed invoices: revenue, order counts, customer
// count, average order value and the top products by quantity sold.
func (s *ReportService) Generate(ctx context.Context) (*domain.Report, error) {
	q := s.store.DB()

	stats, err := s.store.GetOrderStats(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}

	customers, err := s.store.CountCustomers(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("customer count: %w", err)
	}

	topProducts, err := s.store.GetTopProducts(ctx, q, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	averageOrderValue := decimal.Zero
	if stats.CompletedOrders > 0 {
		averageOrderValue = stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(stats.CompletedOrders))).
			Round(2)
	}

	if topProducts == nil {
		topProducts = []domain.TopProduct{}
	}

	return &domain.Report{
		TotalRevenue:      stats.TotalRevenue,
		TotalOrders:       stats.TotalOrders,
		CompletedOrders:   stats.CompletedOrders,
		PendingOrders:     stats.PendingOrders,
		TotalCustomers:    customers,
		AverageOrderValue: averageOrderValue,
		TopProducts:       topProducts,
	}, nil
}
