package service

import (
	"context"
	"errors"
	"testing"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReportStore struct {
	stats       repository.OrderStats
	customers   int
	topProducts []domain.TopProduct

	statsErr    error
	customerErr error
	topErr      error

	gotLimit int
}

func (m *mockReportStore) DB() repository.DBTX { return nil }

func (m *mockReportStore) GetOrderStats(_ context.Context, _ repository.DBTX) (repository.OrderStats, error) {
	return m.stats, m.statsErr
}

func (m *mockReportStore) CountCustomers(_ context.Context, _ repository.DBTX) (int, error) {
	return m.customers, m.customerErr
}

func (m *mockReportStore) GetTopProducts(_ context.Context, _ repository.DBTX, limit int) ([]domain.TopProduct, error) {
	m.gotLimit = limit
	return m.topProducts, m.topErr
}

func TestReportService_Generate(t *testing.T) {
	store := &mockReportStore{
		stats: repository.OrderStats{
			TotalRevenue:    decimal.RequireFromString("250.00"),
			TotalOrders:     5,
			CompletedOrders: 3,
			PendingOrders:   2,
		},
		customers: 12,
		topProducts: []domain.TopProduct{
			{ProductID: uuid.New(), ProductName: "Espresso Beans", TotalQuantity: 40, TotalRevenue: decimal.RequireFromString("180.00")},
		},
	}
	svc := NewReportService(store)

	report, err := svc.Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "250.00", report.TotalRevenue.StringFixed(2))
	assert.Equal(t, 5, report.TotalOrders)
	assert.Equal(t, 3, report.CompletedOrders)
	assert.Equal(t, 2, report.PendingOrders)
	assert.Equal(t, 12, report.TotalCustomers)
	// 250.00 / 3 rounded to cents.
	assert.Equal(t, "83.33", report.AverageOrderValue.StringFixed(2))
	assert.Len(t, report.TopProducts, 1)
	assert.Equal(t, topProductsLimit, store.gotLimit)
}

func TestReportService_GenerateNoCompletedOrders(t *testing.T) {
	store := &mockReportStore{
		stats: repository.OrderStats{
			TotalRevenue:  decimal.Zero,
			TotalOrders:   4,
			PendingOrders: 4,
		},
		customers: 7,
	}
	svc := NewReportService(store)

	report, err := svc.Generate(context.Background())

	require.NoError(t, err)
	assert.True(t, report.AverageOrderValue.IsZero())
	assert.NotNil(t, report.TopProducts)
	assert.Empty(t, report.TopProducts)
}

func TestReportService_GenerateEmptySystem(t *testing.T) {
	svc := NewReportService(&mockReportStore{})

	report, err := svc.Generate(context.Background())

	require.NoError(t, err)
	assert.True(t, report.TotalRevenue.IsZero())
	assert.Zero(t, report.TotalOrders)
	assert.Zero(t, report.CompletedOrders)
	assert.Zero(t, report.PendingOrders)
	assert.Zero(t, report.TotalCustomers)
	assert.True(t, report.AverageOrderValue.IsZero())
	assert.Empty(t, report.TopProducts)
}

func TestReportService_GenerateErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name  string
		store *mockReportStore
	}{
		{name: "order stats", store: &mockReportStore{statsErr: boom}},
		{name: "customer count", store: &mockReportStore{customerErr: boom}},
		{name: "top products", store: &mockReportStore{topErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReportService(tt.store).Generate(context.Background())
			assert.ErrorIs(t, err, boom)
		})
	}
}
