package cache

import (
	"context"
	"errors"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/google/uuid"
)

type ProductCache interface {
	Get(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productID uuid.UUID) error
}

var ErrCacheMiss = errors.New("cache miss")
