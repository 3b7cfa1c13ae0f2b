package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/AdamBrutsaert/trinity-sub000/internal/cache"
	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/google/uuid"
)

type ProductStore interface {
	DB() repository.DBTX
	CreateProduct(ctx context.Context, q repository.DBTX, p *domain.Product) error
	GetProductByID(ctx context.Context, q repository.DBTX, id uuid.UUID) (*domain.Product, error)
	GetProductByBarcode(ctx context.Context, q repository.DBTX, barcode string) (*domain.Product, error)
	ListProducts(ctx context.Context, q repository.DBTX) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, q repository.DBTX, p *domain.Product) error
	DeleteProduct(ctx context.Context, q repository.DBTX, id uuid.UUID) error
}

// ProductService serves reads cache-aside and invalidates on every write.
type ProductService struct {
	store ProductStore
	cache cache.ProductCache
}

func NewProductService(store ProductStore, productCache cache.ProductCache) *ProductService {
	return &ProductService{store: store, cache: productCache}
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.cache.Get(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("product cache get error: %v", err) // log cache error but continue
	}

	product, err = s.store.GetProductByID(ctx, s.store.DB(), id)
	if err != nil {
		return nil, err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if errSet := s.cache.Set(ctx, product); errSet != nil {
			log.Printf("product cache set error: %v", errSet)
		}
	}()

	return product, nil
}

func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	return s.store.GetProductByBarcode(ctx, s.store.DB(), barcode)
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.store.ListProducts(ctx, s.store.DB())
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	return s.store.CreateProduct(ctx, s.store.DB(), p)
}

func (s *ProductService) Update(ctx context.Context, p *domain.Product) error {
	if err := s.store.UpdateProduct(ctx, s.store.DB(), p); err != nil {
		return err
	}
	s.invalidate(p.ID)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteProduct(ctx, s.store.DB(), id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *ProductService) invalidate(id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, id); err != nil {
		log.Printf("product cache invalidate error: %v", err)
	}
}
