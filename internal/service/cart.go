package service

import (
	"context"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type CartStore interface {
	DB() repository.DBTX
	GetCartLines(ctx context.Context, q repository.DBTX, userID uuid.UUID) ([]domain.CartLine, error)
	UpsertCartItem(ctx context.Context, q repository.DBTX, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, q repository.DBTX, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error)
	RemoveCartItem(ctx context.Context, q repository.DBTX, userID, productID uuid.UUID) error
	ClearCart(ctx context.Context, q repository.DBTX, userID uuid.UUID) error
}

type CartService struct {
	store CartStore
	sfg   singleflight.Group // Collapses concurrent reads of the same cart
}

func NewCartService(store CartStore) *CartService {
	return &CartService{store: store}
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(userID.String(), func() (interface{}, error) {
		lines, err := s.store.GetCartLines(ctx, s.store.DB(), userID)
		if err != nil {
			return nil, err
		}
		return &domain.Cart{
			UserID: userID,
			Items:  lines,
			Total:  CartTotal(lines),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	return s.store.UpsertCartItem(ctx, s.store.DB(), userID, productID, quantity)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	return s.store.UpdateCartItemQuantity(ctx, s.store.DB(), userID, productID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return s.store.RemoveCartItem(ctx, s.store.DB(), userID, productID)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.ClearCart(ctx, s.store.DB(), userID)
}
