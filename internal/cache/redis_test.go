package cache

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_GetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_SetGetRoundtrip(t *testing.T) {
	c, _ := newTestCache(t)
	product := &domain.Product{
		ID:      uuid.New(),
		Name:    "Greek Yogurt",
		Barcode: "3560070976478",
		Price:   decimal.RequireFromString("2.19"),
	}

	require.NoError(t, c.Set(context.Background(), product))

	got, err := c.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, product.Name, got.Name)
	assert.True(t, product.Price.Equal(got.Price))
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	product := &domain.Product{ID: uuid.New(), Name: "Sparkling Water", Price: decimal.RequireFromString("0.89")}

	require.NoError(t, c.Set(context.Background(), product))
	require.NoError(t, c.Delete(context.Background(), product.ID))

	_, err := c.Get(context.Background(), product.ID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_DeleteMissingKeyIsNoop(t *testing.T) {
	c, _ := newTestCache(t)

	assert.NoError(t, c.Delete(context.Background(), uuid.New()))
}

func TestRedisCache_EntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	product := &domain.Product{ID: uuid.New(), Name: "Rye Bread", Price: decimal.RequireFromString("1.75")}

	require.NoError(t, c.Set(context.Background(), product))

	// Base TTL plus maximum jitter.
	mr.FastForward(20 * time.Minute)

	_, err := c.Get(context.Background(), product.ID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
