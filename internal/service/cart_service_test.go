package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/cart"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/dto"
)

// memoryCartStore keeps carts in a map; the Redis store is wire-compatible.
type memoryCartStore struct {
	stubCartSessions
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{stubCartSessions: *newStubCartSessions()}
}

func (s *memoryCartStore) Save(_ context.Context, c *cart.Cart) error {
	s.carts[c.ID] = c
	return nil
}

var _ CartStore = (*memoryCartStore)(nil)

func newCartServiceFixture(t *testing.T) (CartService, *memoryCartStore, string) {
	t.Helper()
	rice := riceItem()
	store := newMemoryCartStore()
	catalog := NewCatalogService(newStubStockRepo(rice), nil, 5*time.Minute)
	svc := NewCartService(store, catalog)
	return svc, store, rice.ID.String()
}

func TestCartServiceCreate(t *testing.T) {
	svc, store, _ := newCartServiceFixture(t)

	resp, err := svc.Create(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Empty(t, resp.Lines)
	assert.True(t, resp.Total.Equal(decimal.Zero))
	assert.Contains(t, store.carts, resp.ID)
}

func TestCartServiceAddItemFetchesSnapshot(t *testing.T) {
	svc, _, riceID := newCartServiceFixture(t)

	created, err := svc.Create(context.Background())
	require.NoError(t, err)

	resp, err := svc.AddItem(context.Background(), created.ID, dto.AddItemRequest{
		ItemID:   riceID,
		Unit:     "kg",
		Quantity: 2,
		Mode:     "manual",
	})
	require.NoError(t, err)

	require.Len(t, resp.Lines, 1)
	line := resp.Lines[0]
	assert.Equal(t, "Beras Premium", line.Name)
	assert.Equal(t, 2.0, line.Quantity)
	assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(30000)))
	assert.ElementsMatch(t, []string{"gram", "ons", "kg"}, line.Units)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(30000)))
}

func TestCartServiceAddItemUnknownCart(t *testing.T) {
	svc, _, riceID := newCartServiceFixture(t)

	_, err := svc.AddItem(context.Background(), "missing", dto.AddItemRequest{
		ItemID:   riceID,
		Unit:     "kg",
		Quantity: 1,
	})
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestCartServiceMutationsPersist(t *testing.T) {
	svc, store, riceID := newCartServiceFixture(t)

	created, err := svc.Create(context.Background())
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), created.ID, dto.AddItemRequest{
		ItemID:   riceID,
		Unit:     "gram",
		Quantity: 2000,
		Mode:     "manual",
	})
	require.NoError(t, err)

	itemUUID := store.carts[created.ID].Lines[0].ItemID

	resp, err := svc.ChangeUnit(context.Background(), created.ID, itemUUID, dto.ChangeUnitRequest{Unit: "kg"})
	require.NoError(t, err)
	assert.Equal(t, "kg", resp.Lines[0].Unit)
	assert.Equal(t, 2.0, resp.Lines[0].Quantity)

	resp, err = svc.SetQuantity(context.Background(), created.ID, itemUUID, dto.SetQuantityRequest{Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)

	// The store holds the mutated cart, not a stale copy
	assert.Empty(t, store.carts[created.ID].Lines)
}
