package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/cart"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/dto"
)

// CartStore is the full session store contract the cart service drives.
// cart.Store (Redis) satisfies it in production.
type CartStore interface {
	CartSessions
	Save(ctx context.Context, c *cart.Cart) error
}

type CartService interface {
	Create(ctx context.Context) (*dto.CartResponse, error)
	Get(ctx context.Context, cartID string) (*dto.CartResponse, error)
	AddItem(ctx context.Context, cartID string, req dto.AddItemRequest) (*dto.CartResponse, error)
	SetQuantity(ctx context.Context, cartID string, itemID uuid.UUID, req dto.SetQuantityRequest) (*dto.CartResponse, error)
	ChangeUnit(ctx context.Context, cartID string, itemID uuid.UUID, req dto.ChangeUnitRequest) (*dto.CartResponse, error)
}

type cartService struct {
	store   CartStore
	catalog CatalogService
}

func NewCartService(store CartStore, catalog CatalogService) CartService {
	return &cartService{store: store, catalog: catalog}
}

func (s *cartService) Create(ctx context.Context) (*dto.CartResponse, error) {
	c := cart.New()
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

func (s *cartService) Get(ctx context.Context, cartID string) (*dto.CartResponse, error) {
	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

func (s *cartService) AddItem(ctx context.Context, cartID string, req dto.AddItemRequest) (*dto.CartResponse, error) {
	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, err
	}
	snap, err := s.catalog.Snapshot(ctx, itemID)
	if err != nil {
		return nil, err
	}

	mode := cart.Mode(req.Mode)
	if mode == "" {
		mode = cart.ModeScanner
	}
	if err := c.AddOrMerge(*snap, req.Unit, req.Quantity, mode); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

func (s *cartService) SetQuantity(ctx context.Context, cartID string, itemID uuid.UUID, req dto.SetQuantityRequest) (*dto.CartResponse, error) {
	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := c.SetQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

func (s *cartService) ChangeUnit(ctx context.Context, cartID string, itemID uuid.UUID, req dto.ChangeUnitRequest) (*dto.CartResponse, error) {
	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := c.ChangeUnit(itemID, req.Unit); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

func toCartResponse(c *cart.Cart) *dto.CartResponse {
	resp := &dto.CartResponse{
		ID:    c.ID,
		Lines: make([]dto.CartLineResponse, 0, len(c.Lines)),
		Total: c.Total(),
	}
	for _, l := range c.Lines {
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ItemID:   l.ItemID.String(),
			Name:     l.Name,
			Quantity: l.Quantity,
			Unit:     l.Unit,
			Price:    l.Price,
			Subtotal: l.Subtotal,
			Units:    l.Snapshot.Units,
		})
	}
	return resp
}
