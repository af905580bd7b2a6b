package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/cart"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/repository"
)

const snapshotKeyPrefix = "catalog:snapshot:"

// CatalogService serves the product snapshot a cart line is built from.
// It is a read-through cache: Redis first, then the database, with a TTL
// bounding how stale a line's prices can be. Checkout invalidates entries
// for the items it settled so the next sale sees fresh stock-derived data.
type CatalogService interface {
	Snapshot(ctx context.Context, itemID uuid.UUID) (*cart.Snapshot, error)
	Invalidate(ctx context.Context, itemID uuid.UUID)
}

type catalogService struct {
	repo repository.StockRepository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCatalogService(repo repository.StockRepository, rdb *redis.Client, ttl time.Duration) CatalogService {
	return &catalogService{repo: repo, rdb: rdb, ttl: ttl}
}

func (s *catalogService) Snapshot(ctx context.Context, itemID uuid.UUID) (*cart.Snapshot, error) {
	key := snapshotKeyPrefix + itemID.String()

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var snap cart.Snapshot
			if err := json.Unmarshal(raw, &snap); err == nil {
				return &snap, nil
			}
			// Corrupt cache entry — fall through to the database.
			s.rdb.Del(ctx, key)
		}
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	piecesPerBox := 0
	if item.PiecesPerBox != nil {
		piecesPerBox = *item.PiecesPerBox
	}
	snap := &cart.Snapshot{
		ItemID:       item.ID,
		Name:         item.Name,
		Category:     item.Category,
		SmallestUnit: item.SmallestUnit,
		PiecesPerBox: piecesPerBox,
		Units:        item.Units,
		PricePerUnit: item.PricePerUnit,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(snap); err == nil {
			if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				log.Warn().Err(err).Str("item_id", itemID.String()).Msg("catalog: failed to cache snapshot")
			}
		}
	}
	return snap, nil
}

func (s *catalogService) Invalidate(ctx context.Context, itemID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, snapshotKeyPrefix+itemID.String()).Err(); err != nil {
		log.Warn().Err(err).Str("item_id", itemID.String()).Msg("catalog: failed to invalidate snapshot")
	}
}
