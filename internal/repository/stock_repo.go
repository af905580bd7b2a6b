package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/model"
)

// StockRepository is the data access contract for products and their stock.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type StockRepository interface {
	Create(ctx context.Context, item *model.StockItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error)

	// Used inside the settlement transaction — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.StockItem, error)
	SetStockTx(tx *gorm.DB, id uuid.UUID, stock float64, stockValue decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) Create(ctx context.Context, item *model.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := tx.First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepo) SetStockTx(tx *gorm.DB, id uuid.UUID, stock float64, stockValue decimal.Decimal) error {
	return tx.Model(&model.StockItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stock":       stock,
		"stock_value": stockValue,
	}).Error
}

func (r *stockRepo) DB() *gorm.DB { return r.db }
