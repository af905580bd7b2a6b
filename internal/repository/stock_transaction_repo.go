package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/model"
)

// StockTransactionRepository writes the append-only stock audit trail.
// Records are never updated or deleted here.
type StockTransactionRepository interface {
	CreateTx(tx *gorm.DB, record *model.StockTransaction) error
	ListByTransactionID(ctx context.Context, txID uuid.UUID) ([]model.StockTransaction, error)
}

type stockTransactionRepo struct{ db *gorm.DB }

func NewStockTransactionRepository(db *gorm.DB) StockTransactionRepository {
	return &stockTransactionRepo{db: db}
}

func (r *stockTransactionRepo) CreateTx(tx *gorm.DB, record *model.StockTransaction) error {
	return tx.Create(record).Error
}

func (r *stockTransactionRepo) ListByTransactionID(ctx context.Context, txID uuid.UUID) ([]model.StockTransaction, error) {
	var records []model.StockTransaction
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", txID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
