package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/model"
)

type TransactionRepository interface {
	CreateTx(tx *gorm.DB, detail *model.TransactionDetail) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TransactionDetail, error)
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) CreateTx(tx *gorm.DB, detail *model.TransactionDetail) error {
	return tx.Create(detail).Error
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TransactionDetail, error) {
	var detail model.TransactionDetail
	err := r.db.WithContext(ctx).Preload("Items").First(&detail, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
