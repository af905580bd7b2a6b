package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/model"
)

// ErrVoucherAlreadyClaimed is returned when Claim races another checkout and
// loses: the claimed flag is terminal, first writer wins.
var ErrVoucherAlreadyClaimed = errors.New("voucher already claimed")

type VoucherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Voucher, error)
	// Claim marks the voucher spent. Conditional on is_claimed = false so a
	// double claim surfaces as an error instead of silently overwriting.
	Claim(ctx context.Context, id uuid.UUID, at time.Time) error
}

type voucherRepo struct{ db *gorm.DB }

func NewVoucherRepository(db *gorm.DB) VoucherRepository { return &voucherRepo{db: db} }

func (r *voucherRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	var v model.Voucher
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *voucherRepo) Claim(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Voucher{}).
		Where("id = ? AND is_claimed = false", id).
		Updates(map[string]interface{}{"is_claimed": true, "claimed_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVoucherAlreadyClaimed
	}
	return nil
}
