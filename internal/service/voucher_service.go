package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/model"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/repository"
)

// ErrVoucherNotActive is the single rejection returned for every invalid
// voucher — missing, inactive, already claimed, or outside its window. Which
// condition failed is not disclosed to the point-of-sale operator.
var ErrVoucherNotActive = errors.New("voucher is not active")

type VoucherService interface {
	// Validate returns the voucher when it may be applied at time now.
	Validate(ctx context.Context, id uuid.UUID, now time.Time) (*model.Voucher, error)
	// Claim marks the voucher spent. Called only after a successful commit.
	Claim(ctx context.Context, id uuid.UUID, at time.Time) error
}

type voucherService struct {
	repo repository.VoucherRepository
}

func NewVoucherService(repo repository.VoucherRepository) VoucherService {
	return &voucherService{repo: repo}
}

func (s *voucherService) Validate(ctx context.Context, id uuid.UUID, now time.Time) (*model.Voucher, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVoucherNotActive
	}
	if !v.IsActive || v.IsClaimed || now.Before(v.ActiveDate) || now.After(v.ExpireDate) {
		return nil, ErrVoucherNotActive
	}
	return v, nil
}

func (s *voucherService) Claim(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.repo.Claim(ctx, id, at)
}

// DiscountedTotal applies an absolute voucher value to the cart total.
// The discount never drives the payable amount negative.
func DiscountedTotal(total, value decimal.Decimal) decimal.Decimal {
	discounted := total.Sub(value)
	if discounted.IsNegative() {
		return decimal.Zero
	}
	return discounted
}
