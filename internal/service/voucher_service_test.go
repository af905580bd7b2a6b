package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/model"
)

func validVoucher() *model.Voucher {
	return &model.Voucher{
		ID:         uuid.New(),
		Name:       "Anniversary",
		MemberName: "Siti",
		Value:      decimal.NewFromInt(10000),
		IsActive:   true,
		ActiveDate: time.Now().Add(-time.Hour),
		ExpireDate: time.Now().Add(time.Hour),
	}
}

func TestValidateAcceptsActiveVoucher(t *testing.T) {
	repo := newStubVoucherRepo()
	v := validVoucher()
	repo.vouchers[v.ID] = v

	got, err := NewVoucherService(repo).Validate(context.Background(), v.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)
}

// Every rejection path collapses into the same generic error: the register
// must not reveal whether the voucher exists, is claimed, or is out of window.
func TestValidateRejectsUniformly(t *testing.T) {
	repo := newStubVoucherRepo()
	svc := NewVoucherService(repo)
	now := time.Now()

	// Unknown id
	_, err := svc.Validate(context.Background(), uuid.New(), now)
	assert.ErrorIs(t, err, ErrVoucherNotActive)

	// Deactivated
	v := validVoucher()
	v.IsActive = false
	repo.vouchers[v.ID] = v
	_, err = svc.Validate(context.Background(), v.ID, now)
	assert.ErrorIs(t, err, ErrVoucherNotActive)

	// Already claimed
	v = validVoucher()
	v.IsClaimed = true
	repo.vouchers[v.ID] = v
	_, err = svc.Validate(context.Background(), v.ID, now)
	assert.ErrorIs(t, err, ErrVoucherNotActive)

	// Not yet active
	v = validVoucher()
	v.ActiveDate = now.Add(time.Hour)
	v.ExpireDate = now.Add(2 * time.Hour)
	repo.vouchers[v.ID] = v
	_, err = svc.Validate(context.Background(), v.ID, now)
	assert.ErrorIs(t, err, ErrVoucherNotActive)

	// Expired
	v = validVoucher()
	v.ActiveDate = now.Add(-2 * time.Hour)
	v.ExpireDate = now.Add(-time.Hour)
	repo.vouchers[v.ID] = v
	_, err = svc.Validate(context.Background(), v.ID, now)
	assert.ErrorIs(t, err, ErrVoucherNotActive)
}

func TestDiscountedTotal(t *testing.T) {
	got := DiscountedTotal(decimal.NewFromInt(30000), decimal.NewFromInt(10000))
	assert.True(t, got.Equal(decimal.NewFromInt(20000)))

	// Voucher worth more than the cart floors at zero, never negative
	got = DiscountedTotal(decimal.NewFromInt(5000), decimal.NewFromInt(10000))
	assert.True(t, got.Equal(decimal.Zero))

	got = DiscountedTotal(decimal.NewFromInt(10000), decimal.NewFromInt(10000))
	assert.True(t, got.Equal(decimal.Zero))
}
