package receipt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/model"
)

var testStore = StoreInfo{
	Name:    "Koperasi Unidpu",
	Address: "Jl. Raya Gedongan No. 1",
	City:    "Mojokerto",
}

func sampleDetail() *model.TransactionDetail {
	return &model.TransactionDetail{
		Code:       "TRX-20260830120000-AB12CD34",
		Total:      decimal.NewFromInt(30000),
		AmountPaid: decimal.NewFromInt(50000),
		Change:     decimal.NewFromInt(20000),
		CreatedAt:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Items: []model.TransactionItem{
			{
				Name:     "Beras Premium",
				Quantity: 2,
				Unit:     "kg",
				Price:    decimal.NewFromInt(15000),
				Subtotal: decimal.NewFromInt(30000),
			},
		},
	}
}

func TestBuildPlainSale(t *testing.T) {
	doc := Build(testStore, sampleDetail())

	assert.Equal(t, "Koperasi Unidpu", doc.Header.StoreName)
	assert.Equal(t, "Nota Penjualan", doc.Header.Title)
	assert.Equal(t, "TRX-20260830120000-AB12CD34", doc.Info.TransactionID)
	assert.Equal(t, "30/08/2026 12:00", doc.Info.DateTime)

	require.Len(t, doc.Items, 1)
	assert.True(t, doc.Summary.Total.Equal(decimal.NewFromInt(30000)))
	assert.True(t, doc.Summary.AmountPaid.Equal(decimal.NewFromInt(50000)))
	assert.True(t, doc.Summary.Change.Equal(decimal.NewFromInt(20000)))
}

func TestBuildAppendsVoucherAsNegativeLine(t *testing.T) {
	d := sampleDetail()
	name := "HUT Koperasi"
	discounted := decimal.NewFromInt(20000)
	d.VoucherName = &name
	d.DiscountedTotal = &discounted
	d.AmountPaid = decimal.NewFromInt(20000)
	d.Change = decimal.Zero

	doc := Build(testStore, d)

	// Item list alone explains the payable total
	require.Len(t, doc.Items, 2)
	voucherLine := doc.Items[1]
	assert.Equal(t, "Voucher HUT Koperasi", voucherLine.Name)
	assert.True(t, voucherLine.Price.Equal(decimal.NewFromInt(-10000)))
	assert.True(t, voucherLine.Subtotal.Equal(decimal.NewFromInt(-10000)))

	sum := decimal.Zero
	for _, it := range doc.Items {
		sum = sum.Add(it.Subtotal)
	}
	assert.True(t, sum.Equal(doc.Summary.Total))
	assert.True(t, doc.Summary.Total.Equal(discounted))
}
