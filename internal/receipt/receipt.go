// Package receipt builds the printable receipt document for a committed
// sale. The Document shape is the wire format shared by every print backend,
// including the HTTP relay.
package receipt

import (
	"github.com/shopspring/decimal"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/model"
)

type Header struct {
	StoreName    string `json:"storeName"`
	StoreAddress string `json:"storeAddress"`
	StoreCity    string `json:"storeCity"`
	Title        string `json:"title"`
}

type Info struct {
	TransactionID string `json:"transactionId"`
	DateTime      string `json:"dateTime"`
}

type Item struct {
	Name     string          `json:"name"`
	Quantity float64         `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Summary struct {
	Total      decimal.Decimal `json:"total"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	Change     decimal.Decimal `json:"change"`
}

// Document is a value object composed from the transaction at print time;
// it is never persisted.
type Document struct {
	Header  Header  `json:"header"`
	Info    Info    `json:"info"`
	Items   []Item  `json:"items"`
	Summary Summary `json:"summary"`
}

// StoreInfo identifies the store on the receipt header.
type StoreInfo struct {
	Name    string
	Address string
	City    string
}

// Build composes the receipt for a committed transaction. An applied voucher
// is appended as a synthetic negative-price line so the item list alone
// explains the payable total.
func Build(store StoreInfo, d *model.TransactionDetail) *Document {
	doc := &Document{
		Header: Header{
			StoreName:    store.Name,
			StoreAddress: store.Address,
			StoreCity:    store.City,
			Title:        "Nota Penjualan",
		},
		Info: Info{
			TransactionID: d.Code,
			DateTime:      d.CreatedAt.Format("02/01/2006 15:04"),
		},
	}

	for _, it := range d.Items {
		doc.Items = append(doc.Items, Item{
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Price:    it.Price,
			Subtotal: it.Subtotal,
		})
	}

	payable := d.Total
	if d.DiscountedTotal != nil {
		payable = *d.DiscountedTotal
		discount := d.Total.Sub(payable)
		name := "Voucher"
		if d.VoucherName != nil {
			name = "Voucher " + *d.VoucherName
		}
		doc.Items = append(doc.Items, Item{
			Name:     name,
			Quantity: 1,
			Unit:     "pcs",
			Price:    discount.Neg(),
			Subtotal: discount.Neg(),
		})
	}

	doc.Summary = Summary{
		Total:      payable,
		AmountPaid: d.AmountPaid,
		Change:     d.Change,
	}
	return doc
}
