package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/cart"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/dto"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/model"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/repository"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/unit"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/worker"
)

// CartSessions is the slice of the cart store checkout needs: load a session
// and discard it after a successful commit.
type CartSessions interface {
	Get(ctx context.Context, id string) (*cart.Cart, error)
	Delete(ctx context.Context, id string) error
}

type CheckoutService interface {
	Commit(ctx context.Context, cashier string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutService struct {
	carts      CartSessions
	catalog    CatalogService
	vouchers   VoucherService
	stockRepo  repository.StockRepository
	txRepo     repository.TransactionRepository
	auditRepo  repository.StockTransactionRepository
	dispatcher *worker.Dispatcher
	// strict rejects short lines instead of clamping them. Off by default:
	// the cashier must not be blocked mid-sale by a backroom count error.
	strict bool
}

func NewCheckoutService(
	carts CartSessions,
	catalog CatalogService,
	vouchers VoucherService,
	stockRepo repository.StockRepository,
	txRepo repository.TransactionRepository,
	auditRepo repository.StockTransactionRepository,
	dispatcher *worker.Dispatcher,
	strict bool,
) CheckoutService {
	return &checkoutService{
		carts:      carts,
		catalog:    catalog,
		vouchers:   vouchers,
		stockRepo:  stockRepo,
		txRepo:     txRepo,
		auditRepo:  auditRepo,
		dispatcher: dispatcher,
		strict:     strict,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolvedLine is one cart line after the discrepancy scan: live product,
// canonical quantity, and whether the shelf was short.
type resolvedLine struct {
	line       cart.Line
	item       *model.StockItem
	canonical  float64
	discrepant bool
}

// ── Commit ───────────────────────────────────────────────────────────────────
// The core settlement flow:
//  1. Load cart, validate voucher and payment
//  2. Discrepancy scan — read-only pass over live stock
//  3. One DB transaction: transaction detail + per-line stock settlement
//     with clamping + one audit record per line
//  4. Voucher claim (non-fatal), cart cleared, receipt job enqueued
//
// A missing stock item or a conversion error aborts the whole commit and
// leaves the cart intact. A stock shortfall never does: the line clamps to
// what the shelf has and the result carries a warning naming the items.

func (s *checkoutService) Commit(ctx context.Context, cashier string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	c, err := s.carts.Get(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		return nil, errors.New("cart is empty")
	}

	total := c.Total()
	payable := total
	now := time.Now()

	var voucher *model.Voucher
	var discounted *decimal.Decimal
	if req.VoucherID != nil {
		vid, err := uuid.Parse(*req.VoucherID)
		if err != nil {
			return nil, fmt.Errorf("invalid voucher id: %w", err)
		}
		voucher, err = s.vouchers.Validate(ctx, vid, now)
		if err != nil {
			return nil, err
		}
		d := DiscountedTotal(total, voucher.Value)
		discounted = &d
		payable = d
	}

	if req.AmountPaid.LessThan(payable) {
		return nil, errors.New("amount paid is less than the payable total")
	}
	change := req.AmountPaid.Sub(payable)

	// 1. Discrepancy scan — read-only. The flags decided here drive clamping
	// and the warning message; the settlement below re-reads inside the tx
	// because stock may have moved in between.
	resolved := make([]resolvedLine, 0, len(c.Lines))
	var discrepancies []dto.Discrepancy
	for _, line := range c.Lines {
		item, err := s.stockRepo.FindByID(ctx, line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("stock item %q not found: %w", line.Name, err)
		}
		canonical, err := unit.ToCanonical(line.Quantity, line.Unit, conversionProduct(item))
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", line.Name, err)
		}
		r := resolvedLine{line: line, item: item, canonical: canonical}
		if item.Stock < canonical {
			r.discrepant = true
			discrepancies = append(discrepancies, dto.Discrepancy{
				ItemID:       item.ID.String(),
				Name:         item.Name,
				RequestedQty: canonical,
				Available:    item.Stock,
			})
		}
		resolved = append(resolved, r)
	}

	if s.strict && len(discrepancies) > 0 {
		return nil, fmt.Errorf("insufficient stock for: %s", discrepancyNames(discrepancies))
	}

	// 2. Build the durable detail. Mass quantities are stored in kilograms
	// regardless of the unit used at the register.
	detail := &model.TransactionDetail{
		ID:         uuid.New(),
		Code:       transactionCode(now),
		Total:      total,
		AmountPaid: req.AmountPaid,
		Change:     change,
		CreatedBy:  cashier,
		CreatedAt:  now,
	}
	if voucher != nil {
		vid := voucher.ID
		name := voucher.Name
		detail.VoucherID = &vid
		detail.VoucherName = &name
		detail.DiscountedTotal = discounted
	}
	for _, r := range resolved {
		qty, unitName := r.line.Quantity, r.line.Unit
		if kg, ok := unit.ToKilograms(qty, unitName); ok {
			qty, unitName = kg, "kg"
		}
		detail.Items = append(detail.Items, model.TransactionItem{
			ItemID:   r.line.ItemID,
			Name:     r.line.Name,
			Quantity: qty,
			Unit:     unitName,
			Price:    r.line.Price,
			Subtotal: r.line.Subtotal,
		})
	}

	// 3. Settlement transaction: the detail, every stock write, and every
	// audit record commit or roll back together.
	txErr := runTx(ctx, s.stockRepo.DB(), func(tx *gorm.DB) error {
		if err := s.txRepo.CreateTx(tx, detail); err != nil {
			return err
		}

		for _, r := range resolved {
			// Second read, inside the tx — values may have changed since the
			// scan; the write below is the authoritative outcome.
			item, err := s.stockRepo.FindByIDTx(tx, r.item.ID)
			if err != nil {
				return fmt.Errorf("stock item %q vanished during settlement: %w", r.line.Name, err)
			}

			costPerUnit := decimal.Zero
			if item.Stock > 0 {
				costPerUnit = item.StockValue.Div(decimal.NewFromFloat(item.Stock))
			}

			var newStock float64
			var reduction decimal.Decimal
			if r.discrepant {
				// Clamp: take what the shelf has, drive stock to zero.
				available := item.Stock
				if available < 0 {
					available = 0
				}
				newStock = 0
				reduction = costPerUnit.Mul(decimal.NewFromFloat(available))
			} else {
				newStock = item.Stock - r.canonical
				if newStock < 0 {
					newStock = 0
				}
				reduction = costPerUnit.Mul(decimal.NewFromFloat(r.canonical))
			}

			// The value actually removed can never exceed what was there.
			worth := reduction
			if worth.GreaterThan(item.StockValue) {
				worth = item.StockValue
			}
			newValue := item.StockValue.Sub(reduction)
			if newValue.IsNegative() {
				newValue = decimal.Zero
			}

			if err := s.stockRepo.SetStockTx(tx, item.ID, newStock, newValue); err != nil {
				return err
			}

			// The audit row always carries the FULL requested quantity, even
			// when less was actually available.
			audit := &model.StockTransaction{
				TransactionID:     detail.ID,
				ItemID:            item.ID,
				ItemName:          item.Name,
				Category:          item.Category,
				Quantity:          r.canonical,
				Unit:              item.SmallestUnit,
				OriginalQuantity:  r.line.Quantity,
				OriginalUnit:      r.line.Unit,
				Price:             r.line.Price,
				StockWorth:        worth,
				IsStockDiscrepant: r.discrepant,
				CreatedBy:         cashier,
			}
			if err := s.auditRepo.CreateTx(tx, audit); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// 4. Voucher claim — after the settlement committed, and never fatal:
	// the sale must not fail because of voucher bookkeeping.
	if voucher != nil {
		if err := s.vouchers.Claim(ctx, voucher.ID, now); err != nil {
			log.Warn().
				Err(err).
				Str("voucher_id", voucher.ID.String()).
				Str("transaction_id", detail.ID.String()).
				Msg("checkout: voucher claim failed, sale committed anyway")
		}
	}

	// Cart cleared, snapshots invalidated for the items just settled.
	if err := s.carts.Delete(ctx, c.ID); err != nil {
		log.Warn().Err(err).Str("cart_id", c.ID).Msg("checkout: failed to clear cart")
	}
	for _, r := range resolved {
		s.catalog.Invalidate(ctx, r.item.ID)
	}

	// Receipt dispatch — fire & forget, independent of commit reporting.
	receiptState := "skipped"
	if s.dispatcher != nil {
		payload := worker.ReceiptJobPayload{TransactionID: detail.ID.String()}
		if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
			log.Warn().Err(err).Str("transaction_id", detail.ID.String()).Msg("checkout: failed to enqueue receipt job")
			receiptState = "failed"
		} else {
			receiptState = "queued"
		}
	}

	resp := &dto.CheckoutResponse{
		TransactionID:   detail.ID.String(),
		Code:            detail.Code,
		Total:           total,
		DiscountedTotal: discounted,
		AmountPaid:      req.AmountPaid,
		Change:          change,
		Discrepancies:   discrepancies,
		Receipt:         receiptState,
		CreatedAt:       now.Format("2006-01-02T15:04:05Z"),
	}
	if len(discrepancies) > 0 {
		resp.Warning = "transaction succeeded, but please check stock for: " + discrepancyNames(discrepancies)
	}
	return resp, nil
}

func conversionProduct(item *model.StockItem) unit.Product {
	piecesPerBox := 0
	if item.PiecesPerBox != nil {
		piecesPerBox = *item.PiecesPerBox
	}
	return unit.Product{SmallestUnit: item.SmallestUnit, PiecesPerBox: piecesPerBox}
}

func discrepancyNames(ds []dto.Discrepancy) string {
	names := make([]string, 0, len(ds))
	for _, d := range ds {
		names = append(names, d.Name)
	}
	return strings.Join(names, ", ")
}

// transactionCode derives the human-readable receipt number. The UUID primary
// key is the authoritative identifier; this code only has to be readable on
// 32-column paper.
func transactionCode(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("TRX-%s-%s", now.Format("20060102150405"), suffix)
}
