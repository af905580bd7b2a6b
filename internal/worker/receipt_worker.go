package worker

// receipt_worker.go
// Processes receipt print jobs from QueueReceipt. A print failure is never
// fatal to the already-committed sale: the job retries with exponential
// backoff, then dead-letters for manual reprint.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/printing"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/receipt"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/repository"
)

const maxPrintAttempts = 3

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	TransactionID string `json:"transaction_id"`
}

// ReceiptWorker rebuilds the receipt document for a committed transaction
// and pushes it through the print backend chain.
type ReceiptWorker struct {
	txRepo     repository.TransactionRepository
	dispatcher *printing.Dispatcher
	store      receipt.StoreInfo
	rdb        *redis.Client
}

func NewReceiptWorker(
	txRepo repository.TransactionRepository,
	dispatcher *printing.Dispatcher,
	store receipt.StoreInfo,
	rdb *redis.Client,
) *ReceiptWorker {
	return &ReceiptWorker{txRepo: txRepo, dispatcher: dispatcher, store: store, rdb: rdb}
}

// Process handles a single receipt job:
//  1. Parse ReceiptJobPayload from the job envelope
//  2. Fetch the TransactionDetail (with items) from DB
//  3. Build the receipt document
//  4. Print through the backend chain with backoff (max 3 attempts)
//  5. Dead-letter the job when every attempt exhausted every tier
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	txID, err := uuid.Parse(payload.TransactionID)
	if err != nil {
		log.Error().Str("transaction_id", payload.TransactionID).Msg("receipt_worker: invalid transaction_id")
		return
	}

	detail, err := w.txRepo.FindByID(ctx, txID)
	if err != nil {
		log.Error().Err(err).Str("transaction_id", payload.TransactionID).Msg("receipt_worker: transaction not found")
		return
	}

	doc := receipt.Build(w.store, detail)

	printErr := withRetry(ctx, maxPrintAttempts, func(attempt int) error {
		if !w.dispatcher.Print(ctx, doc) {
			log.Warn().
				Int("attempt", attempt+1).
				Str("transaction_id", payload.TransactionID).
				Msg("receipt_worker: all print tiers failed, retrying")
			return fmt.Errorf("all print backends failed")
		}
		return nil
	})
	if printErr != nil {
		log.Error().Err(printErr).Str("transaction_id", payload.TransactionID).Msg("receipt_worker: giving up")
		if w.rdb != nil {
			SendToDLQ(ctx, w.rdb, QueueReceipt, "receipt", raw, printErr.Error(), maxPrintAttempts)
		}
	}
}
