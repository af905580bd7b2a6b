// Package printing delivers receipts through an ordered chain of backends.
// The chain is explicit and injected at wiring time — which tiers exist and
// in what order is configuration, not runtime environment sniffing.
package printing

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/receipt"
)

// Backend is one printing tier. Send either delivers the receipt or returns
// an error; it must not block the sale either way.
type Backend interface {
	Name() string
	Send(ctx context.Context, doc *receipt.Document) error
}

// Dispatcher tries each backend in order, never in parallel, moving to the
// next tier on failure. Printing failure never blocks or reverses the
// already-committed sale.
type Dispatcher struct {
	backends []Backend
}

func NewDispatcher(backends ...Backend) *Dispatcher {
	return &Dispatcher{backends: backends}
}

// Print returns true as soon as one backend reports success, false only when
// every tier failed. Failures are logged, not propagated.
func (d *Dispatcher) Print(ctx context.Context, doc *receipt.Document) bool {
	for _, b := range d.backends {
		if err := b.Send(ctx, doc); err != nil {
			log.Warn().
				Str("backend", b.Name()).
				Str("transaction", doc.Info.TransactionID).
				Err(err).
				Msg("print backend failed, trying next tier")
			continue
		}
		log.Info().
			Str("backend", b.Name()).
			Str("transaction", doc.Info.TransactionID).
			Msg("receipt printed")
		return true
	}
	log.Error().
		Str("transaction", doc.Info.TransactionID).
		Msg("all print backends failed")
	return false
}
