package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/apierror"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/printing"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/receipt"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/repository"
)

// PrintHandler exposes printer diagnostics and manual reprints. Reprints run
// synchronously — the operator pressed the button and wants to know whether
// paper came out.
type PrintHandler struct {
	relay      *printing.RelayBackend
	dispatcher *printing.Dispatcher
	txRepo     repository.TransactionRepository
	store      receipt.StoreInfo
}

func NewPrintHandler(
	relay *printing.RelayBackend,
	dispatcher *printing.Dispatcher,
	txRepo repository.TransactionRepository,
	store receipt.StoreInfo,
) *PrintHandler {
	return &PrintHandler{relay: relay, dispatcher: dispatcher, txRepo: txRepo, store: store}
}

// Status reports the print relay's diagnostics for the settings screen.
func (h *PrintHandler) Status(c *gin.Context) {
	status, err := h.relay.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to query relay status"))
		return
	}
	c.JSON(http.StatusOK, status)
}

// Reprint rebuilds and prints the receipt for a committed transaction.
func (h *PrintHandler) Reprint(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid transaction id"))
		return
	}

	detail, err := h.txRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("transaction not found"))
		return
	}

	doc := receipt.Build(h.store, detail)
	printed := h.dispatcher.Print(c.Request.Context(), doc)
	status := http.StatusOK
	if !printed {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"printed": printed})
}
