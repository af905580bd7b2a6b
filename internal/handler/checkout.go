package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/apierror"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/cart"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/dto"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/middleware"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/service"
)

type CheckoutHandler struct{ svc service.CheckoutService }

func NewCheckoutHandler(svc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// Commit settles the sale: validates payment, reconciles stock, persists the
// transaction, and queues the receipt. A partial-stock sale still succeeds
// and the response carries a warning naming the short items.
func (h *CheckoutHandler) Commit(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Commit(c.Request.Context(), claims.Username, req)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrCartNotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrVoucherNotActive):
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}
