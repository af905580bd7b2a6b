package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/apierror"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/cart"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/dto"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/service"
)

type CartHandler struct{ svc service.CartService }

func NewCartHandler(svc service.CartService) *CartHandler { return &CartHandler{svc: svc} }

// Create opens an empty cart for a new sale.
func (h *CartHandler) Create(c *gin.Context) {
	resp, err := h.svc.Create(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to create cart"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddItem adds a product to the cart or merges into an existing line.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item id"))
		return
	}
	var req dto.SetQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetQuantity(c.Request.Context(), c.Param("id"), itemID, req)
	if err != nil {
		writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangeUnit converts a line to a different sales unit and reprices it.
func (h *CartHandler) ChangeUnit(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item id"))
		return
	}
	var req dto.ChangeUnitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ChangeUnit(c.Request.Context(), c.Param("id"), itemID, req)
	if err != nil {
		writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrCartNotFound), errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
