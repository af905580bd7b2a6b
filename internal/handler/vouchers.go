package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/apierror"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/dto"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/service"
)

type VouchersHandler struct{ svc service.VoucherService }

func NewVouchersHandler(svc service.VoucherService) *VouchersHandler {
	return &VouchersHandler{svc: svc}
}

// Validate checks whether a voucher can be applied right now. Every rejection
// returns the same generic reason regardless of which condition failed.
func (h *VouchersHandler) Validate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid voucher id"))
		return
	}

	v, err := h.svc.Validate(c.Request.Context(), id, time.Now())
	if err != nil {
		c.JSON(http.StatusOK, dto.VoucherResponse{
			Valid:  false,
			Reason: service.ErrVoucherNotActive.Error(),
		})
		return
	}

	value := v.Value
	c.JSON(http.StatusOK, dto.VoucherResponse{
		Valid:      true,
		ID:         v.ID.String(),
		Name:       v.Name,
		MemberName: v.MemberName,
		Value:      &value,
	})
}
