package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
	"smartclass24.backend/internal/interfaces/http/middleware"
	"smartclass24.backend/internal/interfaces/http/response"
	"smartclass24.backend/internal/usecases"
)

// RedemptionHandler handles the learner-facing redemption endpoint
type RedemptionHandler struct {
	redemptionUsecase *usecases.RedemptionUsecase
}

// NewRedemptionHandler creates a new redemption handler
func NewRedemptionHandler(redemptionUsecase *usecases.RedemptionUsecase) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionUsecase: redemptionUsecase,
	}
}

// RedeemAccessKey consumes an access key and links the caller to its tenant
// POST /api/v1/tenant-access/redeem
func (h *RedemptionHandler) RedeemAccessKey(c *gin.Context) {
	var input entities.RedeemAccessKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.InvalidArgument(err.Error()))
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	tenantID, err := h.redemptionUsecase.Redeem(c.Request.Context(), actor, input.AccessKey)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entities.RedeemAccessKeyResponse{TenantID: tenantID})
}
