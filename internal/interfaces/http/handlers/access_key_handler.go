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

// AccessKeyHandler handles the access key management endpoints
type AccessKeyHandler struct {
	accessKeyUsecase *usecases.AccessKeyUsecase
}

// NewAccessKeyHandler creates a new access key handler
func NewAccessKeyHandler(accessKeyUsecase *usecases.AccessKeyUsecase) *AccessKeyHandler {
	return &AccessKeyHandler{
		accessKeyUsecase: accessKeyUsecase,
	}
}

// CreateAccessKey mints a new key; the plaintext appears in this response
// only and is never retrievable again.
// POST /api/v1/admin/access-keys
func (h *AccessKeyHandler) CreateAccessKey(c *gin.Context) {
	var input entities.CreateAccessKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.InvalidArgument(err.Error()))
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	res, err := h.accessKeyUsecase.Create(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// ListAccessKeys lists the most recent keys, newest first
// GET /api/v1/admin/access-keys
func (h *AccessKeyHandler) ListAccessKeys(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	keys, err := h.accessKeyUsecase.List(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"keys": keys})
}

// RevokeAccessKey deactivates a key
// DELETE /api/v1/admin/access-keys/:keyHash
func (h *AccessKeyHandler) RevokeAccessKey(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	if err := h.accessKeyUsecase.Revoke(c.Request.Context(), actor, c.Param("keyHash")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Access key revoked"})
}

// RotateAccessKeys replaces every active key for a tenant with one new key
// POST /api/v1/admin/access-keys/rotate
func (h *AccessKeyHandler) RotateAccessKeys(c *gin.Context) {
	var input entities.CreateAccessKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.InvalidArgument(err.Error()))
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	res, err := h.accessKeyUsecase.Rotate(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// UpdateMaxUses sets or clears the usage cap on a key
// PATCH /api/v1/admin/access-keys/:keyHash/max-uses
func (h *AccessKeyHandler) UpdateMaxUses(c *gin.Context) {
	var input entities.UpdateMaxUsesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.InvalidArgument(err.Error()))
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	if err := h.accessKeyUsecase.UpdateMaxUses(c.Request.Context(), actor, c.Param("keyHash"), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Usage limit updated"})
}
