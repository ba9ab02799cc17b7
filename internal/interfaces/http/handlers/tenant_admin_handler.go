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

// TenantAdminHandler handles tenant administration endpoints: manual tenant
// assignment, super admin promotion, and the billing overview.
type TenantAdminHandler struct {
	tenantClaimsUsecase *usecases.TenantClaimsUsecase
	billingUsecase      *usecases.BillingOverviewUsecase
}

// NewTenantAdminHandler creates a new tenant admin handler
func NewTenantAdminHandler(
	tenantClaimsUsecase *usecases.TenantClaimsUsecase,
	billingUsecase *usecases.BillingOverviewUsecase,
) *TenantAdminHandler {
	return &TenantAdminHandler{
		tenantClaimsUsecase: tenantClaimsUsecase,
		billingUsecase:      billingUsecase,
	}
}

// AssignTenant assigns a user to a tenant by hand
// POST /api/v1/admin/tenants/assign
func (h *TenantAdminHandler) AssignTenant(c *gin.Context) {
	var input entities.AssignTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.InvalidArgument(err.Error()))
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	if err := h.tenantClaimsUsecase.AssignTenantManual(c.Request.Context(), actor, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Tenant assigned"})
}

// PromoteSuperAdmin grants admin and superAdmin claims to a user
// POST /api/v1/admin/users/:userId/promote
func (h *TenantAdminHandler) PromoteSuperAdmin(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	if err := h.tenantClaimsUsecase.PromoteSuperAdmin(c.Request.Context(), actor, c.Param("userId")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User promoted"})
}

// BillingOverview reports per-tenant user and key counts
// GET /api/v1/admin/billing/overview
func (h *TenantAdminHandler) BillingOverview(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	items, err := h.billingUsecase.Overview(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tenants": items})
}
