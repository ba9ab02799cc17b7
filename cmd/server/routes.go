package main

import (
	"github.com/gin-gonic/gin"
	"smartclass24.backend/internal/interfaces/http/handlers"
	"smartclass24.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler        *handlers.AuthHandler
	redemptionHandler  *handlers.RedemptionHandler
	accessKeyHandler   *handlers.AccessKeyHandler
	tenantAdminHandler *handlers.TenantAdminHandler
	authMiddleware     gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
		}

		// Redemption route (any authenticated user)
		tenantAccess := v1.Group("/tenant-access")
		tenantAccess.Use(d.authMiddleware)
		{
			tenantAccess.POST("/redeem", d.redemptionHandler.RedeemAccessKey)
		}

		// Admin routes (privileged)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			keys := admin.Group("/access-keys")
			{
				keys.POST("", d.accessKeyHandler.CreateAccessKey)
				keys.GET("", d.accessKeyHandler.ListAccessKeys)
				keys.POST("/rotate", d.accessKeyHandler.RotateAccessKeys)
				keys.DELETE("/:keyHash", d.accessKeyHandler.RevokeAccessKey)
				keys.PATCH("/:keyHash/max-uses", d.accessKeyHandler.UpdateMaxUses)
			}

			admin.POST("/tenants/assign", d.tenantAdminHandler.AssignTenant)
			admin.GET("/billing/overview", d.tenantAdminHandler.BillingOverview)

			// promotion additionally demands the superAdmin claim
			admin.POST("/users/:userId/promote", middleware.RequireSuperAdmin(), d.tenantAdminHandler.PromoteSuperAdmin)
		}
	}
}
