package main

import (
	"testing"

	"github.com/gin-gonic/gin"
	"smartclass24.backend/internal/interfaces/http/handlers"
)

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerAPIV1Routes(r, routeDeps{
		authHandler:        &handlers.AuthHandler{},
		redemptionHandler:  &handlers.RedemptionHandler{},
		accessKeyHandler:   &handlers.AccessKeyHandler{},
		tenantAdminHandler: &handlers.TenantAdminHandler{},
		authMiddleware: func(c *gin.Context) {
			c.Next()
		},
	})

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/auth/register"},
		{"POST", "/api/v1/auth/login"},
		{"POST", "/api/v1/tenant-access/redeem"},
		{"POST", "/api/v1/admin/access-keys"},
		{"GET", "/api/v1/admin/access-keys"},
		{"POST", "/api/v1/admin/access-keys/rotate"},
		{"DELETE", "/api/v1/admin/access-keys/:keyHash"},
		{"PATCH", "/api/v1/admin/access-keys/:keyHash/max-uses"},
		{"POST", "/api/v1/admin/tenants/assign"},
		{"GET", "/api/v1/admin/billing/overview"},
		{"POST", "/api/v1/admin/users/:userId/promote"},
	}

	routes := r.Routes()
	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}
