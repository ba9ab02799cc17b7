package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"smartclass24.backend/internal/domain/entities"
	"smartclass24.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserClaimsKey is the context key for the caller's claim set
	UserClaimsKey = "userClaims"
)

// AuthMiddleware validates the bearer token and attaches the caller
// identity, including the tenant and admin claims baked into the token.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserClaimsKey, entities.Claims{
			entities.ClaimTenantID:   claims.TenantID,
			entities.ClaimAdmin:      claims.Admin,
			entities.ClaimSuperAdmin: claims.SuperAdmin,
		})

		c.Next()
	}
}

// GetActor builds the caller identity from the request context. The second
// return is false when AuthMiddleware did not run on this route.
func GetActor(c *gin.Context) (*entities.Actor, bool) {
	rawID, exists := c.Get(UserIDKey)
	if !exists {
		return nil, false
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return nil, false
	}

	email, _ := c.Get(UserEmailKey)
	emailStr, _ := email.(string)

	claims := entities.Claims{}
	if raw, exists := c.Get(UserClaimsKey); exists {
		if cl, ok := raw.(entities.Claims); ok {
			claims = cl
		}
	}

	return &entities.Actor{UserID: userID, Email: emailStr, Claims: claims}, true
}

// RequireAdmin rejects callers whose claim set carries neither admin nor
// superAdmin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Caller identity not found",
			})
			return
		}
		if !actor.Claims.Privileged() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin rejects callers without the superAdmin claim.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Caller identity not found",
			})
			return
		}
		if !actor.Claims.SuperAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
