package handlers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartclass24.backend/internal/config"
	"smartclass24.backend/internal/domain/entities"
	infrarepos "smartclass24.backend/internal/infrastructure/repositories"
	"smartclass24.backend/internal/interfaces/http/middleware"
	"smartclass24.backend/internal/usecases"
	"smartclass24.backend/pkg/logger"
)

// handlerEnv wires the real usecases against an in-memory store so handler
// tests exercise the full request path below the JWT layer.
type handlerEnv struct {
	db           *gorm.DB
	users        *infrarepos.UserRepository
	identity     *infrarepos.IdentityAdminImpl
	accessKeys   *usecases.AccessKeyUsecase
	redemptions  *usecases.RedemptionUsecase
	tenantClaims *usecases.TenantClaimsUsecase
	billing      *usecases.BillingOverviewUsecase
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("development")

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	for _, q := range []string{
		`CREATE TABLE access_keys (
			key_hash TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			label TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			uses INTEGER NOT NULL DEFAULT 0,
			max_uses INTEGER,
			expires_at DATETIME,
			created_by TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME,
			updated_by TEXT,
			revoked_at DATETIME,
			revoked_by TEXT,
			rotation_replaced_by TEXT
		);`,
		`CREATE TABLE redemptions (
			key_hash TEXT NOT NULL,
			user_id TEXT NOT NULL,
			tenant_id TEXT NOT NULL,
			redeemed_at DATETIME NOT NULL,
			PRIMARY KEY (key_hash, user_id)
		);`,
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			claims TEXT NOT NULL DEFAULT '{}',
			tenant_id TEXT,
			tenant_access_source TEXT,
			tenant_access_granted_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
	} {
		require.NoError(t, db.Exec(q).Error)
	}

	users := infrarepos.NewUserRepository(db)
	identity := infrarepos.NewIdentityAdmin(db)
	keyRepo := infrarepos.NewAccessKeyRepository(db)
	redemptionRepo := infrarepos.NewRedemptionRepository(db)
	uow := infrarepos.NewUnitOfWork(db)

	tenantClaims := usecases.NewTenantClaimsUsecase(identity, users, config.TenancyConfig{
		DefaultTenant: "smartclass24",
		Tenants:       []string{"smartclass24", "wisdomwarehouse", "demo"},
		DomainMap:     map[string]string{"wisdomwarehouse.com": "wisdomwarehouse"},
	})

	return &handlerEnv{
		db:           db,
		users:        users,
		identity:     identity,
		accessKeys:   usecases.NewAccessKeyUsecase(keyRepo, uow),
		redemptions:  usecases.NewRedemptionUsecase(keyRepo, redemptionRepo, tenantClaims, uow),
		tenantClaims: tenantClaims,
		billing:      usecases.NewBillingOverviewUsecase(users, keyRepo),
	}
}

// seedUser inserts a user row and returns a gin middleware that injects the
// matching identity, standing in for AuthMiddleware.
func (e *handlerEnv) seedUser(t *testing.T, email string, claims entities.Claims) (uuid.UUID, gin.HandlerFunc) {
	t.Helper()
	ctx := context.Background()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Handler Test",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, e.users.Create(ctx, user))
	if claims == nil {
		claims = entities.Claims{}
	}
	require.NoError(t, e.identity.SetClaims(ctx, user.ID, claims))

	inject := func(c *gin.Context) {
		c.Set(middleware.UserIDKey, user.ID)
		c.Set(middleware.UserEmailKey, email)
		c.Set(middleware.UserClaimsKey, claims)
		c.Next()
	}
	return user.ID, inject
}
