package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartclass24.backend/internal/config"
	"smartclass24.backend/internal/domain/entities"
	domainrepos "smartclass24.backend/internal/domain/repositories"
	infrarepos "smartclass24.backend/internal/infrastructure/repositories"
	"smartclass24.backend/pkg/logger"
)

type testEnv struct {
	db            *gorm.DB
	keyRepo       domainrepos.AccessKeyRepository
	redemptions   domainrepos.RedemptionRepository
	users         domainrepos.UserRepository
	identityAdmin domainrepos.IdentityAdmin
	uow           domainrepos.UnitOfWork
	tenantClaims  *TenantClaimsUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Init("development")

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")

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
		require.NoError(t, db.Exec(q).Error, "create table")
	}

	users := infrarepos.NewUserRepository(db)
	identityAdmin := infrarepos.NewIdentityAdmin(db)
	env := &testEnv{
		db:            db,
		keyRepo:       infrarepos.NewAccessKeyRepository(db),
		redemptions:   infrarepos.NewRedemptionRepository(db),
		users:         users,
		identityAdmin: identityAdmin,
		uow:           infrarepos.NewUnitOfWork(db),
	}
	env.tenantClaims = NewTenantClaimsUsecase(identityAdmin, users, config.TenancyConfig{
		DefaultTenant: "smartclass24",
		Tenants:       []string{"smartclass24", "wisdomwarehouse", "demo"},
		DomainMap: map[string]string{
			"wisdomwarehouse.com": "wisdomwarehouse",
			"wisdomwarehouse.org": "wisdomwarehouse",
			"smartclass24.app":    "smartclass24",
		},
	})
	return env
}

// createUser inserts an account row with the given claims and returns the
// matching actor.
func (e *testEnv) createUser(t *testing.T, email string, claims entities.Claims) *entities.Actor {
	t.Helper()
	ctx := context.Background()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, e.users.Create(ctx, user))
	if claims == nil {
		claims = entities.Claims{}
	}
	require.NoError(t, e.identityAdmin.SetClaims(ctx, user.ID, claims))
	return &entities.Actor{UserID: user.ID, Email: email, Claims: claims}
}

func (e *testEnv) adminActor(t *testing.T, email string) *entities.Actor {
	t.Helper()
	return e.createUser(t, email, entities.Claims{entities.ClaimAdmin: true})
}

func (e *testEnv) superAdminActor(t *testing.T, email string) *entities.Actor {
	t.Helper()
	return e.createUser(t, email, entities.Claims{
		entities.ClaimAdmin:      true,
		entities.ClaimSuperAdmin: true,
	})
}

func (e *testEnv) memberActor(t *testing.T, email string) *entities.Actor {
	t.Helper()
	return e.createUser(t, email, entities.Claims{})
}

func floatPtr(v float64) *float64 { return &v }
