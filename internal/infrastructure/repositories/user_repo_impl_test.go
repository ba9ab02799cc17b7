package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
)

func newUser(email string) *entities.User {
	return &entities.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := newUser("a@wisdomwarehouse.com")
	user.TenantID = "wisdomwarehouse"
	user.TenantAccessSource = entities.TenantSourceDomainDefault
	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "wisdomwarehouse", byID.TenantID)
	require.Equal(t, entities.TenantSourceDomainDefault, byID.TenantAccessSource)

	byEmail, err := repo.GetByEmail(ctx, "a@wisdomwarehouse.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_SetTenantRedemptionWins(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := newUser("b@example.com")
	require.NoError(t, repo.Create(ctx, user))

	now := time.Now()
	require.NoError(t, repo.SetTenant(ctx, user.ID, "demo", entities.TenantSourceAccessKey, now))

	// a late domain-default write must not clobber a redemption
	require.NoError(t, repo.SetTenant(ctx, user.ID, "smartclass24", entities.TenantSourceDomainDefault, now))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "demo", got.TenantID)
	require.Equal(t, entities.TenantSourceAccessKey, got.TenantAccessSource)

	// manual assignment is last-write-wins
	require.NoError(t, repo.SetTenant(ctx, user.ID, "wisdomwarehouse", entities.TenantSourceManual, now))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "wisdomwarehouse", got.TenantID)

	require.ErrorIs(t, repo.SetTenant(ctx, uuid.New(), "demo", entities.TenantSourceManual, now), domainerrors.ErrNotFound)
}

func TestUserRepository_CountByTenant(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		u := newUser(uuid.New().String() + "@demo.test")
		u.TenantID = "demo"
		require.NoError(t, repo.Create(ctx, u))
	}
	unassigned := newUser("c@nowhere.test")
	require.NoError(t, repo.Create(ctx, unassigned))

	counts, err := repo.CountByTenant(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	require.Equal(t, "demo", counts[0].TenantID)
	require.Equal(t, int64(2), counts[0].UserCount)
}

func TestIdentityAdmin_GetSetClaims(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	users := NewUserRepository(db)
	idp := NewIdentityAdmin(db)
	ctx := context.Background()

	user := newUser("d@example.com")
	require.NoError(t, users.Create(ctx, user))

	claims, err := idp.GetClaims(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, claims)

	require.NoError(t, idp.SetClaims(ctx, user.ID, entities.Claims{
		entities.ClaimTenantID: "demo",
		entities.ClaimAdmin:    true,
	}))

	claims, err = idp.GetClaims(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "demo", claims.TenantID())
	require.True(t, claims.Admin())
	require.False(t, claims.SuperAdmin())

	_, err = idp.GetClaims(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, idp.SetClaims(ctx, uuid.New(), entities.Claims{}), domainerrors.ErrNotFound)
}
