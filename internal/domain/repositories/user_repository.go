package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"smartclass24.backend/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// SetTenant mirrors a tenant assignment into the profile row. A
	// domain-default write never overwrites an assignment made by key
	// redemption; redemption and manual writes are last-write-wins.
	SetTenant(ctx context.Context, id uuid.UUID, tenantID, source string, grantedAt time.Time) error
	CountByTenant(ctx context.Context) ([]*entities.TenantUserCount, error)
}
