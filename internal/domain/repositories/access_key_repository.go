package repositories

import (
	"context"
	"time"

	"smartclass24.backend/internal/domain/entities"
)

type AccessKeyRepository interface {
	Create(ctx context.Context, key *entities.AccessKey) error
	FindByKeyHash(ctx context.Context, keyHash string) (*entities.AccessKey, error)
	List(ctx context.Context, limit int) ([]*entities.AccessKey, error)
	// Deactivate marks a key revoked. It is a no-op (not an error) when the
	// key is already inactive; the bool reports whether a row changed.
	Deactivate(ctx context.Context, keyHash, revokedBy string, revokedAt time.Time) (bool, error)
	// DeactivateAllForTenant revokes every active key of a tenant, stamping
	// each with the hash of the key superseding it. Returns the revoked count.
	DeactivateAllForTenant(ctx context.Context, tenantID, revokedBy, replacedByHash string, revokedAt time.Time) (int64, error)
	UpdateMaxUses(ctx context.Context, keyHash string, maxUses *int64, updatedBy string) error
	// IncrementUses bumps the usage counter only while the key is active and
	// under its cap. Returns the number of rows updated (0 or 1).
	IncrementUses(ctx context.Context, keyHash string) (int64, error)
	CountByTenant(ctx context.Context) ([]*entities.TenantKeyCount, error)
}
