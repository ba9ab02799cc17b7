package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
	"smartclass24.backend/internal/infrastructure/models"
)

// AccessKeyRepository implements access key persistence over gorm.
type AccessKeyRepository struct {
	db *gorm.DB
}

// NewAccessKeyRepository creates a new access key repository
func NewAccessKeyRepository(db *gorm.DB) *AccessKeyRepository {
	return &AccessKeyRepository{db: db}
}

func (r *AccessKeyRepository) Create(ctx context.Context, key *entities.AccessKey) error {
	m := r.toModel(key)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	key.CreatedAt = m.CreatedAt
	key.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *AccessKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*entities.AccessKey, error) {
	var m models.AccessKey
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("key_hash = ?", keyHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *AccessKeyRepository) List(ctx context.Context, limit int) ([]*entities.AccessKey, error) {
	var ms []models.AccessKey
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.AccessKey, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *AccessKeyRepository) Deactivate(ctx context.Context, keyHash, revokedBy string, revokedAt time.Time) (bool, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AccessKey{}).
		Where("key_hash = ? AND is_active = ?", keyHash, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"revoked_at": revokedAt,
			"revoked_by": revokedBy,
			"updated_at": revokedAt,
			"updated_by": revokedBy,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		// Already revoked, or the hash is unknown. Revoke is idempotent, but
		// an unknown hash is still NotFound.
		var count int64
		if err := GetDB(ctx, r.db).WithContext(ctx).
			Model(&models.AccessKey{}).
			Where("key_hash = ?", keyHash).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count == 0 {
			return false, domainerrors.ErrNotFound
		}
		return false, nil
	}
	return true, nil
}

func (r *AccessKeyRepository) DeactivateAllForTenant(ctx context.Context, tenantID, revokedBy, replacedByHash string, revokedAt time.Time) (int64, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AccessKey{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Updates(map[string]interface{}{
			"is_active":            false,
			"revoked_at":           revokedAt,
			"revoked_by":           revokedBy,
			"rotation_replaced_by": replacedByHash,
			"updated_at":           revokedAt,
			"updated_by":           revokedBy,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *AccessKeyRepository) UpdateMaxUses(ctx context.Context, keyHash string, maxUses *int64, updatedBy string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AccessKey{}).
		Where("key_hash = ?", keyHash).
		Updates(map[string]interface{}{
			"max_uses":   null.Int64FromPtr(maxUses),
			"updated_at": time.Now(),
			"updated_by": updatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// IncrementUses is a conditional check-and-increment: the counter only moves
// while the key is active and under its cap, so a racing revoke or a filled
// cap makes this report zero rows instead of over-counting.
func (r *AccessKeyRepository) IncrementUses(ctx context.Context, keyHash string) (int64, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AccessKey{}).
		Where("key_hash = ? AND is_active = ? AND (max_uses IS NULL OR uses < max_uses)", keyHash, true).
		Updates(map[string]interface{}{
			"uses":       gorm.Expr("uses + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *AccessKeyRepository) CountByTenant(ctx context.Context) ([]*entities.TenantKeyCount, error) {
	var rows []struct {
		TenantID   string
		TotalKeys  int64
		ActiveKeys int64
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AccessKey{}).
		Select("tenant_id, COUNT(*) AS total_keys, SUM(CASE WHEN is_active THEN 1 ELSE 0 END) AS active_keys").
		Group("tenant_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.TenantKeyCount, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.TenantKeyCount{
			TenantID:   row.TenantID,
			TotalKeys:  row.TotalKeys,
			ActiveKeys: row.ActiveKeys,
		})
	}
	return items, nil
}

func (r *AccessKeyRepository) toModel(k *entities.AccessKey) *models.AccessKey {
	return &models.AccessKey{
		KeyHash:            k.KeyHash,
		TenantID:           k.TenantID,
		Label:              k.Label,
		IsActive:           k.IsActive,
		Uses:               k.Uses,
		MaxUses:            null.Int64FromPtr(k.MaxUses),
		ExpiresAt:          null.TimeFromPtr(k.ExpiresAt),
		CreatedBy:          k.CreatedBy,
		CreatedAt:          k.CreatedAt,
		UpdatedAt:          k.UpdatedAt,
		UpdatedBy:          null.NewString(k.UpdatedBy, k.UpdatedBy != ""),
		RevokedAt:          null.TimeFromPtr(k.RevokedAt),
		RevokedBy:          null.NewString(k.RevokedBy, k.RevokedBy != ""),
		RotationReplacedBy: null.NewString(k.RotationReplacedBy, k.RotationReplacedBy != ""),
	}
}

func (r *AccessKeyRepository) toEntity(m *models.AccessKey) *entities.AccessKey {
	return &entities.AccessKey{
		KeyHash:            m.KeyHash,
		TenantID:           m.TenantID,
		Label:              m.Label,
		IsActive:           m.IsActive,
		Uses:               m.Uses,
		MaxUses:            m.MaxUses.Ptr(),
		ExpiresAt:          m.ExpiresAt.Ptr(),
		CreatedBy:          m.CreatedBy,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		UpdatedBy:          m.UpdatedBy.String,
		RevokedAt:          m.RevokedAt.Ptr(),
		RevokedBy:          m.RevokedBy.String,
		RotationReplacedBy: m.RotationReplacedBy.String,
	}
}
