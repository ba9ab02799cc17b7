package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
	"smartclass24.backend/internal/infrastructure/models"
)

// RedemptionRepository implements the redemption ledger over gorm. Rows are
// append-only; there is no update or delete path.
type RedemptionRepository struct {
	db *gorm.DB
}

// NewRedemptionRepository creates a new redemption repository
func NewRedemptionRepository(db *gorm.DB) *RedemptionRepository {
	return &RedemptionRepository{db: db}
}

func (r *RedemptionRepository) Find(ctx context.Context, keyHash string, userID uuid.UUID) (*entities.Redemption, error) {
	var m models.Redemption
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("key_hash = ? AND user_id = ?", keyHash, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Redemption{
		KeyHash:    m.KeyHash,
		UserID:     m.UserID,
		TenantID:   m.TenantID,
		RedeemedAt: m.RedeemedAt,
	}, nil
}

func (r *RedemptionRepository) Create(ctx context.Context, redemption *entities.Redemption) error {
	m := &models.Redemption{
		KeyHash:    redemption.KeyHash,
		UserID:     redemption.UserID,
		TenantID:   redemption.TenantID,
		RedeemedAt: redemption.RedeemedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}
