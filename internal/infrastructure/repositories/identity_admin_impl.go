package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
	"smartclass24.backend/internal/infrastructure/models"
)

// IdentityAdminImpl stores custom claim sets as a JSON blob on the user row,
// mirroring how identity providers hold claims as one opaque document.
type IdentityAdminImpl struct {
	db *gorm.DB
}

// NewIdentityAdmin creates a new identity admin store
func NewIdentityAdmin(db *gorm.DB) *IdentityAdminImpl {
	return &IdentityAdminImpl{db: db}
}

func (r *IdentityAdminImpl) GetClaims(ctx context.Context, userID uuid.UUID) (entities.Claims, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Select("id", "claims").
		Where("id = ?", userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	claims := entities.Claims{}
	if m.Claims != "" {
		if err := json.Unmarshal([]byte(m.Claims), &claims); err != nil {
			return nil, err
		}
	}
	return claims, nil
}

func (r *IdentityAdminImpl) SetClaims(ctx context.Context, userID uuid.UUID, claims entities.Claims) error {
	blob, err := json.Marshal(claims)
	if err != nil {
		return err
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"claims":     string(blob),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
