package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
	"smartclass24.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:                    user.ID,
		Email:                 user.Email,
		Name:                  user.Name,
		PasswordHash:          user.PasswordHash,
		Claims:                "{}",
		TenantID:              null.NewString(user.TenantID, user.TenantID != ""),
		TenantAccessSource:    null.NewString(user.TenantAccessSource, user.TenantAccessSource != ""),
		TenantAccessGrantedAt: null.TimeFromPtr(user.TenantAccessGrantedAt),
		CreatedAt:             user.CreatedAt,
		UpdatedAt:             user.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// SetTenant writes the tenant assignment audit fields. Assignments made by
// key redemption outrank domain defaults: a domain_default write is skipped
// when the row already carries an access_key assignment.
func (r *UserRepository) SetTenant(ctx context.Context, id uuid.UUID, tenantID, source string, grantedAt time.Time) error {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id)
	if source == entities.TenantSourceDomainDefault {
		query = query.Where("tenant_access_source IS NULL OR tenant_access_source <> ?", entities.TenantSourceAccessKey)
	}

	result := query.Updates(map[string]interface{}{
		"tenant_id":                tenantID,
		"tenant_access_source":     source,
		"tenant_access_granted_at": grantedAt,
		"updated_at":               grantedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the user does not exist, or a redemption already claimed the
		// row ahead of a domain default. Only the former is an error.
		var count int64
		if err := GetDB(ctx, r.db).WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
	}
	return nil
}

// CountByTenant aggregates assigned users per tenant
func (r *UserRepository) CountByTenant(ctx context.Context) ([]*entities.TenantUserCount, error) {
	var rows []struct {
		TenantID  string
		UserCount int64
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Select("tenant_id, COUNT(*) AS user_count").
		Where("tenant_id IS NOT NULL").
		Group("tenant_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.TenantUserCount, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.TenantUserCount{
			TenantID:  row.TenantID,
			UserCount: row.UserCount,
		})
	}
	return items, nil
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                    m.ID,
		Email:                 m.Email,
		Name:                  m.Name,
		PasswordHash:          m.PasswordHash,
		TenantID:              m.TenantID.String,
		TenantAccessSource:    m.TenantAccessSource.String,
		TenantAccessGrantedAt: m.TenantAccessGrantedAt.Ptr(),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}
