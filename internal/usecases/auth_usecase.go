package usecases

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
	"smartclass24.backend/internal/domain/repositories"
	"smartclass24.backend/pkg/crypto"
	"smartclass24.backend/pkg/jwt"
)

// AuthUsecase handles account creation and login. Every new account gets a
// default tenant resolved from its email domain and a seeded claim set.
type AuthUsecase struct {
	userRepo      repositories.UserRepository
	identityAdmin repositories.IdentityAdmin
	tenantClaims  *TenantClaimsUsecase
	jwtService    *jwt.JWTService
}

func NewAuthUsecase(
	userRepo repositories.UserRepository,
	identityAdmin repositories.IdentityAdmin,
	tenantClaims *TenantClaimsUsecase,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:      userRepo,
		identityAdmin: identityAdmin,
		tenantClaims:  tenantClaims,
		jwtService:    jwtService,
	}
}

// Register creates a new account, resolves its default tenant from the
// email domain, and seeds the identity claims.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domainerrors.NewAppError(http.StatusConflict, "already_exists", "email already registered", domainerrors.ErrAlreadyExists)
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	tenantID := u.tenantClaims.ResolveDefaultTenant(email)
	now := time.Now()
	user := &entities.User{
		ID:                    uuid.New(),
		Email:                 email,
		Name:                  strings.TrimSpace(input.Name),
		PasswordHash:          passwordHash,
		TenantID:              tenantID,
		TenantAccessSource:    entities.TenantSourceDomainDefault,
		TenantAccessGrantedAt: &now,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.tenantClaims.SeedNewUserClaims(ctx, user.ID, tenantID); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, tenantID, false, false)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthResponse{
		User:        user,
		AccessToken: token,
		TenantID:    tenantID,
	}, nil
}

// Login authenticates a user and issues a token carrying the current claim
// set, so a tenant assigned since the last login is reflected immediately.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthenticated("invalid email or password")
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthenticated("invalid email or password")
	}

	claims, err := u.identityAdmin.GetClaims(ctx, user.ID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, claims.TenantID(), claims.Admin(), claims.SuperAdmin())
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthResponse{
		User:        user,
		AccessToken: token,
		TenantID:    claims.TenantID(),
	}, nil
}
