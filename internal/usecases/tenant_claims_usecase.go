package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"smartclass24.backend/internal/config"
	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
	"smartclass24.backend/internal/domain/repositories"
)

// TenantClaimsUsecase owns tenant claim assignment and default-tenant
// resolution. Claim writes always read the current set and merge, because
// the identity provider stores claims as one atomic blob: a blind overwrite
// would silently strip admin privileges.
type TenantClaimsUsecase struct {
	identityAdmin repositories.IdentityAdmin
	userRepo      repositories.UserRepository
	defaultTenant string
	domainMap     map[string]string
	knownTenants  map[string]struct{}
}

func NewTenantClaimsUsecase(
	identityAdmin repositories.IdentityAdmin,
	userRepo repositories.UserRepository,
	cfg config.TenancyConfig,
) *TenantClaimsUsecase {
	known := make(map[string]struct{}, len(cfg.Tenants))
	for _, t := range cfg.Tenants {
		known[t] = struct{}{}
	}
	return &TenantClaimsUsecase{
		identityAdmin: identityAdmin,
		userRepo:      userRepo,
		defaultTenant: cfg.DefaultTenant,
		domainMap:     cfg.DomainMap,
		knownTenants:  known,
	}
}

// ResolveDefaultTenant computes the tenant for a new account from its email
// domain, falling back to the platform default for unmapped domains.
func (u *TenantClaimsUsecase) ResolveDefaultTenant(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return u.defaultTenant
	}
	if tenant, ok := u.domainMap[email[at+1:]]; ok {
		return tenant
	}
	return u.defaultTenant
}

// AssignTenant merges the tenant into the user's claim set and mirrors the
// assignment into the profile row with its audit source.
func (u *TenantClaimsUsecase) AssignTenant(ctx context.Context, userID uuid.UUID, tenantID, source string) error {
	claims, err := u.identityAdmin.GetClaims(ctx, userID)
	if err != nil {
		return err
	}

	if err := u.identityAdmin.SetClaims(ctx, userID, entities.AssignTenant(claims, tenantID)); err != nil {
		return err
	}

	return u.userRepo.SetTenant(ctx, userID, tenantID, source, time.Now())
}

// AssignTenantManual is the admin operation assigning a user to a tenant by
// hand. The tenant must exist in the registry.
func (u *TenantClaimsUsecase) AssignTenantManual(ctx context.Context, actor *entities.Actor, input *entities.AssignTenantInput) error {
	if err := RequirePrivileged(actor); err != nil {
		return err
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return domainerrors.InvalidArgument("userId must be a valid user id")
	}
	if _, ok := u.knownTenants[input.TenantID]; !ok {
		return domainerrors.InvalidArgument("unknown tenant: " + input.TenantID)
	}

	if err := u.AssignTenant(ctx, userID, input.TenantID, entities.TenantSourceManual); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return err
	}
	return nil
}

// PromoteSuperAdmin grants admin and superAdmin claims to a user, preserving
// the rest of the claim set. Only an existing super admin may call it.
func (u *TenantClaimsUsecase) PromoteSuperAdmin(ctx context.Context, actor *entities.Actor, rawUserID string) error {
	if err := RequireSuperAdmin(actor); err != nil {
		return err
	}

	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return domainerrors.InvalidArgument("userId must be a valid user id")
	}

	claims, err := u.identityAdmin.GetClaims(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return err
	}

	merged := make(entities.Claims, len(claims)+2)
	for k, v := range claims {
		merged[k] = v
	}
	merged[entities.ClaimAdmin] = true
	merged[entities.ClaimSuperAdmin] = true

	return u.identityAdmin.SetClaims(ctx, userID, merged)
}

// SeedNewUserClaims writes the initial claim set at account creation.
func (u *TenantClaimsUsecase) SeedNewUserClaims(ctx context.Context, userID uuid.UUID, tenantID string) error {
	return u.identityAdmin.SetClaims(ctx, userID, entities.NewUserClaims(tenantID))
}
