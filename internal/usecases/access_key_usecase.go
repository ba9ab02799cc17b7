package usecases

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
	"smartclass24.backend/internal/domain/repositories"
	"smartclass24.backend/internal/infrastructure/metrics"
	"smartclass24.backend/pkg/keycodec"
)

const listKeysLimit = 100

var tenantIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,38}[a-z0-9]$`)

// AccessKeyUsecase orchestrates the access key lifecycle: create, list,
// revoke, rotate, and usage cap updates. All operations require a
// privileged caller.
type AccessKeyUsecase struct {
	keyRepo repositories.AccessKeyRepository
	uow     repositories.UnitOfWork
}

func NewAccessKeyUsecase(
	keyRepo repositories.AccessKeyRepository,
	uow repositories.UnitOfWork,
) *AccessKeyUsecase {
	return &AccessKeyUsecase{
		keyRepo: keyRepo,
		uow:     uow,
	}
}

// Create mints a new access key. The plaintext is in the response and
// nowhere else; only the hash is persisted.
func (u *AccessKeyUsecase) Create(ctx context.Context, actor *entities.Actor, input *entities.CreateAccessKeyInput) (*entities.CreateAccessKeyResponse, error) {
	if err := RequirePrivileged(actor); err != nil {
		return nil, err
	}

	key, plaintext, err := u.buildKey(actor, input)
	if err != nil {
		return nil, err
	}

	if err := u.keyRepo.Create(ctx, key); err != nil {
		return nil, err
	}
	metrics.KeysIssuedTotal.WithLabelValues("create").Inc()

	return &entities.CreateAccessKeyResponse{
		AccessKey: plaintext,
		KeyHash:   key.KeyHash,
		TenantID:  key.TenantID,
		CreatedAt: key.CreatedAt,
	}, nil
}

// List returns up to the 100 most recently created keys, newest first.
// Plaintext is never included; the hash is the opaque identifier.
func (u *AccessKeyUsecase) List(ctx context.Context, actor *entities.Actor) ([]*entities.AccessKey, error) {
	if err := RequirePrivileged(actor); err != nil {
		return nil, err
	}
	return u.keyRepo.List(ctx, listKeysLimit)
}

// Revoke deactivates a key. Revoking an already-revoked key is a no-op.
func (u *AccessKeyUsecase) Revoke(ctx context.Context, actor *entities.Actor, keyHash string) error {
	if err := RequirePrivileged(actor); err != nil {
		return err
	}
	if strings.TrimSpace(keyHash) == "" {
		return domainerrors.InvalidArgument("keyHash is required")
	}
	_, err := u.keyRepo.Deactivate(ctx, keyHash, actor.UserID.String(), time.Now())
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("access key not found")
	}
	return err
}

// Rotate supersedes every active key for the tenant with one new key, as a
// single atomic batch: there is no instant where both the old set and the
// new key are redeemable.
func (u *AccessKeyUsecase) Rotate(ctx context.Context, actor *entities.Actor, input *entities.CreateAccessKeyInput) (*entities.RotateAccessKeyResponse, error) {
	if err := RequirePrivileged(actor); err != nil {
		return nil, err
	}

	key, plaintext, err := u.buildKey(actor, input)
	if err != nil {
		return nil, err
	}

	var revokedCount int64
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		count, err := u.keyRepo.DeactivateAllForTenant(txCtx, key.TenantID, actor.UserID.String(), key.KeyHash, key.CreatedAt)
		if err != nil {
			return err
		}
		revokedCount = count
		return u.keyRepo.Create(txCtx, key)
	})
	if err != nil {
		return nil, err
	}
	metrics.KeysIssuedTotal.WithLabelValues("rotate").Inc()

	return &entities.RotateAccessKeyResponse{
		AccessKey:    plaintext,
		KeyHash:      key.KeyHash,
		TenantID:     key.TenantID,
		RevokedCount: revokedCount,
		CreatedAt:    key.CreatedAt,
	}, nil
}

// UpdateMaxUses sets or clears the usage cap on an existing key.
func (u *AccessKeyUsecase) UpdateMaxUses(ctx context.Context, actor *entities.Actor, keyHash string, input *entities.UpdateMaxUsesInput) error {
	if err := RequirePrivileged(actor); err != nil {
		return err
	}
	if strings.TrimSpace(keyHash) == "" {
		return domainerrors.InvalidArgument("keyHash is required")
	}

	maxUses, err := parseMaxUses(input.MaxUses)
	if err != nil {
		return err
	}

	if err := u.keyRepo.UpdateMaxUses(ctx, keyHash, maxUses, actor.UserID.String()); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("access key not found")
		}
		return err
	}
	return nil
}

func (u *AccessKeyUsecase) buildKey(actor *entities.Actor, input *entities.CreateAccessKeyInput) (*entities.AccessKey, string, error) {
	tenantID := strings.TrimSpace(input.TenantID)
	if !tenantIDPattern.MatchString(tenantID) {
		return nil, "", domainerrors.InvalidArgument("tenantId must be 2-40 lowercase alphanumeric characters or hyphens")
	}

	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, "", domainerrors.InvalidArgument("label is required")
	}

	expiresAt, err := parseExpiry(input.ExpiresAt)
	if err != nil {
		return nil, "", err
	}

	maxUses, err := parseMaxUses(input.MaxUses)
	if err != nil {
		return nil, "", err
	}

	plaintext, err := keycodec.Generate(tenantID)
	if err != nil {
		return nil, "", domainerrors.InternalError(err)
	}

	now := time.Now()
	key := &entities.AccessKey{
		KeyHash:   keycodec.Hash(plaintext),
		TenantID:  tenantID,
		Label:     label,
		IsActive:  true,
		Uses:      0,
		MaxUses:   maxUses,
		ExpiresAt: expiresAt,
		CreatedBy: actor.UserID.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return key, plaintext, nil
}

func parseExpiry(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domainerrors.InvalidArgument("expiresAt must be an RFC 3339 timestamp")
	}
	return &parsed, nil
}

// parseMaxUses floors the submitted cap to an integer and rejects
// non-positive or non-finite values. nil means unlimited.
func parseMaxUses(raw *float64) (*int64, error) {
	if raw == nil {
		return nil, nil
	}
	if math.IsNaN(*raw) || math.IsInf(*raw, 0) {
		return nil, domainerrors.InvalidArgument("maxUses must be a positive finite number")
	}
	floored := int64(math.Floor(*raw))
	if floored <= 0 {
		return nil, domainerrors.InvalidArgument("maxUses must be a positive finite number")
	}
	return &floored, nil
}
