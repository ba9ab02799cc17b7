package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
	"smartclass24.backend/internal/domain/repositories"
	"smartclass24.backend/internal/infrastructure/metrics"
	"smartclass24.backend/pkg/keycodec"
	"smartclass24.backend/pkg/logger"
)

// RedemptionUsecase orchestrates the redeem operation. Any signed-in user
// may attempt redemption; no administrator privilege is required.
type RedemptionUsecase struct {
	keyRepo        repositories.AccessKeyRepository
	redemptionRepo repositories.RedemptionRepository
	tenantClaims   *TenantClaimsUsecase
	uow            repositories.UnitOfWork
}

func NewRedemptionUsecase(
	keyRepo repositories.AccessKeyRepository,
	redemptionRepo repositories.RedemptionRepository,
	tenantClaims *TenantClaimsUsecase,
	uow repositories.UnitOfWork,
) *RedemptionUsecase {
	return &RedemptionUsecase{
		keyRepo:        keyRepo,
		redemptionRepo: redemptionRepo,
		tenantClaims:   tenantClaims,
		uow:            uow,
	}
}

// Redeem consumes an access key for the calling user and returns the tenant
// it grants. Precondition checks, the ledger write, and the usage increment
// all happen inside one transaction so that concurrent redemptions cannot
// double-count or slip past a usage cap. A repeat redemption by the same
// user is a no-op that returns the same tenant.
//
// The claim assignment runs after commit, outside the transaction: the
// ledger and counter are the source of truth for whether the key was
// consumed, and a failed claim write must not re-open a spent usage slot.
// A retry of Redeem hits the ledger no-op and re-attempts the claim write.
func (u *RedemptionUsecase) Redeem(ctx context.Context, actor *entities.Actor, rawKey string) (string, error) {
	if err := RequireAuthenticated(actor); err != nil {
		return "", err
	}
	if strings.TrimSpace(rawKey) == "" {
		return "", domainerrors.InvalidArgument("access key is required")
	}

	keyHash := keycodec.HashRaw(rawKey)

	var tenantID string
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		key, err := u.keyRepo.FindByKeyHash(txCtx, keyHash)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("access key not found")
			}
			return err
		}
		// The ledger lookup comes before the state checks: a user who has
		// already redeemed this key keeps getting the no-op answer even
		// after the key is revoked, expires, or fills up.
		_, err = u.redemptionRepo.Find(txCtx, keyHash, actor.UserID)
		if err == nil {
			tenantID = key.TenantID
			return nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		if !key.IsActive {
			return domainerrors.FailedPrecondition("access key is disabled")
		}
		if key.IsExpired(time.Now()) {
			return domainerrors.FailedPrecondition("access key has expired")
		}
		if key.IsExhausted() {
			return domainerrors.ResourceExhausted("access key usage limit reached")
		}

		if err := u.redemptionRepo.Create(txCtx, &entities.Redemption{
			KeyHash:    keyHash,
			UserID:     actor.UserID,
			TenantID:   key.TenantID,
			RedeemedAt: time.Now(),
		}); err != nil {
			return err
		}

		rows, err := u.keyRepo.IncrementUses(txCtx, keyHash)
		if err != nil {
			return err
		}
		if rows == 0 {
			// the conditional increment saw a state change since our read:
			// either the cap filled up or the key was revoked underneath us
			if key.MaxUses != nil {
				return domainerrors.ResourceExhausted("access key usage limit reached")
			}
			return domainerrors.FailedPrecondition("access key is disabled")
		}

		tenantID = key.TenantID
		return nil
	})
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		// A concurrent redemption by the same user won the ledger insert and
		// aborted ours. The winner committed, so its row is visible outside
		// the rolled-back transaction; answer with the same no-op it got.
		if redemption, findErr := u.redemptionRepo.Find(ctx, keyHash, actor.UserID); findErr == nil {
			tenantID = redemption.TenantID
			err = nil
		}
	}
	if err != nil {
		metrics.RedemptionsTotal.WithLabelValues("rejected").Inc()
		return "", err
	}
	metrics.RedemptionsTotal.WithLabelValues("granted").Inc()

	if err := u.tenantClaims.AssignTenant(ctx, actor.UserID, tenantID, entities.TenantSourceAccessKey); err != nil {
		// the redemption itself stands; retrying Redeem re-attempts this leg
		logger.Error(ctx, "tenant claim assignment failed after redemption",
			zap.String("tenant_id", tenantID),
			zap.String("user_id", actor.UserID.String()),
			zap.Error(err),
		)
		return "", domainerrors.InternalError(err)
	}

	return tenantID, nil
}
