package usecases

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"
	"smartclass24.backend/internal/domain/entities"
	"smartclass24.backend/internal/domain/repositories"
	"smartclass24.backend/pkg/logger"
	"smartclass24.backend/pkg/redis"
)

const (
	billingOverviewCacheKey = "billing:overview"
	billingOverviewCacheTTL = time.Minute
)

// BillingOverviewUsecase produces the read-only per-tenant user and key
// counts. It is a reporting query over the same store, cached briefly in
// Redis since the numbers only drift with signup and key activity.
type BillingOverviewUsecase struct {
	userRepo repositories.UserRepository
	keyRepo  repositories.AccessKeyRepository
}

func NewBillingOverviewUsecase(
	userRepo repositories.UserRepository,
	keyRepo repositories.AccessKeyRepository,
) *BillingOverviewUsecase {
	return &BillingOverviewUsecase{
		userRepo: userRepo,
		keyRepo:  keyRepo,
	}
}

// Overview returns per-tenant counts sorted by user count, largest first.
func (u *BillingOverviewUsecase) Overview(ctx context.Context, actor *entities.Actor) ([]*entities.TenantOverview, error) {
	if err := RequirePrivileged(actor); err != nil {
		return nil, err
	}

	if cached := u.fromCache(ctx); cached != nil {
		return cached, nil
	}

	userCounts, err := u.userRepo.CountByTenant(ctx)
	if err != nil {
		return nil, err
	}
	keyCounts, err := u.keyRepo.CountByTenant(ctx)
	if err != nil {
		return nil, err
	}

	byTenant := map[string]*entities.TenantOverview{}
	for _, uc := range userCounts {
		byTenant[uc.TenantID] = &entities.TenantOverview{
			TenantID:  uc.TenantID,
			UserCount: uc.UserCount,
		}
	}
	for _, kc := range keyCounts {
		row, ok := byTenant[kc.TenantID]
		if !ok {
			row = &entities.TenantOverview{TenantID: kc.TenantID}
			byTenant[kc.TenantID] = row
		}
		row.ActiveKeys = kc.ActiveKeys
		row.TotalKeys = kc.TotalKeys
	}

	items := make([]*entities.TenantOverview, 0, len(byTenant))
	for _, row := range byTenant {
		items = append(items, row)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].UserCount != items[j].UserCount {
			return items[i].UserCount > items[j].UserCount
		}
		return items[i].TenantID < items[j].TenantID
	})

	u.toCache(ctx, items)
	return items, nil
}

func (u *BillingOverviewUsecase) fromCache(ctx context.Context) []*entities.TenantOverview {
	if redis.GetClient() == nil {
		return nil
	}
	raw, err := redis.Get(ctx, billingOverviewCacheKey)
	if err != nil {
		return nil
	}
	var items []*entities.TenantOverview
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func (u *BillingOverviewUsecase) toCache(ctx context.Context, items []*entities.TenantOverview) {
	if redis.GetClient() == nil {
		return
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := redis.Set(ctx, billingOverviewCacheKey, string(blob), billingOverviewCacheTTL); err != nil {
		logger.Warn(ctx, "billing overview cache write failed", zap.Error(err))
	}
}
