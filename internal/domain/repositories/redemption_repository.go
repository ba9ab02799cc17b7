package repositories

import (
	"context"

	"github.com/google/uuid"
	"smartclass24.backend/internal/domain/entities"
)

type RedemptionRepository interface {
	// Find returns the ledger entry for (keyHash, userID), or ErrNotFound.
	Find(ctx context.Context, keyHash string, userID uuid.UUID) (*entities.Redemption, error)
	// Create inserts a ledger entry. The (keyHash, userID) primary key makes
	// a duplicate insert fail rather than overwrite.
	Create(ctx context.Context, redemption *entities.Redemption) error
}
