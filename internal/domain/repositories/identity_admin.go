package repositories

import (
	"context"

	"github.com/google/uuid"
	"smartclass24.backend/internal/domain/entities"
)

// IdentityAdmin is the identity-provider admin capability: read and replace
// the full custom claim set of a user. Writes are whole-blob replacements,
// so callers must merge before writing.
type IdentityAdmin interface {
	GetClaims(ctx context.Context, userID uuid.UUID) (entities.Claims, error)
	SetClaims(ctx context.Context, userID uuid.UUID, claims entities.Claims) error
}
