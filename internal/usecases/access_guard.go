package usecases

import (
	"github.com/google/uuid"
	"smartclass24.backend/internal/domain/entities"
	domainerrors "smartclass24.backend/internal/domain/errors"
)

// RequireAuthenticated fails unless a caller identity is attached.
func RequireAuthenticated(actor *entities.Actor) error {
	if actor == nil || actor.UserID == uuid.Nil {
		return domainerrors.Unauthenticated("authentication required")
	}
	return nil
}

// RequirePrivileged fails unless the caller's claim set carries admin or
// superAdmin. Every management operation goes through this.
func RequirePrivileged(actor *entities.Actor) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.Claims.Privileged() {
		return domainerrors.PermissionDenied("administrator privilege required")
	}
	return nil
}

// RequireSuperAdmin fails unless the caller's claim set carries superAdmin.
func RequireSuperAdmin(actor *entities.Actor) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.Claims.SuperAdmin() {
		return domainerrors.PermissionDenied("super administrator privilege required")
	}
	return nil
}
