package entities

import (
	"time"

	"github.com/google/uuid"
)

// Tenant assignment audit sources.
const (
	TenantSourceDomainDefault = "domain_default"
	TenantSourceAccessKey     = "access_key"
	TenantSourceManual        = "manual"
)

// User represents a platform account. The tenant fields record the current
// tenant assignment and how it was made.
type User struct {
	ID                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	PasswordHash          string     `json:"-"`
	TenantID              string     `json:"tenantId,omitempty"`
	TenantAccessSource    string     `json:"tenantAccessSource,omitempty"`
	TenantAccessGrantedAt *time.Time `json:"tenantAccessGrantedAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// Actor is the caller identity attached to a request.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Claims Claims
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
	TenantID    string `json:"tenantId"`
}

type AssignTenantInput struct {
	UserID   string `json:"userId" binding:"required"`
	TenantID string `json:"tenantId" binding:"required"`
}
