package entities

import (
	"time"
)

// AccessKey represents a shareable tenant access key. The plaintext is
// returned to the issuing admin exactly once; only the hash is stored.
type AccessKey struct {
	KeyHash            string     `json:"keyHash"`
	TenantID           string     `json:"tenantId"`
	Label              string     `json:"label"`
	IsActive           bool       `json:"isActive"`
	Uses               int64      `json:"uses"`
	MaxUses            *int64     `json:"maxUses,omitempty"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	CreatedBy          string     `json:"createdBy"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	UpdatedBy          string     `json:"updatedBy,omitempty"`
	RevokedAt          *time.Time `json:"revokedAt,omitempty"`
	RevokedBy          string     `json:"revokedBy,omitempty"`
	RotationReplacedBy string     `json:"rotationReplacedBy,omitempty"`
}

// IsExpired reports whether the key is past its expiry. Expiry is a derived
// state: isActive stays true until the key is explicitly revoked.
func (k *AccessKey) IsExpired(now time.Time) bool {
	return k.ExpiresAt != nil && k.ExpiresAt.Before(now)
}

// IsExhausted reports whether the usage cap has been reached.
func (k *AccessKey) IsExhausted() bool {
	return k.MaxUses != nil && k.Uses >= *k.MaxUses
}

type CreateAccessKeyInput struct {
	TenantID  string   `json:"tenantId" binding:"required"`
	Label     string   `json:"label" binding:"required"`
	ExpiresAt string   `json:"expiresAt"`
	MaxUses   *float64 `json:"maxUses"`
}

type CreateAccessKeyResponse struct {
	AccessKey string    `json:"accessKey"` // Shown once
	KeyHash   string    `json:"keyHash"`
	TenantID  string    `json:"tenantId"`
	CreatedAt time.Time `json:"createdAt"`
}

type RotateAccessKeyResponse struct {
	AccessKey    string    `json:"accessKey"` // Shown once
	KeyHash      string    `json:"keyHash"`
	TenantID     string    `json:"tenantId"`
	RevokedCount int64     `json:"revokedCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UpdateMaxUsesInput struct {
	MaxUses *float64 `json:"maxUses"`
}
