package entities

import (
	"time"

	"github.com/google/uuid"
)

// Redemption records that a user consumed an access key. One row exists per
// (keyHash, userID) pair for the lifetime of the system; it is the
// idempotence guard for repeat redemptions.
type Redemption struct {
	KeyHash    string    `json:"keyHash"`
	UserID     uuid.UUID `json:"userId"`
	TenantID   string    `json:"tenantId"`
	RedeemedAt time.Time `json:"redeemedAt"`
}

type RedeemAccessKeyInput struct {
	AccessKey string `json:"accessKey" binding:"required"`
}

type RedeemAccessKeyResponse struct {
	TenantID string `json:"tenantId"`
}
