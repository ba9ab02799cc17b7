package models

import (
	"time"

	"github.com/google/uuid"
)

// Redemption is the ledger row recording that a user consumed a key. The
// composite primary key is the idempotence guard: a second redemption by the
// same user cannot insert a second row.
type Redemption struct {
	KeyHash    string    `gorm:"type:varchar(64);primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   string    `gorm:"type:varchar(40);not null"`
	RedeemedAt time.Time `gorm:"not null"`
}

// TableName returns the table name
func (Redemption) TableName() string {
	return "redemptions"
}
