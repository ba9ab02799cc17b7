package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// AccessKey is the persisted form of a tenant access key, keyed by the hash
// of its normalized plaintext.
type AccessKey struct {
	KeyHash            string      `gorm:"type:varchar(64);primaryKey"`
	TenantID           string      `gorm:"type:varchar(40);not null;index"`
	Label              string      `gorm:"type:varchar(200);not null"`
	IsActive           bool        `gorm:"not null;default:true"`
	Uses               int64       `gorm:"not null;default:0"`
	MaxUses            null.Int64  `gorm:"type:bigint"`
	ExpiresAt          null.Time   ``
	CreatedBy          string      `gorm:"type:varchar(64);not null"`
	CreatedAt          time.Time   ``
	UpdatedAt          time.Time   ``
	UpdatedBy          null.String `gorm:"type:varchar(64)"`
	RevokedAt          null.Time   ``
	RevokedBy          null.String `gorm:"type:varchar(64)"`
	RotationReplacedBy null.String `gorm:"type:varchar(64)"`
}

// TableName returns the table name
func (AccessKey) TableName() string {
	return "access_keys"
}
