package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User is the profile row. Claims holds the identity-provider custom claim
// blob as JSON; the tenant columns mirror the current assignment for
// reporting and audit.
type User struct {
	ID                    uuid.UUID   `gorm:"type:uuid;primary_key"`
	Email                 string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                  string      `gorm:"type:varchar(255);not null"`
	PasswordHash          string      `gorm:"type:varchar(255);not null"`
	Claims                string      `gorm:"type:text;not null;default:'{}'"`
	TenantID              null.String `gorm:"type:varchar(40);index"`
	TenantAccessSource    null.String `gorm:"type:varchar(20)"`
	TenantAccessGrantedAt null.Time   ``
	CreatedAt             time.Time   ``
	UpdatedAt             time.Time   ``
}

// TableName returns the table name
func (User) TableName() string {
	return "users"
}
