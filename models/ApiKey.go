package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey authenticates webhook and trigger callers. Only the sha256 hex of
// the key is stored; issuance happens outside this server.
type APIKey struct {
	gorm.Model
	Name       string     `json:"name" gorm:"not null"`
	KeyHash    string     `json:"-" gorm:"size:64;uniqueIndex;not null"`
	IsActive   *bool      `json:"isActive" gorm:"default:true"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
}
