package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SyncStatusPending = "pending"
	SyncStatusSyncing = "syncing"
	SyncStatusSuccess = "success"
	SyncStatusError   = "error"
)

type CalendarConnection struct {
	gorm.Model
	PropertyID    uint       `json:"propertyID" gorm:"not null;index"`
	RoomID        *uint      `json:"roomID"` // nil means the reconciler picks a default room
	Platform      string     `json:"platform" gorm:"size:40;not null"`
	ICalURL       string     `json:"icalURL" gorm:"not null"`
	IsActive      *bool      `json:"isActive" gorm:"default:true"`
	SyncStatus    string     `json:"syncStatus" gorm:"size:20;default:'pending'"` // pending, syncing, success, error
	LastSyncAt    *time.Time `json:"lastSyncAt"`
	LastSyncCount int        `json:"lastSyncCount"`
	LastError     string     `json:"lastError" gorm:"type:text"`
	Property      Property   `json:"-" gorm:"foreignKey:PropertyID"`
}
