package models

import "time"

// Notification is a broadcast (or per-user) message shown in the game's
// notification feed. Global notifications have IsGlobal set and a nil UserID.
type Notification struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Message          string    `json:"message" gorm:"not null"`
	NotificationType string    `json:"notificationType"`
	IsGlobal         bool      `json:"isGlobal" gorm:"default:false"`
	UserID           *string   `json:"userID"`
	CreatedAt        time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
}
