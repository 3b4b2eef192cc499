package models

import "time"

// UserAsset is one placed building instance. The nightly batch reads these
// records to decide which ledgers to update; a nil LeagueID means the asset
// belongs to the owner's individual city.
type UserAsset struct {
	ID         string  `json:"id" gorm:"primaryKey"`
	UserID     string  `json:"userId" gorm:"index;column:user_id;not null"`
	BuildingID int     `json:"buildingId" gorm:"not null"`
	LeagueID   *string `json:"leagueId,omitempty" gorm:"index"`

	// Placement state reported by the client.
	X           int  `json:"x"`
	Y           int  `json:"y"`
	IsCreated   bool `json:"isCreated" gorm:"default:false"`
	IsForbidden bool `json:"isForbidden" gorm:"default:false"`
	IsDestroyed bool `json:"isDestroyed" gorm:"default:false"`
	IsRotate    bool `json:"isRotate" gorm:"default:false"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
