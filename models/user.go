package models

import "time"

// UserProfile mirrors the profile record created at registration.
type UserProfile struct {
	UserID      string    `json:"user_id" gorm:"primaryKey;column:user_id"`
	UserName    string    `json:"userName" gorm:"not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	GameInitMap string    `json:"gameInitMap" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// ResourceSet holds the six resource balances shared by both ledger shapes.
// Balances are real-valued and may legitimately go negative; the game signals
// economic distress through negative values rather than rejecting them.
type ResourceSet struct {
	Coins       float64 `json:"coins" gorm:"default:0"`
	EcoPoints   float64 `json:"ecoPoints" gorm:"column:eco_points;default:0"`
	Electricity float64 `json:"electricity" gorm:"default:0"`
	Garbage     float64 `json:"garbage" gorm:"default:0"`
	Water       float64 `json:"water" gorm:"default:0"`
	Population  float64 `json:"population" gorm:"default:0"`
}

// StartingResources returns the balances granted to a fresh ledger.
func StartingResources() ResourceSet {
	return ResourceSet{
		Coins:       25000,
		EcoPoints:   100,
		Electricity: 200,
		Garbage:     0,
		Population:  0,
		Water:       1000,
	}
}

// UserPoints is the individual resource ledger, keyed by user id. It is
// lazily created with StartingResources the first time a user's details are
// fetched.
type UserPoints struct {
	UserID      string `json:"userId" gorm:"primaryKey;column:user_id"`
	ResourceSet `gorm:"embedded"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
