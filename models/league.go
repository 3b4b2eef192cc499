package models

import "time"

// League groups users competing on a shared map. The id is a slug derived
// from the league name at creation time.
type League struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// LeagueStats is the league-scoped resource ledger, keyed by the unique
// (league, user) pair. It is created when a user joins a league; a missing
// row during the nightly batch is a skip, not an error.
type LeagueStats struct {
	ID          string `json:"id" gorm:"primaryKey"`
	LeagueID    string `json:"leagueId" gorm:"uniqueIndex:idx_league_member;not null"`
	UserID      string `json:"userId" gorm:"uniqueIndex:idx_league_member;column:user_id;not null"`
	ResourceSet `gorm:"embedded"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
