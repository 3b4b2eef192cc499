package models

import "time"

// ChallengeRequirement names the building a challenge asks for and how many
// of it must be placed.
type ChallengeRequirement struct {
	BuildingID int `json:"buildingID"`
	Count      int `json:"count"`
}

// Challenge is a time-boxed objective, created on demand by an authenticated
// request or by the randomized scheduler. IsEnded flips to true when
// completion detection closes the challenge.
type Challenge struct {
	ID        string               `json:"id" gorm:"primaryKey"`
	StartTime time.Time            `json:"startTime" gorm:"not null"`
	EndTime   time.Time            `json:"endTime" gorm:"not null"`
	LeagueID  *string              `json:"leagueID" gorm:"index"`
	Message   string               `json:"message" gorm:"not null"`
	Required  ChallengeRequirement `json:"required" gorm:"embedded;embeddedPrefix:required_"`
	Points    int                  `json:"points"`
	IsEnded   bool                 `json:"isEnded" gorm:"default:false;index"`
	CreatedAt time.Time            `json:"createdAt" gorm:"autoCreateTime"`
}

// ChallengeProgress is one user's append-only progress record against a
// challenge.
type ChallengeProgress struct {
	ID          string               `json:"id" gorm:"primaryKey"`
	ChallengeID string               `json:"challengeID" gorm:"index;not null"`
	UserID      string               `json:"userID" gorm:"index;column:user_id;not null"`
	LeagueID    *string              `json:"leagueID"`
	Progress    ChallengeRequirement `json:"progress" gorm:"embedded;embeddedPrefix:progress_"`
	IsCompleted bool                 `json:"isCompleted" gorm:"default:false"`
	CreatedAt   time.Time            `json:"createdAt" gorm:"autoCreateTime"`
}
