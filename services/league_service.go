package services

import (
	"context"
	"errors"
	"fmt"

	"city-game-backend/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var ErrAlreadyMember = errors.New("user already joined this league")

// LeagueService owns leagues and the member ledgers created at join time.
type LeagueService struct {
	DB *gorm.DB
}

func NewLeagueService(db *gorm.DB) *LeagueService {
	return &LeagueService{DB: db}
}

// CreateLeague creates a league whose id is a slug of its name, doubling as
// the join code players share.
func (s *LeagueService) CreateLeague(ctx context.Context, name, creatorID string) (*models.League, error) {
	league := models.League{
		ID:        slug.Make(name),
		Name:      name,
		CreatedBy: creatorID,
	}
	if err := s.DB.WithContext(ctx).Create(&league).Error; err != nil {
		return nil, fmt.Errorf("create league: %w", err)
	}

	// The creator is a member from the start.
	if _, err := s.JoinLeague(ctx, league.ID, creatorID); err != nil {
		return nil, err
	}
	return &league, nil
}

// JoinLeague adds a user to a league and creates their league ledger with
// the starting balances. The nightly batch assumes this ledger exists for
// every league-scoped asset.
func (s *LeagueService) JoinLeague(ctx context.Context, leagueID, userID string) (*models.LeagueStats, error) {
	var league models.League
	if err := s.DB.WithContext(ctx).First(&league, "id = ?", leagueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("load league %s: %w", leagueID, err)
	}

	var existing models.LeagueStats
	err := s.DB.WithContext(ctx).
		Where("league_id = ? AND user_id = ?", leagueID, userID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyMember
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check league membership: %w", err)
	}

	stats := models.LeagueStats{
		ID:          uuid.NewString(),
		LeagueID:    leagueID,
		UserID:      userID,
		ResourceSet: models.StartingResources(),
	}
	if err := s.DB.WithContext(ctx).Create(&stats).Error; err != nil {
		return nil, fmt.Errorf("create league stats: %w", err)
	}
	return &stats, nil
}

// LeagueMembers returns the ledgers of everyone in a league, useful for the
// league standings view.
func (s *LeagueService) LeagueMembers(ctx context.Context, leagueID string) ([]models.LeagueStats, error) {
	var members []models.LeagueStats
	err := s.DB.WithContext(ctx).Where("league_id = ?", leagueID).Find(&members).Error
	return members, err
}
