package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"city-game-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChallengeTemplate is one entry of the fixed catalog the scheduler draws
// from. Progress is the display string shown before any user progress exists.
type ChallengeTemplate struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Progress    string `json:"progress"`
	Reward      int    `json:"reward"`
	BuildingID  int    `json:"buildingID"`
	Count       int    `json:"count"`
}

// ChallengeCatalog is the fixed set of eco challenge templates.
var ChallengeCatalog = []ChallengeTemplate{
	{ID: 1, Description: "Build 4 Residential houses", Progress: "1/4", Reward: 200, BuildingID: 1, Count: 4},
	{ID: 2, Description: "Build a Factory", Progress: "0/1", Reward: 200, BuildingID: 2, Count: 1},
	{ID: 3, Description: "Build a School", Progress: "0/1", Reward: 200, BuildingID: 3, Count: 1},
	{ID: 4, Description: "Build a Hospital", Progress: "0/1", Reward: 200, BuildingID: 4, Count: 1},
	{ID: 5, Description: "Build two Windmills", Progress: "0/2", Reward: 200, BuildingID: 5, Count: 2},
}

// scheduledChallengeDuration is how long a scheduler-created challenge stays
// open.
const scheduledChallengeDuration = 24 * time.Hour

var (
	ErrLeagueNotFound    = errors.New("league not found")
	ErrBuildingNotFound  = errors.New("building not found")
	ErrChallengeNotFound = errors.New("challenge not found")
)

// CreateChallengeInput is the request-driven creation payload. Validation of
// required fields happens in the handler; referential checks happen here.
type CreateChallengeInput struct {
	StartTime time.Time                   `json:"startTime"`
	EndTime   time.Time                   `json:"endTime"`
	LeagueID  *string                     `json:"leagueID"`
	Message   string                      `json:"message"`
	Required  models.ChallengeRequirement `json:"required"`
	Points    int                         `json:"points"`
}

// ChallengeService owns challenge records, progress records, and the
// notification emitted when a challenge appears.
type ChallengeService struct {
	DB            *gorm.DB
	Notifications *NotificationService
	rng           *rand.Rand
}

func NewChallengeService(db *gorm.DB, notifications *NotificationService) *ChallengeService {
	return &ChallengeService{
		DB:            db,
		Notifications: notifications,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand swaps the random source, letting tests pin the template pick.
func (s *ChallengeService) WithRand(rng *rand.Rand) *ChallengeService {
	s.rng = rng
	return s
}

// RandomTemplate returns a uniform pick from the catalog.
func (s *ChallengeService) RandomTemplate() ChallengeTemplate {
	return ChallengeCatalog[s.rng.Intn(len(ChallengeCatalog))]
}

// CreateChallenge creates a challenge from a client request. The referenced
// league (if any) and building must exist.
func (s *ChallengeService) CreateChallenge(ctx context.Context, input CreateChallengeInput) (*models.Challenge, error) {
	if input.LeagueID != nil {
		var league models.League
		if err := s.DB.WithContext(ctx).First(&league, "id = ?", *input.LeagueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLeagueNotFound
			}
			return nil, fmt.Errorf("load league %s: %w", *input.LeagueID, err)
		}
	}

	var building models.Building
	if err := s.DB.WithContext(ctx).First(&building, input.Required.BuildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, fmt.Errorf("load building %d: %w", input.Required.BuildingID, err)
	}

	challenge := models.Challenge{
		ID:        uuid.NewString(),
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		LeagueID:  input.LeagueID,
		Message:   input.Message,
		Required:  input.Required,
		Points:    input.Points,
		IsEnded:   false,
	}
	if err := s.DB.WithContext(ctx).Create(&challenge).Error; err != nil {
		return nil, fmt.Errorf("create challenge: %w", err)
	}

	s.announce(ctx)
	return &challenge, nil
}

// CreateScheduledChallenge is the scheduler's entry point: a uniform catalog
// pick becomes a 24h challenge, followed by a broadcast notification.
func (s *ChallengeService) CreateScheduledChallenge(ctx context.Context) (*models.Challenge, error) {
	tpl := s.RandomTemplate()
	now := time.Now()

	challenge := models.Challenge{
		ID:        uuid.NewString(),
		StartTime: now,
		EndTime:   now.Add(scheduledChallengeDuration),
		Message:   tpl.Description,
		Required:  models.ChallengeRequirement{BuildingID: tpl.BuildingID, Count: tpl.Count},
		Points:    tpl.Reward,
		IsEnded:   false,
	}
	if err := s.DB.WithContext(ctx).Create(&challenge).Error; err != nil {
		return nil, fmt.Errorf("create scheduled challenge: %w", err)
	}

	s.announce(ctx)
	return &challenge, nil
}

// announce emits the "new challenge" broadcast. Failure never rolls back the
// challenge itself.
func (s *ChallengeService) announce(ctx context.Context) {
	notification := models.Notification{
		Message:          "New eco challenge! Complete the challenge to get 200 coins reward",
		NotificationType: "challenge",
		IsGlobal:         true,
	}
	if err := s.Notifications.Publish(ctx, notification); err != nil {
		log.Printf("[Challenge] failed to publish notification: %v", err)
	}
}

// CreateProgress appends one progress record. The challenge must exist.
func (s *ChallengeService) CreateProgress(ctx context.Context, challengeID, userID string, leagueID *string, progress models.ChallengeRequirement) (*models.ChallengeProgress, error) {
	var challenge models.Challenge
	if err := s.DB.WithContext(ctx).First(&challenge, "id = ?", challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("load challenge %s: %w", challengeID, err)
	}

	record := models.ChallengeProgress{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		UserID:      userID,
		LeagueID:    leagueID,
		Progress:    progress,
		IsCompleted: false,
	}
	if err := s.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create challenge progress: %w", err)
	}
	return &record, nil
}

// ActiveChallenges returns every challenge not yet ended.
func (s *ChallengeService) ActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := s.DB.WithContext(ctx).Where("is_ended = ?", false).Find(&challenges).Error
	return challenges, err
}

// CompletedChallenges returns a user's completed progress records, filtered
// to one league or to solo play when leagueID is nil.
func (s *ChallengeService) CompletedChallenges(ctx context.Context, userID string, leagueID *string) ([]models.ChallengeProgress, error) {
	query := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_completed = ?", userID, true)
	if leagueID != nil {
		query = query.Where("league_id = ?", *leagueID)
	} else {
		query = query.Where("league_id IS NULL")
	}

	var records []models.ChallengeProgress
	err := query.Find(&records).Error
	return records, err
}
