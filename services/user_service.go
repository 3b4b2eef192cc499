package services

import (
	"context"
	"errors"
	"fmt"

	"city-game-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService owns profiles and the lazy creation of individual ledgers.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates a user profile. Credential issuance happens upstream at
// the gateway; this service only stores the game-facing profile.
func (s *UserService) Register(ctx context.Context, userName, email string) (*models.UserProfile, error) {
	profile := models.UserProfile{
		UserID:      uuid.NewString(),
		UserName:    userName,
		Email:       email,
		GameInitMap: "",
	}
	if err := s.DB.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("create user profile: %w", err)
	}
	return &profile, nil
}

// GetProfile returns a user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.DB.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// EnsureUserPoints lazily creates the individual ledger with the starting
// balances the first time a user's details are fetched.
func (s *UserService) EnsureUserPoints(ctx context.Context, userID string) (*models.UserPoints, error) {
	var points models.UserPoints
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&points).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		points = models.UserPoints{
			UserID:      userID,
			ResourceSet: models.StartingResources(),
		}
		if err := s.DB.WithContext(ctx).Create(&points).Error; err != nil {
			return nil, fmt.Errorf("create user points for %s: %w", userID, err)
		}
		return &points, nil
	}
	if err != nil {
		return nil, err
	}
	return &points, nil
}

// ResetCoins sets every individual ledger's coin balance to the given value
// (25000 when nil). Returns how many ledgers were touched.
func (s *UserService) ResetCoins(ctx context.Context, coins *float64) (int64, error) {
	value := 25000.0
	if coins != nil {
		value = *coins
	}
	result := s.DB.WithContext(ctx).
		Model(&models.UserPoints{}).
		Where("1 = 1").
		Update("coins", value)
	return result.RowsAffected, result.Error
}
