package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"city-game-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PointsService drives ledger updates against the store. The arithmetic
// lives in ComputeLedgerUpdate; this service resolves an asset to its scope
// key, serializes the read-modify-write per key, and persists the patch.
type PointsService struct {
	DB  *gorm.DB
	rng *rand.Rand
}

func NewPointsService(db *gorm.DB) *PointsService {
	return &PointsService{
		DB:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand swaps the random source, letting tests pin the eco decay.
func (s *PointsService) WithRand(rng *rand.Rand) *PointsService {
	s.rng = rng
	return s
}

// RunDailyUpdate applies one day of accrual to every placed asset. Assets
// are independent; a failure on one is logged and the batch moves on.
func (s *PointsService) RunDailyUpdate(ctx context.Context) {
	var assets []models.UserAsset
	if err := s.DB.WithContext(ctx).Find(&assets).Error; err != nil {
		log.Printf("[DailyUpdate] failed to list user assets: %v", err)
		return
	}

	updated, skipped := 0, 0
	for _, asset := range assets {
		if err := s.UpdateAssetPoints(ctx, asset, 1, true); err != nil {
			skipped++
			log.Printf("[DailyUpdate] asset %s (user %s, building %d): %v",
				asset.ID, asset.UserID, asset.BuildingID, err)
			continue
		}
		updated++
	}
	log.Printf("[DailyUpdate] done: %d updated, %d skipped of %d assets", updated, skipped, len(assets))
}

// SettleAssetPlacement applies the one-time settlement charge for a freshly
// placed asset (non-recurring path: purchase cost, settlement tax, resident
// population).
func (s *PointsService) SettleAssetPlacement(ctx context.Context, asset models.UserAsset) error {
	return s.UpdateAssetPoints(ctx, asset, 1, false)
}

// UpdateAssetPoints resolves the asset's building and ledger scope and runs
// one engine update against it.
func (s *PointsService) UpdateAssetPoints(ctx context.Context, asset models.UserAsset, days int, recurring bool) error {
	var building models.Building
	if err := s.DB.WithContext(ctx).First(&building, asset.BuildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("building %d not found", asset.BuildingID)
		}
		return fmt.Errorf("load building %d: %w", asset.BuildingID, err)
	}

	if asset.LeagueID == nil {
		return s.updateUserPoints(ctx, asset.UserID, &building, days, recurring)
	}
	return s.updateLeagueStats(ctx, *asset.LeagueID, asset.UserID, &building, days, recurring)
}

// lockForUpdate takes a row lock so concurrent updates to the same scope key
// stay serialized. SQLite serializes writers on its own and rejects the FOR
// UPDATE syntax, so the clause only applies on Postgres.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// updateUserPoints runs the read-modify-write against the individual ledger.
func (s *PointsService) updateUserPoints(ctx context.Context, userID string, building *models.Building, days int, recurring bool) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var points models.UserPoints
		err := lockForUpdate(tx).
			Where("user_id = ?", userID).
			First(&points).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user points not found for %s", userID)
			}
			return fmt.Errorf("load user points for %s: %w", userID, err)
		}

		patch := ComputeLedgerUpdate(points.ResourceSet, building, days, recurring, ScopeIndividual, s.rng)
		return tx.Model(&models.UserPoints{}).
			Where("user_id = ?", userID).
			Updates(patch.Columns()).Error
	})
}

// updateLeagueStats runs the same cycle against the (league, user) ledger.
func (s *PointsService) updateLeagueStats(ctx context.Context, leagueID, userID string, building *models.Building, days int, recurring bool) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stats models.LeagueStats
		err := lockForUpdate(tx).
			Where("league_id = ? AND user_id = ?", leagueID, userID).
			First(&stats).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("league stats not found for league %s user %s", leagueID, userID)
			}
			return fmt.Errorf("load league stats for league %s user %s: %w", leagueID, userID, err)
		}

		patch := ComputeLedgerUpdate(stats.ResourceSet, building, days, recurring, ScopeLeague, s.rng)
		return tx.Model(&models.LeagueStats{}).
			Where("league_id = ? AND user_id = ?", leagueID, userID).
			Updates(patch.Columns()).Error
	})
}

// GetUserPoints returns the individual ledger for a user.
func (s *PointsService) GetUserPoints(ctx context.Context, userID string) (*models.UserPoints, error) {
	var points models.UserPoints
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&points).Error; err != nil {
		return nil, err
	}
	return &points, nil
}

// GetLeagueStats returns the league-member ledger for a (league, user) pair.
func (s *PointsService) GetLeagueStats(ctx context.Context, leagueID, userID string) (*models.LeagueStats, error) {
	var stats models.LeagueStats
	if err := s.DB.WithContext(ctx).Where("league_id = ? AND user_id = ?", leagueID, userID).First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
