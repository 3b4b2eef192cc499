package services

import (
	"context"
	"errors"
	"testing"

	"city-game-backend/models"
)

func TestCreateLeagueSlugsName(t *testing.T) {
	s := NewLeagueService(testDB(t))

	league, err := s.CreateLeague(context.Background(), "Green City Builders", "u1")
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	if league.ID != "green-city-builders" {
		t.Errorf("league id = %q, want slug of name", league.ID)
	}

	// The creator gets a member ledger immediately.
	var stats models.LeagueStats
	if err := s.DB.Where("league_id = ? AND user_id = ?", league.ID, "u1").First(&stats).Error; err != nil {
		t.Fatalf("creator ledger missing: %v", err)
	}
	if stats.ResourceSet != models.StartingResources() {
		t.Errorf("creator ledger = %+v, want starting resources", stats.ResourceSet)
	}
}

func TestJoinLeague(t *testing.T) {
	s := NewLeagueService(testDB(t))

	if _, err := s.JoinLeague(context.Background(), "missing", "u1"); !errors.Is(err, ErrLeagueNotFound) {
		t.Errorf("joining missing league: got %v, want ErrLeagueNotFound", err)
	}

	league, err := s.CreateLeague(context.Background(), "Eco League", "u1")
	if err != nil {
		t.Fatalf("create league: %v", err)
	}

	stats, err := s.JoinLeague(context.Background(), league.ID, "u2")
	if err != nil {
		t.Fatalf("join league: %v", err)
	}
	if stats.ResourceSet != models.StartingResources() {
		t.Errorf("member ledger = %+v, want starting resources", stats.ResourceSet)
	}

	if _, err := s.JoinLeague(context.Background(), league.ID, "u2"); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("double join: got %v, want ErrAlreadyMember", err)
	}

	members, err := s.LeagueMembers(context.Background(), league.ID)
	if err != nil {
		t.Fatalf("league members: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("members = %d, want 2", len(members))
	}
}
