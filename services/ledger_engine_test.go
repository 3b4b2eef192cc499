package services

import (
	"math/rand"
	"testing"

	"city-game-backend/models"
)

// The scenario building used across several tests: a plain earner with tax,
// maintenance and utility flows, not subject to eco decay.
func scenarioBuilding() *models.Building {
	return &models.Building{
		ID:                     2,
		Earning:                100,
		TaxIncome:              5,
		ResidentCapacity:       2,
		MaintenanceCost:        10,
		ElectricityConsumption: 3,
		WasteProduce:           1,
		WaterUsage:             2,
	}
}

func scenarioLedger() models.ResourceSet {
	return models.ResourceSet{
		Coins:       1000,
		EcoPoints:   50,
		Electricity: 200,
		Garbage:     0,
		Water:       1000,
		Population:  0,
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestRecurringIndividualScenario(t *testing.T) {
	patch := ComputeLedgerUpdate(scenarioLedger(), scenarioBuilding(), 1, true, ScopeIndividual, testRand())

	if patch.Coins != 1080 {
		t.Errorf("coins = %v, want 1080", patch.Coins)
	}
	if patch.Electricity != 197 {
		t.Errorf("electricity = %v, want 197", patch.Electricity)
	}
	if patch.Garbage != 1 {
		t.Errorf("garbage = %v, want 1", patch.Garbage)
	}
	if patch.Water != 998 {
		t.Errorf("water = %v, want 998", patch.Water)
	}
	if patch.EcoPoints != 50 {
		t.Errorf("ecoPoints = %v, want 50", patch.EcoPoints)
	}
	if patch.Population != nil {
		t.Errorf("recurring patch must not carry population, got %v", *patch.Population)
	}
}

func TestSettlementIndividualScenario(t *testing.T) {
	patch := ComputeLedgerUpdate(scenarioLedger(), scenarioBuilding(), 1, false, ScopeIndividual, testRand())

	// cost is unset (0), so the charge is just the settlement tax.
	if patch.Coins != 990 {
		t.Errorf("coins = %v, want 990", patch.Coins)
	}
	if patch.Population == nil {
		t.Fatal("settlement patch must carry population")
	}
	if *patch.Population != 2 {
		t.Errorf("population = %v, want 2", *patch.Population)
	}
}

func TestZeroCoefficientBuildingIsIdentity(t *testing.T) {
	cur := scenarioLedger()
	for _, scope := range []LedgerScope{ScopeIndividual, ScopeLeague} {
		patch := ComputeLedgerUpdate(cur, &models.Building{ID: 2}, 1, true, scope, testRand())
		next := patch.Apply(cur)
		if next != cur {
			t.Errorf("scope %v: zero-coefficient building changed ledger: %+v -> %+v", scope, cur, next)
		}
	}
}

func TestEcoDecayBuildingAlwaysDecays(t *testing.T) {
	cur := scenarioLedger()
	building := &models.Building{ID: models.EcoDecayBuildingID}
	rng := testRand()

	for _, recurring := range []bool{true, false} {
		for _, scope := range []LedgerScope{ScopeIndividual, ScopeLeague} {
			for i := 0; i < 100; i++ {
				patch := ComputeLedgerUpdate(cur, building, 1, recurring, scope, rng)
				decay := cur.EcoPoints - patch.EcoPoints
				if decay < 5 || decay > 15 {
					t.Fatalf("recurring=%v scope=%v: decay %v outside [5,15]", recurring, scope, decay)
				}
			}
		}
	}
}

func TestEcoCostChargedOnLeagueScopeOnly(t *testing.T) {
	cur := scenarioLedger()
	building := &models.Building{ID: 2, EcoEarning: 1, EcoPoints: 4}

	individual := ComputeLedgerUpdate(cur, building, 2, true, ScopeIndividual, testRand())
	if individual.EcoPoints != 52 {
		t.Errorf("individual ecoPoints = %v, want 52 (no eco cost)", individual.EcoPoints)
	}

	league := ComputeLedgerUpdate(cur, building, 2, true, ScopeLeague, testRand())
	if league.EcoPoints != 44 {
		t.Errorf("league ecoPoints = %v, want 44 (eco cost 4 per day)", league.EcoPoints)
	}
}

func TestLeagueCoinPolicyDiverges(t *testing.T) {
	cur := scenarioLedger()
	building := scenarioBuilding()

	// League recurring tax is flat per day; no resident multiplier, no
	// maintenance.
	league := ComputeLedgerUpdate(cur, building, 1, true, ScopeLeague, testRand())
	if league.Coins != 1095 {
		t.Errorf("league recurring coins = %v, want 1095", league.Coins)
	}

	// League settlement charges cost + flat tax.
	building.Cost = 500
	settled := ComputeLedgerUpdate(cur, building, 1, false, ScopeLeague, testRand())
	if settled.Coins != 495 {
		t.Errorf("league settlement coins = %v, want 495", settled.Coins)
	}

	// Individual settlement multiplies the tax by resident capacity.
	settledSolo := ComputeLedgerUpdate(cur, building, 1, false, ScopeIndividual, testRand())
	if settledSolo.Coins != 490 {
		t.Errorf("individual settlement coins = %v, want 490", settledSolo.Coins)
	}
}

func TestRecurringAndSettlementDiffer(t *testing.T) {
	cur := scenarioLedger()
	building := scenarioBuilding()

	recurring := ComputeLedgerUpdate(cur, building, 1, true, ScopeIndividual, testRand())
	settlement := ComputeLedgerUpdate(cur, building, 1, false, ScopeIndividual, testRand())
	if recurring.Coins == settlement.Coins {
		t.Errorf("recurring and settlement coins should differ, both %v", recurring.Coins)
	}

	// Settlement is not idempotent: applying it twice keeps charging.
	once := settlement.Apply(cur)
	twice := ComputeLedgerUpdate(once, building, 1, false, ScopeIndividual, testRand()).Apply(once)
	if twice.Coins >= once.Coins {
		t.Errorf("second settlement should reduce coins further: %v -> %v", once.Coins, twice.Coins)
	}
}

func TestRecurringUpdateIsAdditiveInDays(t *testing.T) {
	cur := scenarioLedger()
	building := scenarioBuilding()
	building.EcoEarning = 2

	atOnce := ComputeLedgerUpdate(cur, building, 3, true, ScopeIndividual, testRand()).Apply(cur)

	step1 := ComputeLedgerUpdate(cur, building, 1, true, ScopeIndividual, testRand()).Apply(cur)
	stepwise := ComputeLedgerUpdate(step1, building, 2, true, ScopeIndividual, testRand()).Apply(step1)

	if atOnce != stepwise {
		t.Errorf("d=3 once vs d=1+d=2: %+v != %+v", atOnce, stepwise)
	}
}

func TestElapsedDaysDefaultsToOne(t *testing.T) {
	cur := scenarioLedger()
	building := scenarioBuilding()

	zero := ComputeLedgerUpdate(cur, building, 0, true, ScopeIndividual, testRand())
	one := ComputeLedgerUpdate(cur, building, 1, true, ScopeIndividual, testRand())
	if zero != one {
		t.Errorf("days=0 should behave as days=1: %+v != %+v", zero, one)
	}
}

func TestEmploymentEarnings(t *testing.T) {
	building := &models.Building{ID: 2, Effect: 2, JobCapacity: 10}

	cases := []struct {
		population float64
		want       float64
	}{
		{0, 0},
		{5, 10},
		{10, 20},
		{50, 20}, // capped at job capacity
	}
	prev := -1.0
	for _, tc := range cases {
		got := employmentEarnings(tc.population, building, 1)
		if got != tc.want {
			t.Errorf("employmentEarnings(pop=%v) = %v, want %v", tc.population, got, tc.want)
		}
		if got < prev {
			t.Errorf("employmentEarnings not monotonic at pop=%v", tc.population)
		}
		if bound := building.JobCapacity * building.Effect; got > bound {
			t.Errorf("employmentEarnings(pop=%v) = %v exceeds bound %v", tc.population, got, bound)
		}
		prev = got
	}

	// No effect coefficient means no employment income at all.
	if got := employmentEarnings(100, &models.Building{ID: 2, JobCapacity: 10}, 1); got != 0 {
		t.Errorf("employmentEarnings without effect = %v, want 0", got)
	}
}

func TestNegativeBalancesAreKept(t *testing.T) {
	cur := models.ResourceSet{Coins: 10}
	building := &models.Building{ID: 2, MaintenanceCost: 100}

	patch := ComputeLedgerUpdate(cur, building, 1, true, ScopeIndividual, testRand())
	if patch.Coins != -90 {
		t.Errorf("coins = %v, want -90 (no clamping)", patch.Coins)
	}
}

func TestPatchColumnsCarryPopulationOnlyOnSettlement(t *testing.T) {
	cur := scenarioLedger()
	building := scenarioBuilding()

	recurring := ComputeLedgerUpdate(cur, building, 1, true, ScopeIndividual, testRand())
	if _, ok := recurring.Columns()["population"]; ok {
		t.Error("recurring patch columns must not include population")
	}

	settlement := ComputeLedgerUpdate(cur, building, 1, false, ScopeIndividual, testRand())
	if _, ok := settlement.Columns()["population"]; !ok {
		t.Error("settlement patch columns must include population")
	}
}
