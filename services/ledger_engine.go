package services

import (
	"math"
	"math/rand"

	"city-game-backend/models"
)

// LedgerScope selects which per-scope update policy applies. The individual
// and league ledgers share most of the formula but diverge on coins and on
// eco-point decay; the divergences are intentional game rules, kept per
// scope rather than unified.
type LedgerScope int

const (
	ScopeIndividual LedgerScope = iota
	ScopeLeague
)

// LedgerPatch is the partial next-state of a ledger produced by one update.
// Population is only part of the patch on the settlement path, so it is a
// pointer; all other fields are always written.
type LedgerPatch struct {
	Coins       float64
	EcoPoints   float64
	Electricity float64
	Garbage     float64
	Water       float64
	Population  *float64
}

// Columns returns the patch as gorm update columns, carrying only the fields
// the computation touched.
func (p LedgerPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"coins":       p.Coins,
		"eco_points":  p.EcoPoints,
		"electricity": p.Electricity,
		"garbage":     p.Garbage,
		"water":       p.Water,
	}
	if p.Population != nil {
		cols["population"] = *p.Population
	}
	return cols
}

// Apply overlays the patch onto a resource set. Used by callers that keep
// ledgers in memory (and by tests).
func (p LedgerPatch) Apply(r models.ResourceSet) models.ResourceSet {
	r.Coins = p.Coins
	r.EcoPoints = p.EcoPoints
	r.Electricity = p.Electricity
	r.Garbage = p.Garbage
	r.Water = p.Water
	if p.Population != nil {
		r.Population = *p.Population
	}
	return r
}

// ComputeLedgerUpdate produces the next ledger state for one building the
// participant owns. It is pure: persistence is the caller's job.
//
// recurring selects between the nightly accrual formula and the one-time
// settlement formula applied at placement/removal; the two differ on coins,
// and only settlement writes population. days defaults to 1 when not
// positive. No balance is ever clamped; negatives are legal.
//
// Eco-point rules: every building earns ecoEarning*days. Building id 1
// additionally loses a uniform random amount in [5,15] regardless of days or
// scope. Any other building decays by its own eco-point cost, but only on
// the league ledger; the individual ledger never charges it.
func ComputeLedgerUpdate(cur models.ResourceSet, b *models.Building, days int, recurring bool, scope LedgerScope, rng *rand.Rand) LedgerPatch {
	if days <= 0 {
		days = 1
	}
	d := float64(days)

	eco := cur.EcoPoints + b.EcoEarning*d
	if b.ID == models.EcoDecayBuildingID {
		eco -= float64(ecoDecay(rng))
	} else if scope == ScopeLeague {
		eco -= b.EcoPoints * d
	}

	employment := employmentEarnings(cur.Population, b, d)

	var coins float64
	switch {
	case recurring && scope == ScopeIndividual:
		coins = b.Earning*d + employment + (cur.Coins - b.TaxIncome*d*b.ResidentCapacity - b.MaintenanceCost*d)
	case recurring:
		// League tax is flat per day, independent of resident capacity, and
		// league buildings carry no maintenance charge.
		coins = b.Earning*d + employment + (cur.Coins - b.TaxIncome*d)
	case scope == ScopeIndividual:
		coins = cur.Coins - (b.Cost + b.TaxIncome*b.ResidentCapacity)
	default:
		coins = cur.Coins - (b.Cost + b.TaxIncome)
	}

	patch := LedgerPatch{
		Coins:       coins,
		EcoPoints:   eco,
		Electricity: cur.Electricity + b.EleEarning*d - b.ElectricityConsumption*d,
		Garbage:     cur.Garbage + b.WasteProduce*d - b.WasteRemoval*d,
		Water:       cur.Water + b.WaterEarning*d - b.WaterUsage*d,
	}
	if !recurring {
		population := cur.Population + b.ResidentCapacity*d
		patch.Population = &population
	}
	return patch
}

// employmentEarnings is capped by how many of the building's jobs the current
// population can actually fill.
func employmentEarnings(population float64, b *models.Building, d float64) float64 {
	if b.Effect == 0 {
		return 0
	}
	return math.Min(population, b.JobCapacity) * b.Effect * d
}

// ecoDecay draws the one-off eco detractor, uniform in [5,15].
func ecoDecay(rng *rand.Rand) int {
	if rng == nil {
		return rand.Intn(11) + 5
	}
	return rng.Intn(11) + 5
}
