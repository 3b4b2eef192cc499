package models

import "time"

// EcoDecayBuildingID marks the one catalog entry whose presence causes a
// randomized eco-point decay on every ledger update.
const EcoDecayBuildingID = 1

// Building is a catalog entry describing the per-day economic coefficients
// of one building type. Every coefficient is optional; an absent value is
// stored and computed as 0.
type Building struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name"`

	// Per-day production
	Earning      float64 `json:"earning" gorm:"default:0"`
	EcoEarning   float64 `json:"ecoEarning" gorm:"column:eco_earning;default:0"`
	EleEarning   float64 `json:"eleEarning" gorm:"column:ele_earning;default:0"`
	WaterEarning float64 `json:"waterEarning" gorm:"default:0"`

	// Per-day consumption
	ElectricityConsumption float64 `json:"electricityConsumption" gorm:"default:0"`
	WaterUsage             float64 `json:"waterUsage" gorm:"default:0"`
	WasteProduce           float64 `json:"wasteProduce" gorm:"default:0"`
	WasteRemoval           float64 `json:"wasteRemoval" gorm:"default:0"`

	// Currency effects
	TaxIncome       float64 `json:"taxIncome" gorm:"default:0"`
	MaintenanceCost float64 `json:"maintenanceCost" gorm:"default:0"`
	Cost            float64 `json:"cost" gorm:"default:0"`

	// Employment coefficients
	JobCapacity float64 `json:"jobCapacity" gorm:"default:0"`
	Effect      float64 `json:"effect" gorm:"default:0"`

	// Population effect
	ResidentCapacity float64 `json:"residentCapacity" gorm:"default:0"`

	// The building's own eco-point cost, charged on league updates.
	EcoPoints float64 `json:"ecoPoints" gorm:"column:eco_points;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// DefaultCatalog seeds the building table on first boot. Coefficients mirror
// the game's starter catalog; id 1 is the residential house subject to the
// randomized eco decay.
var DefaultCatalog = []Building{
	{ID: 1, Name: "Residential House", Cost: 500, TaxIncome: 5, ResidentCapacity: 4, ElectricityConsumption: 3, WaterUsage: 2, WasteProduce: 1, MaintenanceCost: 2},
	{ID: 2, Name: "Factory", Cost: 2000, Earning: 150, JobCapacity: 20, Effect: 2, ElectricityConsumption: 10, WaterUsage: 5, WasteProduce: 6, EcoPoints: 3, MaintenanceCost: 15},
	{ID: 3, Name: "School", Cost: 1500, JobCapacity: 10, Effect: 1, ElectricityConsumption: 4, WaterUsage: 3, EcoEarning: 1, MaintenanceCost: 10},
	{ID: 4, Name: "Hospital", Cost: 2500, JobCapacity: 15, Effect: 1, ElectricityConsumption: 8, WaterUsage: 6, WasteProduce: 2, MaintenanceCost: 20},
	{ID: 5, Name: "Windmill", Cost: 1200, EleEarning: 25, EcoEarning: 2, MaintenanceCost: 5},
	{ID: 6, Name: "Water Tower", Cost: 800, WaterEarning: 40, ElectricityConsumption: 2, MaintenanceCost: 4},
	{ID: 7, Name: "Recycling Center", Cost: 1800, WasteRemoval: 10, EcoEarning: 3, JobCapacity: 8, Effect: 1, ElectricityConsumption: 6, MaintenanceCost: 12},
}
