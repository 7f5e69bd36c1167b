package model

// Tier is the performance classification of a series. It governs growth
// ranges and soft caps and is recomputed every tick, never stored.
type Tier string

const (
	TierPoor      Tier = "poor"
	TierAverage   Tier = "average"
	TierGood      Tier = "good"
	TierExcellent Tier = "excellent"
	TierViral     Tier = "viral"
)

// Phase is the lifecycle stage of a series, derived from views and age.
type Phase string

const (
	PhaseLaunch  Phase = "launch"
	PhaseGrowth  Phase = "growth"
	PhasePlateau Phase = "plateau"
	PhaseDecay   Phase = "decay"
)
