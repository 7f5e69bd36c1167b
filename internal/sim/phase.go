package sim

import "growthpulse/internal/model"

// ClassifyPhase maps a view count and series age to a lifecycle phase. A
// series younger than seven days is always in launch; past that the view
// count alone decides.
func ClassifyPhase(views int64, ageDays float64) model.Phase {
	if ageDays < 7 {
		return model.PhaseLaunch
	}
	switch {
	case views < 1_000:
		return model.PhaseLaunch
	case views < 10_000:
		return model.PhaseGrowth
	case views < 50_000:
		return model.PhasePlateau
	default:
		return model.PhaseDecay
	}
}
