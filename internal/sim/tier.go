package sim

import "growthpulse/internal/model"

// Fixed tier distribution for newly seeded series, as cumulative thresholds.
var tierCumulative = []struct {
	upTo float64
	tier model.Tier
}{
	{0.20, model.TierPoor},
	{0.55, model.TierAverage},
	{0.80, model.TierGood},
	{0.95, model.TierExcellent},
	{1.00, model.TierViral},
}

// SampleTier draws a tier for a new series from the fixed distribution
// (poor 20%, average 35%, good 25%, excellent 15%, viral 5%).
func SampleTier(r Rand) model.Tier {
	u := r.Float64()
	for _, t := range tierCumulative {
		if u < t.upTo {
			return t.tier
		}
	}
	// rounding edge: u landed on or above 1.0
	return model.TierAverage
}

// InferTier reclassifies an existing series from its engagement ratio.
// Viral is creation-only and cannot be re-derived, so a formerly viral
// series settles into a lower tier as its ratio does.
func InferTier(m model.MetricSnapshot) model.Tier {
	ratio := m.EngagementRatio()
	switch {
	case ratio < 0.02:
		return model.TierPoor
	case ratio < 0.06:
		return model.TierAverage
	case ratio < 0.12:
		return model.TierGood
	default:
		return model.TierExcellent
	}
}
