package sim

import "growthpulse/internal/model"

// Metric indices into MetricSnapshot, in declaration order.
const (
	idxViews = iota
	idxLikes
	idxComments
	idxShares
	idxClicks
	idxSaves
	numMetrics
)

var metricNames = [numMetrics]string{"views", "likes", "comments", "shares", "clicks", "saves"}

func metricFields(m *model.MetricSnapshot) [numMetrics]*int64 {
	return [numMetrics]*int64{&m.Views, &m.Likes, &m.Comments, &m.Shares, &m.Clicks, &m.Saves}
}

type bounds struct {
	lo, hi float64
}

// Daily growth multiplier ranges per (phase, metric), before tier scaling.
var dailyGrowth = map[model.Phase][numMetrics]bounds{
	model.PhaseLaunch: {
		{1.15, 1.80}, {1.12, 1.60}, {1.10, 1.50}, {1.10, 1.55}, {1.08, 1.45}, {1.08, 1.40},
	},
	model.PhaseGrowth: {
		{1.08, 1.35}, {1.06, 1.28}, {1.05, 1.22}, {1.05, 1.25}, {1.04, 1.20}, {1.04, 1.18},
	},
	model.PhasePlateau: {
		{1.005, 1.050}, {1.004, 1.040}, {1.003, 1.035}, {1.003, 1.035}, {1.003, 1.030}, {1.002, 1.030},
	},
	model.PhaseDecay: {
		{1.001, 1.020}, {1.001, 1.015}, {1.001, 1.012}, {1.001, 1.012}, {1.001, 1.010}, {1.001, 1.010},
	},
}

// tierScale widens or narrows the growth range around 1.0.
var tierScale = map[model.Tier]float64{
	model.TierPoor:      0.7,
	model.TierAverage:   1.0,
	model.TierGood:      1.4,
	model.TierExcellent: 1.8,
	model.TierViral:     2.5,
}

// Soft caps derive from a per-tier views ceiling and a per-metric share of it.
var tierViewsCap = map[model.Tier]int64{
	model.TierPoor:      20_000,
	model.TierAverage:   100_000,
	model.TierGood:      500_000,
	model.TierExcellent: 2_000_000,
	model.TierViral:     10_000_000,
}

var metricCapShare = [numMetrics]float64{1.0, 0.05, 0.012, 0.02, 0.025, 0.015}

// Cap returns the soft cap for a (tier, metric) pair.
func Cap(tier model.Tier, idx int) int64 {
	views, ok := tierViewsCap[tier]
	if !ok {
		views = tierViewsCap[model.TierAverage]
	}
	return int64(float64(views) * metricCapShare[idx])
}

// Seed ranges: views drawn per tier, remaining metrics as a share of views.
var tierSeedViews = map[model.Tier]bounds{
	model.TierPoor:      {50, 500},
	model.TierAverage:   {200, 2_000},
	model.TierGood:      {500, 5_000},
	model.TierExcellent: {2_000, 20_000},
	model.TierViral:     {10_000, 50_000},
}

var seedShare = [numMetrics]bounds{
	{1, 1}, {0.02, 0.06}, {0.004, 0.012}, {0.006, 0.02}, {0.008, 0.03}, {0.004, 0.015},
}

// Platform bias applied at seeding: video-first platforms pull views and
// clicks, visual platforms pull likes and saves, feed platforms pull
// comments and shares.
var platformSeedBias = map[model.Platform][numMetrics]float64{
	model.PlatformYouTube:   {1.5, 1.0, 1.0, 1.0, 1.2, 1.0},
	model.PlatformInstagram: {1.0, 1.3, 1.0, 1.0, 1.0, 1.8},
	model.PlatformFacebook:  {1.0, 1.0, 1.2, 1.4, 1.0, 1.0},
}

// Per-metric minimums enforced on every seeded snapshot.
var metricMinimum = [numMetrics]int64{50, 5, 1, 1, 2, 1}
