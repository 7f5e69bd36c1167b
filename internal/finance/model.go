package finance

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"growthpulse/internal/model"
	"growthpulse/internal/sim"
)

// Profile holds per-platform ad cost baselines.
type Profile struct {
	CPCBase       float64
	CPMBase       float64
	AvgOrderValue float64
}

var profiles = map[model.Platform]Profile{
	model.PlatformFacebook:  {CPCBase: 0.97, CPMBase: 7.19, AvgOrderValue: 85},
	model.PlatformInstagram: {CPCBase: 1.28, CPMBase: 7.91, AvgOrderValue: 95},
	model.PlatformYouTube:   {CPCBase: 3.21, CPMBase: 9.68, AvgOrderValue: 120},
}

var defaultProfile = Profile{CPCBase: 1.50, CPMBase: 8.00, AvgOrderValue: 100}

// PlatformProfile returns the cost baselines for a platform.
func PlatformProfile(p model.Platform) Profile {
	if prof, ok := profiles[p]; ok {
		return prof
	}
	return defaultProfile
}

// Target ROI ranges per tier, in percent.
var tierROI = map[model.Tier][2]float64{
	model.TierPoor:      {-20, 15},
	model.TierAverage:   {15, 45},
	model.TierGood:      {45, 85},
	model.TierExcellent: {85, 150},
	model.TierViral:     {150, 250},
}

// maxROIPct bounds roi_percentage; revenue is clamped so it holds exactly.
const maxROIPct = 300

// maxConversionRate caps implied revenue per click.
const maxConversionRate = 0.10

// Model derives plausible financials from a metrics snapshot. Draw order is
// fixed (cpc, cpm, aov, target roi, revenue noise) so seeded runs reproduce.
type Model struct {
	rand   sim.Rand
	logger *zap.Logger
}

func NewModel(r sim.Rand, logger *zap.Logger) *Model {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{rand: r, logger: logger}
}

// Compute derives spend, revenue, ROI and ROAS for one snapshot.
func (m *Model) Compute(metrics model.MetricSnapshot, platform model.Platform, tier model.Tier, ageDays float64) model.FinancialSnapshot {
	prof := PlatformProfile(platform)

	cpc := prof.CPCBase * sim.Uniform(m.rand, 0.75, 1.25)
	cpm := prof.CPMBase * sim.Uniform(m.rand, 0.75, 1.25)
	aov := prof.AvgOrderValue * sim.Uniform(m.rand, 0.85, 1.15)

	spend := float64(metrics.Clicks)*cpc + float64(metrics.Views)*cpm/1000

	roiRange, ok := tierROI[tier]
	if !ok {
		roiRange = tierROI[model.TierAverage]
	}
	targetROI := sim.Uniform(m.rand, roiRange[0], roiRange[1])
	agePenalty := 1 - ageDays*0.005
	if agePenalty < 0.5 {
		agePenalty = 0.5
	}
	targetROI *= agePenalty

	revenue := spend * (1 + targetROI/100) * sim.Uniform(m.rand, 0.85, 1.15)

	clicks := metrics.Clicks
	if clicks < 1 {
		clicks = 1
	}
	if (revenue/aov)/float64(clicks) > maxConversionRate {
		revenue = float64(metrics.Clicks) * maxConversionRate * aov
	}

	// keep roi_percentage within its documented upper bound
	if revenue > spend*(1+maxROIPct/100.0) {
		revenue = spend * (1 + maxROIPct/100.0)
	}

	if spend > model.MoneyCeiling {
		m.logger.Warn("ad spend exceeds storage ceiling, clamping",
			zap.Float64("ad_spend", spend), zap.String("platform", string(platform)))
		spend = model.MoneyCeiling
	}
	if revenue > model.MoneyCeiling {
		m.logger.Warn("revenue exceeds storage ceiling, clamping",
			zap.Float64("revenue", revenue), zap.String("platform", string(platform)))
		revenue = model.MoneyCeiling
	}

	var roi, roas float64
	if spend > 0 {
		roi = (revenue - spend) / spend * 100
		roas = revenue / spend
	}

	return model.FinancialSnapshot{
		AdSpend:           round2(spend),
		Revenue:           round2(revenue),
		CostPerClick:      round2(cpc),
		CostPerImpression: cpm / 1000,
		ROIPercentage:     round2(roi),
		ROASRatio:         roas,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
