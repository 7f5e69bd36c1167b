package sim

import (
	"math/rand"
	"time"

	"growthpulse/internal/model"
)

// Engine seeds new series and advances existing ones. All randomness flows
// through the injected Rand, so a seeded source makes runs reproducible.
type Engine struct {
	rand Rand
}

func NewEngine(r Rand) *Engine {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rand: r}
}

// SeedInitial draws the first snapshot of a series: views from the tier's
// range, the remaining metrics as a share of views, each biased by platform
// and floored at the per-metric minimum.
func (e *Engine) SeedInitial(tier model.Tier, platform model.Platform) model.MetricSnapshot {
	viewsRange, ok := tierSeedViews[tier]
	if !ok {
		viewsRange = tierSeedViews[model.TierAverage]
	}
	bias, ok := platformSeedBias[platform]
	if !ok {
		bias = [numMetrics]float64{1, 1, 1, 1, 1, 1}
	}

	views := Uniform(e.rand, viewsRange.lo, viewsRange.hi)

	var out model.MetricSnapshot
	fields := metricFields(&out)
	for i := 0; i < numMetrics; i++ {
		share := Uniform(e.rand, seedShare[i].lo, seedShare[i].hi)
		val := int64(views * share * bias[i])
		if val < metricMinimum[i] {
			val = metricMinimum[i]
		}
		*fields[i] = val
	}
	return out
}

// AdvanceTick advances every metric of a snapshot by one tick. tickFraction
// is the tick's share of a day (10 minutes = 10/1440). Each metric grows by
// a multiplier drawn from the (phase, metric) daily range scaled toward the
// tier, is floored at current+1, and decays toward its soft cap once past
// 90% of it. The cap itself is never exceeded.
func (e *Engine) AdvanceTick(current model.MetricSnapshot, phase model.Phase, tier model.Tier, tickFraction float64) model.MetricSnapshot {
	ranges, ok := dailyGrowth[phase]
	if !ok {
		ranges = dailyGrowth[model.PhasePlateau]
	}
	scale, ok := tierScale[tier]
	if !ok {
		scale = tierScale[model.TierAverage]
	}

	out := current
	cur := metricFields(&current)
	next := metricFields(&out)
	for i := 0; i < numMetrics; i++ {
		lo := 1 + (ranges[i].lo-1)*scale
		hi := 1 + (ranges[i].hi-1)*scale
		if lo < 1.001 {
			lo = 1.001
		}
		if hi < lo {
			hi = lo
		}

		g := Uniform(e.rand, lo, hi)
		tickMult := 1 + (g-1)*tickFraction

		val := int64(float64(*cur[i]) * tickMult)
		if val < *cur[i]+1 {
			val = *cur[i] + 1
		}

		limit := Cap(tier, i)
		soft := 0.9 * float64(limit)
		if float64(val) > soft {
			excess := float64(val) - soft
			decay := 1 - excess/(0.1*float64(limit))
			if decay < 0.5 {
				decay = 0.5
			}
			if decay > 1 {
				decay = 1
			}
			val = int64(soft + excess*decay)
			if val < *cur[i]+1 {
				val = *cur[i] + 1
			}
		}
		if val > limit {
			val = limit
		}
		*next[i] = val
	}
	return out
}
