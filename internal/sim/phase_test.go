package sim

import (
	"testing"

	"growthpulse/internal/model"
)

func TestClassifyPhaseYoungSeries(t *testing.T) {
	// anything under seven days is launch regardless of views
	if got := ClassifyPhase(5_000_000, 2); got != model.PhaseLaunch {
		t.Fatalf("phase mismatch: %s != %s", got, model.PhaseLaunch)
	}
	if got := ClassifyPhase(0, 6.9); got != model.PhaseLaunch {
		t.Fatalf("phase mismatch: %s != %s", got, model.PhaseLaunch)
	}
}

func TestClassifyPhaseViewThresholds(t *testing.T) {
	cases := []struct {
		views int64
		want  model.Phase
	}{
		{0, model.PhaseLaunch},
		{999, model.PhaseLaunch},
		{1_000, model.PhaseGrowth},
		{9_999, model.PhaseGrowth},
		{10_000, model.PhasePlateau},
		{49_999, model.PhasePlateau},
		{50_000, model.PhaseDecay},
		{5_000_000, model.PhaseDecay},
	}
	for _, c := range cases {
		if got := ClassifyPhase(c.views, 30); got != c.want {
			t.Fatalf("views %d: phase mismatch: %s != %s", c.views, got, c.want)
		}
	}
}
