package finance

import (
	"math/rand"
	"testing"

	"growthpulse/internal/model"
)

func TestComputeROIBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	m := NewModel(rng, nil)

	tiers := []model.Tier{model.TierPoor, model.TierAverage, model.TierGood, model.TierExcellent, model.TierViral}
	for _, tier := range tiers {
		for i := 0; i < 500; i++ {
			metrics := model.MetricSnapshot{
				Views:  rng.Int63n(1_000_000) + 1,
				Clicks: rng.Int63n(10_000),
			}
			fin := m.Compute(metrics, model.PlatformInstagram, tier, float64(rng.Intn(400)))

			if fin.ROIPercentage < -100 || fin.ROIPercentage > 300 {
				t.Fatalf("%s: roi_percentage %f out of [-100, 300]", tier, fin.ROIPercentage)
			}
			if fin.AdSpend > model.MoneyCeiling || fin.Revenue > model.MoneyCeiling {
				t.Fatalf("%s: money field above ceiling: spend=%f revenue=%f", tier, fin.AdSpend, fin.Revenue)
			}
			if fin.AdSpend < 0 || fin.Revenue < 0 {
				t.Fatalf("%s: negative money field: spend=%f revenue=%f", tier, fin.AdSpend, fin.Revenue)
			}
		}
	}
}

func TestComputeZeroSpend(t *testing.T) {
	m := NewModel(rand.New(rand.NewSource(1)), nil)
	fin := m.Compute(model.MetricSnapshot{}, model.PlatformFacebook, model.TierAverage, 1)
	if fin.AdSpend != 0 {
		t.Fatalf("expected zero spend, got %f", fin.AdSpend)
	}
	if fin.ROIPercentage != 0 || fin.ROASRatio != 0 {
		t.Fatalf("roi/roas must be zero on zero spend: roi=%f roas=%f", fin.ROIPercentage, fin.ROASRatio)
	}
}

func TestComputeDeterministic(t *testing.T) {
	metrics := model.MetricSnapshot{Views: 1003, Likes: 81, Comments: 21, Shares: 16, Clicks: 61, Saves: 11}

	a := NewModel(rand.New(rand.NewSource(5)), nil).Compute(metrics, model.PlatformYouTube, model.TierGood, 10)
	b := NewModel(rand.New(rand.NewSource(5)), nil).Compute(metrics, model.PlatformYouTube, model.TierGood, 10)
	if a != b {
		t.Fatalf("same seed produced different financials: %+v != %+v", a, b)
	}
}

func TestComputeStorageCeiling(t *testing.T) {
	m := NewModel(rand.New(rand.NewSource(2)), nil)
	metrics := model.MetricSnapshot{Views: 50_000_000_000_000, Clicks: 1_000_000_000}
	fin := m.Compute(metrics, model.PlatformYouTube, model.TierViral, 1)
	if fin.AdSpend != model.MoneyCeiling {
		t.Fatalf("spend not clamped to ceiling: %f", fin.AdSpend)
	}
	if fin.Revenue > model.MoneyCeiling {
		t.Fatalf("revenue not clamped to ceiling: %f", fin.Revenue)
	}
	if fin.ROIPercentage < -100 || fin.ROIPercentage > 300 {
		t.Fatalf("roi_percentage %f out of [-100, 300]", fin.ROIPercentage)
	}
}

func TestComputeConversionClamp(t *testing.T) {
	// near-zero clicks with big revenue potential: implied conversion rate
	// above 10% must clamp revenue to clicks * 0.10 * aov
	m := NewModel(rand.New(rand.NewSource(9)), nil)
	metrics := model.MetricSnapshot{Views: 2_000_000, Clicks: 1}
	fin := m.Compute(metrics, model.PlatformFacebook, model.TierViral, 1)

	// max aov draw for facebook is 85 * 1.15
	maxRevenue := 1 * 0.10 * 85 * 1.15
	if fin.Revenue > maxRevenue+0.01 {
		t.Fatalf("revenue %f above conversion clamp %f", fin.Revenue, maxRevenue)
	}
}

func TestComputeAgePenalty(t *testing.T) {
	// identical draws, different ages: older series must target lower ROI
	metrics := model.MetricSnapshot{Views: 10_000, Clicks: 300}
	young := NewModel(rand.New(rand.NewSource(21)), nil).Compute(metrics, model.PlatformYouTube, model.TierGood, 0)
	old := NewModel(rand.New(rand.NewSource(21)), nil).Compute(metrics, model.PlatformYouTube, model.TierGood, 90)
	if old.ROIPercentage >= young.ROIPercentage {
		t.Fatalf("age penalty missing: old roi %f >= young roi %f", old.ROIPercentage, young.ROIPercentage)
	}
}

func TestPlatformProfileFallback(t *testing.T) {
	if got := PlatformProfile("tiktok"); got != defaultProfile {
		t.Fatalf("unknown platform should use default profile, got %+v", got)
	}
}
