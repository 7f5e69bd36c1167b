package model

import (
	"testing"
	"time"
)

func validRow() PersistedRow {
	return PersistedRow{
		OwnerID:     "owner-1",
		Platform:    PlatformYouTube,
		ContentType: "video",
		Metrics:     MetricSnapshot{Views: 100, Likes: 5, Comments: 1, Shares: 1, Clicks: 2, Saves: 1},
		CreatedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateAcceptsLegalRow(t *testing.T) {
	if err := validRow().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsNegativeMetric(t *testing.T) {
	row := validRow()
	row.Metrics.Comments = -1
	if err := row.Validate(); err == nil {
		t.Fatalf("expected error for negative metric")
	}
}

func TestValidateRejectsUnknownPlatform(t *testing.T) {
	row := validRow()
	row.Platform = "myspace"
	if err := row.Validate(); err == nil {
		t.Fatalf("expected error for unknown platform")
	}
}

func TestValidateRejectsMissingIdentity(t *testing.T) {
	row := validRow()
	row.OwnerID = ""
	if err := row.Validate(); err == nil {
		t.Fatalf("expected error for empty owner_id")
	}

	row = validRow()
	row.CreatedAt = time.Time{}
	if err := row.Validate(); err == nil {
		t.Fatalf("expected error for zero created_at")
	}
}

func TestEngagementRatio(t *testing.T) {
	m := MetricSnapshot{Views: 1000, Likes: 80, Comments: 20, Shares: 15}
	if got := m.EngagementRatio(); got != 0.115 {
		t.Fatalf("ratio mismatch: %f != 0.115", got)
	}
}
