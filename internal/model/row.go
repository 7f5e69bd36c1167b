package model

import (
	"fmt"
	"time"
)

// PersistedRow is one immutable point of a series: identity, cumulative
// metrics, derived financials, and the append timestamp. The most recent row
// per (owner, platform) is the series' current state.
type PersistedRow struct {
	OwnerID     string            `json:"owner_id"`
	Platform    Platform          `json:"platform"`
	ContentType string            `json:"content_type"`
	Metrics     MetricSnapshot    `json:"metrics"`
	Financial   FinancialSnapshot `json:"financial"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Validate rejects rows that cannot be a legal series state. A failing row
// is treated as missing and the series is reseeded.
func (r PersistedRow) Validate() error {
	if r.OwnerID == "" {
		return fmt.Errorf("row has empty owner_id")
	}
	if _, err := ParsePlatform(string(r.Platform)); err != nil {
		return err
	}
	m := r.Metrics
	for _, v := range []struct {
		name  string
		value int64
	}{
		{"views", m.Views},
		{"likes", m.Likes},
		{"comments", m.Comments},
		{"shares", m.Shares},
		{"clicks", m.Clicks},
		{"saves", m.Saves},
	} {
		if v.value < 0 {
			return fmt.Errorf("metric %s is negative: %d", v.name, v.value)
		}
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("row has zero created_at")
	}
	return nil
}
