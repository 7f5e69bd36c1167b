package model

// MetricSnapshot holds cumulative engagement counts for one series at one
// instant. All fields are non-negative and non-decreasing across rows.
type MetricSnapshot struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
	Clicks   int64 `json:"clicks"`
	Saves    int64 `json:"saves"`
}

// EngagementRatio is (likes+comments+shares) over views, guarded against a
// zero view count.
func (m MetricSnapshot) EngagementRatio() float64 {
	views := m.Views
	if views < 1 {
		views = 1
	}
	return float64(m.Likes+m.Comments+m.Shares) / float64(views)
}

// FinancialSnapshot holds the derived spend/revenue figures for one
// MetricSnapshot. Money fields are clamped to MoneyCeiling.
type FinancialSnapshot struct {
	AdSpend           float64 `json:"ad_spend"`
	Revenue           float64 `json:"revenue"`
	CostPerClick      float64 `json:"cost_per_click"`
	CostPerImpression float64 `json:"cost_per_impression"`
	ROIPercentage     float64 `json:"roi_percentage"`
	ROASRatio         float64 `json:"roas_ratio"`
}

// MoneyCeiling is the storage ceiling for spend and revenue, matching a
// NUMERIC(10,2) column.
const MoneyCeiling = 99_999_999.99
