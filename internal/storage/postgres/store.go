package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"growthpulse/internal/model"
	"growthpulse/internal/storage"
)

// Store provides Postgres persistence for metric snapshots. The table is
// append-only; rows are never updated or deleted here.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Append inserts one snapshot row and returns its id.
func (s *Store) Append(ctx context.Context, row model.PersistedRow) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO content_metric_snapshots (
			owner_id, platform, content_type,
			views, likes, comments, shares, clicks, saves,
			ad_spend, revenue, cost_per_click, cost_per_impression,
			roi_percentage, roas_ratio, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id
	`,
		row.OwnerID,
		string(row.Platform),
		row.ContentType,
		row.Metrics.Views,
		row.Metrics.Likes,
		row.Metrics.Comments,
		row.Metrics.Shares,
		row.Metrics.Clicks,
		row.Metrics.Saves,
		row.Financial.AdSpend,
		row.Financial.Revenue,
		row.Financial.CostPerClick,
		row.Financial.CostPerImpression,
		row.Financial.ROIPercentage,
		row.Financial.ROASRatio,
		row.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, storage.Transient("append", err)
	}
	return id, nil
}

// GetLatest returns the newest row for a series plus the series' first-seen
// timestamp, or nil when the series has no rows.
func (s *Store) GetLatest(ctx context.Context, ownerID string, platform model.Platform) (*storage.SeriesHead, error) {
	var head storage.SeriesHead
	var platformName string
	row := &head.Row
	err := s.pool.QueryRow(ctx, `
		SELECT owner_id, platform, content_type,
		       views, likes, comments, shares, clicks, saves,
		       ad_spend, revenue, cost_per_click, cost_per_impression,
		       roi_percentage, roas_ratio, created_at,
		       (SELECT min(created_at) FROM content_metric_snapshots first
		         WHERE first.owner_id = $1 AND first.platform = $2)
		FROM content_metric_snapshots
		WHERE owner_id = $1 AND platform = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, ownerID, string(platform)).Scan(
		&row.OwnerID,
		&platformName,
		&row.ContentType,
		&row.Metrics.Views,
		&row.Metrics.Likes,
		&row.Metrics.Comments,
		&row.Metrics.Shares,
		&row.Metrics.Clicks,
		&row.Metrics.Saves,
		&row.Financial.AdSpend,
		&row.Financial.Revenue,
		&row.Financial.CostPerClick,
		&row.Financial.CostPerImpression,
		&row.Financial.ROIPercentage,
		&row.Financial.ROASRatio,
		&row.CreatedAt,
		&head.FirstSeenAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storage.Transient("get_latest", err)
	}
	row.Platform = model.Platform(platformName)
	return &head, nil
}

// ResolveFocusOwner returns the most recently active owner in the table, or
// empty when the table is empty. Used when no explicit owner is configured.
func (s *Store) ResolveFocusOwner(ctx context.Context) (string, error) {
	var owner string
	row := s.pool.QueryRow(ctx, `
		SELECT owner_id FROM content_metric_snapshots
		ORDER BY created_at DESC LIMIT 1
	`)
	if err := row.Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", storage.Transient("resolve_focus_owner", err)
	}
	return owner, nil
}
