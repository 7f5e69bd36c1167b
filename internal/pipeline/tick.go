package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"growthpulse/internal/finance"
	"growthpulse/internal/model"
	"growthpulse/internal/publish"
	"growthpulse/internal/sim"
	"growthpulse/internal/storage"
)

// Config holds runtime settings for the tick pipeline.
type Config struct {
	Platforms    []model.Platform
	ContentType  string
	TickFraction float64
	Now          func() time.Time
}

// Pipeline advances every tracked series of an owner by one tick: load the
// latest row (or seed), advance metrics, derive financials, append, notify.
type Pipeline struct {
	cfg       Config
	store     storage.SeriesStore
	publisher publish.StatusPublisher
	engine    *sim.Engine
	finance   *finance.Model
	rand      sim.Rand
	logger    *zap.Logger
}

func New(cfg Config, store storage.SeriesStore, publisher publish.StatusPublisher, engine *sim.Engine, financeModel *finance.Model, r sim.Rand, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = publish.NopPublisher{}
	}
	if len(cfg.Platforms) == 0 {
		cfg.Platforms = model.Platforms()
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "video"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Pipeline{
		cfg:       cfg,
		store:     store,
		publisher: publisher,
		engine:    engine,
		finance:   financeModel,
		rand:      r,
		logger:    logger,
	}
}

// RunTick advances each of the owner's platforms by one tick and returns the
// number of rows persisted. Per-platform failures are logged and skipped;
// the affected series is retried at the next tick.
func (p *Pipeline) RunTick(ctx context.Context, ownerID string) int {
	persisted := 0
	for _, platform := range p.cfg.Platforms {
		select {
		case <-ctx.Done():
			p.logger.Info("tick cancelled", zap.String("owner_id", ownerID))
			return persisted
		default:
		}

		if p.advancePlatform(ctx, ownerID, platform) {
			persisted++
		}
	}
	return persisted
}

func (p *Pipeline) advancePlatform(ctx context.Context, ownerID string, platform model.Platform) bool {
	logger := p.logger.With(zap.String("owner_id", ownerID), zap.String("platform", string(platform)))

	head, err := p.store.GetLatest(ctx, ownerID, platform)
	if err != nil {
		logger.Warn("load latest row failed, skipping platform until next tick", zap.Error(err))
		return false
	}

	if head != nil {
		if err := head.Row.Validate(); err != nil {
			logger.Warn("latest row is malformed, reseeding series", zap.Error(err))
			head = nil
		}
	}

	now := p.cfg.Now().UTC()

	if head == nil {
		return p.seedSeries(ctx, ownerID, platform, now, logger)
	}

	ageDays := now.Sub(head.FirstSeenAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}

	tier := sim.InferTier(head.Row.Metrics)
	phase := sim.ClassifyPhase(head.Row.Metrics.Views, ageDays)
	metrics := p.engine.AdvanceTick(head.Row.Metrics, phase, tier, p.cfg.TickFraction)
	financial := p.finance.Compute(metrics, platform, tier, ageDays)

	row := model.PersistedRow{
		OwnerID:     ownerID,
		Platform:    platform,
		ContentType: p.cfg.ContentType,
		Metrics:     metrics,
		Financial:   financial,
		CreatedAt:   now,
	}

	id, err := p.store.Append(ctx, row)
	if err != nil {
		logger.Warn("append row failed, skipping platform until next tick", zap.Error(err))
		return false
	}

	logger.Debug("series advanced",
		zap.Int64("row_id", id),
		zap.String("phase", string(phase)),
		zap.String("tier", string(tier)),
		zap.Int64("views", metrics.Views),
		zap.Float64("roi_percentage", financial.ROIPercentage),
	)

	p.notify(ctx, "metrics_tick", map[string]any{
		"owner_id":       ownerID,
		"platform":       platform,
		"phase":          phase,
		"tier":           tier,
		"views":          metrics.Views,
		"roi_percentage": financial.ROIPercentage,
	}, logger)

	return true
}

// seedSeries creates the first row of a series with zeroed financials. A
// freshly seeded series is not advanced in the same run.
func (p *Pipeline) seedSeries(ctx context.Context, ownerID string, platform model.Platform, now time.Time, logger *zap.Logger) bool {
	tier := sim.SampleTier(p.rand)
	metrics := p.engine.SeedInitial(tier, platform)

	row := model.PersistedRow{
		OwnerID:     ownerID,
		Platform:    platform,
		ContentType: p.cfg.ContentType,
		Metrics:     metrics,
		CreatedAt:   now,
	}

	id, err := p.store.Append(ctx, row)
	if err != nil {
		logger.Warn("seed row failed, skipping platform until next tick", zap.Error(err))
		return false
	}

	logger.Info("series seeded",
		zap.Int64("row_id", id),
		zap.String("tier", string(tier)),
		zap.Int64("views", metrics.Views),
	)

	p.notify(ctx, "series_seeded", map[string]any{
		"owner_id": ownerID,
		"platform": platform,
		"tier":     tier,
		"views":    metrics.Views,
	}, logger)

	return true
}

func (p *Pipeline) notify(ctx context.Context, event string, payload map[string]any, logger *zap.Logger) {
	if err := p.publisher.Publish(ctx, event, payload); err != nil {
		logger.Debug("status publish failed", zap.String("event", event), zap.Error(err))
	}
}
