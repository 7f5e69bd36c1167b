package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"growthpulse/internal/config"
	"growthpulse/internal/finance"
	"growthpulse/internal/model"
	"growthpulse/internal/pipeline"
	"growthpulse/internal/publish"
	"growthpulse/internal/scheduler"
	"growthpulse/internal/sim"
	"growthpulse/internal/storage"
	"growthpulse/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "simulator",
		Short:        "Content growth simulator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scheduled tick pipeline until interrupted",
		RunE:  runScheduler,
	}
	addCommonFlags(runCmd)
	runCmd.Flags().Duration("interval", 10*time.Minute, "tick interval")
	runCmd.Flags().Duration("misfire-grace", 5*time.Minute, "how late a fire may be and still execute")
	runCmd.Flags().String("scheduler-backend", "cron", "scheduler backend (cron, loop)")
	root.AddCommand(runCmd)

	tickCmd := &cobra.Command{
		Use:   "tick",
		Short: "Run a single tick and exit",
		RunE:  runSingleTick,
	}
	addCommonFlags(tickCmd)
	root.AddCommand(tickCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("pg-dsn", "", "Postgres DSN (empty selects the JSONL store)")
	cmd.Flags().String("jsonl-out", "./data/snapshots.jsonl", "JSONL store path")
	cmd.Flags().String("redis-addr", "", "Redis address for status events (empty disables)")
	cmd.Flags().String("redis-channel", "simulator-status", "Redis pub/sub channel")
	cmd.Flags().String("owner", "", "owner to advance (empty resolves the focus owner)")
	cmd.Flags().String("fallback-owner", "demo-owner", "owner used when resolution fails")
	cmd.Flags().StringSlice("platforms", []string{"facebook", "instagram", "youtube"}, "platforms to track")
	cmd.Flags().String("content-type", "video", "content type recorded on persisted rows")
	cmd.Flags().Int64("rand-seed", 0, "random seed (0 seeds from the clock)")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func runScheduler(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipe, resolver, cleanup, err := buildPipeline(ctx, cfg, logger)
	defer cleanup()
	if err != nil {
		return err
	}

	job := func(ctx context.Context) {
		owner, err := resolver.ResolveFocusOwner(ctx)
		if err != nil || owner == "" {
			logger.Warn("no owner to advance", zap.Error(err))
			return
		}
		n := pipe.RunTick(ctx, owner)
		logger.Info("tick complete", zap.String("owner_id", owner), zap.Int("rows_persisted", n))
	}

	sched := scheduler.New(scheduler.Config{
		Interval:     cfg.Interval,
		MisfireGrace: cfg.MisfireGrace,
		Backend:      cfg.SchedulerBackend,
	}, job, logger)

	if err := sched.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	sched.Stop()
	return nil
}

func runSingleTick(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipe, resolver, cleanup, err := buildPipeline(ctx, cfg, logger)
	defer cleanup()
	if err != nil {
		return err
	}

	owner, err := resolver.ResolveFocusOwner(ctx)
	if err != nil {
		return fmt.Errorf("resolve owner: %w", err)
	}
	if owner == "" {
		return fmt.Errorf("no owner to advance")
	}

	n := pipe.RunTick(ctx, owner)
	logger.Info("tick complete", zap.String("owner_id", owner), zap.Int("rows_persisted", n))
	return nil
}

func buildPipeline(ctx context.Context, cfg config.Config, logger *zap.Logger) (*pipeline.Pipeline, pipeline.OwnerResolver, func(), error) {
	cleanups := make([]func(), 0, 2)
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	platforms := make([]model.Platform, 0, len(cfg.Platforms))
	for _, raw := range cfg.Platforms {
		p, err := model.ParsePlatform(raw)
		if err != nil {
			return nil, nil, cleanup, err
		}
		platforms = append(platforms, p)
	}

	var store storage.SeriesStore
	var resolver pipeline.OwnerResolver
	if cfg.PGDSN != "" {
		pgStore, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		cleanups = append(cleanups, pgStore.Close)
		store = pgStore
		resolver = pgStore
	} else {
		store = storage.NewJSONLStore(cfg.JSONLOut)
	}

	if cfg.Owner != "" {
		resolver = pipeline.StaticResolver(cfg.Owner)
	} else {
		resolver = pipeline.FallbackResolver{
			Primary:  resolver,
			Fallback: cfg.FallbackOwner,
			Logger:   logger,
		}
	}

	var publisher publish.StatusPublisher = publish.NopPublisher{}
	if cfg.RedisAddr != "" {
		redisPub, err := publish.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisChannel, logger)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("connect redis: %w", err)
		}
		cleanups = append(cleanups, func() { redisPub.Close() })
		publisher = redisPub
	}

	seed := cfg.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	engine := sim.NewEngine(rng)
	financeModel := finance.NewModel(rng, logger)

	pipe := pipeline.New(pipeline.Config{
		Platforms:    platforms,
		ContentType:  cfg.ContentType,
		TickFraction: cfg.Interval.Hours() / 24,
	}, store, publisher, engine, financeModel, rng, logger)

	logger.Info("pipeline ready",
		zap.Int("platforms", len(platforms)),
		zap.Bool("postgres", cfg.PGDSN != ""),
		zap.Bool("redis", cfg.RedisAddr != ""),
		zap.Duration("interval", cfg.Interval),
	)

	return pipe, resolver, cleanup, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
