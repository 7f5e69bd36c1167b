package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	PGDSN            string
	JSONLOut         string
	RedisAddr        string
	RedisChannel     string
	Owner            string
	FallbackOwner    string
	Platforms        []string
	ContentType      string
	Interval         time.Duration
	MisfireGrace     time.Duration
	SchedulerBackend string
	RandSeed         int64
	LogLevel         string
}

// Load merges config file, SIMULATOR_* environment variables, and flags.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SIMULATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("jsonl-out", "./data/snapshots.jsonl")
	v.SetDefault("redis-channel", "simulator-status")
	v.SetDefault("fallback-owner", "demo-owner")
	v.SetDefault("platforms", []string{"facebook", "instagram", "youtube"})
	v.SetDefault("content-type", "video")
	v.SetDefault("interval", 10*time.Minute)
	v.SetDefault("misfire-grace", 5*time.Minute)
	v.SetDefault("scheduler-backend", "cron")
	v.SetDefault("rand-seed", int64(0))
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		PGDSN:            v.GetString("pg-dsn"),
		JSONLOut:         v.GetString("jsonl-out"),
		RedisAddr:        v.GetString("redis-addr"),
		RedisChannel:     v.GetString("redis-channel"),
		Owner:            v.GetString("owner"),
		FallbackOwner:    v.GetString("fallback-owner"),
		Platforms:        getStringSlice(v, "platforms"),
		ContentType:      v.GetString("content-type"),
		Interval:         v.GetDuration("interval"),
		MisfireGrace:     v.GetDuration("misfire-grace"),
		SchedulerBackend: v.GetString("scheduler-backend"),
		RandSeed:         v.GetInt64("rand-seed"),
		LogLevel:         v.GetString("log-level"),
	}

	return cfg, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
