package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	LogLevel         string
	DatabaseURL      string
	AutoMigrate      bool
	RedisURL         string
	NatsURL          string
	ChannelBase      string
	JWTSecret        string
	AllowOrigins     string
	ActivityCacheTTL time.Duration
	CronInterval     time.Duration
	RateLimitMax     int
	RateLimitWindow  time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// ActivitySubject returns the NATS subject activity events are published on,
// or an empty string when no channel base is configured.
func (c Config) ActivitySubject() string {
	if c.ChannelBase == "" {
		return ""
	}
	return strings.ReplaceAll(c.ChannelBase, ":", ".") + ".activity"
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ANIMEAUX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Animeaux API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("channel.base", "animeaux")
	v.SetDefault("cors.allow_origins", "*")
	v.SetDefault("activity.cache_ttl", "30s")
	v.SetDefault("cron.interval", "1h")
	v.SetDefault("rate_limit.max", 60)
	v.SetDefault("rate_limit.window", "1m")

	cacheTTL, err := parseDuration(v, "activity.cache_ttl")
	if err != nil {
		return Config{}, err
	}
	cronInterval, err := parseDuration(v, "cron.interval")
	if err != nil {
		return Config{}, err
	}
	rateWindow, err := parseDuration(v, "rate_limit.window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		LogLevel:         strings.ToLower(v.GetString("log.level")),
		DatabaseURL:      v.GetString("database.url"),
		AutoMigrate:      v.GetBool("database.auto_migrate"),
		RedisURL:         v.GetString("redis.url"),
		NatsURL:          v.GetString("nats.url"),
		ChannelBase:      v.GetString("channel.base"),
		JWTSecret:        v.GetString("jwt.secret"),
		AllowOrigins:     v.GetString("cors.allow_origins"),
		ActivityCacheTTL: cacheTTL,
		CronInterval:     cronInterval,
		RateLimitMax:     v.GetInt("rate_limit.max"),
		RateLimitWindow:  rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.CronInterval <= 0 {
		return Config{}, fmt.Errorf("cron interval must be positive")
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 60
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	duration, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return duration, nil
}
