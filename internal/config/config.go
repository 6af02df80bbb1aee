package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the activities service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	LogLevel        string
	SeedFile        string
	StaticDir       string
	RedisURL        string
	EventsChannel   string
	NATSURL         string
	RateLimitMax    int
	RateLimitWindow time.Duration
	ShutdownTimeout time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// EventsEnabled reports whether roster events leave the process.
func (c Config) EventsEnabled() bool {
	return c.EventsChannel != "" && (c.RedisURL != "" || c.NATSURL != "")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ACTIVITIES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Mergington Activities API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8000")
	v.SetDefault("log.level", "info")
	v.SetDefault("static.dir", "./static")
	v.SetDefault("events.channel", "activities:roster")
	v.SetDefault("ratelimit.max", 30)
	v.SetDefault("ratelimit.window", "1m")
	v.SetDefault("shutdown.timeout", "5s")

	window, err := parseDuration(v.GetString("ratelimit.window"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	shutdown, err := parseDuration(v.GetString("shutdown.timeout"), 5*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		SeedFile:        strings.TrimSpace(v.GetString("seed.file")),
		StaticDir:       v.GetString("static.dir"),
		RedisURL:        strings.TrimSpace(v.GetString("redis.url")),
		EventsChannel:   strings.TrimSpace(v.GetString("events.channel")),
		NATSURL:         strings.TrimSpace(v.GetString("nats.url")),
		RateLimitMax:    v.GetInt("ratelimit.max"),
		RateLimitWindow: window,
		ShutdownTimeout: shutdown,
	}

	if cfg.AppPort == "" {
		return Config{}, fmt.Errorf("app port must be provided")
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 30
	}

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return fallback, nil
	}

	return parsed, nil
}
