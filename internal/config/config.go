package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Hexun struct {
	UserAgent string `json:"user_agent"`
	// MaxConcurrency caps simultaneous outbound quote requests.
	// 0 keeps the unthrottled one-request-per-security behavior.
	MaxConcurrency        int `json:"max_concurrency"`
	MaxRequestsPerMinute  int `json:"max_requests_per_minute"`
	MinRequestIntervalSec int `json:"min_request_interval_sec"`
	Burst                 int `json:"burst"`
	CacheTTLSeconds       int `json:"cache_ttl_sec"`
	CacheMaxItems         int `json:"cache_max_items"`
}

type Config struct {
	Server    Server `json:"server"`
	Hexun     Hexun  `json:"hexun"`
	Watchlist string `json:"watchlist"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 10},
		Hexun: Hexun{
			UserAgent:       "quotewatch/1.0",
			MaxConcurrency:  0,
			CacheTTLSeconds: 3,
			CacheMaxItems:   10000,
		},
		Watchlist: "watchlist.json",
	}
}

// Load reads JSON config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist = v
	}
	if v := os.Getenv("HEXUN_USER_AGENT"); v != "" {
		cfg.Hexun.UserAgent = v
	}
	setIntEnv("REQUEST_TIMEOUT_SEC", func(x int) { cfg.Server.RequestTimeoutSec = x })
	setIntEnv("HEXUN_MAX_CONCURRENCY", func(x int) { cfg.Hexun.MaxConcurrency = x })
	setIntEnv("HEXUN_MAX_RPM", func(x int) { cfg.Hexun.MaxRequestsPerMinute = x })
	setIntEnv("HEXUN_MIN_INTERVAL_SEC", func(x int) { cfg.Hexun.MinRequestIntervalSec = x })
	setIntEnv("HEXUN_BURST", func(x int) { cfg.Hexun.Burst = x })
	setIntEnv("HEXUN_CACHE_TTL_SEC", func(x int) { cfg.Hexun.CacheTTLSeconds = x })
	setIntEnv("HEXUN_CACHE_MAX_ITEMS", func(x int) { cfg.Hexun.CacheMaxItems = x })
}

func setIntEnv(key string, set func(int)) {
	if v := os.Getenv(key); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x >= 0 {
			set(x)
		}
	}
}
