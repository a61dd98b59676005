package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type CoinGecko struct {
	BaseURL         string `json:"base_url"`
	APIKey          string `json:"api_key"`
	MaxRetries      int    `json:"max_retries"`
	BaseDelayMs     int    `json:"base_delay_ms"`
	ShortTTLSeconds int    `json:"short_ttl_sec"`
	LongTTLSeconds  int    `json:"long_ttl_sec"`
	// Coalesce enables at-most-one-concurrent-fetch-per-key.
	Coalesce bool `json:"coalesce"`
	// BatchDelayMs is the fixed pause between paced batch calls.
	BatchDelayMs int `json:"batch_delay_ms"`
}

type Config struct {
	Server    Server    `json:"server"`
	CoinGecko CoinGecko `json:"coingecko"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 15},
		CoinGecko: CoinGecko{
			BaseURL:         "https://api.coingecko.com/api/v3",
			MaxRetries:      3,
			BaseDelayMs:     1000,
			ShortTTLSeconds: 90,
			LongTTLSeconds:  300,
			BatchDelayMs:    1500,
		},
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields.
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
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.CoinGecko.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.CoinGecko.APIKey = v
	}
	if v := os.Getenv("COINGECKO_MAX_RETRIES"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.CoinGecko.MaxRetries = x
		}
	}
	if v := os.Getenv("COINGECKO_BASE_DELAY_MS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.CoinGecko.BaseDelayMs = x
		}
	}
	if v := os.Getenv("COINGECKO_SHORT_TTL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.CoinGecko.ShortTTLSeconds = x
		}
	}
	if v := os.Getenv("COINGECKO_LONG_TTL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.CoinGecko.LongTTLSeconds = x
		}
	}
	if v := os.Getenv("COINGECKO_COALESCE"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y":
			cfg.CoinGecko.Coalesce = true
		case "0", "false", "no", "n":
			cfg.CoinGecko.Coalesce = false
		}
	}
	if v := os.Getenv("COINGECKO_BATCH_DELAY_MS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.CoinGecko.BatchDelayMs = x
		}
	}
}
