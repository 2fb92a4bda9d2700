package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings plus the trading universe loaded from YAML.
type Config struct {
	Engine   EngineConfig
	Oracle   OracleConfig
	Universe Universe
}

type EngineConfig struct {
	Buffer int // command channel capacity
}

type OracleConfig struct {
	// FeedURL, when set, points the oracle at a live quote endpoint instead
	// of the static prices in the universe file.
	FeedURL         string
	FallbackPrice   float64
	RefreshInterval time.Duration
}

// Universe describes the instruments, baskets, prices and seed orders the
// demo binary works with.
type Universe struct {
	Instruments []InstrumentSpec   `yaml:"instruments"`
	Baskets     []BasketSpec       `yaml:"baskets"`
	Prices      map[string]float64 `yaml:"prices"`
	Orders      []OrderSpec        `yaml:"orders"`
}

type InstrumentSpec struct {
	ID     string `yaml:"id"`
	Symbol string `yaml:"symbol"`
}

type BasketSpec struct {
	ID         string          `yaml:"id"`
	Symbol     string          `yaml:"symbol"`
	Components []ComponentSpec `yaml:"components"`
}

type ComponentSpec struct {
	ID     string  `yaml:"id"`
	Weight float64 `yaml:"weight"`
}

type OrderSpec struct {
	ID         string  `yaml:"id"` // generated when empty
	Trader     string  `yaml:"trader"`
	Side       string  `yaml:"side"`
	Instrument string  `yaml:"instrument"`
	Quantity   float64 `yaml:"quantity"`
	Price      float64 `yaml:"price"`  // ignored when market is true
	Market     bool    `yaml:"market"` // no limit price; engine prices from the oracle
}

// Load reads .env (if present), environment overrides, and the universe file
// named by TRADINGCORE_UNIVERSE.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore error if .env doesn't exist

	cfg := &Config{
		Engine: EngineConfig{
			Buffer: getEnvInt("TRADINGCORE_BUFFER_SIZE", 1024),
		},
		Oracle: OracleConfig{
			FeedURL:         getEnvString("TRADINGCORE_FEED_URL", ""),
			FallbackPrice:   getEnvFloat("TRADINGCORE_FALLBACK_PRICE", 10),
			RefreshInterval: getEnvDuration("TRADINGCORE_REFRESH_INTERVAL", 30*time.Second),
		},
	}

	path := getEnvString("TRADINGCORE_UNIVERSE", "universe.yaml")
	universe, err := loadUniverse(path)
	if err != nil {
		return nil, err
	}
	cfg.Universe = *universe

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadUniverse(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	var u Universe
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parse universe file: %w", err)
	}
	return &u, nil
}

// Validate checks settings and universe cross-references.
func (c *Config) Validate() error {
	if c.Engine.Buffer <= 0 {
		return fmt.Errorf("invalid buffer size: %d", c.Engine.Buffer)
	}
	if c.Oracle.FallbackPrice <= 0 {
		return fmt.Errorf("invalid fallback price: %v", c.Oracle.FallbackPrice)
	}
	if c.Oracle.RefreshInterval <= 0 {
		return fmt.Errorf("invalid refresh interval: %v", c.Oracle.RefreshInterval)
	}

	known := make(map[string]bool, len(c.Universe.Instruments)+len(c.Universe.Baskets))
	for _, in := range c.Universe.Instruments {
		if in.ID == "" {
			return fmt.Errorf("instrument with empty id")
		}
		known[in.ID] = true
	}
	for _, b := range c.Universe.Baskets {
		if b.ID == "" {
			return fmt.Errorf("basket with empty id")
		}
		for _, comp := range b.Components {
			if !known[comp.ID] {
				return fmt.Errorf("basket %s references unknown instrument %s", b.ID, comp.ID)
			}
		}
		known[b.ID] = true
	}
	for _, o := range c.Universe.Orders {
		if !known[o.Instrument] {
			return fmt.Errorf("order for unknown instrument %s", o.Instrument)
		}
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
