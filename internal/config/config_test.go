package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validUniverse = `
instruments:
  - id: "1"
    symbol: AAPL
  - id: "2"
    symbol: GOOG
baskets:
  - id: "3"
    symbol: TECH
    components:
      - id: "1"
        weight: 0.5
      - id: "2"
        weight: 0.5
prices:
  "1": 150.0
orders:
  - trader: trader-1
    side: BUY
    instrument: "1"
    quantity: 100
    price: 150.0
`

func writeUniverse(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "universe.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("TRADINGCORE_UNIVERSE", writeUniverse(t, validUniverse))
	t.Setenv("TRADINGCORE_BUFFER_SIZE", "64")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Engine.Buffer != 64 {
		t.Fatalf("expected buffer override 64, got %d", cfg.Engine.Buffer)
	}
	if cfg.Oracle.FallbackPrice != 10 {
		t.Fatalf("expected default fallback 10, got %v", cfg.Oracle.FallbackPrice)
	}
	if len(cfg.Universe.Instruments) != 2 || len(cfg.Universe.Baskets) != 1 {
		t.Fatalf("universe not parsed: %+v", cfg.Universe)
	}
	if cfg.Universe.Baskets[0].Components[0].Weight != 0.5 {
		t.Fatalf("component weight not parsed")
	}
	if len(cfg.Universe.Orders) != 1 || cfg.Universe.Orders[0].Side != "BUY" {
		t.Fatalf("orders not parsed: %+v", cfg.Universe.Orders)
	}
}

func TestLoadRejectsUnknownComponent(t *testing.T) {
	bad := `
instruments:
  - id: "1"
    symbol: AAPL
baskets:
  - id: "3"
    symbol: TECH
    components:
      - id: "404"
        weight: 0.5
`
	t.Setenv("TRADINGCORE_UNIVERSE", writeUniverse(t, bad))

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error for unknown component")
	}
}

func TestLoadRejectsBadBuffer(t *testing.T) {
	t.Setenv("TRADINGCORE_UNIVERSE", writeUniverse(t, validUniverse))
	t.Setenv("TRADINGCORE_BUFFER_SIZE", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error for negative buffer")
	}
}

func TestLoadMissingUniverseFile(t *testing.T) {
	t.Setenv("TRADINGCORE_UNIVERSE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing universe file")
	}
}
