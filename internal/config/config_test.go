package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/detector"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Server.Port != 20430 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Detectors.ZScoreThreshold != 1.96 {
		t.Fatalf("zscore threshold = %v", cfg.Detectors.ZScoreThreshold)
	}
	if cfg.Data.UsageRateCSV == "" {
		t.Fatalf("usage rate csv path empty")
	}
}

func TestDetectorConfig_ZeroValuesKeepDefaults(t *testing.T) {
	t.Parallel()

	cfg := &AppConfig{}
	det := cfg.DetectorConfig()

	defaults := detector.DefaultConfig()
	if det.LowPriceThreshold != defaults.LowPriceThreshold {
		t.Fatalf("low price threshold = %v", det.LowPriceThreshold)
	}
	if det.ZScoreThreshold != defaults.ZScoreThreshold {
		t.Fatalf("zscore threshold = %v", det.ZScoreThreshold)
	}
	if det.RequirementScope != defaults.RequirementScope {
		t.Fatalf("requirement scope = %q", det.RequirementScope)
	}
	if len(det.OrdinaryTradeTypes) != len(defaults.OrdinaryTradeTypes) {
		t.Fatalf("trade types = %v", det.OrdinaryTradeTypes)
	}
}

func TestDetectorConfig_HighRateMinRatePassesThrough(t *testing.T) {
	t.Parallel()

	// 0 은 느슨한 변형을 의미하므로 기본값으로 되돌리지 않음
	cfg := &AppConfig{}
	cfg.Detectors.HighRateMinRate = 0
	if got := cfg.DetectorConfig().HighRateMinRate; got != 0 {
		t.Fatalf("high rate min = %v, want 0", got)
	}

	cfg.Detectors.HighRateMinRate = 13
	if got := cfg.DetectorConfig().HighRateMinRate; got != 13 {
		t.Fatalf("high rate min = %v, want 13", got)
	}
}

func TestConfig_TOMLRoundTrip(t *testing.T) {
	t.Parallel()

	src := `
[server]
port = 9999
dev_mode = true

[detectors]
low_price_threshold = 3.5
f_rate_prefix = true
requirement_scope = "spec"
ordinary_trade_types = ["11"]
`
	cfg := DefaultConfig()
	if err := toml.Unmarshal([]byte(src), cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if cfg.Server.Port != 9999 || !cfg.Server.DevMode {
		t.Fatalf("server = %+v", cfg.Server)
	}
	det := cfg.DetectorConfig()
	if det.LowPriceThreshold != 3.5 {
		t.Fatalf("low price = %v", det.LowPriceThreshold)
	}
	if !det.FRatePrefix || det.RequirementScope != detector.RequirementScopeSpec {
		t.Fatalf("variants = %+v", det)
	}
	if len(det.OrdinaryTradeTypes) != 1 || det.OrdinaryTradeTypes[0] != "11" {
		t.Fatalf("trade types = %v", det.OrdinaryTradeTypes)
	}
}
