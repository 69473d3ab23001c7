package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/detector"
)

// AppConfig 애플리케이션 설정
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Detectors DetectorsConfig `toml:"detectors"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 데이터 설정
type DataConfig struct {
	// UsageRateCSV 용도세율 HSK 참조 목록 경로
	UsageRateCSV string `toml:"usage_rate_csv"`
}

// DetectorsConfig 탐지기 설정
type DetectorsConfig struct {
	LowPriceThreshold      float64  `toml:"low_price_threshold"`
	ZScoreThreshold        float64  `toml:"zscore_threshold"`
	CurrencyRatioThreshold float64  `toml:"currency_ratio_threshold"`
	HighRateMinRate        float64  `toml:"high_rate_min_rate"`
	LowRateMaxRate         float64  `toml:"low_rate_max_rate"`
	FRatePrefix            bool     `toml:"f_rate_prefix"`
	RequirementScope       string   `toml:"requirement_scope"`
	OrdinaryTradeTypes     []string `toml:"ordinary_trade_types"`
}

// DefaultConfig 기본 설정
func DefaultConfig() *AppConfig {
	det := detector.DefaultConfig()
	return &AppConfig{
		Server: ServerConfig{
			Port:    20430,
			DevMode: false,
		},
		Data: DataConfig{
			UsageRateCSV: "data/usage_rate_hsk.csv",
		},
		Detectors: DetectorsConfig{
			LowPriceThreshold:      det.LowPriceThreshold,
			ZScoreThreshold:        det.ZScoreThreshold,
			CurrencyRatioThreshold: det.CurrencyRatioThreshold,
			HighRateMinRate:        det.HighRateMinRate,
			LowRateMaxRate:         det.LowRateMaxRate,
			FRatePrefix:            det.FRatePrefix,
			RequirementScope:       det.RequirementScope,
			OrdinaryTradeTypes:     det.OrdinaryTradeTypes,
		},
	}
}

// DetectorConfig 탐지기 설정으로 변환
func (c *AppConfig) DetectorConfig() detector.Config {
	cfg := detector.DefaultConfig()
	if c.Detectors.LowPriceThreshold > 0 {
		cfg.LowPriceThreshold = c.Detectors.LowPriceThreshold
	}
	if c.Detectors.ZScoreThreshold > 0 {
		cfg.ZScoreThreshold = c.Detectors.ZScoreThreshold
	}
	if c.Detectors.CurrencyRatioThreshold > 0 {
		cfg.CurrencyRatioThreshold = c.Detectors.CurrencyRatioThreshold
	}
	cfg.HighRateMinRate = c.Detectors.HighRateMinRate
	if c.Detectors.LowRateMaxRate > 0 {
		cfg.LowRateMaxRate = c.Detectors.LowRateMaxRate
	}
	cfg.FRatePrefix = c.Detectors.FRatePrefix
	if c.Detectors.RequirementScope != "" {
		cfg.RequirementScope = c.Detectors.RequirementScope
	}
	if len(c.Detectors.OrdinaryTradeTypes) > 0 {
		cfg.OrdinaryTradeTypes = c.Detectors.OrdinaryTradeTypes
	}
	return cfg
}

// GetExeDir 실행 파일 디렉터리
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig config.toml 로드
// The file sits beside the executable; a missing file means defaults. The
// usage-rate path can also come from the environment.
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("TRADEGUARD_USAGE_RATE_CSV"); v != "" {
		cfg.Data.UsageRateCSV = v
	}
}

// SaveConfig config.toml 저장
func SaveConfig(cfg *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}
