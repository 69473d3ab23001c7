package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/analyzer"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/config"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/detector"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/server"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/util"
)

var (
	port     = flag.Int("port", 0, "서비스 포트 (config.toml 보다 우선)")
	devMode  = flag.Bool("dev", false, "개발 모드")
	usageCSV = flag.String("usage-rate-csv", "", "용도세율 기준 CSV 경로 (설정 파일 덮어쓰기)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  TradeGuard - 수입신고 위험 분석 도구")
	fmt.Println("==========================================")

	// 설정 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("설정 로드 실패, 기본값 사용: %v", err)
		cfg = config.DefaultConfig()
	}

	// 명령행 인자가 설정 파일보다 우선한다
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *usageCSV != "" {
		cfg.Data.UsageRateCSV = *usageCSV
	}

	logger := newLogger(cfg.Server.DevMode)
	defer logger.Sync()

	detCfg := cfg.DetectorConfig()

	// 용도세율 기준 데이터는 없어도 분석은 가능 (해당 규칙만 건너뜀)
	if cfg.Data.UsageRateCSV != "" {
		rates, err := detector.LoadUsageRates(cfg.Data.UsageRateCSV)
		if err != nil {
			logger.Warn("usage-rate reference list not loaded",
				zap.String("path", cfg.Data.UsageRateCSV),
				zap.Error(err))
		} else {
			detCfg.UsageRates = rates
			logger.Info("usage-rate reference list loaded",
				zap.String("path", cfg.Data.UsageRateCSV),
				zap.Int("entries", rates.Len()))
		}
	}

	pipeline := analyzer.New(schema.DefaultCatalog(), detCfg, logger)
	srv := server.NewServer(cfg, pipeline, logger)

	cfg.Server.Port = util.FindAvailablePort(cfg.Server.Port)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("서비스 시작, 포트 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("서비스 시작 실패: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("브라우저 열기: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("브라우저를 자동으로 열 수 없습니다. 직접 접속하세요: %s\n", url)
		}
	} else {
		fmt.Printf("개발 모드: %s 로 접속하세요\n", url)
	}

	fmt.Println("\nCtrl+C 로 종료...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n서비스 종료")
}

// newLogger 실행 모드에 맞는 로거 생성
func newLogger(devMode bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if devMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
