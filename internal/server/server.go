package server

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/analyzer"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/config"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/server/handlers"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/store"
)

//go:embed index.html
var indexPage []byte

// Server HTTP 서버
type Server struct {
	router   *gin.Engine
	store    *store.MemoryStore
	handlers *handlers.Handlers
}

// NewServer 서버 생성
func NewServer(cfg *config.AppConfig, pipeline *analyzer.Pipeline, log *zap.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	memStore := store.NewMemoryStore()

	s := &Server{
		router:   gin.Default(),
		store:    memStore,
		handlers: handlers.NewHandlers(pipeline, memStore, log),
	}

	s.setupRoutes()

	return s
}

// setupRoutes 라우트 설정
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}

	// 업로드 페이지
	s.router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})
}

// Run 서버 시작
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// GetStore 저장소 반환 (테스트용)
func (s *Server) GetStore() *store.MemoryStore {
	return s.store
}
