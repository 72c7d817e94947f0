package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Fahad602/Dash-KanBan/internal/config"
	"github.com/Fahad602/Dash-KanBan/internal/database"
	"github.com/Fahad602/Dash-KanBan/internal/handler"
	"github.com/Fahad602/Dash-KanBan/internal/middleware"
	"github.com/Fahad602/Dash-KanBan/internal/migration"
	"github.com/Fahad602/Dash-KanBan/internal/repository"
	"github.com/Fahad602/Dash-KanBan/internal/routes"
	"github.com/Fahad602/Dash-KanBan/internal/service"
	"github.com/Fahad602/Dash-KanBan/internal/ws"
	pkgcache "github.com/Fahad602/Dash-KanBan/pkg/cache"
	pkglogger "github.com/Fahad602/Dash-KanBan/pkg/logger"
	pkgredis "github.com/Fahad602/Dash-KanBan/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv(".")

	// 로거 초기화
	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	// 설정 로드
	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)
	gin.SetMode(cfg.Server.Mode)

	// DB 연결 (보드는 DB 없이 동작할 수 없음)
	db, err := database.Open(&cfg.Database, database.LogLevel(cfg.IsDevelopment(), false))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to %s", cfg.Database.Driver)
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if cfg.IsDevelopment() {
		if seeded, err := migration.SeedDemo(db); err != nil {
			pkglogger.Error("Demo seed failed: %v", err)
		} else if seeded {
			pkglogger.Info("Seeded demo card")
		}
	}

	// Redis 연결 (선택)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
			redisClient = nil
		} else {
			pkglogger.Info("Connected to Redis")
		}
	}
	cacheService := pkgcache.NewService(redisClient)

	// WebSocket Hub
	wsHub := ws.NewHub(redisClient)
	go wsHub.Run()
	defer wsHub.Stop()

	// Services
	store := repository.NewStore(db)
	boardService := service.NewBoardService(store, cacheService, wsHub, cfg.Board.CacheTTL())
	cardService := service.NewCardService(store, boardService)
	transitionService := service.NewTransitionService(store, boardService)
	editorService := service.NewEditorService(store, boardService)

	// Handlers
	boardHandler := handler.NewBoardHandler(boardService, cardService, transitionService)
	cardHandler := handler.NewCardHandler(cardService, transitionService, editorService, boardService)
	wsHandler := handler.NewWSHandler(wsHub, cfg.CORS.AllowOrigins)

	// Gin 라우터 생성
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS 설정
	allowOrigins := splitAndTrim(cfg.CORS.AllowOrigins)
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", middleware.ViewerHeader},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           12 * time.Hour,
	}))

	// Middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.InputSanitizer())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "unavailable"
		} else {
			middleware.SetDBConnectionsActive(float64(sqlDB.Stats().InUse))
		}
		middleware.SetWSClients(float64(wsHub.ClientCount()))

		c.JSON(status, gin.H{
			"status":   dbStatus,
			"service":  "ideaboard",
			"cache":    cacheService.IsAvailable(),
			"ws_peers": wsHub.ClientCount(),
			"time":     time.Now().Unix(),
		})
	})

	routes.Setup(router, boardHandler, cardHandler, wsHandler)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "not found"}})
	})

	// 서버 시작
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// splitAndTrim splits a comma separated list and drops empty entries
func splitAndTrim(s string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
