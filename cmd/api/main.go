package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"channel-stats-backend/internal/common/cache"
	"channel-stats-backend/internal/common/config"
	"channel-stats-backend/internal/common/logger"
	"channel-stats-backend/internal/common/middleware"
	"channel-stats-backend/internal/platform/db"
	redisplatform "channel-stats-backend/internal/platform/redis"
	"channel-stats-backend/internal/workers"

	authHTTP "channel-stats-backend/internal/features/auth/delivery/http"
	authPostgres "channel-stats-backend/internal/features/auth/repository/postgres"
	authRedis "channel-stats-backend/internal/features/auth/repository/redis"
	authService "channel-stats-backend/internal/features/auth/service"

	boardHTTP "channel-stats-backend/internal/features/board/delivery/http"
	boardPostgres "channel-stats-backend/internal/features/board/repository/postgres"
	boardService "channel-stats-backend/internal/features/board/service"

	statsHTTP "channel-stats-backend/internal/features/stats/delivery/http"
	statsPostgres "channel-stats-backend/internal/features/stats/repository/postgres"
	statsService "channel-stats-backend/internal/features/stats/service"

	settingsHTTP "channel-stats-backend/internal/features/settings/delivery/http"
	settingsPostgres "channel-stats-backend/internal/features/settings/repository/postgres"
	settingsService "channel-stats-backend/internal/features/settings/service"

	linkHTTP "channel-stats-backend/internal/features/telegramlink/delivery/http"
	linkRedis "channel-stats-backend/internal/features/telegramlink/repository/redis"
	linkService "channel-stats-backend/internal/features/telegramlink/service"
	"channel-stats-backend/internal/features/telegramlink/telegram"
)

func main() {
	// Корневой контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	logger.Init("channel-stats-backend", cfg.Debug)

	zapLogger, err := zap.NewProduction()
	if cfg.Debug {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// База данных
	pg, err := db.Open(ctx, cfg.Postgres.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pg.Close()

	if err := db.InitSchema(ctx, pg); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize schema")
	}
	logger.Info().Msg("Database connection established")

	// Redis
	rdb, err := redisplatform.Open(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	cacheService := cache.New(rdb)
	logger.Info().Msg("Cache service initialized")

	// Репозитории
	userRepository := authPostgres.NewUserRepository(pg)
	sessionRepository := authRedis.NewSessionRepository(rdb)
	boardRepository := boardPostgres.NewBoardRepository(pg)
	statsRepository := statsPostgres.NewStatsRepository(pg)
	settingsRepository := settingsPostgres.NewSettingsRepository(pg)
	wizardRepository := linkRedis.NewWizardRepository(rdb)
	linkRepository := linkRedis.NewLinkRepository(rdb)

	// Telegram MTProto клиенты
	flowManager := telegram.NewManager(cfg.Telegram.APIID, cfg.Telegram.APIHash, cfg.Telegram.SessionDir, zapLogger)

	// Сервисы
	authSvc := authService.NewAuthService(userRepository, sessionRepository, cfg.Session.TTL)
	boardSvc := boardService.NewBoardService(boardRepository, cacheService, cfg.Cache.StatsTTL, cfg.Cache.DictTTL)
	statsSvc := statsService.NewStatsService(statsRepository, cacheService, cfg.Cache.StatsTTL)
	settingsSvc := settingsService.NewSettingsService(settingsRepository)
	linkSvc := linkService.NewLinkService(wizardRepository, linkRepository, flowManager)

	logger.Info().Msg("Services initialized")

	// Фоновая чистка статистики по retention-настройкам
	retentionWorker := workers.NewRetentionWorker(settingsRepository, statsRepository, cacheService, cfg.Retention.SweepInterval)
	go retentionWorker.Start(ctx)

	// HTTP
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	public := router.Group("/")
	authHTTP.NewAuthHandler(authSvc, cfg.Session.CookieName, int(cfg.Session.TTL.Seconds())).RegisterRoutes(public)

	protected := router.Group("/", middleware.SessionAuth(authSvc, cfg.Session.CookieName))
	boardHTTP.NewBoardHandler(boardSvc).RegisterRoutes(protected)
	statsHTTP.NewStatsHandler(statsSvc).RegisterRoutes(protected)
	settingsHTTP.NewSettingsHandler(settingsSvc).RegisterRoutes(protected)
	linkHTTP.NewLinkHandler(linkSvc).RegisterRoutes(protected)

	logger.Info().Msg("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
