package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ecotrace/ecotrace-backend/internal/cache"
	"github.com/ecotrace/ecotrace-backend/internal/db"
	"github.com/ecotrace/ecotrace-backend/internal/handlers"
	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/middleware"
	"github.com/ecotrace/ecotrace-backend/internal/observability"
	"github.com/ecotrace/ecotrace-backend/internal/repos"
	"github.com/ecotrace/ecotrace-backend/internal/server"
	"github.com/ecotrace/ecotrace-backend/internal/services"
	"github.com/ecotrace/ecotrace-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "ecotrace-backend",
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Database
	dbService, err := db.New(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Database auto migration failed", "error", err)
	}
	conn := dbService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(conn, log)
	userTokenRepo := repos.NewUserTokenRepo(conn, log)
	activityRepo := repos.NewActivityRepo(conn, log)
	profileRepo := repos.NewCalculatorProfileRepo(conn, log)
	goalRepo := repos.NewGoalRepo(conn, log)
	progressRepo := repos.NewProgressRepo(conn, log)
	badgeRepo := repos.NewBadgeRepo(conn, log)
	dismissalRepo := repos.NewDismissalRepo(conn, log)

	// Insight cache: redis when configured, the database otherwise.
	var insightCache cache.InsightCache
	if redisAddr := utils.GetEnv("REDIS_ADDR", "", log); redisAddr != "" {
		insightCache, err = cache.NewRedisCache(redisAddr, log)
		if err != nil {
			log.Warn("Redis unavailable, caching insights in the database", "error", err)
			insightCache = cache.NewGormCache(conn, log)
		}
	} else {
		insightCache = cache.NewGormCache(conn, log)
	}

	// Services
	log.Info("Setting up services from main...")
	avatarService, err := services.NewAvatarService(log)
	if err != nil {
		log.Warn("Avatar service init failed, avatars disabled", "error", err)
		avatarService = nil
	}
	authService := services.NewAuthService(
		conn, log, userRepo, userTokenRepo, avatarService,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(conn, log, userRepo, avatarService)
	gamificationService := services.NewGamificationService(conn, log, progressRepo, badgeRepo, activityRepo)
	activityService := services.NewActivityService(conn, log, activityRepo, gamificationService, insightCache)
	profileService := services.NewProfileService(conn, log, profileRepo, insightCache)
	goalService := services.NewGoalService(conn, log, goalRepo)
	featureService := services.NewFeatureService(conn, log, activityRepo, profileRepo)
	statsService := services.NewStatsService(conn, log, activityRepo)
	aiClient := services.NewAIClient(log)
	insightService := services.NewInsightService(
		conn, log, featureService, statsService, goalRepo, dismissalRepo, aiClient, insightCache,
	)

	if err := gamificationService.SeedBadges(ctx); err != nil {
		log.Warn("Badge seeding failed", "error", err)
	}

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:         "ecotrace-backend",
		TracingEnabled:      observability.Enabled(),
		AuthMiddleware:      middleware.NewAuthMiddleware(log, authService),
		HealthcheckHandler:  handlers.NewHealthcheckHandler(conn),
		AuthHandler:         handlers.NewAuthHandler(authService),
		UserHandler:         handlers.NewUserHandler(userService),
		ActivityHandler:     handlers.NewActivityHandler(activityService),
		ProfileHandler:      handlers.NewProfileHandler(profileService),
		GoalHandler:         handlers.NewGoalHandler(goalService),
		GamificationHandler: handlers.NewGamificationHandler(gamificationService),
		StatsHandler:        handlers.NewStatsHandler(statsService),
		InsightHandler:      handlers.NewInsightHandler(insightService, statsService),
	})

	port := utils.GetEnv("PORT", "8080", log)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if otelShutdown != nil {
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Warn("Tracing shutdown failed", "error", err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Server failed", "error", err)
	}
	log.Info("Server stopped")
}
