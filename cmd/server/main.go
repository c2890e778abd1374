package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"ballotbox/docs" // swagger docs
	"ballotbox/internal/auth"
	"ballotbox/internal/cache"
	"ballotbox/internal/config"
	"ballotbox/internal/db"
	"ballotbox/internal/handler"
	"ballotbox/internal/logger"
	"ballotbox/internal/repository"
	"ballotbox/internal/router"
	"ballotbox/internal/service"
)

// @title Ballotbox API
// @version 1.0
// @description Election management and voting API with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	clock, err := service.NewClock(cfg.ElectionTimezone)
	if err != nil {
		logger.Log.Error("clock init", "error", err)
		os.Exit(1)
	}

	gormDB, err := db.New(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Error("database init", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	if cfg.ResetDB {
		logger.Log.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Log.Error("migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		logger.Log.Warn("redis unreachable, caching and token revocation disabled", "addr", cfg.RedisAddr, "error", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	electionRepo := repository.NewElectionRepository(gormDB)
	candidateRepo := repository.NewCandidateRepository(gormDB)
	voteRepo := repository.NewVoteRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	electionService := service.NewElectionService(electionRepo, cacheClient)
	candidateService := service.NewCandidateService(electionRepo, candidateRepo, cacheClient)
	voteService := service.NewVoteService(userRepo, electionRepo, candidateRepo, voteRepo, cacheClient, clock)
	resultService := service.NewResultService(electionRepo, candidateRepo, voteRepo, cacheClient, clock)
	adminService := service.NewAdminService(userRepo)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, authService, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Election:  handler.NewElectionHandler(electionService, clock),
		Candidate: handler.NewCandidateHandler(candidateService),
		Vote:      handler.NewVoteHandler(voteService),
		Result:    handler.NewResultHandler(resultService),
		Admin:     handler.NewAdminHandler(adminService),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	logger.Log.Info("swagger documentation available", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Log.Info("listening", "addr", addr, "timezone", cfg.ElectionTimezone)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server shutdown", "error", err)
	}
	logger.Log.Info("server stopped")
}
