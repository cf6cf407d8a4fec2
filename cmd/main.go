package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beachpoint/tournament-system/brackets"
	"github.com/beachpoint/tournament-system/config"
	"github.com/beachpoint/tournament-system/db"
	"github.com/beachpoint/tournament-system/handlers"
	"github.com/beachpoint/tournament-system/repositories"
	"github.com/beachpoint/tournament-system/routes"
	"github.com/beachpoint/tournament-system/services"
	"github.com/beachpoint/tournament-system/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewR2Uploader(context.Background(), storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("object storage not configured, logo uploads disabled")
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run()

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	participationRepo := repositories.NewPostgresParticipationRepository(dbConn)
	confrontationRepo := repositories.NewPostgresConfrontationRepository(dbConn)
	bracketMatchRepo := repositories.NewPostgresBracketMatchRepository(dbConn)
	rankingRepo := repositories.NewPostgresRankingRepository(dbConn)

	tournamentService := services.NewTournamentService(
		dbConn, tournamentRepo, playerRepo, participationRepo,
		confrontationRepo, bracketMatchRepo, uploader, logger,
	)
	groupService := services.NewGroupService(
		dbConn, tournamentRepo, participationRepo,
		confrontationRepo, bracketMatchRepo, wsHub, logger,
	)
	playoffService := services.NewPlayoffService(
		dbConn, tournamentRepo, participationRepo,
		confrontationRepo, bracketMatchRepo, wsHub, logger,
	)
	rankingService := services.NewRankingService(
		dbConn, rankingRepo, tournamentRepo, participationRepo,
		confrontationRepo, bracketMatchRepo, logger,
	)
	playerService := services.NewPlayerService(playerRepo, participationRepo, bracketMatchRepo, rankingRepo)

	router := routes.InitRoutes(routes.Handlers{
		Tournament: handlers.NewTournamentHandler(tournamentService, logger),
		Group:      handlers.NewGroupHandler(groupService, logger),
		Playoff:    handlers.NewPlayoffHandler(playoffService, logger),
		Ranking:    handlers.NewRankingHandler(rankingService, logger),
		Player:     handlers.NewPlayerHandler(playerService, logger),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, tournamentService, logger),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
