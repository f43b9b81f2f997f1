package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-candidate-registry/config"
	_ "go-candidate-registry/docs" // Important for Swagger
	v1 "go-candidate-registry/internal/delivery/http/v1"
	"go-candidate-registry/internal/repository/postgres"
	"go-candidate-registry/internal/usecase"
	"go-candidate-registry/pkg/database"
	"go-candidate-registry/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// @title           Candidate Registry API
// @version         1.0
// @description     Candidate record registry with search/listing and bulk CSV import/export.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting candidate registry backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)

	// 5. Setup UseCases
	validate := validator.New()
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, validate)
	importUC := usecase.NewImportUsecase(candidateRepo, cfg)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		ImportUC:    importUC,
		Config:      cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
