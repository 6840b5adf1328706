// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/school-sales-backend/internal/config"
	"github.com/javajoker/school-sales-backend/internal/database"
	"github.com/javajoker/school-sales-backend/internal/i18n"
	"github.com/javajoker/school-sales-backend/internal/logging"
	"github.com/javajoker/school-sales-backend/internal/repository"
	"github.com/javajoker/school-sales-backend/internal/router"
	"github.com/javajoker/school-sales-backend/internal/services"
)

func main() {
	recalculateTeams := flag.Bool("recalculate-teams", false, "recalculate the sales totals of every team and exit")
	skipMigrations := flag.Bool("skip-migrations", false, "do not run database migrations on startup")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logging.Setup(cfg.Log)

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	// Run database migrations
	if !*skipMigrations {
		if err := database.RunMigrations(db); err != nil {
			logrus.WithError(err).Fatal("Failed to run migrations")
		}
	}

	store := repository.NewStore(db)

	if *recalculateTeams {
		if err := runRepair(store, cfg); err != nil {
			logrus.WithError(err).Error("Team sales repair finished with failures")
			database.Close(db)
			os.Exit(1)
		}
		return
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize router
	r := router.Initialize(ctx, store, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
		return
	}

	logrus.Info("Server exited")
}

func runRepair(store repository.Store, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	teamSales := services.NewTeamSalesService(store, cfg.Sales.RepairConcurrency)
	report, err := teamSales.RecalculateAll(ctx)
	if report != nil {
		logrus.WithFields(logrus.Fields{
			"teams":        report.Teams,
			"recalculated": report.Recalculated,
			"failed":       report.Failed,
		}).Info("Team sales repair report")
	}
	return err
}
