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

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/library-api/internal/audit"
	"github.com/BruksfildServices01/library-api/internal/config"
	dbpkg "github.com/BruksfildServices01/library-api/internal/db"
	"github.com/BruksfildServices01/library-api/internal/middleware"
	"github.com/BruksfildServices01/library-api/internal/routes"
)

func main() {
	cfg := config.Load()

	log := hclog.New(&hclog.LoggerOptions{
		Name:   "library-api",
		Level:  hclog.LevelFromString(cfg.LogLevel),
		Output: os.Stderr,
	})

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	auditDispatcher := audit.NewDispatcher(audit.New(db), log.Named("audit"))

	loginLimits := middleware.NewRateLimiter(cfg.LoginRatePerSec, cfg.LoginRateBurst)
	loginLimits.StartJanitor(ctx, 2*time.Minute)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         log,
		Audit:       auditDispatcher,
		LoginLimits: loginLimits,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serveErr:
		log.Error("server error", "error", err)
		exitCode = 1
	}

	if err := shutdown(srv, auditDispatcher, db); err != nil {
		log.Error("unclean shutdown", "error", err)
		exitCode = 1
	}

	log.Info("server stopped")
	cancel()
	os.Exit(exitCode)
}

// shutdown stops accepting requests, drains the audit queue and closes
// the pool, in that order, reporting every failure.
func shutdown(srv *http.Server, d *audit.Dispatcher, db *gorm.DB) error {
	var result *multierror.Error

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("http server: %w", err))
	}

	d.Close()

	sqlDB, err := db.DB()
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("sql pool: %w", err))
	} else if err := sqlDB.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close database: %w", err))
	}

	return result.ErrorOrNil()
}
