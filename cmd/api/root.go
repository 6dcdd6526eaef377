package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbadapter "tasktracker/internal/adapter/db"
	httpadapter "tasktracker/internal/adapter/http"
	"tasktracker/internal/adapter/http/handlers"
	httpmiddleware "tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/memory"
	appservice "tasktracker/internal/app/service"
	"tasktracker/internal/config"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/translator"
)

const (
	driverMemory      = "memory"
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// version is set at build time via ldflags.
var version = "dev"

func newRootCommand() *cobra.Command {
	var migrateOnStart bool

	root := &cobra.Command{
		Use:           "tasktracker",
		Short:         "Task tracking HTTP API",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadConfig()
			return withLogger(cfg, func(logger *zap.Logger) error {
				return serve(cmd.Context(), logger, cfg, migrateOnStart)
			})
		},
	}
	root.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply database migrations before serving")

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the tasks schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadConfig()
			return withLogger(cfg, func(logger *zap.Logger) error {
				return migrate(cmd.Context(), logger, cfg)
			})
		},
	})

	return root
}

func withLogger(cfg *config.Config, run func(logger *zap.Logger) error) error {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	return run(logger)
}

func serve(ctx context.Context, logger *zap.Logger, cfg *config.Config, migrateOnStart bool) error {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	var (
		taskRepository ports.TaskRepository
		storage        handlers.Pinger
	)
	if cfg.DbDriver == driverMemory {
		repository := memory.NewTaskRepository()
		taskRepository, storage = repository, repository
		logger.Warn("using in-memory task storage; data is lost on restart")
	} else {
		db, err := dbadapter.ConnectDB(cfg)
		if err != nil {
			return fmt.Errorf("connect to %s: %w", cfg.DbDriver, err)
		}
		defer closeDB(logger, db)

		if migrateOnStart {
			if err := dbadapter.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		taskRepository, storage = dbadapter.NewTaskRepository(db), db
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(
		gin.Recovery(),
		httpmiddleware.GinZapMiddleware(logger),
		httpmiddleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)

	healthHandler := handlers.NewHealthHandler(storage, cfg.DbDriver)
	taskHandler := handlers.NewTaskHandler(appservice.NewTaskService(taskRepository))
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	return runServer(ctx, logger, &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}, cfg.DbDriver)
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, logger *zap.Logger, srv *http.Server, storage string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("storage", storage))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func migrate(ctx context.Context, logger *zap.Logger, cfg *config.Config) error {
	if cfg.DbDriver == driverMemory {
		logger.Info("in-memory storage needs no migration")
		return nil
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.DbDriver, err)
	}
	defer closeDB(logger, db)

	return dbadapter.Migrate(ctx, db)
}

func closeDB(logger *zap.Logger, db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Warn("failed to close database connection", zap.String("driver", db.DriverName()), zap.Error(err))
	}
}
