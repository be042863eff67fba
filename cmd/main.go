// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_5_vocab_hint/internal/config"
	"go_5_vocab_hint/internal/handlers"
	"go_5_vocab_hint/internal/middleware"
	"go_5_vocab_hint/internal/policy"
	"go_5_vocab_hint/internal/repository"
	"go_5_vocab_hint/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"gorm.io/gorm"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	configDir := os.Getenv("APP_CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Level, tempLogger)
	log.Println("Log Config Loaded...")

	// Configファイルの読み込み完了後、アプリケーション全体のデフォルトロガーを設定
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 1. DB (SQL バックエンド、または結果ログ用。database_url が無ければ使わない)
	var db *gorm.DB
	if cfg.Storage.DatabaseURL != "" {
		db, err = repository.NewDB(cfg.Storage.DatabaseURL, logger)
		if err != nil {
			slog.Error("Error initializing database", slog.Any("error", err))
			os.Exit(1)
		}
		sqlDB, err := db.DB()
		if err != nil {
			slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Error closing database connection", slog.Any("error", err))
			} else {
				slog.Info("Database connection closed.")
			}
		}()
	}

	// 2. Q テーブルの保存先
	var snapshots policy.SnapshotStore
	switch cfg.Storage.Backend {
	case "sql":
		snapshots = repository.NewSQLSnapshotStore(db)
	default:
		snapshots = repository.NewFileSnapshotStore(cfg.ResolvePath(cfg.Storage.QTableFile))
	}

	store := policy.New(policy.HyperparametersFromConfig(cfg.Policy), snapshots, policy.WithLogger(logger))
	startupCtx := middleware.WithLogger(context.Background(), logger)
	loaded := store.Load(startupCtx)
	slog.Info("Q-table ready",
		slog.String("location", snapshots.Location()),
		slog.Bool("cold_start", loaded.ColdStart),
		slog.Int("words", loaded.Words),
	)

	// 3. 単語カタログ
	catalogPath := cfg.ResolvePath(cfg.Catalog.WordsFile)
	catalog, err := repository.LoadCatalog(catalogPath)
	if err != nil {
		slog.Error("Error loading word catalog", slog.String("path", catalogPath), slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Word catalog loaded", slog.String("path", catalogPath), slog.Int("words", len(catalog)))

	// 4. Dependency Injection
	var outcomeRepo repository.OutcomeRepository
	if db != nil {
		outcomeRepo = repository.NewGormOutcomeRepository()
	}
	hintService := service.NewHintService(db, store, repository.NewCatalogRepository(catalog), outcomeRepo, cfg.Policy.HintTypeList())
	hintHandler := handlers.NewHintHandler(hintService, logger)
	healthHandler := handlers.NewHealthHandler(db, logger)

	// 5. Setup Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	handlers.RegisterRoutes(r, hintHandler, healthHandler)

	// 6. Start Server
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1) // Listen失敗は致命的
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	// 最後に Q テーブルを書き出す
	if err := store.Save(middleware.WithLogger(ctx, logger)); err != nil {
		slog.Error("Failed to flush q-table on shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// newLogger は設定のログレベルと APP_ENV からロガーを作ります (dev は tint、それ以外は JSON)
func newLogger(level string, tempLogger *slog.Logger) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo) // 不明な場合はInfo
		tempLogger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	return slog.New(handler)
}
