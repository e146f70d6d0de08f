package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/backup"
	"github.com/andrey2025-maker/SelenaZoo/internal/config"
	"github.com/andrey2025-maker/SelenaZoo/internal/handler"
	"github.com/andrey2025-maker/SelenaZoo/internal/locale"
	"github.com/andrey2025-maker/SelenaZoo/internal/metrics"
	"github.com/andrey2025-maker/SelenaZoo/internal/repository/postgres"
	"github.com/andrey2025-maker/SelenaZoo/internal/service"
	"github.com/andrey2025-maker/SelenaZoo/internal/session"
	"github.com/andrey2025-maker/SelenaZoo/internal/transport"

	"github.com/go-co-op/gocron"
	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting SelenaZoo Bot")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	excRepo := postgres.NewExceptionRepo(db)

	// Locale tables
	locales, err := locale.New()
	if err != nil {
		logger.Fatal("Failed to load locales", zap.Error(err))
	}

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize services
	messenger := transport.NewTeleMessenger(bot)
	accessService := service.NewAccessService(cfg.AdminIDs)
	statsService := service.NewStatsService(userRepo, logger)
	calcService := service.NewCalculatorService(userRepo, locales)
	broadcastService := service.NewBroadcastService(messenger, cfg.BroadcastDelay, logger)
	relayService := service.NewRelayService(userRepo, messenger, locales, cfg.IndexDigitThreshold, logger)
	exceptionService := service.NewExceptionService(userRepo, excRepo, logger)
	backupManager := backup.NewManager(cfg.BackupDir, userRepo, excRepo, logger)

	// Initialize handler
	h := handler.NewHandler(handler.Deps{
		Bot:              bot,
		Access:           accessService,
		Stats:            statsService,
		Calculator:       calcService,
		Broadcast:        broadcastService,
		Relay:            relayService,
		Exceptions:       exceptionService,
		Backups:          backupManager,
		UserRepo:         userRepo,
		Sessions:         session.NewStore(),
		Locales:          locales,
		Messenger:        messenger,
		Logger:           logger,
		MaxArtifactBytes: cfg.MaxArtifactBytes,
	})
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Metrics and health endpoint
	metricsSrv := metrics.Serve(cfg.MetricsAddr, logger)

	// Scheduled backups
	scheduler := gocron.NewScheduler(time.UTC)
	if cfg.BackupSchedule != "" {
		_, err := scheduler.Every(1).Day().At(cfg.BackupSchedule).Do(func() {
			if _, err := backupManager.CreateBackup(true); err != nil {
				logger.Error("Scheduled backup failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Fatal("Failed to schedule backups",
				zap.String("schedule", cfg.BackupSchedule),
				zap.Error(err),
			)
		}
		scheduler.StartAsync()
		logger.Info("Backup schedule active", zap.String("at", cfg.BackupSchedule))
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Metrics server shutdown failed", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
}

// newLogger builds the production logger, adding a rotated file sink
// when logFile is set.
func newLogger(logFile string) (*zap.Logger, error) {
	if logFile == "" {
		return zap.NewProduction()
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zapcore.InfoLevel),
		zapcore.NewCore(encoder, fileSink, zapcore.InfoLevel),
	)
	return zap.New(core), nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}
