package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	transactionUseCase "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/usecase/transaction"
	userUseCase "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/usecase/user"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/database"
	gatewayAdapter "github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/gateway"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	var appLogger coreport.Logger
	zapLogger, err := logger.NewZapLogger(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		CallerInfo: cfg.Logger.CallerInfo,
	})
	if err != nil {
		log.Printf("Falling back to console logger: %v", err)
		appLogger = logger.NewDefaultLogger()
	} else {
		appLogger = zapLogger
	}
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()
	ctx := context.Background()

	// Database
	dbManager := database.NewManager(database.FromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.Migrate(ctx); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// Redis is optional: without it the directory is read from the database and
	// notifications only go to the log.
	rdb := cache.NewRedisClient(ctx, cfg.Redis, appLogger)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	// The cache only serves directory reads; actors and executor picks come from userRepo.
	userRepo := repository.NewUserRepository(dbManager.DB(), appLogger)
	var directory persistence.UserRepository = userRepo
	var notifier gateway.Notifier = gatewayAdapter.NewLogNotifier(appLogger)
	var redisPinger handler.Pinger
	if rdb != nil {
		directory = repository.NewCachedUserRepository(userRepo, rdb, cfg.Redis.UserCacheTTL, appLogger)
		notifier = gatewayAdapter.NewRedisNotifier(rdb, cfg.Redis.NotificationChannel, appLogger)
		redisPinger = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	rates, err := gatewayAdapter.NewStaticRateProvider(cfg.Commission.Rates)
	if err != nil {
		appLogger.Error("Invalid commission rates", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	appLogger.Info("Exchange rates loaded", map[string]any{"currencies": rates.Currencies()})

	// Use cases
	permissions := permission.NewTable()
	userService := userUseCase.NewUserUseCase(directory, userRepo, permissions, tp, appLogger)
	transactionService := transactionUseCase.NewTransactionService(
		dbManager.CreateUnitOfWork(),
		userRepo,
		permissions,
		rates,
		notifier,
		tp,
		appLogger,
		transactionUseCase.Config{
			CommissionThreshold: cfg.Commission.Threshold,
			DefaultPageSize:     cfg.Commission.DefaultPageSize,
			MaxPageSize:         cfg.Commission.MaxPageSize,
		},
	)

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, tp)
	if err != nil {
		appLogger.Error("Failed to create token service", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	if cfg.Bootstrap.AdminEmail != "" {
		bootstrapAdmin(ctx, cfg, userService, tokens, appLogger)
	}

	// HTTP
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp)
	routes.SetupRoutes(router, routes.Handlers{
		Transactions: handler.NewTransactionHandler(transactionService, appLogger),
		Users:        handler.NewUserHandler(userService, appLogger),
		Permissions:  handler.NewPermissionHandler(permissions, appLogger),
		Health:       handler.NewHealthHandler(dbManager, redisPinger, appLogger),
	}, middleware.Authenticate(tokens, userService, appLogger), transactionService)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// bootstrapAdmin seeds the configured super_admin. Outside production it also logs,
// at debug level only, a bearer token for that account.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, users *userUseCase.UserUseCase, tokens *auth.TokenService, appLogger coreport.Logger) {
	admin, err := users.EnsureBootstrapAdmin(ctx, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail)
	if err != nil {
		appLogger.Error("Failed to create bootstrap admin", map[string]any{"error": err.Error()})
		return
	}
	if cfg.Environment == config.Production {
		return
	}

	token, err := tokens.Issue(admin)
	if err != nil {
		appLogger.Warn("Could not issue bootstrap admin token", map[string]any{"error": err.Error()})
		return
	}
	appLogger.Debug("Bootstrap admin token issued", map[string]any{
		"user_id": admin.ID,
		"token":   token,
	})
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	dbSettings := []struct {
		key, value, env string
	}{
		{"database.host", cfg.Database.Host, "RBO_DB_HOST"},
		{"database.port", cfg.Database.Port, "RBO_DB_PORT"},
		{"database.username", cfg.Database.Username, "RBO_DB_USERNAME"},
		{"database.password", cfg.Database.Password, "RBO_DB_PASSWORD"},
		{"database.database", cfg.Database.Database, "RBO_DB_NAME"},
	}
	for _, s := range dbSettings {
		if s.value != "" {
			continue
		}
		if cfg.Environment == config.Production {
			missingConfigs = append(missingConfigs, fmt.Sprintf("%s (or %s environment variable)", s.key, s.env))
		} else {
			missingConfigs = append(missingConfigs, s.key)
		}
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Validate workflow configuration
	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or RBO_JWT_SECRET environment variable)")
	}
	if cfg.Commission.Threshold <= 0 {
		missingConfigs = append(missingConfigs, "commission.threshold")
	}
	if len(cfg.Commission.Rates) == 0 {
		missingConfigs = append(missingConfigs, "commission.rates")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		switch cfg.Database.SSLMode {
		case "require", "verify-ca", "verify-full":
		default:
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if len(cfg.Auth.JWTSecret) < 32 {
			warnings = append(warnings, "auth.jwtSecret should be at least 32 bytes in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
