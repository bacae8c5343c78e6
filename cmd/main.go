package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/taantti/erp-demo/internal/config"
	"github.com/taantti/erp-demo/internal/handler"
	"github.com/taantti/erp-demo/internal/handler/middleware"
	"github.com/taantti/erp-demo/internal/logging"
	"github.com/taantti/erp-demo/internal/metrics"
	"github.com/taantti/erp-demo/internal/repository/postgres"
	"github.com/taantti/erp-demo/internal/sanitize"
	"github.com/taantti/erp-demo/internal/scope"
	"github.com/taantti/erp-demo/internal/seed"
	"github.com/taantti/erp-demo/internal/service"
	"github.com/taantti/erp-demo/pkg/blacklist"
	"github.com/taantti/erp-demo/pkg/email"
	"github.com/taantti/erp-demo/pkg/jwt"
	"github.com/taantti/erp-demo/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log.Level)
	slog.SetDefault(logger)

	db, err := initDB(cfg, logger)
	if err != nil {
		logger.Error("database initialization failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("closing database failed", "error", err)
		}
	}()
	logger.Info("database connection established")

	redisClient, err := initRedis(cfg)
	if err != nil {
		logger.Error("redis initialization failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("closing redis failed", "error", err)
		}
	}()
	logger.Info("redis connection established")

	validate := validator.New()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	tenantRepo := postgres.NewTenantRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	productRepo := postgres.NewProductRepository(db)
	categoryRepo := postgres.NewProductCategoryRepository(db)
	auditRepo := postgres.NewAuditLogRepository(db)

	// Seed pass before the server accepts traffic.
	if cfg.Init {
		seeder := seed.New(roleRepo, tenantRepo, userRepo, logger)
		if err := seeder.Run(context.Background()); err != nil {
			logger.Error("seed failed", "error", err)
			os.Exit(1)
		}
	}

	tokenService := jwt.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenExpiry, cfg.JWT.Issuer)
	tokenBlacklist := blacklist.New(redisClient)

	var emailService email.Service = email.NoopService{}
	if cfg.Email.ResendAPIKey != "" {
		resend, err := email.NewResendService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, logger)
		if err != nil {
			logger.Warn("email service disabled", "error", err)
		} else {
			emailService = resend
			logger.Info("email service initialized")
		}
	}

	// Services
	auditService := service.NewAuditService(auditRepo, logger)
	scoper := scope.NewScoper(logger, auditService)
	permissionService := service.NewPermissionService(roleRepo, logger)
	authService := service.NewAuthService(userRepo, tokenService, tokenBlacklist, logger)
	userService := service.NewUserService(userRepo, tenantRepo, scoper, emailService, cfg, logger)
	tenantService := service.NewTenantService(tenantRepo)
	roleService := service.NewRoleService(roleRepo)
	productService := service.NewProductService(productRepo, categoryRepo, scoper)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validate)
	userHandler := handler.NewUserHandler(userService, validate)
	tenantHandler := handler.NewTenantHandler(tenantService, validate)
	roleHandler := handler.NewRoleHandler(roleService, validate)
	productHandler := handler.NewProductHandler(productService, validate)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		go func() {
			addr := ":" + cfg.Metrics.Port
			logger.Info("metrics listener starting", "addr", addr)
			if err := m.Serve(addr); err != nil {
				logger.Error("metrics listener failed", "error", err)
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      "ERP Demo v1.0",
		ErrorHandler: handler.NewErrorHandler(logger, m, cfg.IsDevelopment()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(middleware.Recovery(logger))
	app.Use(middleware.Logger(logger, m))

	sanitizer := sanitize.New(cfg.Sanitize)
	handler.SetupRoutes(
		app,
		authHandler,
		userHandler,
		tenantHandler,
		roleHandler,
		productHandler,
		healthHandler,
		permissionService,
		middleware.Sanitize(sanitizer),
		middleware.Auth(tokenService, tokenBlacklist, userRepo, tenantRepo),
		middleware.LoginRateLimit(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("server starting", "addr", addr, "environment", cfg.Server.Environment)
		if err := app.Listen(addr); err != nil {
			logger.Error("server failed to start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}

// initDB connects to PostgreSQL with a short retry loop so the service
// survives the database coming up after it.
func initDB(cfg *config.Config, logger *slog.Logger) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	const maxRetries = 5
	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}
		logger.Warn("database connection failed", "attempt", i+1, "error", err)
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
