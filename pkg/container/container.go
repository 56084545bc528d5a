package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"fishtrade-backend/internal/config"
	infraCache "fishtrade-backend/internal/infrastructure/cache"
	"fishtrade-backend/internal/infrastructure/database"
	"fishtrade-backend/pkg/cache"
	"fishtrade-backend/pkg/jwt"

	"fishtrade-backend/internal/domains/notification"

	"fishtrade-backend/internal/domains/user"
	userHandler "fishtrade-backend/internal/domains/user/handler"
	userRepo "fishtrade-backend/internal/domains/user/repository"
	userService "fishtrade-backend/internal/domains/user/service"

	inventoryHandler "fishtrade-backend/internal/domains/inventory/handler"
	inventoryRepo "fishtrade-backend/internal/domains/inventory/repository"
	inventoryService "fishtrade-backend/internal/domains/inventory/service"

	reportHandler "fishtrade-backend/internal/domains/report/handler"
	reportRepo "fishtrade-backend/internal/domains/report/repository"
	reportService "fishtrade-backend/internal/domains/report/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is
// a singleton living for the whole process.
type Container struct {
	// infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Publisher  notification.Publisher

	// repositories
	UserRepo      user.Repository
	InventoryRepo inventoryRepo.Repository
	ReportRepo    reportRepo.Repository

	// services
	UserService      user.Service
	InventoryService inventoryService.ServiceInterface
	ReportService    reportService.ServiceInterface

	// handlers
	UserHandler      *userHandler.Handler
	InventoryHandler *inventoryHandler.Handler
	ReportHandler    *reportHandler.Handler
}

// NewContainer builds the whole graph. Initialization order matters:
// config, then infrastructure, then repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// STEP 1: configuration
	log.Println("📋 Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// STEP 2: database
	log.Println("🗄️  Connecting to PostgreSQL...")
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// STEP 3: cache
	log.Println("🔴 Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		// login lockouts and summary caching degrade, requests still work
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	c.Publisher = notification.NewPublisher(c.Cache)

	// STEP 4..6: domain layers
	log.Println("📦 Initializing repositories...")
	c.initRepositories()

	log.Println("⚙️  Initializing services...")
	c.initServices()

	log.Println("🎯 Initializing handlers...")
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewRepository(pool)
	c.InventoryRepo = inventoryRepo.NewPostgresRepository(pool)
	c.ReportRepo = reportRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.Cache, c.JWTManager)
	c.InventoryService = inventoryService.NewInventoryService(c.InventoryRepo)
	c.ReportService = reportService.NewReportService(
		c.ReportRepo,
		c.InventoryService,
		c.Cache,
		c.Publisher,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewHandler(c.UserService)
	c.InventoryHandler = inventoryHandler.NewHandler(c.InventoryService)
	c.ReportHandler = reportHandler.NewHandler(c.ReportService)
}

// Cleanup closes long-lived connections. Called on shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connection closed")
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok && rc != nil {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis connection: %v", err)
		} else {
			log.Println("✅ Redis connection closed")
		}
	}
}
