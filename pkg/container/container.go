package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"smartlibrary-backend/internal/config"
	"smartlibrary-backend/internal/domains/librarian/gateway"
	librarianHandler "smartlibrary-backend/internal/domains/librarian/handler"
	librarianService "smartlibrary-backend/internal/domains/librarian/service"
	libraryHandler "smartlibrary-backend/internal/domains/library/handler"
	libraryService "smartlibrary-backend/internal/domains/library/service"
	"smartlibrary-backend/internal/domains/library/store"
	infraCache "smartlibrary-backend/internal/infrastructure/cache"
	"smartlibrary-backend/pkg/cache"
	"smartlibrary-backend/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application.
// Built once at startup, shared by all requests.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	Redis      *infraCache.RedisClient // nil when a cache is injected
	Cache      cache.Cache             // rate-limit counters
	JWTManager *jwt.Manager

	// ========================================
	// STATE + GATEWAY
	// ========================================

	Store   *store.Store     // in-memory library state
	Gateway *gateway.Gateway // completion service access

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	LibraryService   libraryService.ServiceInterface
	LibrarianService librarianService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	LibraryHandler   *libraryHandler.LibraryHandler
	LibrarianHandler *librarianHandler.LibrarianHandler
}

// Option overrides a dependency, mostly for tests
type Option func(*options)

type options struct {
	cache      cache.Cache
	completion gateway.CompletionClient
	seed       *store.Seed
	storeOpts  []store.Option
}

// WithCache uses c instead of connecting to Redis
func WithCache(c cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithCompletionClient uses client instead of the Gemini API
func WithCompletionClient(client gateway.CompletionClient) Option {
	return func(o *options) { o.completion = client }
}

// WithSeed replaces the demo catalog
func WithSeed(seed store.Seed, opts ...store.Option) Option {
	return func(o *options) {
		o.seed = &seed
		o.storeOpts = opts
	}
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads config from the environment and builds the graph
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	return Build(context.Background(), cfg)
}

// Build wires the dependency graph in order:
// infrastructure, state, gateway, services, handlers
func Build(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	c := &Container{Config: cfg}

	// ========================================
	// STEP 2: INITIALIZE CACHE
	// ========================================
	if err := c.initCache(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to init cache: %w", err)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL())

	// ========================================
	// STEP 3: INITIALIZE STORE
	// ========================================
	seed := store.DefaultSeed()
	if o.seed != nil {
		seed = *o.seed
	}
	c.Store = store.New(seed, o.storeOpts...)
	log.Printf("✅ Library store ready (%d books)", len(seed.Books))

	// ========================================
	// STEP 4: INITIALIZE GATEWAY
	// ========================================
	if err := c.initGateway(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to init gateway: %w", err)
	}

	// ========================================
	// STEP 5: SERVICES + HANDLERS
	// ========================================
	c.initServices()
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initCache(ctx context.Context, o *options) error {
	if o.cache != nil {
		c.Cache = o.cache
		return nil
	}

	log.Println("🔴 Connecting to Redis...")

	c.Redis = infraCache.NewRedisClient(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Redis failure is not critical: rate limiting fails open
	if err := c.Redis.Connect(connectCtx); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}

	c.Cache = infraCache.NewRedisCache(c.Redis.Client, "smartlibrary")
	return nil
}

func (c *Container) initGateway(ctx context.Context, o *options) error {
	client := o.completion
	if client == nil {
		if c.Config.Librarian.APIKey == "" {
			log.Println("⚠️  No completion API key, librarian will use fallback text")
			client = gateway.UnconfiguredClient{}
		} else {
			genaiClient, err := gateway.NewGenAIClient(ctx, c.Config.Librarian.APIKey)
			if err != nil {
				return err
			}
			client = genaiClient
			log.Printf("✅ Completion client ready (model: %s)", c.Config.Librarian.Model)
		}
	}

	c.Gateway = gateway.New(client, gateway.Config{
		Model:           c.Config.Librarian.Model,
		Timeout:         c.Config.Librarian.Timeout(),
		OutboundQPS:     c.Config.Librarian.OutboundQPS,
		BreakerFailures: uint32(c.Config.Librarian.BreakerFailures),
		BreakerCooldown: time.Duration(c.Config.Librarian.BreakerCooldown) * time.Second,
	})
	return nil
}

func (c *Container) initServices() {
	c.LibraryService = libraryService.NewLibraryService(c.Store, c.JWTManager)
	c.LibrarianService = librarianService.NewLibrarianService(c.Store, c.Gateway)
}

func (c *Container) initHandlers() {
	c.LibraryHandler = libraryHandler.NewLibraryHandler(c.LibraryService)
	c.LibrarianHandler = librarianHandler.NewLibrarianHandler(c.LibrarianService)
}

// Cleanup releases resources on shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}
