package di

import (
	"fmt"

	"agentdir/application/ports"
	"agentdir/application/services"
	"agentdir/infrastructure/config"
	filestore "agentdir/infrastructure/persistence/file"
	sqlitestore "agentdir/infrastructure/persistence/sqlite"
	"agentdir/infrastructure/seed"
	"agentdir/pkg/auth"
	apperrors "agentdir/pkg/errors"
	"agentdir/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Store        ports.OverlayStore
	Seed         ports.SeedSource
	Catalog      *services.CatalogService
	Exchange     *services.ExchangeService
	Gate         *auth.Gate
	LoginLimiter *auth.TokenBucketLimiter
	Metrics      *observability.Collector
	Errors       *apperrors.ErrorHandler

	closers []func() error
}

// NewContainer wires the full dependency graph from configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}
	c.Logger = logger

	c.Store, err = ProvideOverlayStore(cfg, logger, c)
	if err != nil {
		return nil, err
	}
	c.Seed = ProvideSeedSource(cfg)

	c.Metrics = observability.NewCollector("agentdir")
	c.Errors = apperrors.NewErrorHandler(logger, cfg.IsDevelopment())

	c.Catalog = services.NewCatalogService(c.Store, c.Seed, c.Metrics, logger)
	c.Exchange = services.NewExchangeService(c.Store, c.Metrics, logger)

	c.Gate, err = ProvideGate(cfg)
	if err != nil {
		return nil, err
	}
	c.LoginLimiter = auth.NewIPRateLimiter(cfg.LoginRatePerMinute)

	return c, nil
}

// Close releases container-held resources.
func (c *Container) Close() error {
	var firstErr error
	for _, close := range c.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideOverlayStore creates the configured overlay store implementation.
func ProvideOverlayStore(cfg *config.Config, logger *zap.Logger, c *Container) (ports.OverlayStore, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		store, err := sqlitestore.NewStore(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite overlay store: %w", err)
		}
		c.closers = append(c.closers, store.Close)
		return store, nil
	case config.StoreDriverFile:
		store, err := filestore.NewStore(cfg.StorePath, logger)
		if err != nil {
			return nil, fmt.Errorf("file overlay store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// ProvideSeedSource creates the seed source; a configured URL takes priority
// over the local path.
func ProvideSeedSource(cfg *config.Config) ports.SeedSource {
	if cfg.SeedURL != "" {
		return seed.NewHTTPSource(cfg.SeedURL)
	}
	return seed.NewFileSource(cfg.SeedPath)
}

// ProvideGate creates the admin auth gate.
func ProvideGate(cfg *config.Config) (*auth.Gate, error) {
	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		// Development fallback; production requires JWT_SECRET via Validate.
		jwtSecret = "development-secret-change-in-production"
	}
	return auth.NewGate(cfg.AdminSecret, auth.JWTConfig{
		SecretKey:  jwtSecret,
		Issuer:     cfg.JWTIssuer,
		Audience:   "agentdir-admin",
		ExpiryTime: cfg.SessionTTL,
	})
}
