package main

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/gds"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/local"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/ndc"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/partner"
	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/database"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-supplier-gateway/internal/offercache"
	"github.com/flight-search/flight-supplier-gateway/internal/repository"
)

// infrastructure holds the process-wide backing services.
type infrastructure struct {
	db        *gorm.DB
	store     cache.Store
	publisher domain.BookingPublisher

	closers []func() error
	log     *logger.Logger
}

// Close releases every backing service in reverse order of creation.
func (i *infrastructure) Close() {
	for n := len(i.closers) - 1; n >= 0; n-- {
		if err := i.closers[n](); err != nil {
			i.log.Warn().Err(err).Msg("Error closing resource")
		}
	}
}

func setupInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger, clock timeutil.Clock) (*infrastructure, error) {
	infra := &infrastructure{log: log}

	if cfg.Database.Enabled() {
		db, err := database.Open(ctx, database.Config{
			Driver:          cfg.Database.Driver,
			DSN:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		}, log)
		if err != nil {
			return nil, err
		}
		infra.db = db
		infra.closers = append(infra.closers, func() error { return database.Close(db) })
		if cfg.Database.AutoMigrate {
			if err := repository.Migrate(db); err != nil {
				infra.Close()
				return nil, fmt.Errorf("migrate database: %w", err)
			}
		}
	} else {
		log.Warn().Msg("No database configured; local inventory and supplier records are disabled")
	}

	switch cfg.Cache.Backend {
	case "redis":
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store := cache.NewRedisStore(client, cfg.Redis.KeyPrefix)
		infra.store = store
		infra.closers = append(infra.closers, store.Close)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache connected")
	default:
		infra.store = cache.NewMemoryStore(clock)
	}

	publisher, closePublisher, err := publisherFor(cfg.Kafka, log)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.publisher = publisher
	infra.closers = append(infra.closers, closePublisher)

	return infra, nil
}

// builtSupplier pairs an adapter with the settings it was built from.
type builtSupplier struct {
	adapter  domain.SupplierAdapter
	settings config.SupplierSettings
}

// setupSuppliers resolves each enabled supplier's settings from built-in
// defaults, the suppliers file and the database record, then builds its adapter.
// A supplier whose settings are invalid is skipped with an error log.
func setupSuppliers(ctx context.Context, cfg *config.Config, infra *infrastructure, log *logger.Logger, clock timeutil.Clock) ([]builtSupplier, error) {
	fileLayer, err := config.LoadSupplierDefaults(cfg.Suppliers.File)
	if err != nil {
		return nil, err
	}

	var records *repository.SupplierConfigRepository
	dbLayer := map[string]*config.SupplierOverride{}
	if infra.db != nil {
		records = repository.NewSupplierConfigRepository(infra.db)
		if dbLayer, err = records.Overrides(ctx); err != nil {
			return nil, err
		}
	}

	offers := offercache.NewOffers(infra.store, cfg.Cache.OfferTTL)
	searches := offercache.NewSearches(infra.store, cfg.Cache.SearchTTL)
	tokens := offercache.NewTokens(infra.store, cfg.Cache.TokenTTLMargin)

	deps := base.Deps{
		Offers:   offers,
		Searches: searches,
		Clock:    clock,
		Logger:   log,
	}
	if records != nil {
		deps.Health = records
	}

	var built []builtSupplier
	for _, code := range cfg.Suppliers.Enabled {
		var fileOverride *config.SupplierOverride
		if o, ok := fileLayer[code]; ok {
			fileOverride = &o
		}
		settings := config.ResolveSupplier(config.DefaultSupplierSettings(code, cfg), fileOverride, dbLayer[code])

		if err := settings.Validate(); err != nil {
			log.Error().Err(err).Str(logger.FieldSupplier, code).Msg("Skipping misconfigured supplier")
			continue
		}

		adapter, err := buildAdapter(code, settings, infra, tokens, deps)
		if err != nil {
			log.Error().Err(err).Str(logger.FieldSupplier, code).Msg("Skipping supplier")
			continue
		}

		log.Info().
			Str(logger.FieldSupplier, code).
			Str("name", settings.Name).
			Bool("active", settings.Active).
			Bool("persisted", settings.HasRecord()).
			Msg("Supplier registered")
		built = append(built, builtSupplier{adapter: adapter, settings: settings})
	}

	if len(built) == 0 {
		return nil, errors.New("no supplier could be configured")
	}
	return built, nil
}

var errNoInventory = errors.New("local inventory needs a database")

func buildAdapter(code string, settings config.SupplierSettings, infra *infrastructure, tokens *offercache.Tokens, deps base.Deps) (domain.SupplierAdapter, error) {
	switch code {
	case config.SupplierLocal:
		if infra.db == nil {
			return nil, errNoInventory
		}
		return local.NewAdapter(settings, repository.NewFlightRepository(infra.db), deps), nil
	case config.SupplierGDS:
		return gds.NewAdapter(settings, tokens, deps), nil
	case config.SupplierNDC:
		return ndc.NewAdapter(settings, deps), nil
	case config.SupplierPartner:
		return partner.NewAdapter(settings, deps), nil
	default:
		return nil, fmt.Errorf("unknown supplier %q", code)
	}
}
