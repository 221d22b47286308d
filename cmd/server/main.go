// Package main is the entry point for the flight supplier gateway.
//
//	@title						Flight Supplier Gateway API
//	@version					1.0.0
//	@description				Searches every configured flight supplier concurrently, merges the offers into one model and routes pricing, booking and seat map calls back to the supplier that produced the offer.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/flight-supplier-gateway/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
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

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-supplier-gateway/docs"
	flighthttp "github.com/flight-search/flight-supplier-gateway/internal/adapter/http"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/http/middleware"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/messaging"
	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/ratelimit"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-supplier-gateway/internal/usecase"
)

const (
	shutdownTimeout     = 10 * time.Second
	healthCheckInterval = time.Minute
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "flight-supplier-gateway",
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Strs("suppliers", cfg.Suppliers.Enabled).
		Msg("Configuration loaded")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := timeutil.NewRealClock()

	infra, err := setupInfrastructure(ctx, cfg, log, clock)
	if err != nil {
		return err
	}
	defer infra.Close()

	adapters, err := setupSuppliers(ctx, cfg, infra, log, clock)
	if err != nil {
		return err
	}

	limiter := ratelimit.NewSupplierLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})
	for _, a := range adapters {
		limiter.SetLimit(a.adapter.Code(), ratelimit.Config{
			RequestsPerSecond: a.settings.RateLimitRPS,
			BurstSize:         a.settings.RateLimitBurst,
		})
	}

	manager := usecase.NewSupplierManager(supplierAdapters(adapters), &usecase.Config{
		GlobalTimeout:   cfg.Timeouts.GlobalSearch,
		SupplierTimeout: cfg.Timeouts.PerSupplier,
		BookingTimeout:  cfg.Timeouts.Booking,
	}, usecase.Deps{
		Limiter:   limiter,
		Publisher: infra.publisher,
		Clock:     clock,
		Logger:    log,
	})

	go manager.RunHealthChecks(ctx, healthCheckInterval)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log)
	flighthttp.RegisterRoutes(e, flighthttp.NewFlightHandler(manager))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
	}

	return gracefulShutdown(e, log)
}

func supplierAdapters(built []builtSupplier) []domain.SupplierAdapter {
	out := make([]domain.SupplierAdapter, 0, len(built))
	for _, b := range built {
		out = append(out, b.adapter)
	}
	return out
}

// gracefulShutdown drains in-flight requests.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
		return err
	}

	log.Info().Msg("Server stopped")
	return nil
}

// publisherFor returns the Kafka publisher when enabled, a no-op otherwise.
func publisherFor(cfg config.KafkaConfig, log *logger.Logger) (domain.BookingPublisher, func() error, error) {
	if !cfg.Enabled {
		return messaging.NoopPublisher{}, func() error { return nil }, nil
	}
	p, err := messaging.NewKafkaPublisher(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect kafka: %w", err)
	}
	log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("Booking events enabled")
	return p, p.Close, nil
}
