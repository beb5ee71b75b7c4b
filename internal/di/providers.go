package di

import (
	"fmt"
	"io"

	"FarmPulse/internal/domain/repository"
	domservice "FarmPulse/internal/domain/service"
	"FarmPulse/internal/handler/api"
	internalrepo "FarmPulse/internal/repository"
	authsvc "FarmPulse/internal/service/auth"
	"FarmPulse/internal/service/predictor"
	"FarmPulse/internal/service/report"
	"FarmPulse/internal/service/weather"
	"FarmPulse/internal/usecase"
	"FarmPulse/pkg/cache"
	"FarmPulse/pkg/config"
	xhttp "FarmPulse/pkg/http"
	applogger "FarmPulse/pkg/logger"
	"FarmPulse/pkg/metrics"
	"FarmPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRecordStore creates the JSON flat-file record store.
func ProvideRecordStore(cfg *config.Config, logger *applogger.Logger) repository.RecordStore {
	return internalrepo.NewFileRecordStore(cfg.Store.DataFile, logger)
}

// ProvideUserRepository opens the SQLite account store.
func ProvideUserRepository(cfg *config.Config) (repository.UserRepository, error) {
	repo, err := internalrepo.NewSQLiteUserRepository(cfg.Store.UsersDSN)
	if err != nil {
		return nil, fmt.Errorf("user repository: %w", err)
	}
	return repo, nil
}

// ProvidePredictor creates the market predictor, training on whatever
// the store already holds.
func ProvidePredictor(store repository.RecordStore, logger *applogger.Logger, m repository.Metrics, cfg *config.Config) domservice.MarketPredictor {
	return predictor.New(store, logger, m, predictor.Config{
		MinSamples:   cfg.Predictor.MinSamples,
		RecentWindow: cfg.Predictor.RecentWindow,
		TestFraction: cfg.Predictor.TestFraction,
		SplitSeed:    cfg.Predictor.SplitSeed,
	})
}

// ProvideWeatherCache picks the cache backend for weather lookups:
// in-process memory by default, layered over Redis when configured.
func ProvideWeatherCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Weather.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Weather.Redis.Addr),
		cache.WithRedisAuth(cfg.Weather.Redis.Password, cfg.Weather.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideWeatherService creates the Open-Meteo integration.
func ProvideWeatherService(cfg *config.Config, cacheSvc cache.Service, logger *applogger.Logger, m repository.Metrics) domservice.WeatherService {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Weather.Timeout))
	return weather.New(client, cacheSvc, logger, m, weather.Config{
		BaseURL:  cfg.Weather.BaseURL,
		Timezone: cfg.Weather.Timezone,
		CacheTTL: cfg.Weather.CacheTTL,
	})
}

// ProvideAuthService creates the account service.
func ProvideAuthService(users repository.UserRepository, logger *applogger.Logger, m repository.Metrics, cfg *config.Config) *authsvc.Service {
	return authsvc.New(users, logger, m, authsvc.Config{
		JWTSecret:      cfg.Auth.JWTSecret,
		TokenTTL:       cfg.Auth.TokenTTL,
		BcryptCost:     cfg.Auth.BcryptCost,
		LoginBurst:     cfg.Auth.LoginBurst,
		LoginPerSecond: cfg.Auth.LoginPerSecond,
	})
}

// ProvideReportRenderer creates the PDF report renderer.
func ProvideReportRenderer(logger *applogger.Logger, m repository.Metrics) domservice.ReportRenderer {
	return report.NewPDFRenderer(logger, m)
}

// ProvideAnalyticsAggregator creates the analytics page use case.
func ProvideAnalyticsAggregator(p domservice.MarketPredictor, logger *applogger.Logger) *usecase.AnalyticsAggregator {
	return usecase.NewAnalyticsAggregator(p, logger)
}

// ProvideHandlers assembles the HTTP route surface.
func ProvideHandlers(
	cfg *config.Config,
	logger *applogger.Logger,
	auth *authsvc.Service,
	p domservice.MarketPredictor,
	agg *usecase.AnalyticsAggregator,
	weatherSvc domservice.WeatherService,
	renderer domservice.ReportRenderer,
) xhttp.Handler {
	return xhttp.Handlers{
		api.NewAuthHandler(auth, logger, cfg.Weather.Timezone),
		api.NewAnalyticsHandler(p, agg, auth, logger),
		api.NewWeatherHandler(weatherSvc, auth),
		api.NewReportsHandler(renderer, auth, logger),
		api.NewSupportHandler(auth, logger),
	}
}

// ProvideApp assembles the application with its closable resources.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	users repository.UserRepository,
	cacheSvc cache.Service,
) *server.App {
	closers := []io.Closer{users, cacheSvc}
	return server.New(cfg, logger, handler, closers...)
}
