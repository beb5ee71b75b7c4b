//go:build wireinject
// +build wireinject

package di

import (
	"FarmPulse/pkg/config"
	"FarmPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Stores
		ProvideRecordStore,
		ProvideUserRepository,
		ProvideWeatherCache,

		// Domain services
		ProvidePredictor,
		ProvideWeatherService,
		ProvideAuthService,
		ProvideReportRenderer,

		// Use cases and HTTP surface
		ProvideAnalyticsAggregator,
		ProvideHandlers,

		ProvideApp,
	)
	return &server.App{}, nil
}
