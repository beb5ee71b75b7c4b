package service

import (
	"context"

	"FarmPulse/internal/domain/models"
)

// MarketPredictor owns the record store and the two regression models.
// It never panics across this boundary: prediction calls report an
// untrained model or a fit problem as an error value.
type MarketPredictor interface {
	// AddRecord appends an observation, persists the store and retrains
	// both models. It returns the updated record set.
	AddRecord(ctx context.Context, in models.RecordInput) ([]models.MarketRecord, error)
	// ClearUserData removes every record of the given user and retrains.
	ClearUserData(ctx context.Context, userID string) error
	// PredictFuturePrices forecasts one price per 30-day period.
	PredictFuturePrices(ctx context.Context, periods int) ([]models.PricePoint, error)
	// PredictFutureProfits forecasts one net profit per 30-day period.
	PredictFutureProfits(ctx context.Context, periods int) ([]models.ProfitPoint, error)
	// HistoricalData returns up to limit records, most recent first,
	// labelled "Month 1".."Month N".
	HistoricalData(ctx context.Context, userID string, limit int) []models.HistoryPoint
	// ModelStats summarises the (optionally user-filtered) store.
	ModelStats(ctx context.Context, userID string) models.ModelStats
}

// WeatherService resolves a city to conditions and a short forecast.
// Provider failures surface as an unavailable report, never as an error.
type WeatherService interface {
	Lookup(ctx context.Context, city string) models.WeatherReport
	Cities() []models.City
}

// ReportRenderer produces a downloadable cost-profit document.
type ReportRenderer interface {
	Render(ctx context.Context, username string, req models.ReportRequest) ([]byte, error)
}
