package usecase

import (
	"context"
	"errors"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/service"
	"FarmPulse/internal/service/predictor"
	applogger "FarmPulse/pkg/logger"
)

// Page-facing messages for prediction failures. The page renders these
// inline instead of failing the whole analytics payload.
const (
	msgNotTrained = "Model not trained. Need at least 3 data points."
	msgNoData     = "No data available for prediction."
	msgPredictErr = "Prediction is temporarily unavailable."
)

const (
	defaultHistoryLimit  = 3
	defaultForecastSteps = 3
)

// AnalyticsAggregator assembles the analytics view from the predictor:
// stats, recent history and both forecasts in a single payload, with
// per-forecast error text so partial data still renders.
type AnalyticsAggregator struct {
	predictor service.MarketPredictor
	logger    *applogger.Logger
}

func NewAnalyticsAggregator(p service.MarketPredictor, logger *applogger.Logger) *AnalyticsAggregator {
	return &AnalyticsAggregator{predictor: p, logger: logger}
}

// Page builds the full analytics payload for one user.
func (a *AnalyticsAggregator) Page(ctx context.Context, userID string) models.AnalyticsPage {
	page := models.AnalyticsPage{
		Stats:          a.predictor.ModelStats(ctx, userID),
		HistoricalData: a.predictor.HistoricalData(ctx, userID, defaultHistoryLimit),
	}

	prices, err := a.predictor.PredictFuturePrices(ctx, defaultForecastSteps)
	if err != nil {
		page.PriceError = predictionMessage(err)
		a.logDegraded("price", err)
	} else {
		page.PricePredictions = prices
	}

	profits, err := a.predictor.PredictFutureProfits(ctx, defaultForecastSteps)
	if err != nil {
		page.ProfitError = predictionMessage(err)
		a.logDegraded("profit", err)
	} else {
		page.ProfitPredictions = profits
	}
	return page
}

func (a *AnalyticsAggregator) logDegraded(kind string, err error) {
	// Untrained is the normal state for new users, not a fault.
	if errors.Is(err, predictor.ErrNotTrained) || errors.Is(err, predictor.ErrNoData) {
		a.logger.Debug("forecast unavailable", applogger.String("kind", kind), applogger.Error(err))
		return
	}
	a.logger.Error("forecast failed", applogger.String("kind", kind), applogger.Error(err))
}

func predictionMessage(err error) string {
	switch {
	case errors.Is(err, predictor.ErrNotTrained):
		return msgNotTrained
	case errors.Is(err, predictor.ErrNoData):
		return msgNoData
	default:
		return msgPredictErr
	}
}
