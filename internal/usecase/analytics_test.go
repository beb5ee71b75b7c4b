package usecase

import (
	"context"
	"errors"
	"testing"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/service/predictor"
	applogger "FarmPulse/pkg/logger"
)

type stubPredictor struct {
	stats     models.ModelStats
	history   []models.HistoryPoint
	prices    []models.PricePoint
	profits   []models.ProfitPoint
	priceErr  error
	profitErr error

	historyLimit int
	periods      []int
}

func (s *stubPredictor) AddRecord(context.Context, models.RecordInput) ([]models.MarketRecord, error) {
	return nil, nil
}

func (s *stubPredictor) ClearUserData(context.Context, string) error { return nil }

func (s *stubPredictor) PredictFuturePrices(_ context.Context, periods int) ([]models.PricePoint, error) {
	s.periods = append(s.periods, periods)
	return s.prices, s.priceErr
}

func (s *stubPredictor) PredictFutureProfits(_ context.Context, periods int) ([]models.ProfitPoint, error) {
	s.periods = append(s.periods, periods)
	return s.profits, s.profitErr
}

func (s *stubPredictor) HistoricalData(_ context.Context, _ string, limit int) []models.HistoryPoint {
	s.historyLimit = limit
	return s.history
}

func (s *stubPredictor) ModelStats(context.Context, string) models.ModelStats { return s.stats }

func newAggregator(t *testing.T, p *stubPredictor) *AnalyticsAggregator {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewAnalyticsAggregator(p, log)
}

func TestPageAssemblesAllParts(t *testing.T) {
	p := &stubPredictor{
		stats:   models.ModelStats{TotalDataPoints: 5, ModelTrained: true},
		history: []models.HistoryPoint{{Month: "Month 1", MarketPrice: 5}},
		prices:  []models.PricePoint{{Date: "2026-04-01", PredictedPrice: 5.5}},
		profits: []models.ProfitPoint{{Date: "2026-04-01", PredictedProfit: 120}},
	}
	page := newAggregator(t, p).Page(context.Background(), "u1")

	if page.Stats.TotalDataPoints != 5 {
		t.Fatalf("stats not carried: %+v", page.Stats)
	}
	if len(page.HistoricalData) != 1 || p.historyLimit != 3 {
		t.Fatalf("history limit %d, points %d", p.historyLimit, len(page.HistoricalData))
	}
	if len(page.PricePredictions) != 1 || len(page.ProfitPredictions) != 1 {
		t.Fatalf("forecasts missing: %+v", page)
	}
	if page.PriceError != "" || page.ProfitError != "" {
		t.Fatalf("unexpected errors: %q %q", page.PriceError, page.ProfitError)
	}
	for _, periods := range p.periods {
		if periods != 3 {
			t.Fatalf("forecast periods %d, want 3", periods)
		}
	}
}

func TestPageDegradesPerForecast(t *testing.T) {
	p := &stubPredictor{
		priceErr: predictor.ErrNotTrained,
		profits:  []models.ProfitPoint{{Date: "2026-04-01", PredictedProfit: -20}},
	}
	page := newAggregator(t, p).Page(context.Background(), "u1")

	if page.PriceError != msgNotTrained {
		t.Fatalf("price error %q", page.PriceError)
	}
	if len(page.PricePredictions) != 0 {
		t.Fatalf("price predictions should be empty")
	}
	if page.ProfitError != "" || len(page.ProfitPredictions) != 1 {
		t.Fatalf("profit forecast should survive: %+v", page)
	}
}

func TestPredictionMessages(t *testing.T) {
	if got := predictionMessage(predictor.ErrNotTrained); got != msgNotTrained {
		t.Errorf("not trained: %q", got)
	}
	if got := predictionMessage(predictor.ErrNoData); got != msgNoData {
		t.Errorf("no data: %q", got)
	}
	if got := predictionMessage(errors.New("boom")); got != msgPredictErr {
		t.Errorf("generic: %q", got)
	}
}
