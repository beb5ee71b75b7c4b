package predictor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/repository"
	applogger "FarmPulse/pkg/logger"
	"FarmPulse/pkg/util"
)

// Sentinel errors for prediction calls. Handlers turn these into page
// messages instead of failing the whole analytics payload.
var (
	ErrNotTrained = errors.New("model not trained: need at least 3 data points")
	ErrNoData     = errors.New("no data available for prediction")
)

const (
	modelTypeName = "LinearRegression"
	forecastStep  = 30 * 24 * time.Hour
	dateLayout    = "2006-01-02"
)

// Config tunes the training pipeline.
type Config struct {
	MinSamples   int
	RecentWindow int
	TestFraction float64
	SplitSeed    int64
}

// Service implements service.MarketPredictor over a shared record store.
// All mutations and retrains run under one mutex: the store is written
// whole-file, so concurrent appends without the lock would lose records.
type Service struct {
	store   repository.RecordStore
	logger  *applogger.Logger
	metrics repository.Metrics
	cfg     Config
	now     func() time.Time

	mu            sync.RWMutex
	priceModel    linearModel
	priceScaler   standardScaler
	profitModel   linearModel
	profitScaler  standardScaler
	priceTrained  bool
	profitTrained bool
}

// New builds the predictor and trains both models from whatever the
// store already holds. Models are not persisted; a restart rebuilds them
// from the records.
func New(store repository.RecordStore, logger *applogger.Logger, metrics repository.Metrics, cfg Config) *Service {
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = 3
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = 5
	}
	if cfg.TestFraction <= 0 || cfg.TestFraction >= 1 {
		cfg.TestFraction = 0.2
	}
	if cfg.SplitSeed == 0 {
		cfg.SplitSeed = 42
	}
	s := &Service{
		store:   store,
		logger:  logger,
		metrics: metrics,
		cfg:     cfg,
		now:     time.Now,
	}
	s.retrainLocked(context.Background())
	return s
}

// AddRecord appends the observation with a server-side timestamp, saves
// the store and retrains. The caller gets the full updated record set.
func (s *Service) AddRecord(ctx context.Context, in models.RecordInput) ([]models.MarketRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.store.Load(ctx)
	records = append(records, models.MarketRecord{
		UserID:        in.UserID,
		MarketPrice:   in.MarketPrice,
		HarvestAmount: in.HarvestAmount,
		TotalCost:     in.TotalCost,
		TotalRevenue:  in.TotalRevenue,
		NetProfit:     in.NetProfit,
		Timestamp:     s.now().Format(time.RFC3339Nano),
	})
	if err := s.store.Save(ctx, records); err != nil {
		s.metrics.RecordError("store_save")
		return nil, err
	}
	s.metrics.RecordAdded(in.UserID)
	s.retrainLocked(ctx)
	return records, nil
}

// ClearUserData drops every record for the user and retrains on the
// survivors. Clearing an unknown user is a no-op.
func (s *Service) ClearUserData(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.store.Load(ctx)
	kept := records[:0:0]
	for _, r := range records {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	if kept == nil {
		kept = []models.MarketRecord{}
	}
	if err := s.store.Save(ctx, kept); err != nil {
		s.metrics.RecordError("store_save")
		return err
	}
	s.retrainLocked(ctx)
	return nil
}

// PredictFuturePrices forecasts one price per 30-day step. The forecast
// is flat: every step predicts from the mean features of the most
// recently inserted records.
func (s *Service) PredictFuturePrices(ctx context.Context, periods int) ([]models.PricePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.priceTrained {
		s.metrics.RecordPrediction("price", "untrained")
		return nil, ErrNotTrained
	}
	_, avgHarvest, avgCost, err := s.recentAverages(ctx)
	if err != nil {
		s.metrics.RecordPrediction("price", "error")
		return nil, err
	}
	row, err := s.priceScaler.transformRow([]float64{avgHarvest, avgCost})
	if err != nil {
		s.metrics.RecordPrediction("price", "error")
		return nil, err
	}
	price, err := s.priceModel.predict(row)
	if err != nil {
		s.metrics.RecordPrediction("price", "error")
		return nil, err
	}
	if price < 0 {
		price = 0
	}
	price = util.Round2(price)

	points := make([]models.PricePoint, 0, periods)
	base := s.now()
	for i := 1; i <= periods; i++ {
		points = append(points, models.PricePoint{
			Date:           base.Add(time.Duration(i) * forecastStep).Format(dateLayout),
			PredictedPrice: price,
		})
	}
	s.metrics.RecordPrediction("price", "ok")
	return points, nil
}

// PredictFutureProfits mirrors PredictFuturePrices for net profit,
// except negative profits are reported as-is.
func (s *Service) PredictFutureProfits(ctx context.Context, periods int) ([]models.ProfitPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.profitTrained {
		s.metrics.RecordPrediction("profit", "untrained")
		return nil, ErrNotTrained
	}
	avgPrice, avgHarvest, avgCost, err := s.recentAverages(ctx)
	if err != nil {
		s.metrics.RecordPrediction("profit", "error")
		return nil, err
	}
	row, err := s.profitScaler.transformRow([]float64{avgPrice, avgHarvest, avgCost})
	if err != nil {
		s.metrics.RecordPrediction("profit", "error")
		return nil, err
	}
	profit, err := s.profitModel.predict(row)
	if err != nil {
		s.metrics.RecordPrediction("profit", "error")
		return nil, err
	}
	profit = util.Round2(profit)

	points := make([]models.ProfitPoint, 0, periods)
	base := s.now()
	for i := 1; i <= periods; i++ {
		points = append(points, models.ProfitPoint{
			Date:            base.Add(time.Duration(i) * forecastStep).Format(dateLayout),
			PredictedProfit: profit,
		})
	}
	s.metrics.RecordPrediction("profit", "ok")
	return points, nil
}

// HistoricalData returns up to limit records, most recent first. "Month 1"
// is the newest record by timestamp, not a calendar month.
func (s *Service) HistoricalData(ctx context.Context, userID string, limit int) []models.HistoryPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := filterByUser(s.store.Load(ctx), userID)
	sort.SliceStable(records, func(i, j int) bool {
		return recordTime(records[i]).After(recordTime(records[j]))
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	points := make([]models.HistoryPoint, 0, len(records))
	for i, r := range records {
		points = append(points, models.HistoryPoint{
			Month:       fmt.Sprintf("Month %d", i+1),
			MarketPrice: r.MarketPrice,
			NetProfit:   r.NetProfit,
		})
	}
	return points
}

// ModelStats summarises the user-filtered record set. The performance
// numbers are in-sample over the filtered set; the hold-out scores from
// training only appear in logs and metrics.
func (s *Service) ModelStats(ctx context.Context, userID string) models.ModelStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := filterByUser(s.store.Load(ctx), userID)
	if len(records) == 0 {
		totalUsers := 0
		if userID != "" {
			totalUsers = 1
		}
		return models.ModelStats{
			TotalDataPoints: 0,
			ModelTrained:    false,
			Message:         "No data available",
			TotalUsers:      totalUsers,
			ModelType:       modelTypeName,
			TrainingStatus:  "Not trained",
		}
	}

	var sumPrice, sumProfit float64
	users := make(map[string]struct{})
	minTS, maxTS := records[0].Timestamp, records[0].Timestamp
	minT, maxT := recordTime(records[0]), recordTime(records[0])
	for _, r := range records {
		sumPrice += r.MarketPrice
		sumProfit += r.NetProfit
		users[r.UserID] = struct{}{}
		if t := recordTime(r); t.Before(minT) {
			minT, minTS = t, r.Timestamp
		} else if t.After(maxT) {
			maxT, maxTS = t, r.Timestamp
		}
	}
	n := float64(len(records))

	status := "Partially trained"
	if s.priceTrained && s.profitTrained {
		status = "Trained"
	}
	stats := models.ModelStats{
		TotalDataPoints: len(records),
		ModelTrained:    s.priceTrained && s.profitTrained,
		AvgMarketPrice:  util.Round2(sumPrice / n),
		AvgProfit:       util.Round2(sumProfit / n),
		TotalUsers:      len(users),
		ModelType:       modelTypeName,
		TrainingStatus:  status,
		DateRange:       &models.DateRange{Start: minTS, End: maxTS},
	}

	perf := make(map[string]models.ModelPerformance)
	if s.priceTrained {
		if p, ok := s.inSampleScores(records, "price"); ok {
			perf["price_model"] = p
		}
	}
	if s.profitTrained {
		if p, ok := s.inSampleScores(records, "profit"); ok {
			perf["profit_model"] = p
		}
	}
	if len(perf) > 0 {
		stats.ModelPerformance = perf
	}
	return stats
}

// recentAverages means the features of the last RecentWindow inserted
// records, store order, across all users.
func (s *Service) recentAverages(ctx context.Context) (avgPrice, avgHarvest, avgCost float64, err error) {
	records := s.store.Load(ctx)
	if len(records) == 0 {
		return 0, 0, 0, ErrNoData
	}
	start := len(records) - s.cfg.RecentWindow
	if start < 0 {
		start = 0
	}
	recent := records[start:]
	for _, r := range recent {
		avgPrice += r.MarketPrice
		avgHarvest += r.HarvestAmount
		avgCost += r.TotalCost
	}
	n := float64(len(recent))
	return avgPrice / n, avgHarvest / n, avgCost / n, nil
}

// retrainLocked refits both models from the whole store. Callers hold
// the write lock (construction runs before the service is shared). Any
// fit problem leaves both models untrained with the store intact.
func (s *Service) retrainLocked(ctx context.Context) {
	started := time.Now()
	records := s.store.Load(ctx)
	if len(records) < s.cfg.MinSamples {
		s.priceTrained = false
		s.profitTrained = false
		s.metrics.RecordTraining("skipped")
		s.logger.Debug("training skipped, not enough data",
			applogger.Int("records", len(records)),
			applogger.Int("min_samples", s.cfg.MinSamples))
		return
	}

	if err := s.fitModels(records); err != nil {
		s.priceTrained = false
		s.profitTrained = false
		s.metrics.RecordTraining("failed")
		s.logger.Error("model training failed", applogger.Error(err))
		return
	}
	s.priceTrained = true
	s.profitTrained = true
	s.metrics.RecordTraining("ok")
	s.metrics.RecordLatency("train", time.Since(started).Seconds())
}

func (s *Service) fitModels(records []models.MarketRecord) error {
	priceFeatures := make([][]float64, len(records))
	profitFeatures := make([][]float64, len(records))
	prices := make([]float64, len(records))
	profits := make([]float64, len(records))
	for i, r := range records {
		priceFeatures[i] = []float64{r.HarvestAmount, r.TotalCost}
		profitFeatures[i] = []float64{r.MarketPrice, r.HarvestAmount, r.TotalCost}
		prices[i] = r.MarketPrice
		profits[i] = r.NetProfit
	}

	// Scalers are fit on the full set before splitting, so the same
	// transform serves training, evaluation and prediction.
	if err := s.priceScaler.fit(priceFeatures); err != nil {
		return err
	}
	if err := s.profitScaler.fit(profitFeatures); err != nil {
		return err
	}
	priceScaled, err := s.priceScaler.transform(priceFeatures)
	if err != nil {
		return err
	}
	profitScaled, err := s.profitScaler.transform(profitFeatures)
	if err != nil {
		return err
	}

	trainIdx, testIdx := trainTestSplit(len(records), s.cfg.TestFraction, s.cfg.SplitSeed)

	if err := s.priceModel.fit(pick(priceScaled, trainIdx), pickF(prices, trainIdx)); err != nil {
		return err
	}
	if err := s.profitModel.fit(pick(profitScaled, trainIdx), pickF(profits, trainIdx)); err != nil {
		return err
	}

	// Hold-out diagnostics. These scores are logged and exported only;
	// stats endpoints report in-sample numbers over the filtered set.
	priceMSE, priceR2, err := holdOutScores(&s.priceModel, pick(priceScaled, testIdx), pickF(prices, testIdx))
	if err != nil {
		return err
	}
	profitMSE, profitR2, err := holdOutScores(&s.profitModel, pick(profitScaled, testIdx), pickF(profits, testIdx))
	if err != nil {
		return err
	}
	s.metrics.RecordModelScore("price", priceR2)
	s.metrics.RecordModelScore("profit", profitR2)
	s.logger.Info("models trained",
		applogger.Int("records", len(records)),
		applogger.Float64("price_mse", priceMSE),
		applogger.Float64("price_r2", priceR2),
		applogger.Float64("profit_mse", profitMSE),
		applogger.Float64("profit_r2", profitR2))
	return nil
}

// inSampleScores evaluates one trained model over the given records.
func (s *Service) inSampleScores(records []models.MarketRecord, kind string) (models.ModelPerformance, bool) {
	targets := make([]float64, len(records))
	preds := make([]float64, len(records))
	for i, r := range records {
		var row []float64
		var err error
		switch kind {
		case "price":
			targets[i] = r.MarketPrice
			row, err = s.priceScaler.transformRow([]float64{r.HarvestAmount, r.TotalCost})
			if err == nil {
				preds[i], err = s.priceModel.predict(row)
			}
		default:
			targets[i] = r.NetProfit
			row, err = s.profitScaler.transformRow([]float64{r.MarketPrice, r.HarvestAmount, r.TotalCost})
			if err == nil {
				preds[i], err = s.profitModel.predict(row)
			}
		}
		if err != nil {
			return models.ModelPerformance{}, false
		}
	}
	return models.ModelPerformance{
		MSE:     util.Round2(meanSquaredError(targets, preds)),
		R2Score: util.Round3(r2Score(targets, preds)),
	}, true
}

func holdOutScores(m *linearModel, features [][]float64, targets []float64) (mse, r2 float64, err error) {
	preds := make([]float64, len(features))
	for i, row := range features {
		preds[i], err = m.predict(row)
		if err != nil {
			return 0, 0, err
		}
	}
	return meanSquaredError(targets, preds), r2Score(targets, preds), nil
}

func filterByUser(records []models.MarketRecord, userID string) []models.MarketRecord {
	if userID == "" {
		return records
	}
	out := make([]models.MarketRecord, 0, len(records))
	for _, r := range records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// recordTime parses a record timestamp, falling back to the zero time
// for records with unparseable timestamps so sorting stays total.
func recordTime(r models.MarketRecord) time.Time {
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

func pick(rows [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

func pickF(vals []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}
