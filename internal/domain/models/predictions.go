package models

// PricePoint is one step of a price forecast.
type PricePoint struct {
	Date           string  `json:"date"`
	PredictedPrice float64 `json:"predicted_price"`
}

// ProfitPoint is one step of a profit forecast.
type ProfitPoint struct {
	Date            string  `json:"date"`
	PredictedProfit float64 `json:"predicted_profit"`
}

// HistoryPoint is one labelled row of recent history. "Month 1" is the
// most recently inserted record, not a calendar month.
type HistoryPoint struct {
	Month       string  `json:"month"`
	MarketPrice float64 `json:"market_price"`
	NetProfit   float64 `json:"net_profit"`
}

// ModelPerformance holds in-sample fit quality over the filtered set.
// These numbers are optimistic compared to the hold-out diagnostics
// logged during training.
type ModelPerformance struct {
	MSE     float64 `json:"mse"`
	R2Score float64 `json:"r2_score"`
}

// DateRange is the min/max record timestamp of the filtered set.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ModelStats summarises the store and model state for one user (or all
// users when no filter is given).
type ModelStats struct {
	TotalDataPoints  int                         `json:"total_data_points"`
	ModelTrained     bool                        `json:"model_trained"`
	Message          string                      `json:"message,omitempty"`
	AvgMarketPrice   float64                     `json:"avg_market_price"`
	AvgProfit        float64                     `json:"avg_profit"`
	TotalUsers       int                         `json:"total_users"`
	ModelType        string                      `json:"model_type"`
	TrainingStatus   string                      `json:"training_status"`
	ModelPerformance map[string]ModelPerformance `json:"model_performance,omitempty"`
	DateRange        *DateRange                  `json:"date_range,omitempty"`
}

// AnalyticsPage is the aggregate payload for the analytics view: stats,
// recent history and both forecasts, with per-part error messages so the
// page can always render with partial data.
type AnalyticsPage struct {
	Stats             ModelStats     `json:"stats"`
	HistoricalData    []HistoryPoint `json:"historical_data"`
	PricePredictions  []PricePoint   `json:"price_predictions,omitempty"`
	ProfitPredictions []ProfitPoint  `json:"profit_predictions,omitempty"`
	PriceError        string         `json:"price_error,omitempty"`
	ProfitError       string         `json:"profit_error,omitempty"`
}
