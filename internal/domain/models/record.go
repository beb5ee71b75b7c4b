package models

// MarketRecord is one submitted cost/profit observation. Records are
// append-only: the store never mutates a record in place, and removal
// happens only as whole-user deletion.
type MarketRecord struct {
	UserID        string  `json:"user_id"`
	MarketPrice   float64 `json:"market_price"`
	HarvestAmount float64 `json:"harvest_amount"`
	TotalCost     float64 `json:"total_cost"`
	TotalRevenue  float64 `json:"total_revenue"`
	NetProfit     float64 `json:"net_profit"`
	Timestamp     string  `json:"timestamp"` // ISO-8601, assigned at insertion
}

// RecordInput carries the caller-supplied fields of a new observation.
// The timestamp is generated at insertion time, not accepted from callers.
type RecordInput struct {
	UserID        string
	MarketPrice   float64
	HarvestAmount float64
	TotalCost     float64
	TotalRevenue  float64
	NetProfit     float64
}
