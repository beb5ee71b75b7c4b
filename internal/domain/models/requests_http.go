package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type SignupRequest struct {
	Username        string `json:"username" validate:"required,min=4,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// AddRecordRequest mirrors the cost-profit form. All quantities except
// net profit must be positive; a loss is a legitimate net profit value.
type AddRecordRequest struct {
	MarketPrice   float64 `json:"market_price" validate:"required,gt=0"`
	HarvestAmount float64 `json:"harvest_amount" validate:"required,gt=0"`
	TotalCost     float64 `json:"total_cost" validate:"required,gt=0"`
	TotalRevenue  float64 `json:"total_revenue" validate:"required,gt=0"`
	NetProfit     float64 `json:"net_profit"`
}

// ReportRequest carries the numeric report inputs. Unlike
// AddRecordRequest the report tool accepts zeroes so a farmer can
// preview an empty sheet.
type ReportRequest struct {
	MarketPrice   float64 `json:"market_price" validate:"gte=0"`
	HarvestAmount float64 `json:"harvest_amount" validate:"gte=0"`
	TotalCost     float64 `json:"total_cost" validate:"gte=0"`
	TotalRevenue  float64 `json:"total_revenue" validate:"gte=0"`
	NetProfit     float64 `json:"net_profit"`
}

type WeatherRequest struct {
	City string `query:"city" json:"city" validate:"required"`
}

type HistoryRequest struct {
	Limit int `query:"limit" json:"limit" default:"3" validate:"gte=1,lte=100"`
}

type ForecastRequest struct {
	Periods int    `query:"periods" json:"periods" default:"3" validate:"gte=1,lte=24"`
	Kind    string `query:"kind" json:"kind" default:"price" validate:"oneof=price profit"`
}

type SupportRequest struct {
	Name    string `json:"name" validate:"required,max=150"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=500"`
}
