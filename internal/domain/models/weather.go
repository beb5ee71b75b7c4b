package models

// City is a predefined lookup entry mapping a town to coordinates.
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// CurrentWeather holds current conditions for a city.
type CurrentWeather struct {
	TemperatureC    float64 `json:"temperature_c"`
	HumidityPct     float64 `json:"humidity_pct"`
	WindSpeedKMH    float64 `json:"wind_speed_kmh"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	WeatherCode     int     `json:"weather_code"`
	Condition       string  `json:"condition"`
	Icon            string  `json:"icon"`
}

// DailyWeather is one day of the short forecast.
type DailyWeather struct {
	Date            string  `json:"date"`
	WeatherCode     int     `json:"weather_code"`
	Condition       string  `json:"condition"`
	Icon            string  `json:"icon"`
	TempMaxC        float64 `json:"temp_max_c"`
	TempMinC        float64 `json:"temp_min_c"`
	PrecipitationMM float64 `json:"precipitation_mm"`
}

// WeatherReport is the service answer for one city. Available is false
// when the provider could not be reached or the city is unknown; the
// report is still returned so pages can render a notice instead of
// failing outright.
type WeatherReport struct {
	City      string         `json:"city"`
	Greeting  string         `json:"greeting,omitempty"`
	Available bool           `json:"available"`
	Message   string         `json:"message,omitempty"`
	Current   *CurrentWeather `json:"current,omitempty"`
	Daily     []DailyWeather `json:"daily,omitempty"`
}
