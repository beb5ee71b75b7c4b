package weather

import (
	"context"
	"errors"
	"strconv"
	"time"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/repository"
	"FarmPulse/pkg/cache"
	pkghttp "FarmPulse/pkg/http"
	applogger "FarmPulse/pkg/logger"
	"FarmPulse/pkg/util"
)

const (
	defaultBaseURL  = "https://api.open-meteo.com/v1/forecast"
	defaultTimezone = "Asia/Colombo"
	defaultTTL      = 10 * time.Minute

	fetchFailedMessage = "Unable to fetch weather data. Please try again."
	unknownCityMessage = "Weather is not available for this city."
)

// Config tunes the weather provider integration.
type Config struct {
	BaseURL  string
	Timezone string
	CacheTTL time.Duration
}

// Service fetches conditions from Open-Meteo for a fixed city list and
// caches the answers. Provider failures never surface as errors; the
// report carries an unavailable flag instead so callers always have
// something to render.
type Service struct {
	client  *pkghttp.Client
	cache   cache.Service
	logger  *applogger.Logger
	metrics repository.Metrics
	cfg     Config
	now     func() time.Time
}

func New(client *pkghttp.Client, cacheSvc cache.Service, logger *applogger.Logger, metrics repository.Metrics, cfg Config) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultTTL
	}
	return &Service{
		client:  client,
		cache:   cacheSvc,
		logger:  logger,
		metrics: metrics,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Cities returns the supported city list in a stable order.
func (s *Service) Cities() []models.City {
	return append([]models.City(nil), supportedCities...)
}

// Lookup resolves the city and returns current conditions plus the
// short daily forecast. The greeting always reflects the current local
// time, even on a cache hit.
func (s *Service) Lookup(ctx context.Context, cityName string) models.WeatherReport {
	greeting := util.Greeting(s.cfg.Timezone, s.now())

	city, ok := findCity(cityName)
	if !ok {
		s.metrics.RecordWeatherFetch("unknown_city")
		return models.WeatherReport{
			City:      cityName,
			Greeting:  greeting,
			Available: false,
			Message:   unknownCityMessage,
		}
	}

	cacheKey := "weather:" + city.Name
	var cached models.WeatherReport
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		s.metrics.RecordWeatherFetch("cache_hit")
		cached.Greeting = greeting
		return cached
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("weather cache read failed",
			applogger.String("city", city.Name),
			applogger.Error(err))
	}

	var resp openMeteoResponse
	err := s.client.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    s.cfg.BaseURL,
		QueryParams: map[string][]string{
			"latitude":  {formatCoord(city.Lat)},
			"longitude": {formatCoord(city.Lon)},
			"current":   {"temperature_2m,relative_humidity_2m,wind_speed_10m,precipitation,weather_code"},
			"daily":     {"weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum"},
			"timezone":  {s.cfg.Timezone},
		},
	}, &resp)
	if err != nil {
		s.metrics.RecordWeatherFetch("failed")
		s.logger.Warn("weather provider request failed",
			applogger.String("city", city.Name),
			applogger.Error(err))
		return models.WeatherReport{
			City:      city.Name,
			Greeting:  greeting,
			Available: false,
			Message:   fetchFailedMessage,
		}
	}

	report := buildReport(city.Name, greeting, &resp)
	if err := s.cache.Set(ctx, cacheKey, report, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("weather cache write failed",
			applogger.String("city", city.Name),
			applogger.Error(err))
	}
	s.metrics.RecordWeatherFetch("ok")
	return report
}

// openMeteoResponse mirrors the provider payload shape. Daily values
// come as parallel arrays keyed by date.
type openMeteoResponse struct {
	Current struct {
		Temperature2m      float64 `json:"temperature_2m"`
		RelativeHumidity2m float64 `json:"relative_humidity_2m"`
		WindSpeed10m       float64 `json:"wind_speed_10m"`
		Precipitation      float64 `json:"precipitation"`
		WeatherCode        int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weather_code"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func buildReport(cityName, greeting string, resp *openMeteoResponse) models.WeatherReport {
	report := models.WeatherReport{
		City:      cityName,
		Greeting:  greeting,
		Available: true,
		Current: &models.CurrentWeather{
			TemperatureC:    resp.Current.Temperature2m,
			HumidityPct:     resp.Current.RelativeHumidity2m,
			WindSpeedKMH:    resp.Current.WindSpeed10m,
			PrecipitationMM: resp.Current.Precipitation,
			WeatherCode:     resp.Current.WeatherCode,
			Condition:       conditionFor(resp.Current.WeatherCode),
			Icon:            iconFor(resp.Current.WeatherCode),
		},
	}
	for i, date := range resp.Daily.Time {
		day := models.DailyWeather{Date: date}
		if i < len(resp.Daily.WeatherCode) {
			day.WeatherCode = resp.Daily.WeatherCode[i]
			day.Condition = conditionFor(day.WeatherCode)
			day.Icon = iconFor(day.WeatherCode)
		}
		if i < len(resp.Daily.TemperatureMax) {
			day.TempMaxC = resp.Daily.TemperatureMax[i]
		}
		if i < len(resp.Daily.TemperatureMin) {
			day.TempMinC = resp.Daily.TemperatureMin[i]
		}
		if i < len(resp.Daily.PrecipitationSum) {
			day.PrecipitationMM = resp.Daily.PrecipitationSum[i]
		}
		report.Daily = append(report.Daily, day)
	}
	return report
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
