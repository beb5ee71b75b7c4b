package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"FarmPulse/pkg/cache"
	pkghttp "FarmPulse/pkg/http"
	applogger "FarmPulse/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordAdded(string)               {}
func (nopMetrics) RecordTraining(string)            {}
func (nopMetrics) RecordPrediction(string, string)  {}
func (nopMetrics) RecordError(string)               {}
func (nopMetrics) RecordWeatherFetch(string)        {}
func (nopMetrics) RecordReportRendered()            {}
func (nopMetrics) RecordModelScore(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)    {}

const providerPayload = `{
	"current": {
		"temperature_2m": 29.4,
		"relative_humidity_2m": 78,
		"wind_speed_10m": 11.2,
		"precipitation": 0.3,
		"weather_code": 3
	},
	"daily": {
		"time": ["2026-03-01", "2026-03-02"],
		"weather_code": [61, 95],
		"temperature_2m_max": [31.0, 30.2],
		"temperature_2m_min": [23.5, 23.1],
		"precipitation_sum": [4.2, 12.7]
	}
}`

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func newTestService(t *testing.T, baseURL string) *Service {
	t.Helper()
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })
	return New(pkghttp.NewClient(pkghttp.WithTimeout(2*time.Second)), mem, testLogger(t), nopMetrics{}, Config{
		BaseURL:  baseURL,
		CacheTTL: time.Minute,
	})
}

func TestLookupParsesProviderPayload(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		q := r.URL.Query()
		if q.Get("latitude") == "" || q.Get("longitude") == "" {
			t.Errorf("missing coordinates in query: %s", r.URL.RawQuery)
		}
		if q.Get("timezone") != "Asia/Colombo" {
			t.Errorf("timezone %q", q.Get("timezone"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(providerPayload))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	report := svc.Lookup(context.Background(), "Anuradhapura")

	if !report.Available {
		t.Fatalf("report unavailable: %q", report.Message)
	}
	if report.City != "Anuradhapura" {
		t.Fatalf("city %q", report.City)
	}
	if report.Greeting == "" {
		t.Fatalf("missing greeting")
	}
	if report.Current == nil || report.Current.TemperatureC != 29.4 {
		t.Fatalf("unexpected current conditions: %+v", report.Current)
	}
	if report.Current.Condition != "Overcast" || report.Current.Icon != "overcast" {
		t.Fatalf("code 3 mapped to %q/%q", report.Current.Condition, report.Current.Icon)
	}
	if len(report.Daily) != 2 {
		t.Fatalf("expected 2 daily entries, got %d", len(report.Daily))
	}
	if report.Daily[1].Condition != "Thunderstorm" || report.Daily[1].Icon != "thunderstorm" {
		t.Fatalf("code 95 mapped to %q/%q", report.Daily[1].Condition, report.Daily[1].Icon)
	}
	if report.Daily[0].TempMaxC != 31.0 || report.Daily[0].PrecipitationMM != 4.2 {
		t.Fatalf("daily values not carried: %+v", report.Daily[0])
	}

	// Second lookup answers from cache.
	again := svc.Lookup(context.Background(), "Anuradhapura")
	if !again.Available || again.Current.TemperatureC != 29.4 {
		t.Fatalf("cached report wrong: %+v", again)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 provider hit, got %d", hits.Load())
	}
}

func TestLookupCityIsCaseInsensitive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(providerPayload))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	report := svc.Lookup(context.Background(), "mihintale")
	if !report.Available {
		t.Fatalf("report unavailable: %q", report.Message)
	}
	if report.City != "Mihintale" {
		t.Fatalf("city not canonicalised: %q", report.City)
	}
}

func TestLookupUnknownCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Errorf("provider should not be called for unknown city")
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	report := svc.Lookup(context.Background(), "Atlantis")
	if report.Available {
		t.Fatalf("unknown city should be unavailable")
	}
	if report.Message == "" || report.City != "Atlantis" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestLookupProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	report := svc.Lookup(context.Background(), "Kekirawa")
	if report.Available {
		t.Fatalf("provider failure should be unavailable")
	}
	if report.Message == "" || report.Greeting == "" {
		t.Fatalf("failure report missing message or greeting: %+v", report)
	}
}

func TestCitiesStableList(t *testing.T) {
	svc := newTestService(t, "http://unused.invalid")
	cities := svc.Cities()
	if len(cities) != 12 {
		t.Fatalf("expected 12 cities, got %d", len(cities))
	}
	if cities[0].Name != "Anuradhapura" {
		t.Fatalf("first city %q", cities[0].Name)
	}
	// Callers get a copy, not the package table.
	cities[0].Name = "mutated"
	if svc.Cities()[0].Name != "Anuradhapura" {
		t.Fatalf("city table mutated through returned slice")
	}
}
