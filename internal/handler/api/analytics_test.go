package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/service/predictor"
	"FarmPulse/internal/usecase"
	xhttp "FarmPulse/pkg/http"
	applogger "FarmPulse/pkg/logger"
)

type stubVerifier struct {
	id  int64
	err error
}

func (v stubVerifier) VerifyToken(string) (int64, error) { return v.id, v.err }

type stubPredictor struct {
	records   []models.MarketRecord
	addErr    error
	priceErr  error
	addedBy   string
	clearedBy string
}

func (s *stubPredictor) AddRecord(_ context.Context, in models.RecordInput) ([]models.MarketRecord, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.addedBy = in.UserID
	s.records = append(s.records, models.MarketRecord{UserID: in.UserID})
	return s.records, nil
}

func (s *stubPredictor) ClearUserData(_ context.Context, userID string) error {
	s.clearedBy = userID
	return nil
}

func (s *stubPredictor) PredictFuturePrices(context.Context, int) ([]models.PricePoint, error) {
	if s.priceErr != nil {
		return nil, s.priceErr
	}
	return []models.PricePoint{{Date: "2026-04-01", PredictedPrice: 5.5}}, nil
}

func (s *stubPredictor) PredictFutureProfits(context.Context, int) ([]models.ProfitPoint, error) {
	return []models.ProfitPoint{{Date: "2026-04-01", PredictedProfit: 100}}, nil
}

func (s *stubPredictor) HistoricalData(context.Context, string, int) []models.HistoryPoint {
	return []models.HistoryPoint{{Month: "Month 1", MarketPrice: 5}}
}

func (s *stubPredictor) ModelStats(context.Context, string) models.ModelStats {
	return models.ModelStats{TotalDataPoints: len(s.records)}
}

func newAnalyticsEcho(t *testing.T, p *stubPredictor, verifier stubVerifier) *echo.Echo {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	e := echo.New()
	agg := usecase.NewAnalyticsAggregator(p, log)
	NewAnalyticsHandler(p, agg, verifier, log).RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) xhttp.APIResponse {
	t.Helper()
	var env xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestAddRecordEndpoint(t *testing.T) {
	p := &stubPredictor{}
	e := newAnalyticsEcho(t, p, stubVerifier{id: 7})

	rec := doJSON(e, http.MethodPost, "/api/records",
		`{"market_price":5.5,"harvest_amount":100,"total_cost":400,"total_revenue":550,"net_profit":150}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusCreated {
		t.Fatalf("status %d, body %s", env.Status, rec.Body.String())
	}
	if p.addedBy != "7" {
		t.Fatalf("record keyed by %q, want user 7", p.addedBy)
	}
}

func TestAddRecordValidation(t *testing.T) {
	p := &stubPredictor{}
	e := newAnalyticsEcho(t, p, stubVerifier{id: 7})

	// Negative cost must be rejected before the predictor sees it.
	rec := doJSON(e, http.MethodPost, "/api/records",
		`{"market_price":5.5,"harvest_amount":100,"total_cost":-1,"total_revenue":550,"net_profit":150}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status %d for invalid payload", env.Status)
	}
	if p.addedBy != "" {
		t.Fatalf("invalid payload reached the predictor")
	}
}

func TestEndpointsRequireAuth(t *testing.T) {
	p := &stubPredictor{}
	e := newAnalyticsEcho(t, p, stubVerifier{id: 7})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusUnauthorized {
		t.Fatalf("missing token should be unauthorized, got %d", env.Status)
	}
}

func TestAnalyticsPageEndpoint(t *testing.T) {
	p := &stubPredictor{}
	e := newAnalyticsEcho(t, p, stubVerifier{id: 7})

	rec := doJSON(e, http.MethodGet, "/api/analytics", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status %d", env.Status)
	}
	payload, err := json.Marshal(env.Data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	var page models.AnalyticsPage
	if err := json.Unmarshal(payload, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.HistoricalData) != 1 || len(page.PricePredictions) != 1 || len(page.ProfitPredictions) != 1 {
		t.Fatalf("incomplete page: %s", payload)
	}
}

func TestForecastEndpointUntrained(t *testing.T) {
	p := &stubPredictor{priceErr: predictor.ErrNotTrained}
	e := newAnalyticsEcho(t, p, stubVerifier{id: 7})

	rec := doJSON(e, http.MethodGet, "/api/analytics/forecast?kind=price", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("untrained forecast should be a bad request, got %d", env.Status)
	}
}

func TestForecastEndpointProfitKind(t *testing.T) {
	p := &stubPredictor{priceErr: predictor.ErrNotTrained}
	e := newAnalyticsEcho(t, p, stubVerifier{id: 7})

	// kind=profit must not touch the price model.
	rec := doJSON(e, http.MethodGet, "/api/analytics/forecast?kind=profit&periods=6", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status %d, body %s", env.Status, rec.Body.String())
	}
}

func TestClearRecordsEndpoint(t *testing.T) {
	p := &stubPredictor{}
	e := newAnalyticsEcho(t, p, stubVerifier{id: 7})

	rec := doJSON(e, http.MethodDelete, "/api/records", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status %d", env.Status)
	}
	if p.clearedBy != "7" {
		t.Fatalf("cleared %q, want user 7", p.clearedBy)
	}
}
