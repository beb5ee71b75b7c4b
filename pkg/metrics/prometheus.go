package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	recordsAdded   *prometheus.CounterVec
	trainings      *prometheus.CounterVec
	predictions    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	weatherFetches *prometheus.CounterVec
	reportsTotal   prometheus.Counter
	modelScore     *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		recordsAdded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmpulse_records_added_total",
				Help: "Total number of market records appended to the store",
			},
			[]string{"user"},
		),
		trainings: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmpulse_model_trainings_total",
				Help: "Total number of model training runs by outcome",
			},
			[]string{"outcome"},
		),
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmpulse_predictions_total",
				Help: "Total number of forecast requests served",
			},
			[]string{"kind", "outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		weatherFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmpulse_weather_fetches_total",
				Help: "Total number of weather provider lookups by outcome",
			},
			[]string{"outcome"},
		),
		reportsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "farmpulse_reports_rendered_total",
				Help: "Total number of cost-profit PDF reports rendered",
			},
		),
		modelScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "farmpulse_model_r2_score",
				Help: "Hold-out R² of the most recent training run",
			},
			[]string{"model"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "farmpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAdded records one appended market record.
func (r *Recorder) RecordAdded(userID string) {
	r.recordsAdded.WithLabelValues(userID).Inc()
}

// RecordTraining records a training run outcome ("trained", "skipped", "failed").
func (r *Recorder) RecordTraining(outcome string) {
	r.trainings.WithLabelValues(outcome).Inc()
}

// RecordPrediction records a served forecast ("price"|"profit", "ok"|"untrained"|"error").
func (r *Recorder) RecordPrediction(kind, outcome string) {
	r.predictions.WithLabelValues(kind, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordWeatherFetch records a weather lookup outcome ("ok", "cache", "unavailable").
func (r *Recorder) RecordWeatherFetch(outcome string) {
	r.weatherFetches.WithLabelValues(outcome).Inc()
}

// RecordReportRendered records one rendered PDF report.
func (r *Recorder) RecordReportRendered() {
	r.reportsTotal.Inc()
}

// RecordModelScore records the latest hold-out R² for a model ("price"|"profit").
func (r *Recorder) RecordModelScore(model string, r2 float64) {
	r.modelScore.WithLabelValues(model).Set(r2)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
