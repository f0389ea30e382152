package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Analysis outcomes recorded by Metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the Prometheus collectors for analyses and HTTP traffic.
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	OverallScore     prometheus.Histogram
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_match_analyses_total",
				Help: "Total number of resume analyses by outcome",
			},
			[]string{"outcome"},
		),
		AnalysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "resume_match_analysis_duration_seconds",
				Help:    "Duration of a single resume analysis in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),
		OverallScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "resume_match_overall_score",
				Help:    "Distribution of overall match scores",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_match_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "resume_match_http_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path"},
		),
	}
}

// ObserveAnalysis records one finished analysis.
func (m *Metrics) ObserveAnalysis(report *types.AnalysisReport, elapsed time.Duration) {
	if m == nil || report == nil {
		return
	}
	m.AnalysisDuration.Observe(elapsed.Seconds())
	if !report.Success {
		m.AnalysesTotal.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	m.AnalysesTotal.WithLabelValues(OutcomeSuccess).Inc()
	m.OverallScore.Observe(report.OverallScore)
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
