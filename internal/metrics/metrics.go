package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type MetricsService interface {
	GetRegistry() *prometheus.Registry
	// Index operation metrics
	IncIndexOperation(operation string)
	IncLookupMiss(operation string)
	// Index size metrics
	SetIndexedWorks(count int)
	SetIndexedParticipants(count int)
	SetIndexedCredits(count int)
	SetStaleCredits(count int)
}

// metricsService handles all metrics for the credits index
type metricsService struct {
	registry *prometheus.Registry

	// Index Operation Metrics
	operationsTotal   *prometheus.CounterVec
	lookupMissesTotal *prometheus.CounterVec

	// Index Size Metrics
	indexedWorks        prometheus.Gauge
	indexedParticipants prometheus.Gauge
	indexedCredits      prometheus.Gauge
	staleCredits        prometheus.Gauge
}

// NewMetricsService creates a new metrics service with all metrics registered
func NewMetricsService() MetricsService {
	m := &metricsService{
		registry: prometheus.NewRegistry(),
	}

	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credits_index_operations_total",
			Help: "Total number of operations served by the credits index",
		},
		[]string{"operation"},
	)
	m.lookupMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credits_index_lookup_misses_total",
			Help: "Total number of operations that targeted a work or participant unknown to the index",
		},
		[]string{"operation"},
	)

	m.indexedWorks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "credits_index_works",
			Help: "Number of works in the forward index",
		},
	)
	m.indexedParticipants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "credits_index_participants",
			Help: "Number of participants in the reverse index, including those left without works",
		},
	)
	m.indexedCredits = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "credits_index_credits",
			Help: "Number of (work, participant) credits counted from the forward index",
		},
	)
	m.staleCredits = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "credits_index_stale_credits",
			Help: "Number of reverse entries with no matching forward credit",
		},
	)

	m.registerMetrics()
	return m
}

func (m *metricsService) registerMetrics() {
	m.registry.MustRegister(
		m.operationsTotal,
		m.lookupMissesTotal,
		m.indexedWorks,
		m.indexedParticipants,
		m.indexedCredits,
		m.staleCredits,
	)
}

func (m *metricsService) GetRegistry() *prometheus.Registry {
	return m.registry
}

func (m *metricsService) IncIndexOperation(operation string) {
	m.operationsTotal.WithLabelValues(operation).Inc()
}

func (m *metricsService) IncLookupMiss(operation string) {
	m.lookupMissesTotal.WithLabelValues(operation).Inc()
}

func (m *metricsService) SetIndexedWorks(count int) {
	m.indexedWorks.Set(float64(count))
}

func (m *metricsService) SetIndexedParticipants(count int) {
	m.indexedParticipants.Set(float64(count))
}

func (m *metricsService) SetIndexedCredits(count int) {
	m.indexedCredits.Set(float64(count))
}

func (m *metricsService) SetStaleCredits(count int) {
	m.staleCredits.Set(float64(count))
}
