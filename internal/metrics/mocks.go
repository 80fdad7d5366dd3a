package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

// MockMetricsService is a mock implementation of MetricsService
type MockMetricsService struct {
	mock.Mock
}

var _ MetricsService = (*MockMetricsService)(nil)

// NewMockMetricsService creates a new mock metrics service
func NewMockMetricsService() *MockMetricsService {
	return &MockMetricsService{}
}

func (m *MockMetricsService) GetRegistry() *prometheus.Registry {
	args := m.Called()
	return args.Get(0).(*prometheus.Registry)
}

func (m *MockMetricsService) IncIndexOperation(operation string) {
	m.Called(operation)
}

func (m *MockMetricsService) IncLookupMiss(operation string) {
	m.Called(operation)
}

func (m *MockMetricsService) SetIndexedWorks(count int) {
	m.Called(count)
}

func (m *MockMetricsService) SetIndexedParticipants(count int) {
	m.Called(count)
}

func (m *MockMetricsService) SetIndexedCredits(count int) {
	m.Called(count)
}

func (m *MockMetricsService) SetStaleCredits(count int) {
	m.Called(count)
}
