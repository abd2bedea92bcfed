package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/semester-planner/internal/service"
)

// MockWriter is a mock implementation of service.PlanWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, report service.PlanReport) error
	LastReport     *service.PlanReport
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to WritePlan.
type WriteCall struct {
	Error  error
	Report service.PlanReport
}

var _ service.PlanWriter = (*MockWriter)(nil)

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// WritePlan records the call and delegates to WriteFunc when set.
func (m *MockWriter) WritePlan(ctx context.Context, report service.PlanReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastReport = &report

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, report)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{Report: report, Error: err})
	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to fail every WritePlan call with err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, service.PlanReport) error {
		return err
	}
}
