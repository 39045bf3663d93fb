// Package clock provides the time source that drives frame timing, idle motion and the loading fallback timer.
package clock

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time to the render loop.
type TimeProvider interface {
	// Now returns the current time.
	//
	// Returns:
	//   - time.Time: the current time reading
	Now() time.Time
}

// systemTimeProvider reads the monotonic system clock.
type systemTimeProvider struct{}

var _ TimeProvider = systemTimeProvider{}

// NewSystemTimeProvider creates a TimeProvider backed by time.Now.
//
// Returns:
//   - TimeProvider: the system time provider
func NewSystemTimeProvider() TimeProvider {
	return systemTimeProvider{}
}

func (systemTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually driven TimeProvider for tests.
type MockTimeProvider struct {
	mu  *sync.Mutex
	now time.Time
}

var _ TimeProvider = &MockTimeProvider{}

// NewMockTimeProvider creates a MockTimeProvider starting at the given time.
//
// Parameters:
//   - start: the initial time reading
//
// Returns:
//   - *MockTimeProvider: the mock provider
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{mu: &sync.Mutex{}, now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// SetTime jumps the mock clock to t.
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the mock clock forward by d.
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
