package limiter

// MockLimiter is a test double for Limiter. It returns AllowResult and
// records every key it was asked about.
type MockLimiter struct {
	AllowResult bool
	AllowCalls  []string
	CloseCalled bool
	CloseError  error
}

// NewMockLimiter creates a mock that always answers allowResult
func NewMockLimiter(allowResult bool) *MockLimiter {
	return &MockLimiter{
		AllowResult: allowResult,
		AllowCalls:  []string{},
	}
}

// Allow implements Limiter
func (m *MockLimiter) Allow(key string) bool {
	m.AllowCalls = append(m.AllowCalls, key)
	return m.AllowResult
}

// Close implements Limiter
func (m *MockLimiter) Close() error {
	m.CloseCalled = true
	return m.CloseError
}
