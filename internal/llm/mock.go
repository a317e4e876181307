package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient returns scripted responses in order. Used by pipeline and
// handler tests to exercise both stages without a live model.
type MockClient struct {
	responses []string
	err       error
	calls     int
	prompts   []string
	mu        sync.Mutex
}

// NewMockClient returns a client that replies with the given responses in sequence.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{responses: responses}
}

// NewFailingClient returns a client whose Generate always fails with err.
func NewFailingClient(err error) *MockClient {
	return &MockClient{err: err}
}

// Generate returns the next scripted response.
func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	if m.calls >= len(m.responses) {
		return "", fmt.Errorf("mock client: no response scripted for call %d", m.calls+1)
	}
	m.prompts = append(m.prompts, prompt)
	resp := m.responses[m.calls]
	m.calls++
	return resp, nil
}

// Prompts returns the prompts received so far.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Calls returns how many times Generate was invoked successfully.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Close is a no-op.
func (m *MockClient) Close() error {
	return nil
}
