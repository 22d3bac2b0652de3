package llm

import (
	"context"
	"fmt"
	"sync"
)

// Call records one request handed to the Mock.
type Call struct {
	Request Request
}

// Mock is a scripted Client for tests. Responses are returned in order; once
// exhausted, the last response repeats. An empty script is an error on the
// first call.
type Mock struct {
	mu        sync.Mutex
	Responses []string
	Errs      []error
	Calls     []Call
}

// Complete returns the next scripted response.
func (m *Mock) Complete(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := len(m.Calls)
	m.Calls = append(m.Calls, Call{Request: req})

	if i < len(m.Errs) && m.Errs[i] != nil {
		return "", m.Errs[i]
	}
	if len(m.Responses) == 0 {
		return "", fmt.Errorf("mock: no scripted response for call %d", i+1)
	}
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	return m.Responses[i], nil
}

// CallCount returns how many requests have been made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
