package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
)

// MockMediator is a test double for the Mediator interface.
// Responses are looked up by request type; every request sent is recorded.
type MockMediator struct {
	mu        sync.Mutex
	sendFunc  func(ctx context.Context, request mediator.Request) (mediator.Response, error)
	responses map[reflect.Type]mockResult
	sent      []mediator.Request
}

type mockResult struct {
	response mediator.Response
	err      error
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{responses: make(map[reflect.Type]mockResult)}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.mu.Lock()
	m.sent = append(m.sent, request)
	fn := m.sendFunc
	result, ok := m.responses[reflect.TypeOf(request)]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, request)
	}
	if !ok {
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
	return result.response, result.err
}

// On sets the response returned for requests of the same type as request
func (m *MockMediator) On(request mediator.Request, response mediator.Response, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[reflect.TypeOf(request)] = mockResult{response: response, err: err}
}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request mediator.Request) (mediator.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// Sent returns the requests sent so far
func (m *MockMediator) Sent() []mediator.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mediator.Request{}, m.sent...)
}

// LastSent returns the most recent request, or nil
func (m *MockMediator) LastSent() mediator.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	return m.sent[len(m.sent)-1]
}

// Register implements the Mediator interface (no-op for tests)
func (m *MockMediator) Register(requestType reflect.Type, handler mediator.RequestHandler) error {
	return nil
}

// RegisterMiddleware implements the Mediator interface (no-op for tests)
func (m *MockMediator) RegisterMiddleware(middleware mediator.Middleware) {}

var _ mediator.Mediator = (*MockMediator)(nil)
