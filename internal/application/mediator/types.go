package mediator

import (
	"context"
	"errors"
	"reflect"
)

// ErrNoHandler is returned by Send when no handler is registered for the request type
var ErrNoHandler = errors.New("no handler registered")

// Request is a command or query value; its dynamic type selects the handler
type Request interface{}

// Response is whatever the handler returns, usually a pointer to a *Response struct
type Response interface{}

// RequestHandler handles one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a plain function to RequestHandler
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle calls f
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware runs around every handler. Logging and metrics are installed this way.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// Mediator routes requests to handlers by request type
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
	RegisterMiddleware(middleware Middleware)
}
