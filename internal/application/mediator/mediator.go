package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

type dispatcher struct {
	mu       sync.RWMutex
	routes   map[reflect.Type]RequestHandler
	pipeline []Middleware
}

// NewMediator returns an empty mediator; handlers and middleware are added by the registry
func NewMediator() Mediator {
	return &dispatcher{routes: make(map[reflect.Type]RequestHandler)}
}

func (d *dispatcher) Register(requestType reflect.Type, handler RequestHandler) error {
	switch {
	case requestType == nil:
		return errors.New("mediator: nil request type")
	case handler == nil:
		return fmt.Errorf("mediator: nil handler for %s", requestType)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, taken := d.routes[requestType]; taken {
		return fmt.Errorf("mediator: %s is already routed", requestType)
	}
	d.routes[requestType] = handler
	return nil
}

// RegisterMiddleware appends to the pipeline; earlier entries wrap later ones
func (d *dispatcher) RegisterMiddleware(middleware Middleware) {
	d.mu.Lock()
	d.pipeline = append(d.pipeline, middleware)
	d.mu.Unlock()
}

func (d *dispatcher) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, errors.New("mediator: nil request")
	}

	d.mu.RLock()
	handler, ok := d.routes[reflect.TypeOf(request)]
	pipeline := d.pipeline
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for %T", ErrNoHandler, request)
	}

	return wrap(handler.Handle, pipeline)(ctx, request)
}

func wrap(h HandlerFunc, pipeline []Middleware) HandlerFunc {
	for i := len(pipeline) - 1; i >= 0; i-- {
		mw, next := pipeline[i], h
		h = func(ctx context.Context, req Request) (Response, error) {
			return mw(ctx, req, next)
		}
	}
	return h
}

// RegisterHandler routes requests of type T to handler.
//
//	mediator.RegisterHandler[*commands.ApplyBankCommand](m, handler)
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	var zero T
	return m.Register(reflect.TypeOf(zero), handler)
}
