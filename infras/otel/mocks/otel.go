// Package mocks provides an in-memory Otel that records span names and
// errors so tests can assert on tracing without a collector.
package mocks

import (
	"context"
	"sync"

	"staybook/infras/otel"
)

type Otel struct {
	mu     sync.Mutex
	spans  []string
	errors []error
}

func NewOtel() *Otel {
	return &Otel{}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	o.spans = append(o.spans, spanName)
	o.mu.Unlock()

	return ctx, &scope{otel: o}
}

func (o *Otel) Shutdown(context.Context) error {
	return nil
}

// Spans returns the span names opened so far, in order.
func (o *Otel) Spans() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.spans...)
}

// Errors returns every error recorded on any span.
func (o *Otel) Errors() []error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]error(nil), o.errors...)
}

type scope struct {
	otel *Otel
}

func (s *scope) End()                         {}
func (s *scope) AddEvent(string)              {}
func (s *scope) SetAttribute(string, any)     {}
func (s *scope) SetAttributes(map[string]any) {}
func (s *scope) TraceIfError(err error)       { s.TraceError(err) }

func (s *scope) TraceError(err error) {
	if err == nil {
		return
	}

	s.otel.mu.Lock()
	s.otel.errors = append(s.otel.errors, err)
	s.otel.mu.Unlock()
}
