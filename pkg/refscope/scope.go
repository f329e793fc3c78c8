// Package refscope shares one resource between overlapping holders and
// releases it when the last holder is done.
package refscope

import (
	"fmt"
	"io"
	"sync"
)

// Opener creates the shared resource.
type Opener[T io.Closer] func() (T, error)

// Scope owns a lazily opened resource and a holder count.
type Scope[T io.Closer] struct {
	mu       sync.Mutex
	open     Opener[T]
	resource T
	holders  int
}

// New creates a scope that opens its resource with open on first Acquire.
func New[T io.Closer](open Opener[T]) *Scope[T] {
	return &Scope[T]{open: open}
}

// Lease is one holder's claim on the resource.
type Lease[T io.Closer] struct {
	scope    *Scope[T]
	resource T
	once     sync.Once
	err      error
}

// Resource returns the shared resource.
func (l *Lease[T]) Resource() T {
	return l.resource
}

// Release drops this holder. The resource is closed when no holders remain.
// Calling Release more than once has no further effect.
func (l *Lease[T]) Release() error {
	l.once.Do(func() {
		l.err = l.scope.release()
	})
	return l.err
}

// Acquire returns a lease, opening the resource if this is the first holder.
func (s *Scope[T]) Acquire() (*Lease[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.holders == 0 {
		r, err := s.open()
		if err != nil {
			return nil, fmt.Errorf("refscope: open: %w", err)
		}
		s.resource = r
	}
	s.holders++
	return &Lease[T]{scope: s, resource: s.resource}, nil
}

// Holders returns the current holder count.
func (s *Scope[T]) Holders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holders
}

func (s *Scope[T]) release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.holders == 0 {
		return nil
	}
	s.holders--
	if s.holders > 0 {
		return nil
	}
	r := s.resource
	var zero T
	s.resource = zero
	if err := r.Close(); err != nil {
		return fmt.Errorf("refscope: close: %w", err)
	}
	return nil
}
