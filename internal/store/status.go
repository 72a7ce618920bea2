package store

import (
	"errors"
	"log/slog"
	"sync"
)

var (
	// ErrNoIdentity is returned by user-scoped operations when nobody is
	// signed in or remembered.
	ErrNoIdentity = errors.New("no current user")
	// ErrNotFound is returned when an id is not in the in-memory collection.
	ErrNotFound = errors.New("not found")
	// ErrWorkerMismatch is returned when a worker completes an order that is
	// assigned to somebody else.
	ErrWorkerMismatch = errors.New("order is assigned to another worker")
)

// status tracks in-flight operations and the message of the most recently
// failed one. Each operation also returns its own error.
type status struct {
	logger *slog.Logger

	mu       sync.Mutex
	inFlight int
	lastErr  string
}

// track marks an operation as started. The returned func settles it with the
// operation's final error.
func (s *status) track(op string) func(err *error) {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()

	return func(errp *error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.inFlight--

		err := *errp
		switch {
		case err == nil:
			s.lastErr = ""
		case errors.Is(err, ErrNoIdentity):
			s.logger.Warn(op+" skipped", "error", err)
		default:
			s.lastErr = err.Error()
			s.logger.Error(op+" failed", "error", err)
		}
	}
}

// Err returns the last recorded failure message, or "" when the last settled
// operation succeeded.
func (s *status) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *status) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// Busy reports whether any operation is still in flight.
func (s *status) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// keyedMutex serializes work per key. Entries are dropped once nobody holds
// or waits on them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
