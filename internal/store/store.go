// Package store keeps the client-side list of one resource family in sync
// with the backend.
//
// A Store holds the items last seen from the server, a loading flag and the
// message of the last failure. Every action follows the same protocol:
// loading on, error cleared, one backend call, the smallest list mutation
// that reflects the result, error recorded on failure, loading off.
//
// Each state step runs under the store's mutex. Overlapping actions are not
// serialized: their list mutations are keyed by identifier, and loading/error
// are last-writer-wins.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/idilsaglam/todolist/internal/logging"
)

// ErrUnknownID is returned by helpers that need an item that is not in the
// local list.
var ErrUnknownID = errors.New("no such item in the local list")

// Backend is what a store calls. The api resources implement it.
type Backend[T, C, U any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload C) (T, error)
	Update(ctx context.Context, id int64, patch U) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Messages are shown when a failure carries no message of its own.
type Messages struct {
	Fetch  string
	Create string
	Update string
	Delete string
}

// Options configure a Store.
type Options[T, C, U any] struct {
	Backend  Backend[T, C, U]
	ID       func(T) int64
	Messages Messages
	// Name identifies the store in log lines, e.g. "todos".
	Name   string
	Logger *slog.Logger
}

// Store is the generic entity store.
type Store[T, C, U any] struct {
	backend Backend[T, C, U]
	id      func(T) int64
	msgs    Messages
	name    string
	logger  *slog.Logger

	mu      sync.RWMutex
	items   []T
	loading bool
	errMsg  string
	failure error
}

// New creates an empty store.
func New[T, C, U any](opts Options[T, C, U]) *Store[T, C, U] {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store[T, C, U]{
		backend: opts.Backend,
		id:      opts.ID,
		msgs:    opts.Messages,
		name:    opts.Name,
		logger:  logger,
		items:   []T{},
	}
}

// ---------------------------------------------------
// State
// ---------------------------------------------------

// Items returns a copy of the current list.
func (s *Store[T, C, U]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *Store[T, C, U]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Loading reports whether an action is in flight.
func (s *Store[T, C, U]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ErrorMessage returns the display message of the last failure, or "".
func (s *Store[T, C, U]) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Failure returns the last recorded failure, or nil. Use apiclient.KindOf to
// branch on it.
func (s *Store[T, C, U]) Failure() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failure
}

// ClearError forgets the last failure.
func (s *Store[T, C, U]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg, s.failure = "", nil
}

func (s *Store[T, C, U]) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.errMsg, s.failure = "", nil
}

func (s *Store[T, C, U]) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *Store[T, C, U]) record(action string, err error, fallback string) {
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	s.mu.Lock()
	s.errMsg, s.failure = msg, err
	s.mu.Unlock()
	s.logger.Warn("store action failed", "store", s.name, "action", action, "error", msg)
}

// ---------------------------------------------------
// Actions
// ---------------------------------------------------

// Fetch replaces the list with the server's. A failure is recorded in
// ErrorMessage/Failure and the list is left as it was; it is not returned.
func (s *Store[T, C, U]) Fetch(ctx context.Context) {
	s.begin()
	defer s.end()

	items, err := s.backend.List(ctx)
	if err != nil {
		s.record("fetch", err, s.msgs.Fetch)
		return
	}
	if items == nil {
		items = []T{}
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.logger.Debug("fetched", "store", s.name, "count", len(items))
}

// Create sends payload and appends the server's representation.
func (s *Store[T, C, U]) Create(ctx context.Context, payload C) (T, error) {
	s.begin()
	defer s.end()

	created, err := s.backend.Create(ctx, payload)
	if err != nil {
		s.record("create", err, s.msgs.Create)
		return created, err
	}
	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()
	s.logger.Debug("created", "store", s.name, "id", s.id(created))
	return created, nil
}

// Update sends patch and replaces the item with the same identifier by the
// server's representation. Items not in the list are not added.
func (s *Store[T, C, U]) Update(ctx context.Context, id int64, patch U) (T, error) {
	s.begin()
	defer s.end()

	updated, err := s.backend.Update(ctx, id, patch)
	if err != nil {
		s.record("update", err, s.msgs.Update)
		return updated, err
	}
	s.mu.Lock()
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
	s.logger.Debug("updated", "store", s.name, "id", id)
	return updated, nil
}

// Delete removes the item on the server, then locally.
func (s *Store[T, C, U]) Delete(ctx context.Context, id int64) error {
	s.begin()
	defer s.end()

	if err := s.backend.Delete(ctx, id); err != nil {
		s.record("delete", err, s.msgs.Delete)
		return err
	}
	s.mu.Lock()
	kept := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if s.id(it) != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.mu.Unlock()
	s.logger.Debug("deleted", "store", s.name, "id", id)
	return nil
}

// ---------------------------------------------------
// Lookups
// ---------------------------------------------------

// Find returns the first item matching pred.
func (s *Store[T, C, U]) Find(pred func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns every item matching pred, in list order.
func (s *Store[T, C, U]) Filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []T{}
	for _, it := range s.items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// ByID returns the item with identifier id.
func (s *Store[T, C, U]) ByID(id int64) (T, bool) {
	return s.Find(func(it T) bool { return s.id(it) == id })
}
