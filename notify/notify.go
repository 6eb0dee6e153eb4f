// Package notify is a small listener registry used by the generators, the
// pattern processor and the arpeggiator to publish results.
package notify

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"go-pattern/debug"
)

// Listener receives a published value
type Listener[T any] func(T)

type entry[T any] struct {
	id uuid.UUID
	fn Listener[T]
}

// Registry holds listeners in subscription order
type Registry[T any] struct {
	name    string
	mu      sync.RWMutex
	entries []entry[T]
}

// NewRegistry creates an empty registry. name shows up in log lines.
func NewRegistry[T any](name string) *Registry[T] {
	return &Registry[T]{name: name}
}

// Subscribe adds fn and returns a function that removes it. The returned
// function is safe to call more than once.
func (r *Registry[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	id := uuid.New()

	r.mu.Lock()
	r.entries = append(r.entries, entry[T]{id: id, fn: fn})
	r.mu.Unlock()

	return func() { r.remove(id) }
}

func (r *Registry[T]) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of listeners
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Emit calls every listener synchronously in subscription order. A panicking
// listener is logged and skipped; the rest still run. Returns the number of
// listeners that failed.
func (r *Registry[T]) Emit(v T) int {
	r.mu.RLock()
	snapshot := make([]entry[T], len(r.entries))
	copy(snapshot, r.entries)
	r.mu.RUnlock()

	failed := 0
	for _, e := range snapshot {
		if err := call(e.fn, v); err != nil {
			failed++
			debug.Log("notify", "%s listener %s: %v", r.name, e.id, err)
		}
	}
	return failed
}

func call[T any](fn Listener[T], v T) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("listener panic: %v", rec)
		}
	}()
	fn(v)
	return nil
}
