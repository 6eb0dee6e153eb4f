package pattern

import (
	"sort"
	"sync"
)

// Bank stores named patterns. Patterns are copied on the way in and out so
// callers never share backing arrays with the bank.
type Bank struct {
	mu       sync.RWMutex
	patterns map[string]Pattern
}

// NewBank creates an empty bank
func NewBank() *Bank {
	return &Bank{patterns: make(map[string]Pattern)}
}

// Save stores a copy of p under name, replacing any previous entry
func (b *Bank) Save(name string, p Pattern) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.patterns[name] = p.Clone()
}

// Get returns a copy of the named pattern
func (b *Bank) Get(name string) (Pattern, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.patterns[name]
	if !ok {
		return nil, &LookupError{Name: name}
	}
	return p.Clone(), nil
}

// Has reports whether name exists
func (b *Bank) Has(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.patterns[name]
	return ok
}

// Delete removes name and reports whether it existed
func (b *Bank) Delete(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.patterns[name]
	delete(b.patterns, name)
	return ok
}

// Clear removes every pattern
func (b *Bank) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.patterns = make(map[string]Pattern)
}

// Names returns stored names in sorted order
func (b *Bank) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.patterns))
	for name := range b.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored patterns
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.patterns)
}
