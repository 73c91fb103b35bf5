// Package theme owns the dark/light preference.
package theme

import (
	"fmt"
	"sync"
)

const (
	Dark  = "dark"
	Light = "light"
)

// Store persists the preference. Get returns "" when nothing is stored.
type Store interface {
	Get() string
	Set(value string) error
}

// Resolve decides the effective theme: an explicit stored preference wins,
// otherwise the client's color scheme preference applies.
func Resolve(stored string, prefersDark bool) bool {
	switch stored {
	case Dark:
		return true
	case Light:
		return false
	default:
		return prefersDark
	}
}

// Name returns "dark" or "light".
func Name(dark bool) string {
	if dark {
		return Dark
	}
	return Light
}

// Controller holds the current theme and notifies subscribers on change.
// It is safe for concurrent use.
type Controller struct {
	mu     sync.Mutex
	store  Store
	dark   bool
	nextID int
	subs   map[int]func(dark bool)
}

// NewController resolves the initial state from store and prefersDark.
func NewController(store Store, prefersDark bool) *Controller {
	return &Controller{
		store: store,
		dark:  Resolve(store.Get(), prefersDark),
		subs:  map[int]func(bool){},
	}
}

func (c *Controller) IsDark() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dark
}

// Set persists the theme and notifies subscribers when it changed.
func (c *Controller) Set(dark bool) error {
	_, err := c.update(func(bool) bool { return dark })
	return err
}

// Toggle flips the theme and returns the new state.
func (c *Controller) Toggle() (bool, error) {
	return c.update(func(dark bool) bool { return !dark })
}

// update computes the next state from the current one and persists it under
// a single lock, so concurrent toggles never lose a flip.
func (c *Controller) update(next func(dark bool) bool) (bool, error) {
	c.mu.Lock()
	dark := next(c.dark)
	if err := c.store.Set(Name(dark)); err != nil {
		current := c.dark
		c.mu.Unlock()
		return current, fmt.Errorf("persisting theme: %w", err)
	}
	changed := c.dark != dark
	c.dark = dark
	subs := make([]func(bool), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(dark)
		}
	}
	return dark, nil
}

// Subscribe registers fn for theme changes and returns a function that
// removes it.
func (c *Controller) Subscribe(fn func(dark bool)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// MemoryStore keeps the preference in memory.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

func (m *MemoryStore) Get() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

func (m *MemoryStore) Set(value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	return nil
}
