package effects

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a fresh effect instance for a given sample rate.
type Factory func(sampleRate float64) (Effect, error)

// Registry maps effect names to factories. All methods are safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty effect registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given name.
// Returns an error if the name is already taken.
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("effect %q already registered", name)
	}

	r.factories[name] = factory

	return nil
}

// MustRegister is like Register but panics on duplicate names. Intended
// for package-level default registration where a duplicate is a
// programming error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// New instantiates the named effect at the given sample rate.
func (r *Registry) New(name string, sampleRate float64) (Effect, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown effect %q", name)
	}

	return factory(sampleRate)
}

// Names returns all registered effect names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.MustRegister("formant", func(sr float64) (Effect, error) { return NewFormantShifter(sr) })
	r.MustRegister("braid", func(sr float64) (Effect, error) { return NewHarmonicBraid(sr) })
	r.MustRegister("chorus", func(sr float64) (Effect, error) { return NewChorus(sr) })
	r.MustRegister("tremolo", func(sr float64) (Effect, error) { return NewTremolo(sr) })
	r.MustRegister("discont", func(sr float64) (Effect, error) { return NewDiscont(sr) })
	r.MustRegister("growl", func(sr float64) (Effect, error) { return NewGrowl(sr) })
	r.MustRegister("am", func(sr float64) (Effect, error) { return NewAM(sr) })
	r.MustRegister("fm", func(sr float64) (Effect, error) { return NewFM(sr) })

	return r
}()

// Default returns the registry pre-populated with every built-in effect.
func Default() *Registry {
	return defaultRegistry
}
