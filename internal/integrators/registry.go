package integrators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/dpend/internal/dynamo"
)

// Default is the scheme used when none is configured.
const Default = "rk4"

var ErrUnknown = errors.New("integrators: unknown scheme")

var registry = map[string]func() dynamo.Integrator{
	"euler":      func() dynamo.Integrator { return NewEuler() },
	"symplectic": func() dynamo.Integrator { return NewSymplecticEuler() },
	"rk4":        func() dynamo.Integrator { return NewRK4() },
}

// New returns a fresh integrator for name. Every call allocates a new value,
// so independent simulations never share scratch buffers.
func New(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknown, name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
