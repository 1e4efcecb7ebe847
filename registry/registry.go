// Package registry implements the function registry (spec §4.3 / C3):
// a name-to-factory mapping for Executables, frozen after process
// start. The dispatch shape mirrors insts.Decoder's bit-pattern
// dispatch table in the teacher, generalized from "32-bit opcode ->
// decode function" to "string name -> executable factory".
package registry

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/value"
)

// Env is the per-call execution environment threaded through Execute.
// Compiled steps keep the Factory resolved at compile time, and the
// interpreter builds a fresh Executable from it on every call; no
// Executable instance is built at compile time or kept between calls.
// Executables hold no RNG of their own: each worker goroutine owns one
// *rand.Rand (spec §9 "RNG ownership") and passes it in on every call;
// stateless functions simply ignore Env.
type Env struct {
	Rand *rand.Rand
}

// Executable is the uniform contract every built-in function satisfies
// (spec §4.4): one input list, one output list, plus the ambient Env
// non-deterministic functions may consult.
type Executable interface {
	Execute(env *Env, args []value.Value) ([]value.Value, error)
}

// Factory is a nullary constructor for a fresh Executable instance.
// Compiling a call resolves its Factory once, at compile time; the
// per-trial interpreter never performs a name lookup.
type Factory func() Executable

// Registry is a name -> Factory mapping, built once at process start
// and read-only thereafter.
type Registry struct {
	factories map[string]Factory
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register installs factory under name. Registering the same name
// twice is a programmer error caught at startup, the same policy the
// teacher applies when two instruction formats would otherwise claim
// the same bit pattern: it panics immediately rather than risk a
// runtime log-only warning.
func (r *Registry) Register(name string, factory Factory) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("registry: function %q already registered", name))
	}
	r.factories[name] = factory
}

// Lookup resolves name to a Factory, failing UnknownFunction on a miss.
func (r *Registry) Lookup(name string) (Factory, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, errkind.New(errkind.UnknownFunction, "unknown function '%s'", name)
	}
	return factory, nil
}

// Names returns every registered function name, in no particular
// order, for diagnostics.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
