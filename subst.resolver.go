package subst

import (
	"sort"
	"strings"
	"sync"
)

// ResolverFunc is a named value producer. It receives the argument list
// bound from the caller's context (zero arguments when the context has no
// entry for the token name) and returns the substitution value.
//
// Returning a nil value with a nil error signals "no value": the token is
// treated as unresolved and resolution falls through to the context value,
// the default clause, and finally the ignore-missing policy. An explicit
// empty string is a resolved value, not a miss.
type ResolverFunc func(args []any) (any, error)

// Registry is an ordered collection of named resolvers. It is safe for
// concurrent registration and lookup, though the usual pattern is to
// populate a registry up front and share it read-only across processors.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]ResolverFunc
	folded    map[string]string // folded name -> registered name, first wins
}

// NewRegistry creates an empty resolver registry.
func NewRegistry() *Registry {
	return &Registry{
		resolvers: make(map[string]ResolverFunc),
		folded:    make(map[string]string),
	}
}

// NewRegistryFromMap builds a registry from a name to resolver mapping in
// one step. Names are registered in sorted order so case-insensitive
// collisions resolve deterministically.
func NewRegistryFromMap(resolvers map[string]ResolverFunc) *Registry {
	r := NewRegistry()
	names := make([]string, 0, len(resolvers))
	for name := range resolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.MustRegister(name, resolvers[name])
	}
	return r
}

// Register adds a resolver under the given name.
// Registration is first-come-wins: a second resolver for the same name is
// rejected with an error rather than silently replacing the first.
func (r *Registry) Register(name string, fn ResolverFunc) error {
	if fn == nil {
		return NewRegistryError(ErrMsgNilResolver, name)
	}
	if name == "" {
		return NewRegistryError(ErrMsgEmptyResolverName, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resolvers[name]; exists {
		return NewRegistryError(ErrMsgResolverExists, name)
	}

	r.resolvers[name] = fn
	folded := strings.ToLower(name)
	if _, exists := r.folded[folded]; !exists {
		r.folded[folded] = name
	}
	return nil
}

// MustRegister adds a resolver and panics if registration fails.
func (r *Registry) MustRegister(name string, fn ResolverFunc) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup retrieves a resolver by name. An exact match always wins; with
// ignoreCase a case-folded match is accepted as a fallback, so enabling
// ignoreCase never turns a matching lookup into a miss.
func (r *Registry) Lookup(name string, ignoreCase bool) (ResolverFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if fn, ok := r.resolvers[name]; ok {
		return fn, true
	}
	if !ignoreCase {
		return nil, false
	}
	registered, ok := r.folded[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return r.resolvers[registered], true
}

// Has checks if a resolver is registered under the given name.
func (r *Registry) Has(name string, ignoreCase bool) bool {
	_, ok := r.Lookup(name, ignoreCase)
	return ok
}

// Names returns all registered resolver names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.resolvers))
	for name := range r.resolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered resolvers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.resolvers)
}
