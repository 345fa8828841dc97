package editor

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Constructor builds a descriptor from the raw default text of a placeholder.
type Constructor func(raw string) Descriptor

// Registry maps placeholder type names to descriptor constructors. Lookups of
// unknown types report absence instead of returning an empty descriptor.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry constructs a registry with the built-in kinds registered.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without any kinds. Create never
// resolves on an empty registry.
func NewEmptyRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds a constructor for the supplied type name. Names are case
// sensitive; duplicates return ErrDuplicateKind.
func (r *Registry) Register(name string, constructor Constructor) error {
	if r == nil {
		return fmt.Errorf("editor: registry is nil")
	}
	if constructor == nil {
		return fmt.Errorf("editor: constructor for %q is required", name)
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("editor: kind name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[trimmed]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, trimmed)
	}
	r.constructors[trimmed] = constructor
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, constructor Constructor) {
	if err := r.Register(name, constructor); err != nil {
		panic(err)
	}
}

// Create builds the descriptor for typeName using raw as the constructor
// input. The boolean is false when no constructor is registered.
func (r *Registry) Create(typeName, raw string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	r.mu.RLock()
	constructor, ok := r.constructors[strings.TrimSpace(typeName)]
	r.mu.RUnlock()
	if !ok {
		return Descriptor{}, false
	}

	desc := constructor(raw)
	if desc.Kind == "" {
		desc.Kind = strings.TrimSpace(typeName)
	}
	desc.Raw = raw
	return desc, true
}

// Has reports whether a constructor is registered for typeName.
func (r *Registry) Has(typeName string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[strings.TrimSpace(typeName)]
	return ok
}

// List returns the registered type names sorted alphabetically.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) registerBuiltins() {
	r.MustRegister(KindString, newString)
	r.MustRegister(KindItems, newItems)
	r.MustRegister(KindText, newText)
	r.MustRegister(KindSecret, newSecret)
	r.MustRegister(KindBool, newBool)
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry holding the built-in kinds.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a constructor to the process-wide registry.
func Register(name string, constructor Constructor) error {
	return defaultRegistry.Register(name, constructor)
}

// Create resolves typeName against the process-wide registry.
func Create(typeName, raw string) (Descriptor, bool) {
	return defaultRegistry.Create(typeName, raw)
}
