package formlib

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formschema/pkg/model"
)

// Registry stores form library integrations by name.
type Registry struct {
	mu        sync.RWMutex
	libraries map[string]Library
}

// NewRegistry creates a registry holding the supplied libraries.
func NewRegistry(libraries ...Library) (*Registry, error) {
	reg := &Registry{libraries: make(map[string]Library)}
	for _, lib := range libraries {
		if err := reg.Register(lib); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register adds a library by its Name(). Duplicate names return an error.
func (r *Registry) Register(lib Library) error {
	if lib == nil {
		return fmt.Errorf("formlib: library is required")
	}
	name := normalizeName(lib.Name())
	if name == "" {
		return fmt.Errorf("formlib: library name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.libraries == nil {
		r.libraries = make(map[string]Library)
	}
	if _, exists := r.libraries[name]; exists {
		return fmt.Errorf("formlib: library %q already registered", name)
	}
	r.libraries[name] = lib
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(lib Library) {
	if err := r.Register(lib); err != nil {
		panic(err)
	}
}

// Get retrieves a library by name.
func (r *Registry) Get(name string) (Library, error) {
	key := normalizeName(name)
	if key == "" {
		return nil, fmt.Errorf("formlib: library name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	lib, ok := r.libraries[key]
	if !ok {
		return nil, fmt.Errorf("formlib: library %q not found", key)
	}
	return lib, nil
}

// List returns the sorted library names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.libraries))
	for name := range r.libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a library is registered.
func (r *Registry) Has(name string) bool {
	key := normalizeName(name)
	if key == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.libraries[key]
	return ok
}

// ForField returns the library that owns field.
func (r *Registry) ForField(field Field) (Library, error) {
	if field == nil {
		return nil, fmt.Errorf("formlib: field is required")
	}
	return r.Get(field.Library())
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// KindOf resolves a marker through the library named in its prefix, so a
// registry can serve as a model.MarkerResolver across libraries.
func (r *Registry) KindOf(marker string) (model.Kind, bool) {
	library, _, ok := SplitMarker(marker)
	if !ok {
		return "", false
	}
	lib, err := r.Get(library)
	if err != nil {
		return "", false
	}
	return lib.KindOf(marker)
}
