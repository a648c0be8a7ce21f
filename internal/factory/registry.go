// Package factory builds slot content from recipe tokens using a registry
// of named constructors.
package factory

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/ytget/popupbar/internal/model"
)

// Constructor builds a fresh widget from recipe parameters
type Constructor func(r model.Recipe) (fyne.CanvasObject, error)

// Registry maps widget type names to constructors
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// NewDefaultRegistry creates a registry holding the built-in widget types
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for name, ctor := range builtins() {
		r.ctors[name] = ctor
	}
	return r
}

// Register adds a constructor for typeName. Names are case-insensitive and
// may only be registered once.
func (r *Registry) Register(typeName string, ctor Constructor) error {
	rec, err := model.ParseRecipe(typeName)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if ctor == nil {
		return fmt.Errorf("register %q: nil constructor", rec.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ctors[rec.Type]; exists {
		return fmt.Errorf("register %q: type already registered", rec.Type)
	}
	r.ctors[rec.Type] = ctor
	return nil
}

// Types returns the registered type names sorted
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether recipe names a registered type
func (r *Registry) Has(recipe string) bool {
	rec, err := model.ParseRecipe(recipe)
	if err != nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[rec.Type]
	return ok
}

// Create parses recipe and builds a new widget for it
func (r *Registry) Create(recipe string) (fyne.CanvasObject, error) {
	rec, err := model.ParseRecipe(recipe)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	ctor, ok := r.ctors[rec.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("create %q: %w", rec.Type, model.ErrUnknownWidgetType)
	}

	obj, err := ctor(rec)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", rec.Type, err)
	}
	return obj, nil
}

// floatParam reads a float parameter, returning def when it is absent
func floatParam(r model.Recipe, key string, def float64) (float64, error) {
	s := r.Get(key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", key, err)
	}
	return v, nil
}

// boolParam reads a bool parameter, returning def when it is absent
func boolParam(r model.Recipe, key string, def bool) (bool, error) {
	s := r.Get(key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("parameter %s: %w", key, err)
	}
	return v, nil
}
