package transform

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownTransform is returned when a transform name is not registered.
	ErrUnknownTransform = errors.New("unknown transform")
	// ErrUnknownGroup is returned when a transform group is not registered.
	ErrUnknownGroup = errors.New("unknown transform group")
)

// Registry maps transform names and group names to transforms.
type Registry struct {
	mu sync.RWMutex

	// transforms maps a transform name to its implementation:
	// "name/kebab-elevation-layer" → *nameTransform
	transforms map[string]Transform

	// groups maps a group name to an ordered list of transform names:
	// "tokens-studio" → ["ts/descriptionToComment", ..., "name/camel"]
	groups map[string][]string
}

// NewRegistry creates a registry holding the given transforms.
func NewRegistry(transforms ...Transform) *Registry {
	r := &Registry{
		transforms: make(map[string]Transform, len(transforms)),
		groups:     make(map[string][]string),
	}
	for _, t := range transforms {
		r.transforms[t.Name()] = t
	}
	return r
}

// Register adds or replaces a transform.
func (r *Registry) Register(t Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transforms[t.Name()] = t
}

// RegisterGroup defines a named, ordered list of transforms. Every member
// must already be registered.
func (r *Registry) RegisterGroup(name string, members ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range members {
		if _, ok := r.transforms[m]; !ok {
			return fmt.Errorf("group %s: %w %q", name, ErrUnknownTransform, m)
		}
	}
	r.groups[name] = append([]string(nil), members...)
	return nil
}

// Get returns the transform registered under name.
func (r *Registry) Get(name string) (Transform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.transforms[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTransform, name)
	}
	return t, nil
}

// Group returns the member names of a transform group.
func (r *Registry) Group(name string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGroup, name)
	}
	return append([]string(nil), members...), nil
}

// Chain returns the transforms of group (if not empty) followed by the
// named transforms, in that order.
func (r *Registry) Chain(group string, names ...string) ([]Transform, error) {
	var all []string
	if group != "" {
		members, err := r.Group(group)
		if err != nil {
			return nil, err
		}
		all = append(all, members...)
	}
	all = append(all, names...)

	chain := make([]Transform, 0, len(all))
	for _, name := range all {
		t, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, t)
	}
	return chain, nil
}

// Names returns every registered transform name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
