package syntax

import (
	"errors"
	"fmt"
)

var (
	ErrNoProfiles       = errors.New("registry needs at least one profile")
	ErrDuplicateProfile = errors.New("profile already registered")
)

// Registry holds the known language profiles. The first registered profile
// is the default. Registration happens during startup; afterwards the
// registry is read-only and safe for concurrent use.
type Registry struct {
	profiles map[string]*Profile
	order    []string
}

// NewRegistry compiles and registers the given definitions in order.
func NewRegistry(defs ...Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, ErrNoProfiles
	}

	r := &Registry{profiles: make(map[string]*Profile, len(defs))}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register compiles one definition and adds it to the registry.
func (r *Registry) Register(def Definition) error {
	p, err := NewProfile(def)
	if err != nil {
		return err
	}
	if _, exists := r.profiles[p.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProfile, p.ID)
	}

	r.profiles[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

// Get returns the profile with the given id.
func (r *Registry) Get(id string) (*Profile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

// Default returns the first registered profile.
func (r *Registry) Default() *Profile {
	return r.profiles[r.order[0]]
}

// IDs returns the profile ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}
