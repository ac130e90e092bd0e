// Package catalog holds the static tutorial content: one ordered flow per
// user type, each ending in the same two common steps.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/circlet/internal/usertype"
)

// ErrUnknownUserType is returned when no flow is registered for a type.
var ErrUnknownUserType = errors.New("no tutorial flow for user type")

// Registry indexes flows by user type and flow ID.
type Registry struct {
	flows  []Flow
	byType map[usertype.Type]int
	byID   map[string]int
}

// defaultRegistry is built and validated once at package init.
var defaultRegistry *Registry

func init() {
	flows := productionFlows()
	if err := validateComplete(flows); err != nil {
		panic(err)
	}
	r, err := New(flows...)
	if err != nil {
		panic(err)
	}
	defaultRegistry = r
}

// Default returns the registry of production flows.
func Default() *Registry {
	return defaultRegistry
}

// New builds a registry from flows. Structural checks beyond uniqueness are
// left to Validate so tests can register minimal synthetic flows.
func New(flows ...Flow) (*Registry, error) {
	r := &Registry{
		flows:  make([]Flow, 0, len(flows)),
		byType: make(map[usertype.Type]int, len(flows)),
		byID:   make(map[string]int, len(flows)),
	}
	for _, f := range flows {
		if _, dup := r.byType[f.UserType]; dup {
			return nil, fmt.Errorf("register flow %q: user type %q already registered", f.ID, f.UserType)
		}
		if _, dup := r.byID[f.ID]; dup {
			return nil, fmt.Errorf("register flow %q: duplicate flow ID", f.ID)
		}
		if len(f.Steps) == 0 {
			return nil, fmt.Errorf("register flow %q: no steps", f.ID)
		}
		r.byType[f.UserType] = len(r.flows)
		r.byID[f.ID] = len(r.flows)
		r.flows = append(r.flows, cloneFlow(f))
	}
	return r, nil
}

// Flow returns the flow registered for a user type.
func (r *Registry) Flow(t usertype.Type) (Flow, bool) {
	i, ok := r.byType[t]
	if !ok {
		return Flow{}, false
	}
	return cloneFlow(r.flows[i]), true
}

// Lookup is Flow that reports a missing type as an error.
func (r *Registry) Lookup(t usertype.Type) (Flow, error) {
	f, ok := r.Flow(t)
	if !ok {
		return Flow{}, fmt.Errorf("%w: %q", ErrUnknownUserType, t)
	}
	return f, nil
}

// ByID returns the flow with the given ID.
func (r *Registry) ByID(id string) (Flow, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Flow{}, false
	}
	return cloneFlow(r.flows[i]), true
}

// All returns every registered flow in registration order.
func (r *Registry) All() []Flow {
	out := make([]Flow, len(r.flows))
	for i, f := range r.flows {
		out[i] = cloneFlow(f)
	}
	return out
}

// cloneFlow copies the step slice so callers can't mutate registry data.
func cloneFlow(f Flow) Flow {
	f.Steps = slices.Clone(f.Steps)
	return f
}
