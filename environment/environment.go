package environment

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/open-space-collective/ostk-physics-go/frame"
	"github.com/open-space-collective/ostk-physics-go/instant"
)

// ErrBodyNotFound is returned when a named body isn't registered in an
// Environment.
var ErrBodyNotFound = errors.New("environment: body not found")

// Environment owns a current instant, an ordered set of celestial bodies,
// and the frame registry they're expressed through. It's the object client
// code constructs once and re-queries as the instant advances.
type Environment struct {
	mu       sync.RWMutex
	instant  instant.Instant
	registry *frame.Registry
	bodies   map[string]*Celestial
	order    []string
	central  string
}

// New builds an Environment at the given instant, sharing registry for
// frame transforms (pass frame.Get() for the process-wide registry, or
// frame.New() for an isolated one).
func New(i instant.Instant, registry *frame.Registry, bodies ...*Celestial) *Environment {
	e := &Environment{
		instant:  i,
		registry: registry,
		bodies:   make(map[string]*Celestial),
	}
	for _, b := range bodies {
		e.addBody(b)
	}
	return e
}

func (e *Environment) addBody(b *Celestial) {
	if _, exists := e.bodies[b.Name]; !exists {
		e.order = append(e.order, b.Name)
	}
	e.bodies[b.Name] = b
}

// AddBody registers (or replaces) a Celestial in the Environment.
func (e *Environment) AddBody(b *Celestial) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.addBody(b)
}

// SetInstant advances the Environment's current instant.
func (e *Environment) SetInstant(i instant.Instant) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.instant = i
}

// Instant returns the Environment's current instant.
func (e *Environment) Instant() instant.Instant {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.instant
}

// Registry returns the frame registry this Environment's bodies are
// expressed through.
func (e *Environment) Registry() *frame.Registry {
	return e.registry
}

// BodyByName looks up a registered Celestial by name.
func (e *Environment) BodyByName(name string) (*Celestial, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.bodies[name]
	if !ok {
		return nil, errors.Wrapf(ErrBodyNotFound, "name=%q", name)
	}
	return b, nil
}

// Bodies returns every registered Celestial, in registration order.
func (e *Environment) Bodies() []*Celestial {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*Celestial, len(e.order))
	for i, name := range e.order {
		out[i] = e.bodies[name]
	}
	return out
}

// SetCentralBody designates name (which must already be registered) as the
// Environment's central body — the default occulting body for eclipse
// queries that don't name one explicitly.
func (e *Environment) SetCentralBody(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.bodies[name]; !ok {
		return errors.Wrapf(ErrBodyNotFound, "name=%q", name)
	}
	e.central = name
	return nil
}

// CentralBody returns the Environment's designated central body, if any.
func (e *Environment) CentralBody() (*Celestial, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.central == "" {
		return nil, false
	}
	return e.bodies[e.central], true
}

// IntersectingBody reports the first registered body (in registration
// order) whose spherical envelope intersects the closed segment [from, to],
// both expressed in frameName, at the Environment's current instant. Used
// by the eclipse occultation predicate.
func (e *Environment) IntersectingBody(from, to [3]float64, frameName string) (*Celestial, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, name := range e.order {
		b := e.bodies[name]
		pos, err := b.PositionIn(frameName, e.instant, e.registry)
		if err != nil {
			continue
		}
		if b.Geometry(pos.Coordinates).IntersectsSegment(from, to) {
			return b, true, nil
		}
	}
	return nil, false, nil
}
