package frame

import (
	"github.com/open-space-collective/ostk-physics-go/instant"
)

// Provider computes the transform from a frame's parent into the frame
// itself, at a given instant. GCRF's provider is the identity (it has no
// parent).
type Provider interface {
	TransformAt(i instant.Instant) (Transform, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(i instant.Instant) (Transform, error)

func (f ProviderFunc) TransformAt(i instant.Instant) (Transform, error) { return f(i) }

// Frame is one node of the reference-frame graph: a name, a parent (by
// name, to avoid a Frame<->Provider reference cycle — providers look their
// parent up through the registry on demand instead of holding a pointer to
// it), and the Provider that computes the parent->this transform.
type Frame struct {
	Name       string
	ParentName string // "" marks a root frame
	Provider   Provider
}

var identityProvider = ProviderFunc(func(instant.Instant) (Transform, error) { return Identity, nil })
