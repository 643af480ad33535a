package frame

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/open-space-collective/ostk-physics-go/instant"
)

// maxAncestorDepth bounds the ancestor walk so a misconfigured cyclic
// parent chain fails fast instead of looping forever.
const maxAncestorDepth = 64

// ErrUnknownFrame is returned when a frame name has not been registered.
var ErrUnknownFrame = errors.New("frame: unknown frame")

// ErrCyclicParentChain is returned when walking ancestors exceeds
// maxAncestorDepth without reaching a root frame.
var ErrCyclicParentChain = errors.New("frame: exceeded maximum ancestor depth (possible cycle)")

// ErrNoCommonRoot is returned when two frames' ancestor chains terminate
// at different root frames (e.g. Earth-centered vs. Moon-centered).
var ErrNoCommonRoot = errors.New("frame: frames do not share a common root")

// Registry is the process-wide, thread-safe frame graph plus its
// {from}{to}{instant}-keyed transform cache.
type Registry struct {
	mu     sync.RWMutex
	frames map[string]*Frame
	cache  map[cacheKey]Transform
}

type cacheKey struct {
	from, to string
	taiNanos int64
}

var (
	registryInstance *Registry
	registryOnce     sync.Once
)

// Get returns the process-wide Registry singleton, seeded with GCRF as an
// identity root the first time it's created.
func Get() *Registry {
	registryOnce.Do(func() {
		registryInstance = newRegistry()
		registryInstance.Register(&Frame{Name: GCRF, Provider: identityProvider})
	})
	return registryInstance
}

// New creates a standalone, empty Registry — useful for tests or for a
// scenario that needs a frame graph isolated from the process-wide
// singleton returned by Get.
func New() *Registry {
	return newRegistry()
}

func newRegistry() *Registry {
	return &Registry{
		frames: make(map[string]*Frame),
		cache:  make(map[cacheKey]Transform),
	}
}

// Register adds (or replaces) a frame definition. Replacing a frame
// invalidates the whole cache, since cached transforms may have used the
// old definition.
func (r *Registry) Register(f *Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames[f.Name] = f
	r.cache = make(map[cacheKey]Transform)
}

// Has reports whether a frame of the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.frames[name]
	return ok
}

// ancestorChain returns [leaf, ..., root], erroring if the name is unknown
// or the chain doesn't terminate within maxAncestorDepth.
func ancestorChain(frames map[string]*Frame, name string) ([]*Frame, error) {
	chain := make([]*Frame, 0, 8)
	cur := name
	for depth := 0; depth < maxAncestorDepth; depth++ {
		f, ok := frames[cur]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownFrame, "%q", cur)
		}
		chain = append(chain, f)
		if f.ParentName == "" {
			return chain, nil
		}
		cur = f.ParentName
	}
	return nil, ErrCyclicParentChain
}

// transformFromRoot composes the root->leaf transform by walking the chain
// from its root end down to the leaf, applying each provider's parent->
// child transform in turn.
func transformFromRoot(chain []*Frame, i instant.Instant) (Transform, error) {
	acc := Identity
	for idx := len(chain) - 2; idx >= 0; idx-- {
		t, err := chain[idx].Provider.TransformAt(i)
		if err != nil {
			return Transform{}, errors.Wrapf(err, "frame: computing transform for %q", chain[idx].Name)
		}
		acc = Compose(acc, t)
	}
	return acc, nil
}

// TransformAt returns the transform that carries vectors expressed in
// fromName into toName at instant i, composing providers along each
// frame's path to their common ancestor and caching the result keyed by
// {fromName}{toName}{i}.
func (r *Registry) TransformAt(fromName, toName string, i instant.Instant) (Transform, error) {
	if fromName == toName {
		return Identity, nil
	}

	key := cacheKey{fromName, toName, i.NanosecondsSinceJ2000TAI()}

	r.mu.RLock()
	if t, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return t, nil
	}
	frames := r.frames
	r.mu.RUnlock()

	chainFrom, err := ancestorChain(frames, fromName)
	if err != nil {
		return Transform{}, err
	}
	chainTo, err := ancestorChain(frames, toName)
	if err != nil {
		return Transform{}, err
	}
	if chainFrom[len(chainFrom)-1].Name != chainTo[len(chainTo)-1].Name {
		return Transform{}, ErrNoCommonRoot
	}

	rootToFrom, err := transformFromRoot(chainFrom, i)
	if err != nil {
		return Transform{}, err
	}
	rootToTo, err := transformFromRoot(chainTo, i)
	if err != nil {
		return Transform{}, err
	}

	result := Compose(rootToFrom.Inverse(), rootToTo)
	result.Orientation = rectifySign(result.Orientation)

	r.mu.Lock()
	r.cache[key] = result
	r.mu.Unlock()

	return result, nil
}

// ClearCache drops every cached transform without touching registered
// frames (useful after loading new EOP/ephemeris data that changes what a
// provider would compute for an already-queried instant).
func (r *Registry) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[cacheKey]Transform)
}
