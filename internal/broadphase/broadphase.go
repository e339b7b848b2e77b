// Package broadphase finds candidate collision pairs. Grid buckets objects
// into a uniform lattice over the world bound, Tree recursively subdivides
// the world bound, and BruteForce tests every pair. All three rebuild from
// scratch on every Insert and report each unordered pair at most once.
package broadphase

import (
	"github.com/pkg/errors"

	"physics3d/internal/bounds"
	"physics3d/internal/pairset"
)

// ErrTooManyObjects is returned when an object table cannot be addressed by
// pairset.Index.
var ErrTooManyObjects = errors.New("too many objects for broad phase")

// ErrUnknownKind is returned by New for an unrecognised broad-phase name.
var ErrUnknownKind = errors.New("unknown broad phase kind")

// BroadPhase is the interface the physics loop is written against.
type BroadPhase[I bounds.Volume] interface {
	// Insert replaces the object table. Pairs returned by a previous call to
	// Collisions are invalid afterwards.
	Insert(items []I) error
	// Collisions returns the candidate pairs of the last Insert with A < B.
	Collisions() []pairset.Pair
}

type Kind string

const (
	KindGrid  Kind = "grid"
	KindTree  Kind = "tree"
	KindBrute Kind = "brute"
)

// Options configures the index built by New.
type Options struct {
	// Scale is the grid resolution per axis; 0 derives it from object density.
	Scale uint32
	Tree  TreeOptions
}

// New builds the broad phase named by kind over world.
func New[W bounds.Region[W], I bounds.Volume](kind Kind, world W, opts Options) (BroadPhase[I], error) {
	switch kind {
	case KindGrid:
		return NewGrid[W, I](world, opts.Scale), nil
	case KindTree:
		return NewTree[W, I](world, opts.Tree), nil
	case KindBrute:
		return NewBruteForce[I](), nil
	}
	return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
}

func checkCapacity(n int) error {
	if n > pairset.MaxObjects {
		return errors.Wrapf(ErrTooManyObjects, "%d objects, limit %d", n, pairset.MaxObjects)
	}
	return nil
}

// collector accumulates unique pairs for one pass.
type collector struct {
	flags *pairset.PairFlags
	pairs []pairset.Pair
}

// reset prepares for a pass over n objects. Only the bits set by the previous
// pass are cleared when the table size is unchanged.
func (c *collector) reset(n int) {
	size := uint(n)
	switch {
	case c.flags == nil:
		c.flags = pairset.New(size, size)
	case c.flags.Rows() != size:
		c.flags.Resize(size, size)
	default:
		for _, p := range c.pairs {
			c.flags.SetOff(uint(p.A), uint(p.B))
		}
	}
	c.pairs = c.pairs[:0]
}

func (c *collector) add(a, b pairset.Index) {
	if a == b {
		return
	}
	p := pairset.MakePair(a, b)
	if !c.flags.GetSetOn(uint(p.A), uint(p.B)) {
		c.pairs = append(c.pairs, p)
	}
}
