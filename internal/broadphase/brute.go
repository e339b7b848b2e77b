package broadphase

import (
	"physics3d/internal/bounds"
	"physics3d/internal/collide"
	"physics3d/internal/pairset"
)

// BruteForce tests every pair of enclosing boxes. It is the reference the
// other indices are checked against.
type BruteForce[I bounds.Volume] struct {
	boxes []bounds.AABB
	pairs []pairset.Pair
}

func NewBruteForce[I bounds.Volume]() *BruteForce[I] {
	return &BruteForce[I]{}
}

func (b *BruteForce[I]) Insert(items []I) error {
	if err := checkCapacity(len(items)); err != nil {
		return err
	}
	b.boxes = b.boxes[:0]
	for _, it := range items {
		b.boxes = append(b.boxes, it.Bounds())
	}
	b.pairs = b.pairs[:0]
	for i := range b.boxes {
		for j := i + 1; j < len(b.boxes); j++ {
			if collide.AABBAABB(b.boxes[i], b.boxes[j]) {
				b.pairs = append(b.pairs, pairset.Pair{A: pairset.Index(i), B: pairset.Index(j)})
			}
		}
	}
	return nil
}

func (b *BruteForce[I]) Collisions() []pairset.Pair {
	return b.pairs
}
