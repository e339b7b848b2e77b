package broadphase

import (
	"math"

	"physics3d/internal/bounds"
	"physics3d/internal/collide"
	"physics3d/internal/pairset"
)

// TreeOptions bounds the subdivision.
type TreeOptions struct {
	// LeafSize is the population at or below which a node is not split.
	LeafSize int
	// MaxDepth is the deepest level a node may be created at; the root is 0.
	MaxDepth int
	// MaxDuplication caps the total (object, node) residencies at
	// MaxDuplication * N. Nodes whose split would exceed it stay leaves.
	MaxDuplication int
}

func DefaultTreeOptions() TreeOptions {
	return TreeOptions{LeafSize: 8, MaxDepth: 8, MaxDuplication: 8}
}

type nodeID uint32

const noChildren = nodeID(math.MaxUint32)

type node[W any] struct {
	region W
	// tile is the octant box the node covers when regions overlap their siblings.
	tile       bounds.AABB
	firstChild nodeID
	depth      int
	// residents is the range of this node's objects in Tree.residents. Leaves
	// hold every object reaching them; internal nodes only the objects that
	// overlap none of their children.
	start, count uint32
}

// Tree recursively splits the world bound into 8 children, pushing every
// object into each child it overlaps, until nodes are small or deep enough.
type Tree[W bounds.Region[W], I bounds.Volume] struct {
	world W
	opts  TreeOptions
	// tiled assigns objects against the octant boxes of the world's enclosing
	// box instead of the regions. Sphere children circumscribe those octants,
	// so all eight contain the parent centre and would never prune.
	tiled bool

	items       []I
	nodes       []node[W]
	residents   []pairset.Index
	residencies int
	budget      int
	depth       int
	pairs       collector
}

// NewTree creates a tree over world. Zero option fields take their defaults.
func NewTree[W bounds.Region[W], I bounds.Volume](world W, opts TreeOptions) *Tree[W, I] {
	def := DefaultTreeOptions()
	if opts.LeafSize <= 0 {
		opts.LeafSize = def.LeafSize
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = def.MaxDepth
	}
	if opts.MaxDuplication <= 0 {
		opts.MaxDuplication = def.MaxDuplication
	}
	return &Tree[W, I]{world: world, opts: opts, tiled: world.Kind() == bounds.KindSphere}
}

// Depth reports the deepest level realized by the last Insert.
func (t *Tree[W, I]) Depth() int {
	return t.depth
}

// Nodes reports how many nodes the last Insert created.
func (t *Tree[W, I]) Nodes() int {
	return len(t.nodes)
}

func (t *Tree[W, I]) Insert(items []I) error {
	if err := checkCapacity(len(items)); err != nil {
		return err
	}
	t.items = items
	t.nodes = t.nodes[:0]
	t.residents = t.residents[:0]
	t.depth = 0
	t.residencies = len(items)
	t.budget = t.opts.MaxDuplication * len(items)
	t.pairs.reset(len(items))

	all := make([]pairset.Index, len(items))
	for i := range all {
		all[i] = pairset.Index(i)
	}
	t.nodes = append(t.nodes, node[W]{region: t.world, tile: t.world.Bounds(), firstChild: noChildren})
	t.build(0, all)
	return nil
}

func (t *Tree[W, I]) Collisions() []pairset.Pair {
	return t.pairs.pairs
}

func (t *Tree[W, I]) build(id nodeID, objs []pairset.Index) {
	depth := t.nodes[id].depth
	if depth > t.depth {
		t.depth = depth
	}
	if len(objs) <= t.opts.LeafSize || depth >= t.opts.MaxDepth {
		t.leaf(id, objs)
		return
	}

	children := t.nodes[id].region.Subdivide(make([]W, 0, 8))
	var tiles []bounds.AABB
	if t.tiled {
		tiles = t.nodes[id].tile.Subdivide(make([]bounds.AABB, 0, 8))
	}
	buckets := make([][]pairset.Index, len(children))
	var kept []pairset.Index
	placed := 0
	for _, o := range objs {
		hit := false
		for c := range children {
			if t.overlapsChild(children, tiles, c, t.items[o]) {
				buckets[c] = append(buckets[c], o)
				placed++
				hit = true
			}
		}
		if !hit {
			kept = append(kept, o)
		}
	}

	// Splitting replaces len(objs) residencies by placed + len(kept).
	growth := placed + len(kept) - len(objs)
	if t.residencies+growth > t.budget {
		t.leaf(id, objs)
		return
	}
	t.residencies += growth

	// Objects overlapping no child stay here and pair with everything that
	// reached this node.
	t.setResidents(id, kept)
	for _, k := range kept {
		for _, o := range objs {
			t.pairs.add(k, o)
		}
	}

	first := nodeID(len(t.nodes))
	t.nodes[id].firstChild = first
	for c := range children {
		child := node[W]{region: children[c], firstChild: noChildren, depth: depth + 1}
		if t.tiled {
			child.tile = tiles[c]
		}
		t.nodes = append(t.nodes, child)
	}
	for c := range children {
		if len(buckets[c]) > 0 {
			t.build(first+nodeID(c), buckets[c])
		}
	}
}

func (t *Tree[W, I]) leaf(id nodeID, objs []pairset.Index) {
	t.setResidents(id, objs)
	for i := range objs {
		for j := i + 1; j < len(objs); j++ {
			t.pairs.add(objs[i], objs[j])
		}
	}
}

func (t *Tree[W, I]) setResidents(id nodeID, objs []pairset.Index) {
	t.nodes[id].start = uint32(len(t.residents))
	t.nodes[id].count = uint32(len(objs))
	t.residents = append(t.residents, objs...)
}

// overlapsChild reports whether item reaches child c, testing the octant box
// for tiled trees and the region otherwise.
func (t *Tree[W, I]) overlapsChild(children []W, tiles []bounds.AABB, c int, item I) bool {
	if t.tiled {
		return overlapsRegion(tiles[c], item)
	}
	return overlapsRegion(children[c], item)
}

// overlapsRegion rejects on enclosing boxes before the exact test.
func overlapsRegion(region, item bounds.Volume) bool {
	if !collide.AABBAABB(region.Bounds(), item.Bounds()) {
		return false
	}
	return collide.Overlaps(region, item)
}

// Leaves calls fn with the region and residents of every leaf.
func (t *Tree[W, I]) Leaves(fn func(region W, residents []pairset.Index)) {
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.firstChild != noChildren {
			continue
		}
		fn(n.region, t.residents[n.start:n.start+n.count])
	}
}
