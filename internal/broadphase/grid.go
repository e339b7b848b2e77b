package broadphase

import (
	"math"

	"physics3d/internal/bounds"
	"physics3d/internal/pairset"
	"physics3d/internal/radix"
)

const (
	// MaxScale keeps scale^3 cell keys within uint32.
	MaxScale = 1024
	// cellTarget is the object count per cell the derived scale aims for.
	cellTarget = 2
)

type cellRecord struct {
	Object pairset.Index
	Cell   uint32
}

// Grid is a uniform lattice over the world bound. Objects are recorded once
// per overlapped cell, the records are radix sorted by cell, and every run
// of records sharing a cell yields its pairs.
type Grid[W bounds.Region[W], I bounds.Volume] struct {
	world      W
	fixedScale uint32
	scale      uint32

	records []cellRecord
	keys    []uint32
	pairs   collector
}

// NewGrid creates a grid over world with scale cells per axis. A zero scale is
// recomputed from the object count on every Insert.
func NewGrid[W bounds.Region[W], I bounds.Volume](world W, scale uint32) *Grid[W, I] {
	if scale > MaxScale {
		scale = MaxScale
	}
	return &Grid[W, I]{world: world, fixedScale: scale, scale: scale}
}

// DensityScale picks the lattice resolution for n objects.
func DensityScale(n int) uint32 {
	s := math.Round(math.Cbrt(float64(n) / cellTarget))
	switch {
	case s < 1:
		return 1
	case s > MaxScale:
		return MaxScale
	}
	return uint32(s)
}

// Scale reports the lattice resolution used by the last Insert.
func (g *Grid[W, I]) Scale() uint32 {
	return g.scale
}

func (g *Grid[W, I]) Insert(items []I) error {
	if err := checkCapacity(len(items)); err != nil {
		return err
	}
	g.scale = g.fixedScale
	if g.scale == 0 {
		g.scale = DensityScale(len(items))
	}

	g.records = g.records[:0]
	for i, it := range items {
		g.keys = g.world.Cells(it, g.scale, g.keys[:0])
		for _, k := range g.keys {
			g.records = append(g.records, cellRecord{Object: pairset.Index(i), Cell: k})
		}
	}
	g.records = radix.Sort(g.records, func(r cellRecord) uint32 { return r.Cell })

	g.pairs.reset(len(items))
	for start := 0; start < len(g.records); {
		end := start + 1
		for end < len(g.records) && g.records[end].Cell == g.records[start].Cell {
			end++
		}
		for i := start; i < end; i++ {
			for j := i + 1; j < end; j++ {
				g.pairs.add(g.records[i].Object, g.records[j].Object)
			}
		}
		start = end
	}
	return nil
}

func (g *Grid[W, I]) Collisions() []pairset.Pair {
	return g.pairs.pairs
}

// Records reports how many (object, cell) records the last Insert produced.
func (g *Grid[W, I]) Records() int {
	return len(g.records)
}
