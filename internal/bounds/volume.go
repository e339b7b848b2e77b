// Package bounds provides the bounding volumes used by the broad-phase indices
// and the narrow-phase tests: axis-aligned boxes, spheres, oriented boxes, rays,
// planes and view frustums, plus their 2D counterparts.
package bounds

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

// ErrInvalidVolume is returned when a volume is constructed with inverted
// extents, a negative radius or a negative half size.
var ErrInvalidVolume = errors.New("invalid bounding volume")

// RelativeEpsilon pads volumes fitted to point clouds so that every input
// point ends up strictly inside despite float rounding.
const RelativeEpsilon = 1e-4

// Kind tags the closed set of bounding volume variants.
type Kind uint8

const (
	KindAABB Kind = iota
	KindSphere
	KindOOBB
)

func (k Kind) String() string {
	switch k {
	case KindAABB:
		return "aabb"
	case KindSphere:
		return "sphere"
	case KindOOBB:
		return "oobb"
	default:
		return "unknown"
	}
}

// Volume is implemented by AABB, Sphere and OOBB.
type Volume interface {
	Kind() Kind
	// Position is the centre of the volume.
	Position() rl.Vector3
	// Bounds is the smallest AABB enclosing the volume.
	Bounds() AABB
	// Project returns the interval the volume covers along axis.
	Project(axis rl.Vector3) (lo, hi float32)
	ClosestPoint(p rl.Vector3) rl.Vector3
	PointInside(p rl.Vector3) bool
	SquareDistance(p rl.Vector3) float32
	SquareSize() float32
}

// Region is a volume that can span a broad-phase index: it can be cut into a
// uniform lattice of cells and recursively subdivided into children of its own type.
type Region[W any] interface {
	Volume
	// Grid appends the scale^3 uniform sub-cells of the region to out.
	Grid(scale uint32, out []W) []W
	// Cells appends the linear keys of every lattice cell item overlaps.
	Cells(item Volume, scale uint32, out []uint32) []uint32
	// Subdivide appends the 8 child regions to out.
	Subdivide(out []W) []W
}

// Movable constrains a pointer to a volume value that can be moved in place.
type Movable[T any] interface {
	*T
	Volume
	SetPosition(p rl.Vector3)
}

// Concrete strips a pointer wrapper so callers can type-switch on value types only.
func Concrete(v Volume) Volume {
	switch x := v.(type) {
	case *AABB:
		return *x
	case *Sphere:
		return *x
	case *OOBB:
		return *x
	}
	return v
}

// latticeCells appends the keys of the cells of the lattice spanning [wmin, wmax]
// that the interval box [imin, imax] touches. Touching a cell boundary counts.
func latticeCells(wmin, wmax, imin, imax rl.Vector3, scale uint32, out []uint32) []uint32 {
	if scale == 0 {
		return out
	}
	lx, hx, ok := axisCells(wmin.X, wmax.X, imin.X, imax.X, scale)
	if !ok {
		return out
	}
	ly, hy, ok := axisCells(wmin.Y, wmax.Y, imin.Y, imax.Y, scale)
	if !ok {
		return out
	}
	lz, hz, ok := axisCells(wmin.Z, wmax.Z, imin.Z, imax.Z, scale)
	if !ok {
		return out
	}
	for z := lz; z <= hz; z++ {
		for y := ly; y <= hy; y++ {
			for x := lx; x <= hx; x++ {
				out = append(out, x+y*scale+z*scale*scale)
			}
		}
	}
	return out
}

func axisCells(wmin, wmax, imin, imax float32, scale uint32) (lo, hi uint32, ok bool) {
	if imax < wmin || imin > wmax {
		return 0, 0, false
	}
	extent := wmax - wmin
	if extent <= 0 {
		return 0, 0, true
	}
	inv := float32(scale) / extent
	l := math32.Floor((imin - wmin) * inv)
	h := math32.Floor((imax - wmin) * inv)
	last := float32(scale - 1)
	l = rl.Clamp(l, 0, last)
	h = rl.Clamp(h, 0, last)
	return uint32(l), uint32(h), true
}

// octantSign returns -1 or +1 per axis for child i of a subdivision.
// Bit 0 selects X, bit 1 Y, bit 2 Z.
func octantSign(i int) rl.Vector3 {
	s := rl.Vector3{X: -1, Y: -1, Z: -1}
	if i&1 != 0 {
		s.X = 1
	}
	if i&2 != 0 {
		s.Y = 1
	}
	if i&4 != 0 {
		s.Z = 1
	}
	return s
}

func absf(x float32) float32 {
	return math32.Abs(x)
}

func half(v rl.Vector3) rl.Vector3 {
	return rl.Vector3Scale(v, 0.5)
}
