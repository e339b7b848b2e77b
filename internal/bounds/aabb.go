package bounds

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABB creates an AABB from explicit extrema.
func NewAABB(min, max rl.Vector3) (AABB, error) {
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return AABB{}, errors.Wrapf(ErrInvalidVolume, "aabb min %v exceeds max %v", min, max)
	}
	return AABB{Min: min, Max: max}, nil
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	h := half(size)
	return AABB{
		Min: rl.Vector3Subtract(center, h),
		Max: rl.Vector3Add(center, h),
	}
}

// NewAABBFromPoints fits the box to the points and pads every side by
// RelativeEpsilon of the extent. No points gives a zero box at the origin.
func NewAABBFromPoints(points []rl.Vector3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = rl.Vector3Min(box.Min, p)
		box.Max = rl.Vector3Max(box.Max, p)
	}
	pad := rl.Vector3Scale(rl.Vector3Subtract(box.Max, box.Min), RelativeEpsilon)
	box.Min = rl.Vector3Subtract(box.Min, pad)
	box.Max = rl.Vector3Add(box.Max, pad)
	return box
}

// FromBoundingBox converts a raylib bounding box.
func FromBoundingBox(b rl.BoundingBox) AABB {
	return AABB{Min: b.Min, Max: b.Max}
}

// BoundingBox converts to the raylib representation for drawing.
func (a AABB) BoundingBox() rl.BoundingBox {
	return rl.BoundingBox{Min: a.Min, Max: a.Max}
}

func (a AABB) Kind() Kind { return KindAABB }

func (a AABB) Position() rl.Vector3 {
	return half(rl.Vector3Add(a.Min, a.Max))
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

func (a AABB) HalfSize() rl.Vector3 {
	return half(a.Size())
}

func (a AABB) Bounds() AABB { return a }

// Merge returns the smallest box containing both boxes.
func (a AABB) Merge(b AABB) AABB {
	return AABB{Min: rl.Vector3Min(a.Min, b.Min), Max: rl.Vector3Max(a.Max, b.Max)}
}

// OOBB returns the box as an oriented box with identity axes.
func (a AABB) OOBB() OOBB {
	return OOBB{
		Center:   a.Position(),
		HalfSize: a.HalfSize(),
		Axes:     identityAxes,
	}
}

func (a AABB) Project(axis rl.Vector3) (lo, hi float32) {
	c := rl.Vector3DotProduct(a.Position(), axis)
	h := a.HalfSize()
	r := h.X*absf(axis.X) + h.Y*absf(axis.Y) + h.Z*absf(axis.Z)
	return c - r, c + r
}

func (a AABB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Min(rl.Vector3Max(p, a.Min), a.Max)
}

func (a AABB) PointInside(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

func (a AABB) SquareDistance(p rl.Vector3) float32 {
	var d float32
	for _, ax := range [3][3]float32{
		{p.X, a.Min.X, a.Max.X},
		{p.Y, a.Min.Y, a.Max.Y},
		{p.Z, a.Min.Z, a.Max.Z},
	} {
		if ax[0] < ax[1] {
			d += (ax[1] - ax[0]) * (ax[1] - ax[0])
		} else if ax[0] > ax[2] {
			d += (ax[0] - ax[2]) * (ax[0] - ax[2])
		}
	}
	return d
}

func (a AABB) SquareSize() float32 {
	return rl.Vector3LengthSqr(a.Size())
}

// SetPosition moves the box so that its centre is p.
func (a *AABB) SetPosition(p rl.Vector3) {
	h := a.HalfSize()
	a.Min = rl.Vector3Subtract(p, h)
	a.Max = rl.Vector3Add(p, h)
}

func (a AABB) cellSize(scale uint32) rl.Vector3 {
	return rl.Vector3Scale(a.Size(), 1/float32(scale))
}

func (a AABB) Grid(scale uint32, out []AABB) []AABB {
	if scale == 0 {
		return out
	}
	cell := a.cellSize(scale)
	for z := uint32(0); z < scale; z++ {
		for y := uint32(0); y < scale; y++ {
			for x := uint32(0); x < scale; x++ {
				min := rl.Vector3Add(a.Min, rl.Vector3Multiply(cell, rl.Vector3{X: float32(x), Y: float32(y), Z: float32(z)}))
				out = append(out, AABB{Min: min, Max: rl.Vector3Add(min, cell)})
			}
		}
	}
	return out
}

func (a AABB) Cells(item Volume, scale uint32, out []uint32) []uint32 {
	b := item.Bounds()
	return latticeCells(a.Min, a.Max, b.Min, b.Max, scale, out)
}

// Subdivide splits the box at its centre into 8 octants that exactly tile it.
func (a AABB) Subdivide(out []AABB) []AABB {
	c := a.Position()
	for i := 0; i < 8; i++ {
		var child AABB
		if i&1 != 0 {
			child.Min.X, child.Max.X = c.X, a.Max.X
		} else {
			child.Min.X, child.Max.X = a.Min.X, c.X
		}
		if i&2 != 0 {
			child.Min.Y, child.Max.Y = c.Y, a.Max.Y
		} else {
			child.Min.Y, child.Max.Y = a.Min.Y, c.Y
		}
		if i&4 != 0 {
			child.Min.Z, child.Max.Z = c.Z, a.Max.Z
		} else {
			child.Min.Z, child.Max.Z = a.Min.Z, c.Z
		}
		out = append(out, child)
	}
	return out
}
