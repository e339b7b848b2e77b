package bounds

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var identityAxes = [3]rl.Vector3{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
}

// OOBB is an object-oriented bounding box.
type OOBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated, orthonormal)
}

// NewOOBB creates an oriented box rotated by q, rejecting negative half sizes.
func NewOOBB(center, halfSize rl.Vector3, q rl.Quaternion) (OOBB, error) {
	if halfSize.X < 0 || halfSize.Y < 0 || halfSize.Z < 0 {
		return OOBB{}, errors.Wrapf(ErrInvalidVolume, "oobb half size %v", halfSize)
	}
	q = rl.QuaternionNormalize(q)
	return OOBB{
		Center:   center,
		HalfSize: halfSize,
		Axes: [3]rl.Vector3{
			rl.Vector3RotateByQuaternion(identityAxes[0], q),
			rl.Vector3RotateByQuaternion(identityAxes[1], q),
			rl.Vector3RotateByQuaternion(identityAxes[2], q),
		},
	}, nil
}

// NewOOBBFromEuler creates an OOBB from center, full size, and euler rotation (degrees).
func NewOOBBFromEuler(center, size, rotation rl.Vector3) OOBB {
	rotX := rl.MatrixRotateX(rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rotation.Z * rl.Deg2rad)
	m := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	return OOBB{
		Center:   center,
		HalfSize: half(size),
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2}),
			rl.Vector3Normalize(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6}),
			rl.Vector3Normalize(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}),
		},
	}
}

// NewOOBBFromPoints orients the box along the principal axes of the point
// covariance and fits it to the points in that frame. Degenerate clouds fall
// back to identity axes.
func NewOOBBFromPoints(points []rl.Vector3) OOBB {
	switch len(points) {
	case 0:
		return OOBB{Axes: identityAxes}
	case 1:
		return OOBB{Center: points[0], Axes: identityAxes}
	}

	axes := principalAxes(points)
	var lo, hi rl.Vector3
	for i, p := range points {
		local := rl.Vector3{
			X: rl.Vector3DotProduct(p, axes[0]),
			Y: rl.Vector3DotProduct(p, axes[1]),
			Z: rl.Vector3DotProduct(p, axes[2]),
		}
		if i == 0 {
			lo, hi = local, local
			continue
		}
		lo = rl.Vector3Min(lo, local)
		hi = rl.Vector3Max(hi, local)
	}
	pad := rl.Vector3Scale(rl.Vector3Subtract(hi, lo), RelativeEpsilon)
	lo = rl.Vector3Subtract(lo, pad)
	hi = rl.Vector3Add(hi, pad)

	mid := half(rl.Vector3Add(lo, hi))
	center := rl.Vector3Add(
		rl.Vector3Add(rl.Vector3Scale(axes[0], mid.X), rl.Vector3Scale(axes[1], mid.Y)),
		rl.Vector3Scale(axes[2], mid.Z),
	)
	return OOBB{Center: center, HalfSize: half(rl.Vector3Subtract(hi, lo)), Axes: axes}
}

func principalAxes(points []rl.Vector3) [3]rl.Vector3 {
	var mean [3]float64
	for _, p := range points {
		mean[0] += float64(p.X)
		mean[1] += float64(p.Y)
		mean[2] += float64(p.Z)
	}
	n := float64(len(points))
	for i := range mean {
		mean[i] /= n
	}

	cov := make([]float64, 9)
	for _, p := range points {
		d := [3]float64{float64(p.X) - mean[0], float64(p.Y) - mean[1], float64(p.Z) - mean[2]}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				cov[r*3+c] += d[r] * d[c] / n
			}
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(mat.NewSymDense(3, cov), true) {
		return identityAxes
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	var axes [3]rl.Vector3
	for c := 0; c < 3; c++ {
		axes[c] = rl.Vector3Normalize(rl.Vector3{
			X: float32(vecs.At(0, c)),
			Y: float32(vecs.At(1, c)),
			Z: float32(vecs.At(2, c)),
		})
		if rl.Vector3LengthSqr(axes[c]) == 0 {
			return identityAxes
		}
	}
	// Keep the frame right-handed.
	axes[2] = rl.Vector3CrossProduct(axes[0], axes[1])
	return axes
}

func (o OOBB) Kind() Kind { return KindOOBB }

func (o OOBB) Position() rl.Vector3 { return o.Center }

// toLocal expresses p in the box frame, relative to the centre.
func (o OOBB) toLocal(p rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

func (o OOBB) toWorld(local rl.Vector3) rl.Vector3 {
	p := o.Center
	p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[0], local.X))
	p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[1], local.Y))
	p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[2], local.Z))
	return p
}

func (o OOBB) Bounds() AABB {
	var ext rl.Vector3
	for i, h := range [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z} {
		a := o.Axes[i]
		ext.X += absf(a.X) * h
		ext.Y += absf(a.Y) * h
		ext.Z += absf(a.Z) * h
	}
	return AABB{Min: rl.Vector3Subtract(o.Center, ext), Max: rl.Vector3Add(o.Center, ext)}
}

// Radius projects the half-extents onto axis.
func (o OOBB) Radius(axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

func (o OOBB) Project(axis rl.Vector3) (lo, hi float32) {
	c := rl.Vector3DotProduct(o.Center, axis)
	r := o.Radius(axis)
	return c - r, c + r
}

// ClosestPoint clamps p to the box extents in the box frame.
func (o OOBB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	local := o.toLocal(p)
	local.X = rl.Clamp(local.X, -o.HalfSize.X, o.HalfSize.X)
	local.Y = rl.Clamp(local.Y, -o.HalfSize.Y, o.HalfSize.Y)
	local.Z = rl.Clamp(local.Z, -o.HalfSize.Z, o.HalfSize.Z)
	return o.toWorld(local)
}

func (o OOBB) PointInside(p rl.Vector3) bool {
	local := o.toLocal(p)
	return absf(local.X) <= o.HalfSize.X &&
		absf(local.Y) <= o.HalfSize.Y &&
		absf(local.Z) <= o.HalfSize.Z
}

func (o OOBB) SquareDistance(p rl.Vector3) float32 {
	local := o.toLocal(p)
	return AABB{Min: rl.Vector3Negate(o.HalfSize), Max: o.HalfSize}.SquareDistance(local)
}

func (o OOBB) SquareSize() float32 {
	return 4 * rl.Vector3LengthSqr(o.HalfSize)
}

func (o *OOBB) SetPosition(p rl.Vector3) {
	o.Center = p
}

func (o OOBB) Grid(scale uint32, out []OOBB) []OOBB {
	if scale == 0 {
		return out
	}
	local := AABB{Min: rl.Vector3Negate(o.HalfSize), Max: o.HalfSize}
	for _, cell := range local.Grid(scale, nil) {
		out = append(out, OOBB{
			Center:   o.toWorld(cell.Position()),
			HalfSize: cell.HalfSize(),
			Axes:     o.Axes,
		})
	}
	return out
}

// Cells maps the item into the box frame by projecting it onto the box axes.
func (o OOBB) Cells(item Volume, scale uint32, out []uint32) []uint32 {
	var lo, hi rl.Vector3
	lo.X, hi.X = item.Project(o.Axes[0])
	lo.Y, hi.Y = item.Project(o.Axes[1])
	lo.Z, hi.Z = item.Project(o.Axes[2])
	c := rl.Vector3{
		X: rl.Vector3DotProduct(o.Center, o.Axes[0]),
		Y: rl.Vector3DotProduct(o.Center, o.Axes[1]),
		Z: rl.Vector3DotProduct(o.Center, o.Axes[2]),
	}
	lo = rl.Vector3Subtract(lo, c)
	hi = rl.Vector3Subtract(hi, c)
	return latticeCells(rl.Vector3Negate(o.HalfSize), o.HalfSize, lo, hi, scale, out)
}

// Subdivide splits the box into its 8 octants, which share the parent axes.
func (o OOBB) Subdivide(out []OOBB) []OOBB {
	h := half(o.HalfSize)
	for i := 0; i < 8; i++ {
		out = append(out, OOBB{
			Center:   o.toWorld(rl.Vector3Multiply(h, octantSign(i))),
			HalfSize: h,
			Axes:     o.Axes,
		})
	}
	return out
}
