package bounds

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Plane is the set of points p with dot(Normal, p) + Distance == 0.
// The positive half-space is the side Normal points to.
type Plane struct {
	Normal   rl.Vector3
	Distance float32
}

// NewPlane builds the plane through point with the given normal.
func NewPlane(normal, point rl.Vector3) Plane {
	n := rl.Vector3Normalize(normal)
	return Plane{Normal: n, Distance: -rl.Vector3DotProduct(n, point)}
}

// normalized rescales the plane equation so that Normal has unit length.
func (p Plane) normalized() Plane {
	length := rl.Vector3Length(p.Normal)
	if length == 0 {
		return p
	}
	return Plane{
		Normal:   rl.Vector3Scale(p.Normal, 1/length),
		Distance: p.Distance / length,
	}
}

// SignedDistance is positive in front of the plane.
func (p Plane) SignedDistance(pt rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.Normal, pt) + p.Distance
}

func (p Plane) ClosestPoint(pt rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(pt, rl.Vector3Scale(p.Normal, p.SignedDistance(pt)))
}

func (p Plane) SquareDistance(pt rl.Vector3) float32 {
	d := p.SignedDistance(pt)
	return d * d
}
