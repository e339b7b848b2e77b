package bounds

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Ray is a half-line. Direction is kept normalized.
type Ray struct {
	Position  rl.Vector3
	Direction rl.Vector3
}

// NewRay normalizes direction. A zero direction yields a degenerate ray that hits nothing.
func NewRay(origin, direction rl.Vector3) Ray {
	return Ray{Position: origin, Direction: rl.Vector3Normalize(direction)}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) rl.Vector3 {
	return rl.Vector3Add(r.Position, rl.Vector3Scale(r.Direction, t))
}

// ClosestPoint projects p onto the ray, clamped at the origin.
func (r Ray) ClosestPoint(p rl.Vector3) rl.Vector3 {
	t := rl.Vector3DotProduct(rl.Vector3Subtract(p, r.Position), r.Direction)
	if t < 0 {
		t = 0
	}
	return r.At(t)
}

func (r Ray) SquareDistance(p rl.Vector3) float32 {
	return rl.Vector3DistanceSqr(p, r.ClosestPoint(p))
}
