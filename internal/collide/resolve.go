package collide

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics3d/internal/bounds"
)

// Resolve computes the translation that, applied to a, leaves the sphere
// centres ra + rb + tolerance apart along their centre line. normal points
// from b towards a and defaults to Up for coincident centres. contact is the
// touching point on b's surface after the offset is applied. Spheres already
// at least that far apart get a zero offset.
func Resolve(a, b bounds.Sphere, tolerance float32) (offset, normal, contact rl.Vector3) {
	normal, dist := direction(rl.Vector3Subtract(a.Center, b.Center), Up)
	if depth := a.Radius + b.Radius + tolerance - dist; depth > 0 {
		offset = rl.Vector3Scale(normal, depth)
	}
	contact = rl.Vector3Add(b.Center, rl.Vector3Scale(normal, b.Radius))
	return offset, normal, contact
}

// Resolve2 is Resolve for circles.
func Resolve2(a, b bounds.Circle, tolerance float32) (offset, normal, contact rl.Vector2) {
	normal, dist := direction2(rl.Vector2Subtract(a.Center, b.Center), Up2)
	if depth := a.Radius + b.Radius + tolerance - dist; depth > 0 {
		offset = rl.Vector2Scale(normal, depth)
	}
	contact = rl.Vector2Add(b.Center, rl.Vector2Scale(normal, b.Radius))
	return offset, normal, contact
}

// Separate returns the translation that pushes a out of b plus tolerance.
// ok is false, with a zero offset, when the volumes do not overlap.
func Separate(a, b bounds.Volume, tolerance float32) (rl.Vector3, bool) {
	if !Overlaps(a, b) {
		return rl.Vector3{}, false
	}
	a, b = bounds.Concrete(a), bounds.Concrete(b)

	switch x := a.(type) {
	case bounds.Sphere:
		if y, ok := b.(bounds.Sphere); ok {
			offset, _, _ := Resolve(x, y, tolerance)
			return offset, true
		}
		return separateSphere(x, b, tolerance), true
	case bounds.AABB:
		switch y := b.(type) {
		case bounds.AABB:
			return pad(resolveAABB(x, y), tolerance), true
		case bounds.Sphere:
			return rl.Vector3Negate(separateSphere(y, x, tolerance)), true
		}
	case bounds.OOBB:
		if y, ok := b.(bounds.Sphere); ok {
			return rl.Vector3Negate(separateSphere(y, x, tolerance)), true
		}
	}
	mtv, _ := minimumPenetration(asOOBB(a), asOOBB(b))
	return pad(mtv, tolerance), true
}

// resolveAABB returns the minimum translation vector to push a out of b.
func resolveAABB(a, b bounds.AABB) rl.Vector3 {
	// Penetration depth in each direction
	dx1 := b.Max.X - a.Min.X // push a in +X
	dx2 := a.Max.X - b.Min.X // push a in -X
	dy1 := b.Max.Y - a.Min.Y // push a in +Y
	dy2 := a.Max.Y - b.Min.Y // push a in -Y
	dz1 := b.Max.Z - a.Min.Z // push a in +Z
	dz2 := a.Max.Z - b.Min.Z // push a in -Z

	min := dx1
	result := rl.Vector3{X: dx1}
	if dx2 < min {
		min = dx2
		result = rl.Vector3{X: -dx2}
	}
	if dy1 < min {
		min = dy1
		result = rl.Vector3{Y: dy1}
	}
	if dy2 < min {
		min = dy2
		result = rl.Vector3{Y: -dy2}
	}
	if dz1 < min {
		min = dz1
		result = rl.Vector3{Z: dz1}
	}
	if dz2 < min {
		result = rl.Vector3{Z: -dz2}
	}
	return result
}

// separateSphere pushes the sphere out of a box along the line from the
// closest box point to the centre. A centre buried inside the box falls back
// to the box SAT axis.
func separateSphere(s bounds.Sphere, box bounds.Volume, tolerance float32) rl.Vector3 {
	if box.PointInside(s.Center) {
		mtv, _ := minimumPenetration(s.Bounds().OOBB(), asOOBB(box))
		return pad(mtv, tolerance)
	}
	c := box.ClosestPoint(s.Center)
	n, dist := direction(rl.Vector3Subtract(s.Center, c), Up)
	depth := s.Radius + tolerance - dist
	if depth <= 0 {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(n, depth)
}

func asOOBB(v bounds.Volume) bounds.OOBB {
	switch x := v.(type) {
	case bounds.OOBB:
		return x
	case bounds.AABB:
		return x.OOBB()
	}
	return v.Bounds().OOBB()
}

// pad extends a translation by tolerance along its own direction.
func pad(v rl.Vector3, tolerance float32) rl.Vector3 {
	n, length := direction(v, Up)
	return rl.Vector3Scale(n, length+tolerance)
}
