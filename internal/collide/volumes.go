package collide

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics3d/internal/bounds"
)

func AABBAABB(a, b bounds.AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// AABBAABBContact returns the centre of the overlap region.
func AABBAABBContact(a, b bounds.AABB) (rl.Vector3, bool) {
	if !AABBAABB(a, b) {
		return rl.Vector3{}, false
	}
	overlap := bounds.AABB{Min: rl.Vector3Max(a.Min, b.Min), Max: rl.Vector3Min(a.Max, b.Max)}
	return overlap.Position(), true
}

func SphereSphere(a, b bounds.Sphere) bool {
	r := a.Radius + b.Radius
	return rl.Vector3DistanceSqr(a.Center, b.Center) <= r*r
}

// SphereSphereContact returns the point of b's surface facing a.
func SphereSphereContact(a, b bounds.Sphere) (rl.Vector3, bool) {
	if !SphereSphere(a, b) {
		return rl.Vector3{}, false
	}
	n, _ := direction(rl.Vector3Subtract(a.Center, b.Center), Up)
	return rl.Vector3Add(b.Center, rl.Vector3Scale(n, b.Radius)), true
}

func AABBSphere(a bounds.AABB, s bounds.Sphere) bool {
	return a.SquareDistance(s.Center) <= s.Radius*s.Radius
}

// AABBSphereContact returns the point of the box nearest the sphere centre.
func AABBSphereContact(a bounds.AABB, s bounds.Sphere) (rl.Vector3, bool) {
	if !AABBSphere(a, s) {
		return rl.Vector3{}, false
	}
	return a.ClosestPoint(s.Center), true
}

func SphereOOBB(s bounds.Sphere, o bounds.OOBB) bool {
	return o.SquareDistance(s.Center) <= s.Radius*s.Radius
}

// SphereOOBBContact returns the point of the box nearest the sphere centre.
func SphereOOBBContact(s bounds.Sphere, o bounds.OOBB) (rl.Vector3, bool) {
	if !SphereOOBB(s, o) {
		return rl.Vector3{}, false
	}
	return o.ClosestPoint(s.Center), true
}

func AABBOOBB(a bounds.AABB, o bounds.OOBB) bool {
	return OOBBOOBB(a.OOBB(), o)
}

func AABBOOBBContact(a bounds.AABB, o bounds.OOBB) (rl.Vector3, bool) {
	return OOBBOOBBContact(a.OOBB(), o)
}

// OOBBOOBB tests two oriented boxes using the Separating Axis Theorem.
func OOBBOOBB(a, b bounds.OOBB) bool {
	_, ok := minimumPenetration(a, b)
	return ok
}

// OOBBOOBBContact approximates the centre of the overlap region by the
// midpoint of each box's closest point to the other's centre.
func OOBBOOBBContact(a, b bounds.OOBB) (rl.Vector3, bool) {
	if !OOBBOOBB(a, b) {
		return rl.Vector3{}, false
	}
	pa := a.ClosestPoint(b.Center)
	pb := b.ClosestPoint(a.Center)
	return rl.Vector3Scale(rl.Vector3Add(pa, pb), 0.5), true
}

// minimumPenetration runs the 15-axis SAT and returns the translation that
// pushes a out of b along the axis of least penetration.
func minimumPenetration(a, b bounds.OOBB) (rl.Vector3, bool) {
	// Vector from A's center to B's center
	t := rl.Vector3Subtract(b.Center, a.Center)

	minPenetration := float32(0)
	var mtv rl.Vector3
	found := false

	testAxis := func(axis rl.Vector3) bool {
		if rl.Vector3Length(axis) < parallelEpsilon {
			return true
		}
		axis = rl.Vector3Normalize(axis)
		dist := rl.Vector3DotProduct(t, axis)
		penetration := a.Radius(axis) + b.Radius(axis) - absf(dist)
		if penetration < 0 {
			return false
		}
		if !found || penetration < minPenetration {
			found = true
			minPenetration = penetration
			// Push in the direction away from B
			if dist < 0 {
				mtv = rl.Vector3Scale(axis, penetration)
			} else {
				mtv = rl.Vector3Scale(axis, -penetration)
			}
		}
		return true
	}

	// Face normals of A, then of B
	for i := 0; i < 3; i++ {
		if !testAxis(a.Axes[i]) {
			return rl.Vector3{}, false
		}
	}
	for i := 0; i < 3; i++ {
		if !testAxis(b.Axes[i]) {
			return rl.Vector3{}, false
		}
	}
	// Cross products of edges
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !testAxis(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])) {
				return rl.Vector3{}, false
			}
		}
	}
	return mtv, true
}
