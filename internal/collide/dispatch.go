package collide

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics3d/internal/bounds"
)

// Overlaps runs the predicate matching the kinds of a and b.
func Overlaps(a, b bounds.Volume) bool {
	_, ok := contact(a, b, false)
	return ok
}

// Contact returns a representative point of the intersection of a and b.
func Contact(a, b bounds.Volume) (rl.Vector3, bool) {
	return contact(a, b, true)
}

func contact(a, b bounds.Volume, withPoint bool) (rl.Vector3, bool) {
	a, b = bounds.Concrete(a), bounds.Concrete(b)
	switch x := a.(type) {
	case bounds.AABB:
		switch y := b.(type) {
		case bounds.AABB:
			if withPoint {
				return AABBAABBContact(x, y)
			}
			return rl.Vector3{}, AABBAABB(x, y)
		case bounds.Sphere:
			if withPoint {
				return AABBSphereContact(x, y)
			}
			return rl.Vector3{}, AABBSphere(x, y)
		case bounds.OOBB:
			if withPoint {
				return AABBOOBBContact(x, y)
			}
			return rl.Vector3{}, AABBOOBB(x, y)
		}
	case bounds.Sphere:
		switch y := b.(type) {
		case bounds.AABB:
			if withPoint {
				return AABBSphereContact(y, x)
			}
			return rl.Vector3{}, AABBSphere(y, x)
		case bounds.Sphere:
			if withPoint {
				return SphereSphereContact(x, y)
			}
			return rl.Vector3{}, SphereSphere(x, y)
		case bounds.OOBB:
			if withPoint {
				return SphereOOBBContact(x, y)
			}
			return rl.Vector3{}, SphereOOBB(x, y)
		}
	case bounds.OOBB:
		switch y := b.(type) {
		case bounds.AABB:
			if withPoint {
				return AABBOOBBContact(y, x)
			}
			return rl.Vector3{}, AABBOOBB(y, x)
		case bounds.Sphere:
			if withPoint {
				return SphereOOBBContact(y, x)
			}
			return rl.Vector3{}, SphereOOBB(y, x)
		case bounds.OOBB:
			if withPoint {
				return OOBBOOBBContact(x, y)
			}
			return rl.Vector3{}, OOBBOOBB(x, y)
		}
	}
	// Unknown volume types fall back to their enclosing boxes.
	if withPoint {
		return AABBAABBContact(a.Bounds(), b.Bounds())
	}
	return rl.Vector3{}, AABBAABB(a.Bounds(), b.Bounds())
}

// Raycast casts the ray against any volume kind.
func Raycast(r bounds.Ray, v bounds.Volume, maxDistance float32) (Hit, bool) {
	switch x := bounds.Concrete(v).(type) {
	case bounds.AABB:
		return RaycastAABB(r, x, maxDistance)
	case bounds.Sphere:
		return RaycastSphere(r, x, maxDistance)
	case bounds.OOBB:
		return RaycastOOBB(r, x, maxDistance)
	}
	return RaycastAABB(r, v.Bounds(), maxDistance)
}
