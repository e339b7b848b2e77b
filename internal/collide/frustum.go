package collide

import (
	"physics3d/internal/bounds"
)

// FrustumSphere tests if a sphere is inside or intersects the frustum.
func FrustumSphere(f bounds.Frustum, s bounds.Sphere) bool {
	for i := range f.Planes {
		// If sphere is completely behind any plane, it's outside
		if f.Planes[i].SignedDistance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// FrustumAABB rejects the box when its most positive corner lies behind any
// plane. Boxes near frustum corners may pass without intersecting.
func FrustumAABB(f bounds.Frustum, a bounds.AABB) bool {
	for i := range f.Planes {
		n := f.Planes[i].Normal
		p := a.Min
		if n.X >= 0 {
			p.X = a.Max.X
		}
		if n.Y >= 0 {
			p.Y = a.Max.Y
		}
		if n.Z >= 0 {
			p.Z = a.Max.Z
		}
		if f.Planes[i].SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}

// FrustumOOBB compares the projected box radius against each plane.
func FrustumOOBB(f bounds.Frustum, o bounds.OOBB) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(o.Center) < -o.Radius(f.Planes[i].Normal) {
			return false
		}
	}
	return true
}

// FrustumVolume dispatches on the volume kind.
func FrustumVolume(f bounds.Frustum, v bounds.Volume) bool {
	switch x := bounds.Concrete(v).(type) {
	case bounds.AABB:
		return FrustumAABB(f, x)
	case bounds.Sphere:
		return FrustumSphere(f, x)
	case bounds.OOBB:
		return FrustumOOBB(f, x)
	}
	return FrustumAABB(f, v.Bounds())
}
