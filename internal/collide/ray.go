package collide

import (
	"math"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics3d/internal/bounds"
)

// slab intersects the ray o + d*t with the box [min, max] one axis at a time.
// axis reports which slab produced the entry distance, or -1 when the origin
// is inside the box.
func slab(o, d, min, max [3]float32) (tmin, tmax float32, axis int, ok bool) {
	tmin, tmax = float32(-math.MaxFloat32), float32(math.MaxFloat32)
	axis = -1
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < min[i] || o[i] > max[i] {
				return 0, 0, -1, false
			}
			continue
		}
		t1 := (min[i] - o[i]) / d[i]
		t2 := (max[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, 0, -1, false
		}
	}
	if tmax < 0 {
		return 0, 0, -1, false
	}
	if tmin < 0 {
		axis = -1
	}
	return tmin, tmax, axis, true
}

func vec3(v rl.Vector3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

// localHit finishes a slab hit: distance clamped at the origin, normal facing
// against the ray on the entry face.
func localHit(d [3]float32, tmin float32, axis int) (float32, [3]float32) {
	var n [3]float32
	if axis < 0 {
		return 0, n
	}
	if d[axis] > 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return tmin, n
}

// RaycastAABB returns the entry point of the ray into the box within maxDistance.
// A ray starting inside the box hits at its origin with a normal facing back
// along the ray.
func RaycastAABB(r bounds.Ray, a bounds.AABB, maxDistance float32) (Hit, bool) {
	d := vec3(r.Direction)
	tmin, _, axis, ok := slab(vec3(r.Position), d, vec3(a.Min), vec3(a.Max))
	if !ok {
		return Hit{}, false
	}
	t, n := localHit(d, tmin, axis)
	if t > maxDistance {
		return Hit{}, false
	}
	normal := rl.Vector3{X: n[0], Y: n[1], Z: n[2]}
	if axis < 0 {
		normal = rl.Vector3Negate(r.Direction)
	}
	return Hit{Point: r.At(t), Normal: normal, Distance: t}, true
}

func RayAABB(r bounds.Ray, a bounds.AABB) bool {
	_, ok := RaycastAABB(r, a, math.MaxFloat32)
	return ok
}

func RayAABBContact(r bounds.Ray, a bounds.AABB) (rl.Vector3, bool) {
	h, ok := RaycastAABB(r, a, math.MaxFloat32)
	return h.Point, ok
}

// RaycastOOBB runs the slab test in the box frame.
func RaycastOOBB(r bounds.Ray, o bounds.OOBB, maxDistance float32) (Hit, bool) {
	rel := rl.Vector3Subtract(r.Position, o.Center)
	var origin, dir [3]float32
	for i := 0; i < 3; i++ {
		origin[i] = rl.Vector3DotProduct(rel, o.Axes[i])
		dir[i] = rl.Vector3DotProduct(r.Direction, o.Axes[i])
	}
	h := vec3(o.HalfSize)
	lo := [3]float32{-h[0], -h[1], -h[2]}
	tmin, _, axis, ok := slab(origin, dir, lo, h)
	if !ok {
		return Hit{}, false
	}
	t, n := localHit(dir, tmin, axis)
	if t > maxDistance {
		return Hit{}, false
	}
	normal := rl.Vector3Negate(r.Direction)
	if axis >= 0 {
		normal = rl.Vector3Scale(o.Axes[axis], n[axis])
	}
	return Hit{Point: r.At(t), Normal: normal, Distance: t}, true
}

func RayOOBB(r bounds.Ray, o bounds.OOBB) bool {
	_, ok := RaycastOOBB(r, o, math.MaxFloat32)
	return ok
}

func RayOOBBContact(r bounds.Ray, o bounds.OOBB) (rl.Vector3, bool) {
	h, ok := RaycastOOBB(r, o, math.MaxFloat32)
	return h.Point, ok
}

// RaycastSphere solves the ray/sphere quadratic for the nearest non-negative root.
func RaycastSphere(r bounds.Ray, s bounds.Sphere, maxDistance float32) (Hit, bool) {
	oc := rl.Vector3Subtract(r.Position, s.Center)
	a := rl.Vector3DotProduct(r.Direction, r.Direction)
	if a == 0 {
		return Hit{}, false
	}
	b := 2.0 * rl.Vector3DotProduct(oc, r.Direction)
	c := rl.Vector3DotProduct(oc, oc) - s.Radius*s.Radius

	if c <= 0 {
		return Hit{Point: r.Position, Normal: rl.Vector3Negate(r.Direction)}, true
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return Hit{}, false
	}
	t := (-b - math32.Sqrt(discriminant)) / (2 * a)
	if t < 0 || t > maxDistance {
		return Hit{}, false
	}

	point := r.At(t)
	normal, _ := direction(rl.Vector3Subtract(point, s.Center), rl.Vector3Negate(r.Direction))
	return Hit{Point: point, Normal: normal, Distance: t}, true
}

func RaySphere(r bounds.Ray, s bounds.Sphere) bool {
	_, ok := RaycastSphere(r, s, math.MaxFloat32)
	return ok
}

func RaySphereContact(r bounds.Ray, s bounds.Sphere) (rl.Vector3, bool) {
	h, ok := RaycastSphere(r, s, math.MaxFloat32)
	return h.Point, ok
}
