package collide

import (
	"math"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics3d/internal/bounds"
)

// Raycast2Rect is the 2D slab test.
func Raycast2Rect(r bounds.Ray2, rect bounds.Rect, maxDistance float32) (Hit2, bool) {
	o := [2]float32{r.Position.X, r.Position.Y}
	d := [2]float32{r.Direction.X, r.Direction.Y}
	lo := [2]float32{rect.Min.X, rect.Min.Y}
	hi := [2]float32{rect.Max.X, rect.Max.Y}

	tmin, tmax := float32(-math.MaxFloat32), float32(math.MaxFloat32)
	axis := -1
	for i := 0; i < 2; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return Hit2{}, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin, axis = t1, i
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return Hit2{}, false
		}
	}
	if tmax < 0 {
		return Hit2{}, false
	}
	if tmin < 0 {
		return Hit2{Point: r.Position, Normal: rl.Vector2Negate(r.Direction)}, true
	}
	if tmin > maxDistance {
		return Hit2{}, false
	}
	var n [2]float32
	if d[axis] > 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return Hit2{Point: r.At(tmin), Normal: rl.Vector2{X: n[0], Y: n[1]}, Distance: tmin}, true
}

func Ray2Rect(r bounds.Ray2, rect bounds.Rect) bool {
	_, ok := Raycast2Rect(r, rect, math.MaxFloat32)
	return ok
}

func Ray2RectContact(r bounds.Ray2, rect bounds.Rect) (rl.Vector2, bool) {
	h, ok := Raycast2Rect(r, rect, math.MaxFloat32)
	return h.Point, ok
}

func Raycast2Circle(r bounds.Ray2, c bounds.Circle, maxDistance float32) (Hit2, bool) {
	oc := rl.Vector2Subtract(r.Position, c.Center)
	a := rl.Vector2DotProduct(r.Direction, r.Direction)
	if a == 0 {
		return Hit2{}, false
	}
	b := 2 * rl.Vector2DotProduct(oc, r.Direction)
	cc := rl.Vector2DotProduct(oc, oc) - c.Radius*c.Radius
	if cc <= 0 {
		return Hit2{Point: r.Position, Normal: rl.Vector2Negate(r.Direction)}, true
	}
	disc := b*b - 4*a*cc
	if disc < 0 {
		return Hit2{}, false
	}
	t := (-b - math32.Sqrt(disc)) / (2 * a)
	if t < 0 || t > maxDistance {
		return Hit2{}, false
	}
	p := r.At(t)
	n, _ := direction2(rl.Vector2Subtract(p, c.Center), rl.Vector2Negate(r.Direction))
	return Hit2{Point: p, Normal: n, Distance: t}, true
}

func Ray2Circle(r bounds.Ray2, c bounds.Circle) bool {
	_, ok := Raycast2Circle(r, c, math.MaxFloat32)
	return ok
}

func Ray2CircleContact(r bounds.Ray2, c bounds.Circle) (rl.Vector2, bool) {
	h, ok := Raycast2Circle(r, c, math.MaxFloat32)
	return h.Point, ok
}

func RectRect(a, b bounds.Rect) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}

// RectRectContact returns the centre of the overlap region.
func RectRectContact(a, b bounds.Rect) (rl.Vector2, bool) {
	if !RectRect(a, b) {
		return rl.Vector2{}, false
	}
	lo := rl.Vector2{X: math32.Max(a.Min.X, b.Min.X), Y: math32.Max(a.Min.Y, b.Min.Y)}
	hi := rl.Vector2{X: math32.Min(a.Max.X, b.Max.X), Y: math32.Min(a.Max.Y, b.Max.Y)}
	return rl.Vector2Scale(rl.Vector2Add(lo, hi), 0.5), true
}

func CircleCircle(a, b bounds.Circle) bool {
	r := a.Radius + b.Radius
	return rl.Vector2DistanceSqr(a.Center, b.Center) <= r*r
}

// CircleCircleContact returns the point of b's rim facing a.
func CircleCircleContact(a, b bounds.Circle) (rl.Vector2, bool) {
	if !CircleCircle(a, b) {
		return rl.Vector2{}, false
	}
	n, _ := direction2(rl.Vector2Subtract(a.Center, b.Center), Up2)
	return rl.Vector2Add(b.Center, rl.Vector2Scale(n, b.Radius)), true
}

func RectCircle(r bounds.Rect, c bounds.Circle) bool {
	return r.SquareDistance(c.Center) <= c.Radius*c.Radius
}

func RectCircleContact(r bounds.Rect, c bounds.Circle) (rl.Vector2, bool) {
	if !RectCircle(r, c) {
		return rl.Vector2{}, false
	}
	return r.ClosestPoint(c.Center), true
}

func CircleOrientedRect(c bounds.Circle, o bounds.OrientedRect) bool {
	return o.SquareDistance(c.Center) <= c.Radius*c.Radius
}

func CircleOrientedRectContact(c bounds.Circle, o bounds.OrientedRect) (rl.Vector2, bool) {
	if !CircleOrientedRect(c, o) {
		return rl.Vector2{}, false
	}
	return o.ClosestPoint(c.Center), true
}

func RectOrientedRect(r bounds.Rect, o bounds.OrientedRect) bool {
	return OrientedRectOrientedRect(r.OrientedRect(), o)
}

// OrientedRectOrientedRect separates on the four face normals.
func OrientedRectOrientedRect(a, b bounds.OrientedRect) bool {
	for _, axis := range [4]rl.Vector2{a.Axes[0], a.Axes[1], b.Axes[0], b.Axes[1]} {
		alo, ahi := a.Project(axis)
		blo, bhi := b.Project(axis)
		if ahi < blo || bhi < alo {
			return false
		}
	}
	return true
}

func polygonProject(points [4]rl.Vector2, axis rl.Vector2) (lo, hi float32) {
	lo = rl.Vector2DotProduct(points[0], axis)
	hi = lo
	for _, p := range points[1:] {
		d := rl.Vector2DotProduct(p, axis)
		lo = math32.Min(lo, d)
		hi = math32.Max(hi, d)
	}
	return lo, hi
}

// Frustum2OrientedRect separates the convex view region and the rectangle on
// the rectangle axes and the frustum line normals.
func Frustum2OrientedRect(f bounds.Frustum2, o bounds.OrientedRect) bool {
	corners := f.Corners()
	axes := [6]rl.Vector2{o.Axes[0], o.Axes[1]}
	for i, l := range f.Lines {
		axes[2+i] = l.Normal
	}
	for _, axis := range axes {
		flo, fhi := polygonProject(corners, axis)
		olo, ohi := o.Project(axis)
		if fhi < olo || ohi < flo {
			return false
		}
	}
	return true
}

func Frustum2Rect(f bounds.Frustum2, r bounds.Rect) bool {
	return Frustum2OrientedRect(f, r.OrientedRect())
}

func Frustum2Circle(f bounds.Frustum2, c bounds.Circle) bool {
	return f.SquareDistance(c.Center) <= c.Radius*c.Radius
}
