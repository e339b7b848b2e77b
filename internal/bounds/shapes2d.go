package bounds

import (
	"math"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min rl.Vector2
	Max rl.Vector2
}

func NewRect(min, max rl.Vector2) (Rect, error) {
	if min.X > max.X || min.Y > max.Y {
		return Rect{}, errors.Wrapf(ErrInvalidVolume, "rect min %v exceeds max %v", min, max)
	}
	return Rect{Min: min, Max: max}, nil
}

// NewRectFromPoints fits the rectangle to the points with a relative pad.
func NewRectFromPoints(points []rl.Vector2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min = min2(r.Min, p)
		r.Max = max2(r.Max, p)
	}
	pad := rl.Vector2Scale(rl.Vector2Subtract(r.Max, r.Min), RelativeEpsilon)
	r.Min = rl.Vector2Subtract(r.Min, pad)
	r.Max = rl.Vector2Add(r.Max, pad)
	return r
}

func (r Rect) Position() rl.Vector2 {
	return rl.Vector2Scale(rl.Vector2Add(r.Min, r.Max), 0.5)
}

func (r Rect) HalfSize() rl.Vector2 {
	return rl.Vector2Scale(rl.Vector2Subtract(r.Max, r.Min), 0.5)
}

func (r Rect) Project(axis rl.Vector2) (lo, hi float32) {
	c := rl.Vector2DotProduct(r.Position(), axis)
	h := r.HalfSize()
	e := h.X*absf(axis.X) + h.Y*absf(axis.Y)
	return c - e, c + e
}

func (r Rect) ClosestPoint(p rl.Vector2) rl.Vector2 {
	return min2(max2(p, r.Min), r.Max)
}

func (r Rect) PointInside(p rl.Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) SquareDistance(p rl.Vector2) float32 {
	return rl.Vector2DistanceSqr(p, r.ClosestPoint(p))
}

// OrientedRect returns the rectangle as an oriented rectangle with identity axes.
func (r Rect) OrientedRect() OrientedRect {
	return OrientedRect{
		Center:   r.Position(),
		HalfSize: r.HalfSize(),
		Axes:     [2]rl.Vector2{{X: 1}, {Y: 1}},
	}
}

type Circle struct {
	Center rl.Vector2
	Radius float32
}

func NewCircle(center rl.Vector2, radius float32) (Circle, error) {
	if radius < 0 || math32.IsNaN(radius) {
		return Circle{}, errors.Wrapf(ErrInvalidVolume, "circle radius %v", radius)
	}
	return Circle{Center: center, Radius: radius}, nil
}

func (c Circle) Project(axis rl.Vector2) (lo, hi float32) {
	d := rl.Vector2DotProduct(c.Center, axis)
	r := c.Radius * rl.Vector2Length(axis)
	return d - r, d + r
}

func (c Circle) ClosestPoint(p rl.Vector2) rl.Vector2 {
	d := rl.Vector2Subtract(p, c.Center)
	if rl.Vector2LengthSqr(d) <= c.Radius*c.Radius {
		return p
	}
	return rl.Vector2Add(c.Center, rl.Vector2Scale(rl.Vector2Normalize(d), c.Radius))
}

func (c Circle) PointInside(p rl.Vector2) bool {
	return rl.Vector2DistanceSqr(p, c.Center) <= c.Radius*c.Radius
}

func (c Circle) SquareDistance(p rl.Vector2) float32 {
	d := rl.Vector2Distance(p, c.Center) - c.Radius
	if d <= 0 {
		return 0
	}
	return d * d
}

// OrientedRect is a rectangle rotated about its centre.
type OrientedRect struct {
	Center   rl.Vector2
	HalfSize rl.Vector2
	Axes     [2]rl.Vector2
}

// NewOrientedRect rotates the rectangle by angle radians counter-clockwise.
func NewOrientedRect(center, halfSize rl.Vector2, angle float32) (OrientedRect, error) {
	if halfSize.X < 0 || halfSize.Y < 0 {
		return OrientedRect{}, errors.Wrapf(ErrInvalidVolume, "oriented rect half size %v", halfSize)
	}
	return OrientedRect{
		Center:   center,
		HalfSize: halfSize,
		Axes: [2]rl.Vector2{
			rl.Vector2Rotate(rl.Vector2{X: 1}, angle),
			rl.Vector2Rotate(rl.Vector2{Y: 1}, angle),
		},
	}, nil
}

func (o OrientedRect) toLocal(p rl.Vector2) rl.Vector2 {
	d := rl.Vector2Subtract(p, o.Center)
	return rl.Vector2{X: rl.Vector2DotProduct(d, o.Axes[0]), Y: rl.Vector2DotProduct(d, o.Axes[1])}
}

func (o OrientedRect) toWorld(local rl.Vector2) rl.Vector2 {
	p := rl.Vector2Add(o.Center, rl.Vector2Scale(o.Axes[0], local.X))
	return rl.Vector2Add(p, rl.Vector2Scale(o.Axes[1], local.Y))
}

// Corners are returned counter-clockwise.
func (o OrientedRect) Corners() [4]rl.Vector2 {
	h := o.HalfSize
	return [4]rl.Vector2{
		o.toWorld(rl.Vector2{X: -h.X, Y: -h.Y}),
		o.toWorld(rl.Vector2{X: h.X, Y: -h.Y}),
		o.toWorld(rl.Vector2{X: h.X, Y: h.Y}),
		o.toWorld(rl.Vector2{X: -h.X, Y: h.Y}),
	}
}

func (o OrientedRect) Bounds() Rect {
	e := rl.Vector2{
		X: absf(o.Axes[0].X)*o.HalfSize.X + absf(o.Axes[1].X)*o.HalfSize.Y,
		Y: absf(o.Axes[0].Y)*o.HalfSize.X + absf(o.Axes[1].Y)*o.HalfSize.Y,
	}
	return Rect{Min: rl.Vector2Subtract(o.Center, e), Max: rl.Vector2Add(o.Center, e)}
}

func (o OrientedRect) Project(axis rl.Vector2) (lo, hi float32) {
	c := rl.Vector2DotProduct(o.Center, axis)
	r := o.HalfSize.X*absf(rl.Vector2DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector2DotProduct(o.Axes[1], axis))
	return c - r, c + r
}

func (o OrientedRect) ClosestPoint(p rl.Vector2) rl.Vector2 {
	local := o.toLocal(p)
	local.X = rl.Clamp(local.X, -o.HalfSize.X, o.HalfSize.X)
	local.Y = rl.Clamp(local.Y, -o.HalfSize.Y, o.HalfSize.Y)
	return o.toWorld(local)
}

func (o OrientedRect) PointInside(p rl.Vector2) bool {
	local := o.toLocal(p)
	return absf(local.X) <= o.HalfSize.X && absf(local.Y) <= o.HalfSize.Y
}

func (o OrientedRect) SquareDistance(p rl.Vector2) float32 {
	return rl.Vector2DistanceSqr(p, o.ClosestPoint(p))
}

// Ray2 is a 2D half-line with a normalized direction.
type Ray2 struct {
	Position  rl.Vector2
	Direction rl.Vector2
}

func NewRay2(origin, direction rl.Vector2) Ray2 {
	return Ray2{Position: origin, Direction: rl.Vector2Normalize(direction)}
}

func (r Ray2) At(t float32) rl.Vector2 {
	return rl.Vector2Add(r.Position, rl.Vector2Scale(r.Direction, t))
}

func (r Ray2) ClosestPoint(p rl.Vector2) rl.Vector2 {
	t := rl.Vector2DotProduct(rl.Vector2Subtract(p, r.Position), r.Direction)
	if t < 0 {
		t = 0
	}
	return r.At(t)
}

func (r Ray2) SquareDistance(p rl.Vector2) float32 {
	return rl.Vector2DistanceSqr(p, r.ClosestPoint(p))
}

// Line2 is the 2D plane dot(Normal, p) + Distance == 0.
type Line2 struct {
	Normal   rl.Vector2
	Distance float32
}

func NewLine2(normal, point rl.Vector2) Line2 {
	n := rl.Vector2Normalize(normal)
	return Line2{Normal: n, Distance: -rl.Vector2DotProduct(n, point)}
}

func (l Line2) SignedDistance(p rl.Vector2) float32 {
	return rl.Vector2DotProduct(l.Normal, p) + l.Distance
}

func (l Line2) ClosestPoint(p rl.Vector2) rl.Vector2 {
	return rl.Vector2Subtract(p, rl.Vector2Scale(l.Normal, l.SignedDistance(p)))
}

func (l Line2) PointInside(p rl.Vector2) bool {
	return l.SignedDistance(p) >= 0
}

func (l Line2) SquareDistance(p rl.Vector2) float32 {
	d := l.SignedDistance(p)
	return d * d
}

// Frustum2 is a 2D view cone clipped by near and far lines. Lines are
// ordered left, right, near, far with normals pointing inwards.
type Frustum2 struct {
	Lines   [4]Line2
	corners [4]rl.Vector2
}

// NewFrustum2 builds the view region of an eye looking along dir with a full
// field of view of fov degrees.
func NewFrustum2(eye, dir rl.Vector2, fov, near, far float32) (Frustum2, error) {
	if fov <= 0 || fov >= 180 || near < 0 || far <= near {
		return Frustum2{}, errors.Wrapf(ErrInvalidVolume, "frustum2 fov %v near %v far %v", fov, near, far)
	}
	d := rl.Vector2Normalize(dir)
	if rl.Vector2LengthSqr(d) == 0 {
		return Frustum2{}, errors.Wrap(ErrInvalidVolume, "frustum2 zero direction")
	}
	halfAngle := fov * rl.Deg2rad / 2
	left := rl.Vector2Rotate(d, halfAngle)
	right := rl.Vector2Rotate(d, -halfAngle)

	var f Frustum2
	f.Lines[0] = NewLine2(rl.Vector2{X: left.Y, Y: -left.X}, eye)
	f.Lines[1] = NewLine2(rl.Vector2{X: -right.Y, Y: right.X}, eye)
	f.Lines[2] = NewLine2(d, rl.Vector2Add(eye, rl.Vector2Scale(d, near)))
	f.Lines[3] = NewLine2(rl.Vector2Negate(d), rl.Vector2Add(eye, rl.Vector2Scale(d, far)))

	slant := 1 / math32.Cos(halfAngle)
	f.corners = [4]rl.Vector2{
		rl.Vector2Add(eye, rl.Vector2Scale(right, near*slant)),
		rl.Vector2Add(eye, rl.Vector2Scale(right, far*slant)),
		rl.Vector2Add(eye, rl.Vector2Scale(left, far*slant)),
		rl.Vector2Add(eye, rl.Vector2Scale(left, near*slant)),
	}
	return f, nil
}

// Corners are returned counter-clockwise starting at the near right corner.
func (f Frustum2) Corners() [4]rl.Vector2 {
	return f.corners
}

func (f Frustum2) PointInside(p rl.Vector2) bool {
	for i := range f.Lines {
		if f.Lines[i].SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}

func (f Frustum2) ClosestPoint(p rl.Vector2) rl.Vector2 {
	if f.PointInside(p) {
		return p
	}
	best := f.corners[0]
	bestSq := float32(math.MaxFloat32)
	for i := range f.corners {
		q := closestOnSegment2(f.corners[i], f.corners[(i+1)%4], p)
		if d := rl.Vector2DistanceSqr(p, q); d < bestSq {
			best, bestSq = q, d
		}
	}
	return best
}

func (f Frustum2) SquareDistance(p rl.Vector2) float32 {
	return rl.Vector2DistanceSqr(p, f.ClosestPoint(p))
}

func closestOnSegment2(a, b, p rl.Vector2) rl.Vector2 {
	ab := rl.Vector2Subtract(b, a)
	lenSq := rl.Vector2LengthSqr(ab)
	if lenSq == 0 {
		return a
	}
	t := rl.Clamp(rl.Vector2DotProduct(rl.Vector2Subtract(p, a), ab)/lenSq, 0, 1)
	return rl.Vector2Add(a, rl.Vector2Scale(ab, t))
}

func min2(a, b rl.Vector2) rl.Vector2 {
	return rl.Vector2{X: math32.Min(a.X, b.X), Y: math32.Min(a.Y, b.Y)}
}

func max2(a, b rl.Vector2) rl.Vector2 {
	return rl.Vector2{X: math32.Max(a.X, b.X), Y: math32.Max(a.Y, b.Y)}
}
