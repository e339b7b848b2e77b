package bounds

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

type Sphere struct {
	Center rl.Vector3
	Radius float32
}

// NewSphere creates a sphere, rejecting negative radii.
func NewSphere(center rl.Vector3, radius float32) (Sphere, error) {
	if radius < 0 || math32.IsNaN(radius) {
		return Sphere{}, errors.Wrapf(ErrInvalidVolume, "sphere radius %v", radius)
	}
	return Sphere{Center: center, Radius: radius}, nil
}

// NewSphereFromPoints fits a bounding sphere to the points. It starts from the
// most separated pair among the axis-extreme points, then walks every point and
// grows the sphere just enough to include each outlier.
func NewSphereFromPoints(points []rl.Vector3) Sphere {
	switch len(points) {
	case 0:
		return Sphere{}
	case 1:
		return Sphere{Center: points[0]}
	}

	a, b := mostSeparatedPoints(points)
	s := Sphere{
		Center: half(rl.Vector3Add(a, b)),
		Radius: rl.Vector3Distance(a, b) / 2,
	}
	for _, p := range points {
		s = s.grow(p)
	}
	s.Radius *= 1 + RelativeEpsilon
	return s
}

func mostSeparatedPoints(points []rl.Vector3) (rl.Vector3, rl.Vector3) {
	var minX, maxX, minY, maxY, minZ, maxZ int
	for i, p := range points {
		if p.X < points[minX].X {
			minX = i
		}
		if p.X > points[maxX].X {
			maxX = i
		}
		if p.Y < points[minY].Y {
			minY = i
		}
		if p.Y > points[maxY].Y {
			maxY = i
		}
		if p.Z < points[minZ].Z {
			minZ = i
		}
		if p.Z > points[maxZ].Z {
			maxZ = i
		}
	}
	lo, hi := minX, maxX
	best := rl.Vector3DistanceSqr(points[minX], points[maxX])
	if d := rl.Vector3DistanceSqr(points[minY], points[maxY]); d > best {
		lo, hi, best = minY, maxY, d
	}
	if d := rl.Vector3DistanceSqr(points[minZ], points[maxZ]); d > best {
		lo, hi = minZ, maxZ
	}
	return points[lo], points[hi]
}

// grow recentres the sphere towards p and enlarges it by the minimum amount
// needed to contain p.
func (s Sphere) grow(p rl.Vector3) Sphere {
	d := rl.Vector3Subtract(p, s.Center)
	distSq := rl.Vector3LengthSqr(d)
	if distSq <= s.Radius*s.Radius {
		return s
	}
	dist := math32.Sqrt(distSq)
	r := (s.Radius + dist) / 2
	s.Center = rl.Vector3Add(s.Center, rl.Vector3Scale(d, (r-s.Radius)/dist))
	s.Radius = r
	return s
}

func (s Sphere) Kind() Kind { return KindSphere }

func (s Sphere) Position() rl.Vector3 { return s.Center }

func (s Sphere) Bounds() AABB {
	r := rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return AABB{Min: rl.Vector3Subtract(s.Center, r), Max: rl.Vector3Add(s.Center, r)}
}

func (s Sphere) Project(axis rl.Vector3) (lo, hi float32) {
	c := rl.Vector3DotProduct(s.Center, axis)
	r := s.Radius * rl.Vector3Length(axis)
	return c - r, c + r
}

// ClosestPoint returns the point of the sphere nearest to p; points inside
// the sphere are their own closest point.
func (s Sphere) ClosestPoint(p rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, s.Center)
	if rl.Vector3LengthSqr(d) <= s.Radius*s.Radius {
		return p
	}
	return rl.Vector3Add(s.Center, rl.Vector3Scale(rl.Vector3Normalize(d), s.Radius))
}

func (s Sphere) PointInside(p rl.Vector3) bool {
	return rl.Vector3DistanceSqr(p, s.Center) <= s.Radius*s.Radius
}

func (s Sphere) SquareDistance(p rl.Vector3) float32 {
	d := rl.Vector3Distance(p, s.Center) - s.Radius
	if d <= 0 {
		return 0
	}
	return d * d
}

func (s Sphere) SquareSize() float32 {
	return 4 * s.Radius * s.Radius
}

func (s *Sphere) SetPosition(p rl.Vector3) {
	s.Center = p
}

// Grid returns spheres circumscribing the scale^3 sub-cubes of the sphere's
// bounding cube.
func (s Sphere) Grid(scale uint32, out []Sphere) []Sphere {
	if scale == 0 {
		return out
	}
	for _, cell := range s.Bounds().Grid(scale, nil) {
		out = append(out, circumscribe(cell))
	}
	return out
}

func (s Sphere) Cells(item Volume, scale uint32, out []uint32) []uint32 {
	w := s.Bounds()
	b := item.Bounds()
	return latticeCells(w.Min, w.Max, b.Min, b.Max, scale, out)
}

// Subdivide returns the 8 spheres circumscribing the octants of the bounding
// cube. Together they cover the parent; spheres cannot tile space, so
// neighbours overlap.
func (s Sphere) Subdivide(out []Sphere) []Sphere {
	for _, octant := range s.Bounds().Subdivide(nil) {
		out = append(out, circumscribe(octant))
	}
	return out
}

func circumscribe(box AABB) Sphere {
	return Sphere{
		Center: box.Position(),
		Radius: rl.Vector3Length(box.HalfSize()),
	}
}
