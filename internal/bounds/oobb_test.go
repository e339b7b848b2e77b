package bounds

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

func rotatedBox(t *testing.T) OOBB {
	t.Helper()
	q := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, 45*rl.Deg2rad)
	o, err := NewOOBB(rl.Vector3{X: 10}, rl.Vector3{X: 2, Y: 1, Z: 0.5}, q)
	test.That(t, err, test.ShouldBeNil)
	return o
}

func TestNewOOBB(t *testing.T) {
	o := rotatedBox(t)
	for i := range o.Axes {
		test.That(t, rl.Vector3Length(o.Axes[i]), test.ShouldAlmostEqual, 1, 1e-5)
	}
	test.That(t, rl.Vector3DotProduct(o.Axes[0], o.Axes[2]), test.ShouldAlmostEqual, 0, 1e-5)

	_, err := NewOOBB(rl.Vector3{}, rl.Vector3{X: -1}, rl.QuaternionIdentity())
	test.That(t, errors.Is(err, ErrInvalidVolume), test.ShouldBeTrue)
}

func TestOOBBFromEulerMatchesAABB(t *testing.T) {
	o := NewOOBBFromEuler(rl.Vector3{X: 1}, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{})
	b := o.Bounds()
	test.That(t, b.Min.X, test.ShouldAlmostEqual, 0, 1e-5)
	test.That(t, b.Max.X, test.ShouldAlmostEqual, 2, 1e-5)
	test.That(t, o.PointInside(rl.Vector3{X: 1.9, Y: 0.9}), test.ShouldBeTrue)
}

func TestOOBBPointQueries(t *testing.T) {
	o := rotatedBox(t)
	test.That(t, o.PointInside(o.Center), test.ShouldBeTrue)

	// The local X axis is diagonal in XZ; 1.9 along it stays inside.
	along := rl.Vector3Add(o.Center, rl.Vector3Scale(o.Axes[0], 1.9))
	test.That(t, o.PointInside(along), test.ShouldBeTrue)
	// The same offset along world X leaves the thin local Z extent.
	test.That(t, o.PointInside(rl.Vector3{X: 11.9}), test.ShouldBeFalse)

	r := rand.New(rand.NewSource(9))
	for i := 0; i < 300; i++ {
		p := rl.Vector3Add(o.Center, randVec(r, -4, 4))
		c := o.ClosestPoint(p)
		test.That(t, o.SquareDistance(p), test.ShouldAlmostEqual, rl.Vector3DistanceSqr(p, c), 1e-3)
		// Closest points sit on the surface, so allow for rounding at the box faces.
		test.That(t, o.Bounds().SquareDistance(c), test.ShouldBeLessThan, 1e-8)
	}
}

func TestOOBBFromPoints(t *testing.T) {
	src := rotatedBox(t)
	var points []rl.Vector3
	for i := 0; i < 8; i++ {
		points = append(points, src.toWorld(rl.Vector3Multiply(src.HalfSize, octantSign(i))))
	}
	fit := NewOOBBFromPoints(points)
	for _, p := range points {
		test.That(t, fit.PointInside(p), test.ShouldBeTrue)
	}
	// Principal axes recover the tight box, not the world-aligned one.
	test.That(t, fit.SquareSize(), test.ShouldBeLessThan, src.Bounds().SquareSize())
}

func TestOOBBSubdivide(t *testing.T) {
	o := rotatedBox(t)
	children := o.Subdivide(nil)
	test.That(t, children, test.ShouldHaveLength, 8)

	r := rand.New(rand.NewSource(13))
	for i := 0; i < 200; i++ {
		local := rl.Vector3Multiply(o.HalfSize, randVec(r, -0.99, 0.99))
		p := o.toWorld(local)
		hits := 0
		for _, c := range children {
			if c.PointInside(p) {
				hits++
			}
		}
		test.That(t, hits, test.ShouldEqual, 1)
	}
}

func TestOOBBCells(t *testing.T) {
	o := rotatedBox(t)
	test.That(t, o.Cells(o, 2, nil), test.ShouldHaveLength, 8)
	test.That(t, o.Grid(2, nil), test.ShouldHaveLength, 8)
	far := Sphere{Center: rl.Vector3{X: 100}, Radius: 1}
	test.That(t, o.Cells(far, 2, nil), test.ShouldBeEmpty)
}
