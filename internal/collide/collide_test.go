package collide

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.viam.com/test"

	"physics3d/internal/bounds"
)

func vecAlmostEqual(t *testing.T, got, want rl.Vector3, eps float64) {
	t.Helper()
	test.That(t, got.X, test.ShouldAlmostEqual, want.X, eps)
	test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, eps)
	test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, eps)
}

func box(center rl.Vector3, size float32) bounds.AABB {
	return bounds.NewAABBFromCenter(center, rl.Vector3{X: size, Y: size, Z: size})
}

func rotatedCube(t *testing.T, center rl.Vector3, half float32, degrees float32) bounds.OOBB {
	t.Helper()
	q := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, degrees*rl.Deg2rad)
	o, err := bounds.NewOOBB(center, rl.Vector3{X: half, Y: half, Z: half}, q)
	test.That(t, err, test.ShouldBeNil)
	return o
}

func TestSphereResolveRoundTrip(t *testing.T) {
	const tolerance = 0.01
	a := bounds.Sphere{Center: rl.Vector3{X: 1, Y: 1, Z: 1}, Radius: 1}
	b := bounds.Sphere{Center: rl.Vector3{X: 2, Y: 2, Z: 2}, Radius: 1}

	contact, ok := SphereSphereContact(a, b)
	test.That(t, ok, test.ShouldBeTrue)
	vecAlmostEqual(t, contact, rl.Vector3{X: 1.4226, Y: 1.4226, Z: 1.4226}, 1e-4)

	offset, normal, contact := Resolve(a, b, tolerance)
	test.That(t, rl.Vector3Length(normal), test.ShouldAlmostEqual, 1, 1e-5)
	vecAlmostEqual(t, contact, rl.Vector3{X: 1.4226, Y: 1.4226, Z: 1.4226}, 1e-4)

	a.Center = rl.Vector3Add(a.Center, offset)
	test.That(t, SphereSphere(a, b), test.ShouldBeFalse)
	test.That(t, rl.Vector3Distance(a.Center, b.Center), test.ShouldAlmostEqual, 2+tolerance, 1e-5)
}

func TestResolveCoincidentCentres(t *testing.T) {
	a := bounds.Sphere{Radius: 1}
	b := bounds.Sphere{Radius: 2}
	offset, normal, contact := Resolve(a, b, 0.5)
	test.That(t, normal, test.ShouldResemble, Up)
	vecAlmostEqual(t, offset, rl.Vector3{Y: 3.5}, 1e-6)
	vecAlmostEqual(t, contact, rl.Vector3{Y: 2}, 1e-6)
}

func TestResolveSeparatedSpheres(t *testing.T) {
	a := bounds.Sphere{Radius: 1}
	b := bounds.Sphere{Center: rl.Vector3{X: 5}, Radius: 1}
	offset, _, _ := Resolve(a, b, 0.1)
	test.That(t, offset, test.ShouldResemble, rl.Vector3{})
}

func TestBoxPredicates(t *testing.T) {
	a := box(rl.Vector3{}, 2)

	t.Run("aabb pair", func(t *testing.T) {
		p, ok := AABBAABBContact(a, box(rl.Vector3{X: 1.5}, 2))
		test.That(t, ok, test.ShouldBeTrue)
		vecAlmostEqual(t, p, rl.Vector3{X: 0.75}, 1e-6)
		test.That(t, AABBAABB(a, box(rl.Vector3{X: 2}, 2)), test.ShouldBeTrue)
		test.That(t, AABBAABB(a, box(rl.Vector3{X: 2.1}, 2)), test.ShouldBeFalse)
	})

	t.Run("aabb sphere", func(t *testing.T) {
		s := bounds.Sphere{Center: rl.Vector3{X: 1.5, Y: 0.5}, Radius: 0.6}
		p, ok := AABBSphereContact(a, s)
		test.That(t, ok, test.ShouldBeTrue)
		vecAlmostEqual(t, p, rl.Vector3{X: 1, Y: 0.5}, 1e-6)
		s.Radius = 0.4
		test.That(t, AABBSphere(a, s), test.ShouldBeFalse)
	})

	t.Run("oobb pair", func(t *testing.T) {
		o := a.OOBB()
		test.That(t, OOBBOOBB(o, rotatedCube(t, rl.Vector3{X: 2.3}, 1, 45)), test.ShouldBeTrue)
		test.That(t, OOBBOOBB(o, rotatedCube(t, rl.Vector3{X: 2.9}, 1, 45)), test.ShouldBeFalse)
		test.That(t, AABBOOBB(a, rotatedCube(t, rl.Vector3{X: 2.9}, 1, 45)), test.ShouldBeFalse)
		_, ok := OOBBOOBBContact(o, rotatedCube(t, rl.Vector3{X: 2.3}, 1, 45))
		test.That(t, ok, test.ShouldBeTrue)
	})

	t.Run("sphere oobb", func(t *testing.T) {
		o := rotatedCube(t, rl.Vector3{}, 1, 45)
		// The rotated corner reaches sqrt(2) along X.
		test.That(t, SphereOOBB(bounds.Sphere{Center: rl.Vector3{X: 1.6}, Radius: 0.25}, o), test.ShouldBeTrue)
		test.That(t, SphereOOBB(bounds.Sphere{Center: rl.Vector3{X: 1.6}, Radius: 0.1}, o), test.ShouldBeFalse)
	})
}

func TestOverlapsDispatch(t *testing.T) {
	a := box(rl.Vector3{}, 2)
	s := bounds.Sphere{Center: rl.Vector3{Y: 1.5}, Radius: 1}
	o := rotatedCube(t, rl.Vector3{Z: 1.5}, 1, 30)

	for _, tc := range []struct {
		name string
		a, b bounds.Volume
		want bool
	}{
		{"aabb sphere", a, s, true},
		{"sphere aabb pointer", &s, &a, true},
		{"aabb oobb", a, o, true},
		{"oobb sphere", o, s, true},
		{"oobb sphere apart", o, bounds.Sphere{Center: rl.Vector3{Y: 3}, Radius: 1}, false},
		{"sphere sphere", s, bounds.Sphere{Center: rl.Vector3{Y: 4}, Radius: 1}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, Overlaps(tc.a, tc.b), test.ShouldEqual, tc.want)
			_, ok := Contact(tc.a, tc.b)
			test.That(t, ok, test.ShouldEqual, tc.want)
		})
	}
}

func TestSeparate(t *testing.T) {
	t.Run("aabb pair", func(t *testing.T) {
		offset, ok := Separate(box(rl.Vector3{}, 2), box(rl.Vector3{X: 1.5}, 2), 0.1)
		test.That(t, ok, test.ShouldBeTrue)
		vecAlmostEqual(t, offset, rl.Vector3{X: -0.6}, 1e-5)
	})

	t.Run("sphere on box", func(t *testing.T) {
		s := bounds.Sphere{Center: rl.Vector3{Y: 1.5}, Radius: 1}
		offset, ok := Separate(s, box(rl.Vector3{}, 2), 0)
		test.That(t, ok, test.ShouldBeTrue)
		vecAlmostEqual(t, offset, rl.Vector3{Y: 0.5}, 1e-5)

		offset, ok = Separate(box(rl.Vector3{}, 2), s, 0)
		test.That(t, ok, test.ShouldBeTrue)
		vecAlmostEqual(t, offset, rl.Vector3{Y: -0.5}, 1e-5)
	})

	t.Run("oobb pair", func(t *testing.T) {
		a := rotatedCube(t, rl.Vector3{}, 1, 20)
		b := rotatedCube(t, rl.Vector3{X: 1.5, Y: 0.3}, 1, 45)
		offset, ok := Separate(a, b, 0.01)
		test.That(t, ok, test.ShouldBeTrue)
		a.Center = rl.Vector3Add(a.Center, offset)
		test.That(t, OOBBOOBB(a, b), test.ShouldBeFalse)
	})

	t.Run("apart", func(t *testing.T) {
		offset, ok := Separate(box(rl.Vector3{}, 1), box(rl.Vector3{X: 5}, 1), 0.1)
		test.That(t, ok, test.ShouldBeFalse)
		test.That(t, offset, test.ShouldResemble, rl.Vector3{})
	})
}

func TestRaycast(t *testing.T) {
	r := bounds.NewRay(rl.Vector3{X: -5}, rl.Vector3{X: 1})

	t.Run("aabb", func(t *testing.T) {
		h, ok := RaycastAABB(r, box(rl.Vector3{}, 2), 100)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, h.Distance, test.ShouldAlmostEqual, 4, 1e-5)
		vecAlmostEqual(t, h.Normal, rl.Vector3{X: -1}, 1e-6)
		vecAlmostEqual(t, h.Point, rl.Vector3{X: -1}, 1e-5)

		_, ok = RaycastAABB(r, box(rl.Vector3{}, 2), 3)
		test.That(t, ok, test.ShouldBeFalse)
		test.That(t, RayAABB(r, box(rl.Vector3{Y: 5}, 2)), test.ShouldBeFalse)
		test.That(t, RayAABB(r, box(rl.Vector3{X: -10}, 2)), test.ShouldBeFalse)
	})

	t.Run("sphere", func(t *testing.T) {
		h, ok := RaycastSphere(r, bounds.Sphere{Radius: 1}, 100)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, h.Distance, test.ShouldAlmostEqual, 4, 1e-5)
		vecAlmostEqual(t, h.Normal, rl.Vector3{X: -1}, 1e-5)
		test.That(t, RaySphere(r, bounds.Sphere{Center: rl.Vector3{Y: 3}, Radius: 1}), test.ShouldBeFalse)
	})

	t.Run("oobb", func(t *testing.T) {
		h, ok := RaycastOOBB(r, rotatedCube(t, rl.Vector3{}, 1, 45), 100)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, h.Distance, test.ShouldAlmostEqual, 5-1.41421, 1e-3)
	})

	t.Run("origin inside", func(t *testing.T) {
		inside := bounds.NewRay(rl.Vector3{}, rl.Vector3{Z: 1})
		for _, v := range []bounds.Volume{box(rl.Vector3{}, 2), bounds.Sphere{Radius: 1}, rotatedCube(t, rl.Vector3{}, 1, 10)} {
			h, ok := Raycast(inside, v, 10)
			test.That(t, ok, test.ShouldBeTrue)
			test.That(t, h.Distance, test.ShouldEqual, 0)
		}
	})

	t.Run("contact is entry point", func(t *testing.T) {
		p, ok := RaySphereContact(r, bounds.Sphere{Center: rl.Vector3{X: 3}, Radius: 2})
		test.That(t, ok, test.ShouldBeTrue)
		vecAlmostEqual(t, p, rl.Vector3{X: 1}, 1e-5)
	})
}

func TestFrustum(t *testing.T) {
	f := bounds.NewPerspectiveFrustum(rl.Vector3{}, rl.Vector3{Z: -1}, rl.Vector3{Y: 1}, 60, 1, 0.1, 100)

	test.That(t, FrustumSphere(f, bounds.Sphere{Center: rl.Vector3{Z: -10}, Radius: 1}), test.ShouldBeTrue)
	test.That(t, FrustumSphere(f, bounds.Sphere{Center: rl.Vector3{Z: 10}, Radius: 1}), test.ShouldBeFalse)
	// Straddles the near plane.
	test.That(t, FrustumSphere(f, bounds.Sphere{Center: rl.Vector3{Z: 0.5}, Radius: 1}), test.ShouldBeTrue)

	// half width at depth 10 is 5.77
	test.That(t, FrustumSphere(f, bounds.Sphere{Center: rl.Vector3{X: 5, Z: -10}, Radius: 0.5}), test.ShouldBeTrue)
	test.That(t, FrustumSphere(f, bounds.Sphere{Center: rl.Vector3{X: 7, Z: -10}, Radius: 0.5}), test.ShouldBeFalse)

	test.That(t, FrustumAABB(f, box(rl.Vector3{Z: -10}, 1)), test.ShouldBeTrue)
	test.That(t, FrustumAABB(f, box(rl.Vector3{Y: 5, Z: -10}, 1)), test.ShouldBeTrue)
	test.That(t, FrustumAABB(f, box(rl.Vector3{X: 30, Z: -10}, 1)), test.ShouldBeFalse)
	test.That(t, FrustumAABB(f, box(rl.Vector3{Z: -50}, 400)), test.ShouldBeTrue)

	test.That(t, FrustumOOBB(f, rotatedCube(t, rl.Vector3{Z: -10}, 1, 45)), test.ShouldBeTrue)
	test.That(t, FrustumOOBB(f, rotatedCube(t, rl.Vector3{Z: 200}, 1, 45)), test.ShouldBeFalse)

	test.That(t, FrustumVolume(f, bounds.Sphere{Center: rl.Vector3{Z: -10}, Radius: 1}), test.ShouldBeTrue)
}
