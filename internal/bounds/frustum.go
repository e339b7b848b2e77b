package bounds

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum is the convex region on the positive side of six planes, ordered
// left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the planes from a combined view-projection matrix
// (Gribb/Hartmann). vp is expected as rl.MatrixMultiply(view, proj).
func NewFrustum(vp rl.Matrix) Frustum {
	var f Frustum

	// Left plane: row4 + row1
	f.Planes[0] = Plane{
		Normal:   rl.Vector3{X: vp.M3 + vp.M0, Y: vp.M7 + vp.M4, Z: vp.M11 + vp.M8},
		Distance: vp.M15 + vp.M12,
	}.normalized()

	// Right plane: row4 - row1
	f.Planes[1] = Plane{
		Normal:   rl.Vector3{X: vp.M3 - vp.M0, Y: vp.M7 - vp.M4, Z: vp.M11 - vp.M8},
		Distance: vp.M15 - vp.M12,
	}.normalized()

	// Bottom plane: row4 + row2
	f.Planes[2] = Plane{
		Normal:   rl.Vector3{X: vp.M3 + vp.M1, Y: vp.M7 + vp.M5, Z: vp.M11 + vp.M9},
		Distance: vp.M15 + vp.M13,
	}.normalized()

	// Top plane: row4 - row2
	f.Planes[3] = Plane{
		Normal:   rl.Vector3{X: vp.M3 - vp.M1, Y: vp.M7 - vp.M5, Z: vp.M11 - vp.M9},
		Distance: vp.M15 - vp.M13,
	}.normalized()

	// Near plane: row4 + row3
	f.Planes[4] = Plane{
		Normal:   rl.Vector3{X: vp.M3 + vp.M2, Y: vp.M7 + vp.M6, Z: vp.M11 + vp.M10},
		Distance: vp.M15 + vp.M14,
	}.normalized()

	// Far plane: row4 - row3
	f.Planes[5] = Plane{
		Normal:   rl.Vector3{X: vp.M3 - vp.M2, Y: vp.M7 - vp.M6, Z: vp.M11 - vp.M10},
		Distance: vp.M15 - vp.M14,
	}.normalized()

	return f
}

// NewPerspectiveFrustum builds the frustum of a perspective camera. fovy is
// the vertical field of view in degrees.
func NewPerspectiveFrustum(eye, target, up rl.Vector3, fovy, aspect, near, far float32) Frustum {
	view := rl.MatrixLookAt(eye, target, up)
	// MatrixPerspective converts fovy from degrees itself.
	proj := rl.MatrixPerspective(fovy, aspect, near, far)
	return NewFrustum(rl.MatrixMultiply(view, proj))
}

// ContainsPoint tests if a point is inside the frustum
func (f Frustum) ContainsPoint(p rl.Vector3) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}
