// Package collide is the narrow phase: closed-form intersection predicates
// for every pair of bounding volumes, with contact-point variants, ray casts,
// frustum culling tests and penetration resolution.
//
// Touching volumes count as intersecting throughout.
package collide

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Up is the resolution direction used when two centres coincide.
var Up = rl.Vector3{X: 0, Y: 1, Z: 0}

// Up2 is the 2D counterpart of Up.
var Up2 = rl.Vector2{X: 0, Y: 1}

// parallelEpsilon discards near-zero SAT axes produced by parallel edges.
const parallelEpsilon = 1e-4

// Hit describes where a ray enters a volume.
type Hit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Hit2 is the 2D counterpart of Hit.
type Hit2 struct {
	Point    rl.Vector2
	Normal   rl.Vector2
	Distance float32
}

func absf(x float32) float32 {
	return math32.Abs(x)
}

// direction normalizes v, falling back to fallback for zero-length input.
func direction(v, fallback rl.Vector3) (rl.Vector3, float32) {
	length := rl.Vector3Length(v)
	if length == 0 {
		return fallback, 0
	}
	return rl.Vector3Scale(v, 1/length), length
}

func direction2(v, fallback rl.Vector2) (rl.Vector2, float32) {
	length := rl.Vector2Length(v)
	if length == 0 {
		return fallback, 0
	}
	return rl.Vector2Scale(v, 1/length), length
}
