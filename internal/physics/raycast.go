package physics

import (
	"physics3d/internal/bounds"
	"physics3d/internal/collide"
)

type RaycastHit[I bounds.Volume] struct {
	Body *Body[I]
	collide.Hit
}

// Raycast checks every body and returns the closest hit within maxDistance.
func (w *World[W, I, PI]) Raycast(ray bounds.Ray, maxDistance float32) (RaycastHit[I], bool) {
	var closest RaycastHit[I]
	closest.Distance = maxDistance
	found := false

	for _, b := range w.bodies {
		hit, ok := collide.Raycast(ray, b.Bound, maxDistance)
		if !ok || hit.Distance > closest.Distance {
			continue
		}
		if found && hit.Distance == closest.Distance {
			continue
		}
		closest = RaycastHit[I]{Body: b, Hit: hit}
		found = true
	}
	return closest, found
}
