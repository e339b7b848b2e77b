package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"

	"physics3d/internal/bounds"
	"physics3d/internal/broadphase"
	"physics3d/internal/collide"
	"physics3d/internal/config"
	"physics3d/internal/pairset"
	"physics3d/internal/physics"
)

const stepDelta = float32(1.0 / 60)

type stressOptions struct {
	count      int
	seed       int64
	steps      int
	iterations int
	items      string
	out        io.Writer
}

// spawnSize grows with the count to keep density reasonable.
func spawnSize(count int) float32 {
	return 50.0 + float32(count)/100.0
}

func runScene(logger *log.Logger, cfg config.Config, world string, opts stressOptions) error {
	// Room below the spawn cube for falling bodies
	h := spawnSize(opts.count)
	switch world {
	case "aabb":
		box := bounds.AABB{
			Min: rl.Vector3{X: -h, Y: -h, Z: -h},
			Max: rl.Vector3{X: h, Y: h, Z: h},
		}
		return dispatchItems(logger, cfg, box, opts)
	case "sphere":
		// Circumscribes the spawn cube
		return dispatchItems(logger, cfg, bounds.Sphere{Radius: h * 1.75}, opts)
	case "oobb":
		// Tilted, and large enough that the spawn cube stays inside
		box := bounds.NewOOBBFromEuler(rl.Vector3{}, rl.Vector3{X: 4 * h, Y: 4 * h, Z: 4 * h}, rl.Vector3{X: 20, Y: 35})
		return dispatchItems(logger, cfg, box, opts)
	}
	return errors.Errorf("unknown world shape %q", world)
}

func dispatchItems[W bounds.Region[W]](logger *log.Logger, cfg config.Config, world W, opts stressOptions) error {
	switch opts.items {
	case "aabb":
		return run[W, bounds.AABB, *bounds.AABB](logger, cfg, world, randomBox, opts)
	case "sphere":
		return run[W, bounds.Sphere, *bounds.Sphere](logger, cfg, world, randomSphere, opts)
	case "oobb":
		return run[W, bounds.OOBB, *bounds.OOBB](logger, cfg, world, randomOOBB, opts)
	}
	return errors.Errorf("unknown body shape %q", opts.items)
}

func randomPoint(r *rand.Rand, size float32) rl.Vector3 {
	return rl.Vector3{
		X: r.Float32()*size - size/2,
		Y: r.Float32()*size - size/2,
		Z: r.Float32()*size - size/2,
	}
}

func randomBox(r *rand.Rand, size float32) bounds.AABB {
	extent := rl.Vector3{X: 1 + r.Float32(), Y: 1 + r.Float32(), Z: 1 + r.Float32()}
	return bounds.NewAABBFromCenter(randomPoint(r, size), extent)
}

func randomSphere(r *rand.Rand, size float32) bounds.Sphere {
	return bounds.Sphere{
		Center: randomPoint(r, size),
		Radius: 0.5 + r.Float32()*0.5, // 0.5 to 1.0 radius
	}
}

func randomOOBB(r *rand.Rand, size float32) bounds.OOBB {
	extent := rl.Vector3{X: 1 + r.Float32(), Y: 1 + r.Float32(), Z: 1 + r.Float32()}
	rotation := rl.Vector3{X: r.Float32() * 360, Y: r.Float32() * 360, Z: r.Float32() * 360}
	return bounds.NewOOBBFromEuler(randomPoint(r, size), extent, rotation)
}

// run times every broad phase on one scene, checks each against the
// brute-force contacts, then steps a physics world built from the same scene.
func run[W bounds.Region[W], I bounds.Volume, PI bounds.Movable[I]](
	logger *log.Logger,
	cfg config.Config,
	world W,
	generate func(*rand.Rand, float32) I,
	opts stressOptions,
) error {
	r := rand.New(rand.NewSource(opts.seed))
	size := spawnSize(opts.count)
	items := make([]I, opts.count)
	for i := range items {
		items[i] = generate(r, size)
	}
	logger.Info("scene", "bodies", opts.count, "world", world.Kind(), "items", opts.items, "seed", opts.seed)

	var reference []pairset.Pair
	for _, kind := range []broadphase.Kind{broadphase.KindBrute, broadphase.KindGrid, broadphase.KindTree} {
		bp, err := broadphase.New[W, I](kind, world, cfg.BroadPhaseOptions())
		if err != nil {
			return err
		}

		// Warm up
		if err := bp.Insert(items); err != nil {
			return err
		}
		start := time.Now()
		for i := 0; i < opts.iterations; i++ {
			if err := bp.Insert(items); err != nil {
				return err
			}
		}
		elapsed := time.Since(start) / time.Duration(opts.iterations)

		candidates := bp.Collisions()
		contacts := confirmed(items, candidates)
		if kind == broadphase.KindBrute {
			reference = contacts
		} else if missing := missingPairs(reference, candidates); missing > 0 {
			return errors.Errorf("%s broad phase missed %d overlapping pairs", kind, missing)
		}
		fmt.Fprintf(opts.out, "%5d objects: %-5s %10v (%6d candidates, %5d contacts)\n",
			opts.count, kind, elapsed.Round(time.Microsecond), len(candidates), len(contacts))
	}

	if opts.steps == 0 {
		return nil
	}
	w, err := physics.NewWorld[W, I, PI](cfg, world, logger)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := w.AddBody(physics.NewBody(it)); err != nil {
			return err
		}
	}

	start := time.Now()
	for i := 0; i < opts.steps; i++ {
		if err := w.Step(stepDelta); err != nil {
			return errors.Wrapf(err, "step %d", i)
		}
	}
	elapsed := time.Since(start)
	stats := w.Stats()
	fmt.Fprintf(opts.out, "%5d objects: %d steps with %s in %v (%v/step) | last step %d pairs, %d contacts, %d sleeping\n",
		opts.count, opts.steps, cfg.BroadPhase, elapsed.Round(time.Millisecond),
		(elapsed / time.Duration(opts.steps)).Round(time.Microsecond),
		stats.Pairs, stats.Contacts, stats.Sleeping)
	return nil
}

// confirmed filters candidates down to the pairs the narrow phase accepts.
func confirmed[I bounds.Volume](items []I, candidates []pairset.Pair) []pairset.Pair {
	var out []pairset.Pair
	for _, p := range candidates {
		if collide.Overlaps(items[p.A], items[p.B]) {
			out = append(out, p)
		}
	}
	return out
}

func missingPairs(reference, candidates []pairset.Pair) int {
	found := make(map[pairset.Pair]bool, len(candidates))
	for _, p := range candidates {
		found[p] = true
	}
	missing := 0
	for _, p := range reference {
		if !found[p] {
			missing++
		}
	}
	return missing
}
