// Package physics moves bodies under gravity and keeps them apart. Each Step
// rebuilds a broad-phase index from the current bounds, confirms candidate
// pairs with the narrow phase and pushes overlapping bodies out of each other.
package physics

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"physics3d/internal/bounds"
	"physics3d/internal/broadphase"
	"physics3d/internal/collide"
	"physics3d/internal/config"
	"physics3d/internal/pairset"
)

// parallelPairs is the minimum candidate count before the narrow phase fans out.
const parallelPairs = 256

// CollisionPair is keyed so that A was added to the world before B.
type CollisionPair[I bounds.Volume] struct {
	A, B *Body[I]
}

// Stats describes the last Step.
type Stats struct {
	Bodies   int
	Sleeping int
	// Pairs is the number of broad-phase candidates.
	Pairs int
	// Contacts is the number of candidates confirmed by the narrow phase.
	Contacts int
	// Scale is the grid resolution, zero for other broad phases.
	Scale uint32
	// Depth is the tree depth, zero for other broad phases.
	Depth int
}

type World[W bounds.Region[W], I bounds.Volume, PI bounds.Movable[I]] struct {
	Gravity rl.Vector3

	cfg    config.Config
	logger *log.Logger
	broad  broadphase.BroadPhase[I]
	bodies []*Body[I]

	// scratch reused between steps
	items    []I
	overlaps []bool

	// Collision tracking for callbacks
	activeCollisions  map[CollisionPair[I]]bool // collisions from last step
	currentCollisions map[CollisionPair[I]]bool // collisions this step

	stats           Stats
	lastLoggedCount int       // prevents duplicate logs at same body count
	lastLogTime     time.Time // rate-limit collision pair logs
}

// NewWorld validates cfg and builds the configured broad phase over world. A
// nil logger discards output.
func NewWorld[W bounds.Region[W], I bounds.Volume, PI bounds.Movable[I]](cfg config.Config, world W, logger *log.Logger) (*World[W, I, PI], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	broad, err := broadphase.New[W, I](broadphase.Kind(cfg.BroadPhase), world, cfg.BroadPhaseOptions())
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger.Info("Physics: world ready", "broadphase", cfg.BroadPhase, "bound", world.Kind(), "workers", cfg.Workers)

	return &World[W, I, PI]{
		Gravity:           cfg.Gravity,
		cfg:               cfg,
		logger:            logger,
		broad:             broad,
		activeCollisions:  make(map[CollisionPair[I]]bool),
		currentCollisions: make(map[CollisionPair[I]]bool),
	}, nil
}

// AddBody appends b. Bodies are indexed by pairset.Index, which caps the count.
func (w *World[W, I, PI]) AddBody(b *Body[I]) error {
	if len(w.bodies) >= pairset.MaxObjects {
		return errors.Wrapf(broadphase.ErrTooManyObjects, "adding body %d", len(w.bodies)+1)
	}
	w.bodies = append(w.bodies, b)

	if n := len(w.bodies); n%100 == 0 && n != w.lastLoggedCount {
		w.lastLoggedCount = n
		w.logger.Info("Physics: bodies", "count", n, "broadphase", w.cfg.BroadPhase)
	}
	return nil
}

// RemoveBody removes b, keeping the order of the remaining bodies.
func (w *World[W, I, PI]) RemoveBody(b *Body[I]) bool {
	for i, other := range w.bodies {
		if other != b {
			continue
		}
		w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
		for pair := range w.activeCollisions {
			if pair.A == b || pair.B == b {
				delete(w.activeCollisions, pair)
			}
		}
		return true
	}
	return false
}

func (w *World[W, I, PI]) Bodies() []*Body[I] {
	return w.bodies
}

func (w *World[W, I, PI]) Stats() Stats {
	return w.stats
}

// Step advances the simulation by deltaTime seconds.
func (w *World[W, I, PI]) Step(deltaTime float32) error {
	// Reset current step collisions
	clear(w.currentCollisions)

	// 1. Rebuild the broad phase from the current bounds
	w.items = w.items[:0]
	for _, b := range w.bodies {
		w.items = append(w.items, b.Bound)
	}
	if err := w.broad.Insert(w.items); err != nil {
		return errors.Wrap(err, "broad phase")
	}

	// 2. Candidate pairs
	pairs := w.broad.Collisions()

	// 3. Narrow phase
	if err := w.narrowPhase(pairs); err != nil {
		return err
	}

	// 4. Separate confirmed overlaps in pair order
	contacts := 0
	for i, pair := range pairs {
		if !w.overlaps[i] {
			continue
		}
		contacts++
		w.resolveCollision(w.bodies[pair.A], w.bodies[pair.B])
	}

	// 5. Integrate awake dynamic bodies
	sleeping := 0
	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		// Resolved velocity decides sleep, before gravity pulls a resting body down again
		if w.cfg.Sleep {
			b.TrySleep(deltaTime)
		}
		if b.IsSleeping {
			sleeping++
			continue
		}
		if b.UseGravity {
			b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(w.Gravity, deltaTime))
		}
		w.move(b, rl.Vector3Scale(b.Velocity, deltaTime))
	}

	// 6. Dispatch collision callbacks
	w.dispatchCollisionCallbacks()

	w.stats = Stats{
		Bodies:   len(w.bodies),
		Sleeping: sleeping,
		Pairs:    len(pairs),
		Contacts: contacts,
	}
	if g, ok := w.broad.(interface{ Scale() uint32 }); ok {
		w.stats.Scale = g.Scale()
	}
	if t, ok := w.broad.(interface{ Depth() int }); ok {
		w.stats.Depth = t.Depth()
	}

	// Log collision pairs once per second
	if len(pairs) > 0 && time.Since(w.lastLogTime) >= time.Second {
		w.lastLogTime = time.Now()
		w.logger.Debug("Physics: collision pairs", "pairs", len(pairs), "contacts", contacts, "bodies", len(w.bodies))
	}
	return nil
}

// narrowPhase fills w.overlaps[i] for pairs[i]. Workers own disjoint index
// ranges, so the result does not depend on scheduling.
func (w *World[W, I, PI]) narrowPhase(pairs []pairset.Pair) error {
	if cap(w.overlaps) < len(pairs) {
		w.overlaps = make([]bool, len(pairs))
	}
	w.overlaps = w.overlaps[:len(pairs)]

	check := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			a, b := w.bodies[pairs[i].A], w.bodies[pairs[i].B]
			w.overlaps[i] = w.shouldCollide(a, b) && collide.Overlaps(a.Bound, b.Bound)
		}
	}

	workers := w.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers <= 1 || len(pairs) < parallelPairs {
		check(0, len(pairs))
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	chunk := (len(pairs) + workers - 1) / workers
	for lo := 0; lo < len(pairs); lo += chunk {
		hi := min(lo+chunk, len(pairs))
		g.Go(func() error {
			check(lo, hi)
			return nil
		})
	}
	return errors.Wrap(g.Wait(), "narrow phase")
}

func (w *World[W, I, PI]) shouldCollide(a, b *Body[I]) bool {
	if a.Static && b.Static {
		return false
	}
	// Settled bodies stay put until something awake touches them
	if (a.IsSleeping || a.Static) && (b.IsSleeping || b.Static) {
		return false
	}
	return true
}

func (w *World[W, I, PI]) move(b *Body[I], delta rl.Vector3) {
	PI(&b.Bound).SetPosition(rl.Vector3Add(b.Bound.Position(), delta))
}

// resolveCollision pushes a and b apart in proportion to their inverse mass
// and exchanges a restitution impulse along the push direction.
func (w *World[W, I, PI]) resolveCollision(a, b *Body[I]) {
	offset, ok := collide.Separate(a.Bound, b.Bound, w.cfg.Tolerance)
	if !ok {
		// An earlier resolution this step already moved them apart
		return
	}
	w.recordCollision(a, b)

	invA, invB := a.InverseMass(), b.InverseMass()
	total := invA + invB
	if total == 0 {
		return
	}
	if invA > 0 {
		w.move(a, rl.Vector3Scale(offset, invA/total))
	}
	if invB > 0 {
		w.move(b, rl.Vector3Scale(offset, -invB/total))
	}

	if rl.Vector3LengthSqr(offset) == 0 {
		return
	}
	normal := rl.Vector3Normalize(offset)
	relVel := rl.Vector3Subtract(a.Velocity, b.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)

	// Already separating
	if velAlongNormal > 0 {
		return
	}

	e := (a.Bounciness + b.Bounciness) / 2
	j := -(1 + e) * velAlongNormal / total
	a.Velocity = rl.Vector3Add(a.Velocity, rl.Vector3Scale(normal, j*invA))
	b.Velocity = rl.Vector3Subtract(b.Velocity, rl.Vector3Scale(normal, j*invB))

	// Friction damps the tangential part of the relative velocity
	tangent := rl.Vector3Subtract(relVel, rl.Vector3Scale(normal, velAlongNormal))
	mu := rl.Clamp((a.Friction+b.Friction)/2, 0, 1)
	a.Velocity = rl.Vector3Subtract(a.Velocity, rl.Vector3Scale(tangent, mu*invA/total))
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(tangent, mu*invB/total))
}

// recordCollision marks a collision pair as active this step and wakes sleeping bodies
func (w *World[W, I, PI]) recordCollision(a, b *Body[I]) {
	w.currentCollisions[CollisionPair[I]{A: a, B: b}] = true

	// Wake sleeping bodies only if the collision has significant relative velocity.
	// This prevents micro-collisions from waking settled stacks.
	relSpeed := rl.Vector3Length(rl.Vector3Subtract(a.Velocity, b.Velocity))
	if relSpeed > SleepVelocityThreshold*2 {
		if a.IsSleeping {
			a.Wake()
		}
		if b.IsSleeping {
			b.Wake()
		}
	}
}

// dispatchCollisionCallbacks fires enter for new pairs and exit for pairs that
// stopped touching, then makes the current set the active one.
func (w *World[W, I, PI]) dispatchCollisionCallbacks() {
	for pair := range w.currentCollisions {
		if !w.activeCollisions[pair] {
			notifyCollisionEnter(pair.A, pair.B)
			notifyCollisionEnter(pair.B, pair.A)
		}
	}
	for pair := range w.activeCollisions {
		if w.currentCollisions[pair] {
			continue
		}
		// A sleeping pair is skipped by the narrow phase but still touching
		if w.shouldCollide(pair.A, pair.B) {
			notifyCollisionExit(pair.A, pair.B)
			notifyCollisionExit(pair.B, pair.A)
			continue
		}
		w.currentCollisions[pair] = true
	}
	w.activeCollisions, w.currentCollisions = w.currentCollisions, w.activeCollisions
}

func notifyCollisionEnter[I bounds.Volume](b, other *Body[I]) {
	if b.OnCollisionEnter != nil {
		b.OnCollisionEnter(other)
	}
}

func notifyCollisionExit[I bounds.Volume](b, other *Body[I]) {
	if b.OnCollisionExit != nil {
		b.OnCollisionExit(other)
	}
}
