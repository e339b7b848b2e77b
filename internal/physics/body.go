package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics3d/internal/bounds"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec - below this, a body might sleep
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

// Body is a simulated object whose collision shape is Bound.
type Body[I bounds.Volume] struct {
	Bound      I
	Velocity   rl.Vector3
	Mass       float32
	Bounciness float32 // 0 = no bounce, 1 = perfect bounce
	Friction   float32 // 0 = ice, 1 = stops immediately
	UseGravity bool
	// Static bodies never move and behave as infinitely heavy.
	Static bool

	// Sleep state - sleeping bodies skip integration
	CanSleep   bool
	IsSleeping bool
	sleepTimer float32

	OnCollisionEnter func(other *Body[I])
	OnCollisionExit  func(other *Body[I])
}

func NewBody[I bounds.Volume](bound I) *Body[I] {
	return &Body[I]{
		Bound:      bound,
		Mass:       1.0,
		Bounciness: 0.5,
		Friction:   0.1,
		UseGravity: true,
		CanSleep:   true,
	}
}

func NewStaticBody[I bounds.Volume](bound I) *Body[I] {
	b := NewBody(bound)
	b.Static = true
	b.UseGravity = false
	b.CanSleep = false
	return b
}

func (b *Body[I]) Position() rl.Vector3 {
	return b.Bound.Position()
}

// InverseMass is zero for static and massless bodies.
func (b *Body[I]) InverseMass() float32 {
	if b.Static || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// Wake forces the body out of sleep state
func (b *Body[I]) Wake() {
	b.IsSleeping = false
	b.sleepTimer = 0
}

// TrySleep puts the body to sleep once it has stayed slow for SleepTimeThreshold.
func (b *Body[I]) TrySleep(deltaTime float32) {
	if !b.CanSleep || b.IsSleeping || b.Static {
		return
	}
	if rl.Vector3Length(b.Velocity) >= SleepVelocityThreshold {
		b.sleepTimer = 0
		return
	}

	b.sleepTimer += deltaTime
	// Extra damping when nearly at rest reduces jitter
	b.Velocity = rl.Vector3Scale(b.Velocity, 0.9)
	if b.sleepTimer >= SleepTimeThreshold {
		b.IsSleeping = true
		b.Velocity = rl.Vector3{}
	}
}
