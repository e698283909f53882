package components

import "github.com/pthm-cable/softies/physics"

// State is a creature's behavioral state. Exactly one value is active per
// creature; transitions are computed once per tick before actuation runs.
type State uint8

const (
	Idle State = iota
	Wandering
	Resting
	SeekingFood
	Fleeing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Wandering:
		return "wandering"
	case Resting:
		return "resting"
	case SeekingFood:
		return "seeking_food"
	case Fleeing:
		return "fleeing"
	}
	return "unknown"
}

// Behavior bundles a creature's behavioral state with actuator-private
// timers. The wiggle phase and wander target belong to the actuator, not
// the state machine, and survive state transitions.
type Behavior struct {
	State State

	// Traveling-wave controller state.
	WigglePhase float32
	IDOffset    float32 // per-creature phase offset desynchronizing same-species motion

	// Wander steering.
	WanderTarget physics.Vec2
	WanderTimer  float32 // seconds until the target is refreshed

	// Bob oscillator for plankton buoyancy.
	BobPhase float32

	// Stuck detection: head displacement is measured against StuckRef over
	// a rolling window of ticks.
	StuckRef   physics.Vec2
	StuckTicks int
}
