package components

import "github.com/pthm-cable/softies/physics"

// Species names as reported by snapshots and rendering.
const (
	TypeSnake    = "snake"
	TypePlankton = "plankton"
)

// Segments holds a creature's references into the physics world. The
// creature references but does not own these objects; all access goes
// through the world's handle tables, and a stale handle is a soft failure.
// Bodies are ordered head first. Joints[i] connects Bodies[i] and Bodies[i+1].
type Segments struct {
	Bodies []physics.BodyHandle
	Joints []physics.JointHandle

	// SegmentRadius is the collider radius shared by the main segments;
	// also the drawing radius.
	SegmentRadius float32
}

// Head returns the primary segment handle, or a zero handle if the
// creature has no segments.
func (s *Segments) Head() physics.BodyHandle {
	if len(s.Bodies) == 0 {
		return physics.BodyHandle{}
	}
	return s.Bodies[0]
}

// Snake tags a creature driven by the traveling-wave actuator.
type Snake struct{}

// Plankton tags a creature driven by the boid flocking actuator.
type Plankton struct{}
