package components

import "github.com/pthm-cable/softies/physics"

// CreatureInfo is the per-tick immutable snapshot of one creature's
// observable state, built fresh from authoritative physics state before any
// creature mutates the world. All sensing during the behavior pass reads
// these snapshots, never the live world, so a creature's decision is never
// affected by another creature's same-tick mutation.
type CreatureInfo struct {
	ID       uint32
	TypeName string
	Body     physics.BodyHandle // primary segment
	Position physics.Vec2
	Velocity physics.Vec2
	Radius   float32 // primary segment radius
}
