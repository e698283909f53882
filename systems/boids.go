package systems

import (
	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/physics"
)

// BoidParams holds the flocking term strengths.
type BoidParams struct {
	Cohesion           float32
	Alignment          float32
	Separation         float32
	SeparationDistance float32
}

// Steer computes the combined cohesion, alignment, and separation vector
// for a creature at self given its neighbor snapshots. With no neighbors
// the result is the zero vector. Every term is an order-independent sum or
// normalization, so the result does not depend on neighbor order.
func Steer(self physics.Vec2, neighbors []components.CreatureInfo, p BoidParams) physics.Vec2 {
	if len(neighbors) == 0 {
		return physics.Vec2{}
	}

	var centroid physics.Vec2
	var avgVel physics.Vec2
	var sep physics.Vec2

	for _, n := range neighbors {
		centroid = centroid.Add(n.Position)
		avgVel = avgVel.Add(n.Velocity)

		delta := self.Sub(n.Position)
		dist := delta.Length()
		if dist > 0 && dist < p.SeparationDistance {
			sep = sep.Add(delta.Scale(1 / dist))
		}
	}

	inv := 1 / float32(len(neighbors))
	centroid = centroid.Scale(inv)

	// Cohesion: toward the neighbor centroid. Normalize(zero) is zero, so a
	// centroid coinciding with self contributes nothing.
	steer := centroid.Sub(self).Normalize().Scale(nonNegative(p.Cohesion))

	// Alignment: along the average neighbor heading.
	steer = steer.Add(avgVel.Normalize().Scale(nonNegative(p.Alignment)))

	// Separation: away from crowding neighbors.
	steer = steer.Add(sep.Normalize().Scale(nonNegative(p.Separation)))

	return steer
}
