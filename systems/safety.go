package systems

import (
	"math/rand"

	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/config"
	"github.com/pthm-cable/softies/physics"
)

// SafetyStats counts corrective interventions during one tick, for
// telemetry and logging.
type SafetyStats struct {
	SpeedClamps        int
	BoundaryPushbacks  int
	CriticalResets     int
	StuckKicks         int
	SelfCollisionFixes int
	FailsafeResets     int
}

// ClampSpeed caps every segment's linear speed at the configured maximum.
// Runaway velocity is the first physics pathology this layer defends
// against; everything downstream assumes bounded speeds.
func ClampSpeed(w *physics.World, seg *components.Segments, maxSpeed float32, stats *SafetyStats) {
	if maxSpeed <= 0 {
		return
	}
	for _, bh := range seg.Bodies {
		vel, ok := w.LinVel(bh)
		if !ok {
			continue
		}
		if speed := vel.Length(); speed > maxSpeed {
			w.SetLinVel(bh, vel.Scale(maxSpeed/speed))
			stats.SpeedClamps++
		}
	}
}

// BoundsPass keeps every segment inside the world. Segments inside the
// margin band get a restoring force and velocity damping; a segment
// critically close to a wall triggers a full reset of the creature to a
// fresh safe position with zero velocity. Returns true if the creature was
// reset.
func BoundsPass(w *physics.World, seg *components.Segments, halfW, halfH float32, cfg *config.SafetyConfig, rng *rand.Rand, stats *SafetyStats) bool {
	margin := nonNegative(float32(cfg.BoundsMargin))
	critical := nonNegative(float32(cfg.CriticalMargin))
	restore := nonNegative(float32(cfg.RestoreForce))
	damping := clampFloat(float32(cfg.BoundaryDamping), 0, 1)

	for _, bh := range seg.Bodies {
		pos, ok := w.Translation(bh)
		if !ok {
			continue
		}

		if absF(pos.X) > halfW-critical || absF(pos.Y) > halfH-critical {
			resetToSafePosition(w, seg, halfW, halfH, rng)
			stats.CriticalResets++
			return true
		}

		var force physics.Vec2
		if pos.X > halfW-margin {
			force.X = -restore * (pos.X - (halfW - margin))
		} else if pos.X < -(halfW - margin) {
			force.X = -restore * (pos.X + (halfW - margin))
		}
		if pos.Y > halfH-margin {
			force.Y = -restore * (pos.Y - (halfH - margin))
		} else if pos.Y < -(halfH - margin) {
			force.Y = -restore * (pos.Y + (halfH - margin))
		}

		if force.X != 0 || force.Y != 0 {
			w.ApplyForce(bh, force)
			if vel, ok := w.LinVel(bh); ok {
				w.SetLinVel(bh, vel.Scale(damping))
			}
			stats.BoundaryPushbacks++
		}
	}
	return false
}

// resetToSafePosition relocates the whole creature to a random interior
// point, laying segments out in a horizontal line with zero velocities.
func resetToSafePosition(w *physics.World, seg *components.Segments, halfW, halfH float32, rng *rand.Rand) {
	n := float32(len(seg.Bodies))
	spacing := seg.SegmentRadius * 3
	marginX := clampFloat(halfW-1-n*spacing, 0.5, halfW)
	marginY := clampFloat(halfH-1, 0.5, halfH)
	origin := physics.Vec2{
		X: (rng.Float32()*2 - 1) * marginX,
		Y: (rng.Float32()*2 - 1) * marginY,
	}
	placeSegments(w, seg, origin, spacing)
}

// placeSegments lays the segments out head-first along +x from origin with
// all velocities zeroed.
func placeSegments(w *physics.World, seg *components.Segments, origin physics.Vec2, spacing float32) {
	for i, bh := range seg.Bodies {
		w.SetTranslation(bh, physics.Vec2{X: origin.X + float32(i)*spacing, Y: origin.Y})
		w.SetRotation(bh, 0)
		w.SetLinVel(bh, physics.Vec2{})
		w.SetAngVel(bh, 0)
	}
}

// StuckPass tracks head displacement over a rolling window and forces a new
// wander target when the creature has effectively not moved. Returns true
// when a kick was applied.
func StuckPass(w *physics.World, seg *components.Segments, beh *components.Behavior, cfg *config.SafetyConfig, rng *rand.Rand, halfW, halfH float32, wanderInterval float32, stats *SafetyStats) bool {
	pos, ok := w.Translation(seg.Head())
	if !ok {
		return false
	}

	beh.StuckTicks++
	if beh.StuckTicks < cfg.StuckWindowTicks {
		return false
	}

	moved := pos.Sub(beh.StuckRef).Length()
	beh.StuckRef = pos
	beh.StuckTicks = 0

	if moved >= float32(cfg.StuckMinDisplace) {
		return false
	}

	RefreshWanderTarget(beh, rng, halfW, halfH, wanderInterval)
	stats.StuckKicks++
	return true
}

// SelfCollisionPass detects non-adjacent segments that have folded onto
// each other (closer than the configured multiple of the segment radius).
// Both segments have their velocity zeroed, and interior segments are
// pulled toward the midpoint of their chain neighbors to unfold the body.
func SelfCollisionPass(w *physics.World, seg *components.Segments, cfg *config.SafetyConfig, stats *SafetyStats) {
	n := len(seg.Bodies)
	if n < 3 {
		return
	}
	minDist := seg.SegmentRadius * nonNegative(float32(cfg.SelfCollisionFactor))

	for i := 0; i < n; i++ {
		pi, ok := w.Translation(seg.Bodies[i])
		if !ok {
			continue
		}
		for j := i + 2; j < n; j++ {
			pj, ok := w.Translation(seg.Bodies[j])
			if !ok {
				continue
			}
			if pi.Sub(pj).LengthSq() >= minDist*minDist {
				continue
			}

			w.SetLinVel(seg.Bodies[i], physics.Vec2{})
			w.SetLinVel(seg.Bodies[j], physics.Vec2{})
			pullToNeighborMidpoint(w, seg, i)
			pullToNeighborMidpoint(w, seg, j)
			stats.SelfCollisionFixes++
		}
	}
}

// pullToNeighborMidpoint moves an interior segment halfway toward the
// midpoint of its chain neighbors. End segments have only one neighbor and
// are left alone.
func pullToNeighborMidpoint(w *physics.World, seg *components.Segments, i int) {
	if i <= 0 || i >= len(seg.Bodies)-1 {
		return
	}
	prev, ok1 := w.Translation(seg.Bodies[i-1])
	next, ok2 := w.Translation(seg.Bodies[i+1])
	cur, ok3 := w.Translation(seg.Bodies[i])
	if !ok1 || !ok2 || !ok3 {
		return
	}
	mid := prev.Add(next).Scale(0.5)
	w.SetTranslation(seg.Bodies[i], cur.Add(mid.Sub(cur).Scale(0.5)))
}

// Failsafe is the last line of defense against solver divergence: any
// segment found beyond the walls plus the failsafe tolerance resets the
// whole creature to the origin with zero velocities. Returns true when the
// creature was reset; the caller logs the event.
func Failsafe(w *physics.World, seg *components.Segments, halfW, halfH float32, cfg *config.SafetyConfig, stats *SafetyStats) bool {
	tol := nonNegative(float32(cfg.FailsafeTolerance))

	for _, bh := range seg.Bodies {
		pos, ok := w.Translation(bh)
		if !ok {
			continue
		}
		if !pos.IsFinite() || absF(pos.X) > halfW+tol || absF(pos.Y) > halfH+tol {
			placeSegments(w, seg, physics.Vec2{}, seg.SegmentRadius*3)
			stats.FailsafeResets++
			return true
		}
	}
	return false
}
