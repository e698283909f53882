package systems

import (
	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/config"
	"github.com/pthm-cable/softies/physics"
)

// LightZone is the vertical band of the world where photosynthetic energy
// gain is permitted.
type LightZone struct {
	BottomY float32
	TopY    float32
}

// Contains reports whether the given height is inside the band.
func (z LightZone) Contains(y float32) bool {
	return y >= z.BottomY && y <= z.TopY
}

// ActuatePlankton steers a plankton with flocking impulses, applies
// state-dependent buoyancy relative to the light zone, damps velocity, and
// credits photosynthetic energy gain while foraging inside the zone.
// neighbors must come from the tick's snapshot set (same species only).
func ActuatePlankton(w *physics.World, seg *components.Segments, beh *components.Behavior, att *components.Attributes, neighbors []components.CreatureInfo, zone LightZone, cfg *config.PlanktonConfig, dt float32) {
	primary := seg.Head()
	pos, ok := w.Translation(primary)
	if !ok {
		return
	}
	vel, _ := w.LinVel(primary)

	// Flocking only while wandering; foraging and resting plankton drift.
	if beh.State == components.Wandering {
		steer := Steer(pos, neighbors, BoidParams{
			Cohesion:           float32(cfg.CohesionStrength),
			Alignment:          float32(cfg.AlignmentStrength),
			Separation:         float32(cfg.SeparationStrength),
			SeparationDistance: float32(cfg.SeparationDistance),
		})
		w.ApplyImpulse(primary, steer.Scale(nonNegative(float32(cfg.BoidImpulse))))
	}

	w.ApplyForce(primary, buoyancyForce(beh, pos.Y, zone, cfg, dt))

	// Velocity-proportional damping on both axes bounds drift speed.
	damping := nonNegative(float32(cfg.VelocityDamping))
	force := vel.Scale(-damping)

	// Adaptive damping kicks in past the safety threshold.
	if speed := vel.Length(); speed > float32(cfg.SafeSpeed) {
		force = force.Add(vel.Scale(-nonNegative(float32(cfg.AdaptiveDamping))))
	}
	w.ApplyForce(primary, force)

	// Sunlight foraging: an energy gain, not a reduced loss, and only while
	// actively seeking inside the band. Capped below full max energy.
	if beh.State == components.SeekingFood && zone.Contains(pos.Y) {
		cap := att.MaxEnergy * float32(cfg.LightGainCapFrac)
		att.GainEnergy(float32(cfg.LightGainRate)*dt, cap)
	}
}

// buoyancyForce picks the vertical force for the current state: rise toward
// the light zone while foraging below it, sink while resting or above the
// zone, bob gently while wandering.
func buoyancyForce(beh *components.Behavior, y float32, zone LightZone, cfg *config.PlanktonConfig, dt float32) physics.Vec2 {
	switch beh.State {
	case components.SeekingFood:
		if y < zone.BottomY {
			return physics.Vec2{Y: nonNegative(float32(cfg.RiseForce))}
		}
		if y > zone.TopY {
			return physics.Vec2{Y: -nonNegative(float32(cfg.SinkForce))}
		}
		return physics.Vec2{}
	case components.Resting:
		return physics.Vec2{Y: -nonNegative(float32(cfg.SinkForce))}
	case components.Wandering:
		beh.BobPhase += dt * float32(cfg.BobRate)
		bob := sinF(beh.BobPhase) * nonNegative(float32(cfg.BobForce))
		if y > zone.TopY {
			return physics.Vec2{Y: -nonNegative(float32(cfg.SinkForce))}
		}
		return physics.Vec2{Y: bob}
	}
	return physics.Vec2{}
}

// InLightZone reports whether the creature's favorable-zone condition holds
// for leaving SeekingFood.
func InLightZone(w *physics.World, seg *components.Segments, zone LightZone) bool {
	pos, ok := w.Translation(seg.Head())
	if !ok {
		return false
	}
	return zone.Contains(pos.Y)
}
