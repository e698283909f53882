package systems

import (
	"math/rand"

	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/config"
	"github.com/pthm-cable/softies/physics"
)

// stateGains resolves the per-state actuation multipliers for a snake.
// Resting returns zeros: the motors target zero velocity but keep their
// holding force so the body does not go limp.
func stateGains(cfg *config.SnakeConfig, state components.State) config.StateGainsConfig {
	switch state {
	case components.Wandering:
		return cfg.Wandering
	case components.SeekingFood:
		return cfg.Seeking
	case components.Fleeing:
		return cfg.Fleeing
	case components.Idle:
		return cfg.Idle
	}
	return config.StateGainsConfig{}
}

// ActuateSnake drives the snake's joint motors with a traveling wave and
// steers the head toward its wander target. Actuation magnitude scales with
// the behavioral state, and the energy cost of the commanded motor
// velocities is charged to the creature's attributes.
func ActuateSnake(w *physics.World, seg *components.Segments, beh *components.Behavior, att *components.Attributes, cfg *config.SnakeConfig, rng *rand.Rand, halfW, halfH, dt float32) {
	n := len(seg.Bodies)
	if n < 2 {
		return
	}

	gains := stateGains(cfg, beh.State)

	freq := float32(gains.Frequency)
	if beh.State == components.SeekingFood && att.MaxSatiety > 0 {
		// Hungrier snakes wiggle faster.
		freq *= 1 + 0.5*(1-att.Satiety/att.MaxSatiety)
	}

	resting := beh.State == components.Resting
	if !resting {
		beh.WigglePhase += dt * float32(cfg.PhaseRate) * freq
	}

	amplitude := float32(cfg.WaveAmplitude) * float32(gains.Amplitude)
	maxVel := nonNegative(float32(cfg.MaxMotorVelocity))
	maxForce := nonNegative(float32(cfg.MotorMaxForce))
	freqCount := float32(cfg.FrequencyCount)

	var cost float32
	for i, jh := range seg.Joints {
		var target float32
		if !resting {
			phase := beh.WigglePhase + float32(i)/float32(n-1)*Tau*freqCount + beh.IDOffset
			target = clampFloat(sinF(phase)*amplitude, -maxVel, maxVel)
		}
		w.SetMotorVelocity(jh, target, maxForce)
		cost += absF(target)
	}
	att.ConsumeEnergy(cost * float32(cfg.BaseEnergyCost) * float32(gains.EnergyCost) * dt)

	if resting || beh.State == components.Idle {
		return
	}

	steerHead(w, seg, beh, cfg, rng, halfW, halfH, dt)
}

// steerHead refreshes the wander target when stale or reached and pushes
// the head toward it, with forward thrust capped by the max linear speed.
func steerHead(w *physics.World, seg *components.Segments, beh *components.Behavior, cfg *config.SnakeConfig, rng *rand.Rand, halfW, halfH, dt float32) {
	head := seg.Head()
	pos, ok := w.Translation(head)
	if !ok {
		return
	}

	beh.WanderTimer -= dt
	reach := float32(cfg.WanderReach)
	if beh.WanderTimer <= 0 || beh.WanderTarget.Sub(pos).LengthSq() < reach*reach {
		RefreshWanderTarget(beh, rng, halfW, halfH, float32(cfg.WanderInterval))
	}

	dir := beh.WanderTarget.Sub(pos).Normalize()
	force := dir.Scale(nonNegative(float32(cfg.SteerForce)))

	vel, ok := w.LinVel(head)
	if ok && vel.Length() < float32(cfg.MaxSpeed) {
		force = force.Add(dir.Scale(nonNegative(float32(cfg.ThrustForce))))
	}

	maxForce := nonNegative(float32(cfg.SteerForce) + float32(cfg.ThrustForce))
	if l := force.Length(); l > maxForce && l > 0 {
		force = force.Scale(maxForce / l)
	}
	w.ApplyForce(head, force)
}

// RefreshWanderTarget picks a new wander point inside the walls, one meter
// clear of each boundary, and resets the refresh timer.
func RefreshWanderTarget(beh *components.Behavior, rng *rand.Rand, halfW, halfH, interval float32) {
	marginX := clampFloat(halfW-1, 0.5, halfW)
	marginY := clampFloat(halfH-1, 0.5, halfH)
	beh.WanderTarget = physics.Vec2{
		X: (rng.Float32()*2 - 1) * marginX,
		Y: (rng.Float32()*2 - 1) * marginY,
	}
	beh.WanderTimer = interval
}
