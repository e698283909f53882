package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/physics"
	"github.com/pthm-cable/softies/systems"
	"github.com/pthm-cable/softies/telemetry"
)

// Step runs a single simulation tick: metabolism, snapshot build, behavior
// and actuation per creature, force application, the physics step, and the
// safety/recovery pass. Creatures decide against the tick's immutable
// snapshots, never the live world, so no creature's decision sees another
// creature's same-tick mutation.
func (g *Game) Step() {
	dt := g.cfg.Derived.DT32

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseMetabolism)
	g.updateMetabolism(dt)

	g.perf.StartPhase(telemetry.PhaseSnapshots)
	g.buildSnapshots()

	g.perf.StartPhase(telemetry.PhaseBehavior)
	g.updateSnakes(dt)
	g.updatePlankton(dt)

	g.perf.StartPhase(telemetry.PhaseFeeding)
	g.updateFeeding()

	g.perf.StartPhase(telemetry.PhaseForces)
	g.applyForces(dt)

	g.perf.StartPhase(telemetry.PhasePhysics)
	g.phys.Step(physics.Vec2{Y: float32(g.cfg.World.GravityY)}, dt)

	g.perf.StartPhase(telemetry.PhaseSafety)
	g.safetyPass(dt)

	g.tick++

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.sampleTelemetry()

	g.perf.EndTick()
}

// updateMetabolism applies passive satiety/energy decay and rest recovery.
func (g *Game) updateMetabolism(dt float32) {
	query := g.allFilter.Query()
	for query.Next() {
		_, att, beh, _ := query.Get()
		att.UpdatePassiveStats(dt, beh.State == components.Resting)
	}
}

// buildSnapshots rebuilds the per-tick read-only creature list from
// authoritative physics state. This runs before any creature acts.
func (g *Game) buildSnapshots() {
	g.snaps.Reset()

	query := g.allFilter.Query()
	for query.Next() {
		ident, _, _, seg := query.Get()

		head := seg.Head()
		pos, ok := g.phys.Translation(head)
		if !ok {
			// Handle list out of sync with the physics world; skip this
			// tick rather than fail.
			continue
		}
		vel, _ := g.phys.LinVel(head)

		g.snaps.Add(components.CreatureInfo{
			ID:       ident.ID,
			TypeName: ident.TypeName,
			Body:     head,
			Position: pos,
			Velocity: vel,
			Radius:   seg.SegmentRadius,
		})
	}
}

// updateSnakes runs the state machine and traveling-wave actuator for every
// snake.
func (g *Game) updateSnakes(dt float32) {
	sc := &g.cfg.Snake
	th := systems.Thresholds{
		RestExitFrac:  float32(sc.RestExitFrac),
		SeekEnterFrac: float32(sc.SeekEnterFrac),
		SeekExitFrac:  float32(sc.SeekExitFrac),
	}

	query := g.snakeFilter.Query()
	for query.Next() {
		_, att, beh, seg, _ := query.Get()

		// Snakes have no positional feeding zone.
		beh.State = systems.NextState(beh.State, att, th, true)
		systems.ActuateSnake(g.phys, seg, beh, att, sc, g.rng,
			g.cfg.Derived.HalfW32, g.cfg.Derived.HalfH32, dt)
	}
}

// updatePlankton runs sensing, the state machine, and the flocking actuator
// for every plankton.
func (g *Game) updatePlankton(dt float32) {
	pc := &g.cfg.Plankton
	th := systems.Thresholds{
		RestExitFrac:  float32(pc.RestExitFrac),
		SeekEnterFrac: float32(pc.SeekEnterFrac),
		SeekExitFrac:  float32(pc.SeekExitFrac),
	}
	zone := systems.LightZone{
		BottomY: g.cfg.Derived.LightZoneBotY,
		TopY:    g.cfg.Derived.LightZoneTopY,
	}

	query := g.plankFilter.Query()
	for query.Next() {
		ident, att, beh, seg, _ := query.Get()

		info, ok := g.snaps.ByID(ident.ID)
		if !ok {
			continue
		}

		g.neighborScratch = g.neighborScratch[:0]
		g.neighborScratch, g.queryScratch = systems.SenseNearby(
			g.neighborScratch, g.phys, g.snaps, g.queryScratch,
			ident.ID, info.Body, info.Position, float32(pc.PerceptionRadius))

		// Flocking considers only conspecifics.
		same := g.neighborScratch[:0]
		for _, n := range g.neighborScratch {
			if n.TypeName == ident.TypeName {
				same = append(same, n)
			}
		}

		inZone := zone.Contains(info.Position.Y)
		beh.State = systems.NextState(beh.State, att, th, inZone)
		systems.ActuatePlankton(g.phys, seg, beh, att, same, zone, pc, dt)
	}
}

// updateFeeding lets snakes eat plankton within bite range. An eaten
// plankton is respawned at a random position rather than removed, keeping
// the population stable.
func (g *Game) updateFeeding() {
	sc := &g.cfg.Snake
	biteRange := float32(sc.BiteRange)
	if biteRange <= 0 {
		return
	}

	query := g.snakeFilter.Query()
	for query.Next() {
		ident, att, _, _, _ := query.Get()

		if !att.IsHungry() {
			continue
		}
		info, ok := g.snaps.ByID(ident.ID)
		if !ok {
			continue
		}

		g.neighborScratch = g.neighborScratch[:0]
		g.neighborScratch, g.queryScratch = systems.SenseNearby(
			g.neighborScratch, g.phys, g.snaps, g.queryScratch,
			ident.ID, info.Body, info.Position, biteRange)

		for _, n := range g.neighborScratch {
			prey, ok := g.entities[n.ID]
			if !ok {
				continue
			}
			preyAtt := g.attMap.Get(prey)
			if preyAtt == nil || !att.CanEat(preyAtt) {
				continue
			}

			att.GainSatiety(float32(sc.BiteSatiety))
			g.respawn(prey, preyAtt)
			g.collector.RecordBite()
			break // one bite per tick
		}
	}
}

// respawn teleports an eaten creature to a random safe position with
// zeroed velocities and drained satiety, so it forages again.
func (g *Game) respawn(entity ecs.Entity, att *components.Attributes) {
	hw := g.cfg.Derived.HalfW32
	hh := g.cfg.Derived.HalfH32
	pos := physics.Vec2{
		X: (g.rng.Float32()*2 - 1) * (hw - 1),
		Y: (g.rng.Float32()*2 - 1) * (hh - 1),
	}

	seg := g.segMap.Get(entity)
	if seg == nil {
		return
	}
	for i, bh := range seg.Bodies {
		g.phys.SetTranslation(bh, physics.Vec2{X: pos.X - float32(i)*seg.SegmentRadius*2, Y: pos.Y})
		g.phys.SetLinVel(bh, physics.Vec2{})
		g.phys.SetAngVel(bh, 0)
	}
	att.Satiety = 0
}

// applyForces applies anisotropic drag and buoyancy to every snake segment.
// Plankton forces are applied by their actuator.
func (g *Game) applyForces(_ float32) {
	sc := &g.cfg.Snake
	forward := float32(sc.ForwardDrag)
	lateral := float32(sc.LateralDrag)
	buoyancy := float32(sc.Buoyancy)

	query := g.snakeFilter.Query()
	for query.Next() {
		_, _, _, seg, _ := query.Get()

		for _, bh := range seg.Bodies {
			vel, ok := g.phys.LinVel(bh)
			if !ok {
				continue
			}
			rot, _ := g.phys.Rotation(bh)

			force := systems.AnisotropicDrag(vel, rot, forward, lateral)
			force.Y += buoyancy
			g.phys.ApplyForce(bh, force)
		}
	}
}

// safetyPass runs the recovery layer over every creature: speed clamping,
// boundary containment, stuck detection, self-collision unfolding, and the
// whole-world failsafe.
func (g *Game) safetyPass(_ float32) {
	hw := g.cfg.Derived.HalfW32
	hh := g.cfg.Derived.HalfH32
	sfc := &g.cfg.Safety

	var stats systems.SafetyStats

	query := g.allFilter.Query()
	for query.Next() {
		ident, _, beh, seg := query.Get()

		systems.ClampSpeed(g.phys, seg, float32(sfc.MaxSpeed), &stats)

		if systems.BoundsPass(g.phys, seg, hw, hh, sfc, g.rng, &stats) {
			slog.Warn("boundary_reset", "id", ident.ID, "type", ident.TypeName)
			continue
		}

		systems.StuckPass(g.phys, seg, beh, sfc, g.rng, hw, hh,
			float32(g.cfg.Snake.WanderInterval), &stats)

		systems.SelfCollisionPass(g.phys, seg, sfc, &stats)

		if systems.Failsafe(g.phys, seg, hw, hh, sfc, &stats) {
			slog.Warn("failsafe_reset", "id", ident.ID, "type", ident.TypeName, "tick", g.tick)
		}
	}

	g.collector.RecordSafety(stats)
}

// sampleTelemetry drains the collector into a WindowStats record whenever a
// stats window completes, sampling population state at the window boundary.
func (g *Game) sampleTelemetry() {
	if !g.collector.WindowComplete(g.tick) {
		return
	}

	var stats telemetry.WindowStats
	g.collector.Drain(&stats, g.tick)

	query := g.allFilter.Query()
	for query.Next() {
		ident, _, beh, _ := query.Get()

		switch ident.TypeName {
		case components.TypeSnake:
			stats.SnakeCount++
		case components.TypePlankton:
			stats.PlanktonCount++
		}

		switch beh.State {
		case components.Idle:
			stats.IdleCount++
		case components.Wandering:
			stats.WanderingCount++
		case components.Resting:
			stats.RestingCount++
		case components.SeekingFood:
			stats.SeekingCount++
		case components.Fleeing:
			stats.FleeingCount++
		}
	}

	snakeEnergy, snakeSatiety := g.sampleAttributes(components.TypeSnake)
	plankEnergy, plankSatiety := g.sampleAttributes(components.TypePlankton)

	se := telemetry.ComputeDistStats(snakeEnergy)
	stats.SnakeEnergyMean = se.Mean
	stats.SnakeEnergyP10 = se.P10
	stats.SnakeEnergyP50 = se.P50
	stats.SnakeEnergyP90 = se.P90

	pe := telemetry.ComputeDistStats(plankEnergy)
	stats.PlanktonEnergyMean = pe.Mean
	stats.PlanktonEnergyP10 = pe.P10
	stats.PlanktonEnergyP50 = pe.P50
	stats.PlanktonEnergyP90 = pe.P90

	ss := telemetry.ComputeDistStats(snakeSatiety)
	stats.SnakeSatietyMean = ss.Mean
	stats.SnakeSatietyStd = ss.Std

	ps := telemetry.ComputeDistStats(plankSatiety)
	stats.PlanktonSatietyMean = ps.Mean
	stats.PlanktonSatietyStd = ps.Std

	if g.opts.LogStats || g.cfg.Telemetry.LogStats {
		stats.LogStats()
	}
	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("telemetry_write_failed", "error", err)
		}
		if err := g.output.WritePerf(g.perf.Stats(), g.tick); err != nil {
			slog.Error("perf_write_failed", "error", err)
		}
	}
}

// sampleAttributes collects energy and satiety samples for one species.
func (g *Game) sampleAttributes(typeName string) (energy, satiety []float64) {
	query := g.allFilter.Query()
	for query.Next() {
		ident, att, _, _ := query.Get()
		if ident.TypeName != typeName {
			continue
		}
		energy = append(energy, float64(att.Energy))
		satiety = append(satiety, float64(att.Satiety))
	}
	return energy, satiety
}
