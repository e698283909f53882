package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/config"
	"github.com/pthm-cable/softies/physics"
	"github.com/pthm-cable/softies/systems"
)

// attributesFromConfig builds a full attribute set from a species profile.
func attributesFromConfig(ac *config.AttributesConfig) components.Attributes {
	return components.NewAttributes(
		float32(ac.MaxEnergy),
		float32(ac.EnergyRecoveryRate),
		float32(ac.MaxSatiety),
		float32(ac.MetabolicRate),
		components.DietFromString(ac.Diet),
		float32(ac.Size),
		ac.PreyTags,
		ac.SelfTags,
	)
}

// SpawnSnake creates a snake with its head at pos, registering all segment
// bodies, colliders, and inter-segment joints with the physics world.
func (g *Game) SpawnSnake(pos physics.Vec2) ecs.Entity {
	sc := &g.cfg.Snake
	id := g.nextID
	g.nextID++

	seg := components.Segments{
		Bodies:        make([]physics.BodyHandle, 0, sc.SegmentCount),
		Joints:        make([]physics.JointHandle, 0, sc.SegmentCount-1),
		SegmentRadius: float32(sc.SegmentRadius),
	}

	spacing := float32(sc.SegmentSpacing)
	var prev physics.BodyHandle

	for i := 0; i < sc.SegmentCount; i++ {
		bh := g.phys.AddBody(physics.BodyDef{
			Position:       physics.Vec2{X: pos.X + float32(i)*spacing, Y: pos.Y},
			LinearDamping:  float32(sc.LinearDamping),
			AngularDamping: float32(sc.AngularDamping),
		})
		g.phys.AddCollider(bh, physics.ColliderDef{
			Kind:        physics.ColliderBall,
			Radius:      float32(sc.SegmentRadius),
			Density:     float32(sc.Density),
			Friction:    float32(sc.Friction),
			Restitution: float32(sc.Restitution),
			Group:       systems.CreatureGroup,
			Owner:       id,
		})
		seg.Bodies = append(seg.Bodies, bh)

		if i > 0 {
			jh := g.phys.AddRevoluteJoint(prev, bh,
				physics.Vec2{X: spacing / 2},
				physics.Vec2{X: -spacing / 2},
			)
			g.phys.SetMotorVelocity(jh, 0, float32(sc.MotorMaxForce))
			seg.Joints = append(seg.Joints, jh)
		}
		prev = bh
	}

	att := attributesFromConfig(&sc.Attributes)
	beh := components.Behavior{
		State: components.Wandering,
		// Jitter the wave phase per creature so same-species snakes never
		// move in lockstep.
		IDOffset: g.rng.Float32() * systems.Tau,
		StuckRef: pos,
	}
	systems.RefreshWanderTarget(&beh, g.rng, g.cfg.Derived.HalfW32, g.cfg.Derived.HalfH32, float32(sc.WanderInterval))

	ident := components.Identity{ID: id, TypeName: components.TypeSnake}
	entity := g.snakeMapper.NewEntity(&ident, &att, &beh, &seg, &components.Snake{})
	g.entities[id] = entity

	slog.Info("creature_spawned", "id", id, "type", components.TypeSnake, "segments", sc.SegmentCount)
	return entity
}

// SpawnPlankton creates a two-segment plankton at pos: a primary body and a
// smaller secondary held loosely behind it by a low-force joint.
func (g *Game) SpawnPlankton(pos physics.Vec2) ecs.Entity {
	pc := &g.cfg.Plankton
	id := g.nextID
	g.nextID++

	primary := g.phys.AddBody(physics.BodyDef{
		Position:       pos,
		LinearDamping:  float32(pc.LinearDamping),
		AngularDamping: float32(pc.AngularDamping),
	})
	g.phys.AddCollider(primary, physics.ColliderDef{
		Kind:        physics.ColliderBall,
		Radius:      float32(pc.PrimaryRadius),
		Density:     float32(pc.Density),
		Friction:    float32(pc.Friction),
		Restitution: float32(pc.Restitution),
		Group:       systems.CreatureGroup,
		Owner:       id,
	})

	spacing := float32(pc.Spacing)
	secondary := g.phys.AddBody(physics.BodyDef{
		Position:       physics.Vec2{X: pos.X - spacing, Y: pos.Y},
		LinearDamping:  float32(pc.LinearDamping),
		AngularDamping: float32(pc.AngularDamping),
	})
	g.phys.AddCollider(secondary, physics.ColliderDef{
		Kind:        physics.ColliderBall,
		Radius:      float32(pc.SecondaryRadius),
		Density:     float32(pc.Density),
		Friction:    float32(pc.Friction),
		Restitution: float32(pc.Restitution),
		Group:       systems.CreatureGroup,
		Owner:       id,
	})

	jh := g.phys.AddRevoluteJoint(primary, secondary,
		physics.Vec2{X: -spacing / 2},
		physics.Vec2{X: spacing / 2},
	)
	g.phys.SetMotorVelocity(jh, 0, float32(pc.JointMaxForce))

	seg := components.Segments{
		Bodies:        []physics.BodyHandle{primary, secondary},
		Joints:        []physics.JointHandle{jh},
		SegmentRadius: float32(pc.PrimaryRadius),
	}
	att := attributesFromConfig(&pc.Attributes)
	beh := components.Behavior{
		State:    components.Wandering,
		BobPhase: g.rng.Float32() * systems.Tau,
		StuckRef: pos,
	}

	ident := components.Identity{ID: id, TypeName: components.TypePlankton}
	entity := g.plankMapper.NewEntity(&ident, &att, &beh, &seg, &components.Plankton{})
	g.entities[id] = entity
	return entity
}

// RemoveCreature despawns a creature, detaching its joints and bodies from
// the physics world in lock-step with the entity removal.
func (g *Game) RemoveCreature(entity ecs.Entity) {
	seg := g.segMap.Get(entity)
	if seg != nil {
		for _, jh := range seg.Joints {
			g.phys.RemoveJoint(jh)
		}
		for _, bh := range seg.Bodies {
			g.phys.RemoveBody(bh)
		}
	}
	if ident := g.idMap.Get(entity); ident != nil {
		slog.Info("creature_removed", "id", ident.ID, "type", ident.TypeName)
		delete(g.entities, ident.ID)
	}
	g.world.RemoveEntity(entity)
}
