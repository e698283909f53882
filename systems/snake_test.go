package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/config"
	"github.com/pthm-cable/softies/physics"
)

func testSnakeConfig() *config.SnakeConfig {
	return &config.SnakeConfig{
		SegmentCount:     4,
		SegmentRadius:    0.1,
		SegmentSpacing:   0.3,
		MotorMaxForce:    100,
		WaveAmplitude:    2.0,
		MaxMotorVelocity: 4.0,
		FrequencyCount:   1.5,
		PhaseRate:        3.0,
		BaseEnergyCost:   0.01,
		SteerForce:       5,
		ThrustForce:      10,
		MaxSpeed:         3,
		WanderInterval:   4,
		WanderReach:      0.5,
		Wandering:        config.StateGainsConfig{Amplitude: 1, Frequency: 1, EnergyCost: 1},
		Seeking:          config.StateGainsConfig{Amplitude: 1.2, Frequency: 1.5, EnergyCost: 1.3},
		Fleeing:          config.StateGainsConfig{Amplitude: 1.5, Frequency: 2, EnergyCost: 2},
		Idle:             config.StateGainsConfig{Amplitude: 0.3, Frequency: 0.5, EnergyCost: 0.5},
	}
}

// buildSnake assembles a jointed chain the way the spawn factory does.
func buildSnake(w *physics.World, cfg *config.SnakeConfig) *components.Segments {
	seg := &components.Segments{SegmentRadius: float32(cfg.SegmentRadius)}
	spacing := float32(cfg.SegmentSpacing)

	for i := 0; i < cfg.SegmentCount; i++ {
		bh := w.AddBody(physics.BodyDef{Position: physics.Vec2{X: float32(i) * spacing}})
		w.AddCollider(bh, physics.ColliderDef{
			Kind:    physics.ColliderBall,
			Radius:  float32(cfg.SegmentRadius),
			Density: 100,
			Group:   CreatureGroup,
			Owner:   1,
		})
		seg.Bodies = append(seg.Bodies, bh)
	}
	for i := 1; i < cfg.SegmentCount; i++ {
		jh := w.AddRevoluteJoint(seg.Bodies[i-1], seg.Bodies[i],
			physics.Vec2{X: spacing / 2}, physics.Vec2{X: -spacing / 2})
		seg.Joints = append(seg.Joints, jh)
	}
	return seg
}

func TestActuateSnakeRestingIsFree(t *testing.T) {
	w := physics.NewWorld(4)
	cfg := testSnakeConfig()
	seg := buildSnake(w, cfg)
	beh := &components.Behavior{State: components.Resting, WigglePhase: 1.5}
	att := components.NewAttributes(20, 2, 30, 1, components.Carnivore, 1, nil, nil)
	rng := rand.New(rand.NewSource(1))

	energyBefore := att.Energy
	ActuateSnake(w, seg, beh, &att, cfg, rng, 10, 8, 1.0/60.0)

	if att.Energy != energyBefore {
		t.Errorf("resting actuation consumed energy: %v -> %v", energyBefore, att.Energy)
	}
	if beh.WigglePhase != 1.5 {
		t.Errorf("resting actuation advanced the wiggle phase: %v", beh.WigglePhase)
	}
}

func TestActuateSnakeWanderingCostsEnergy(t *testing.T) {
	w := physics.NewWorld(4)
	cfg := testSnakeConfig()
	seg := buildSnake(w, cfg)
	beh := &components.Behavior{State: components.Wandering}
	att := components.NewAttributes(20, 2, 30, 1, components.Carnivore, 1, nil, nil)
	rng := rand.New(rand.NewSource(1))

	dt := float32(1.0 / 60.0)
	energyBefore := att.Energy
	for i := 0; i < 60; i++ {
		ActuateSnake(w, seg, beh, &att, cfg, rng, 10, 8, dt)
	}

	if att.Energy >= energyBefore {
		t.Errorf("wandering actuation is free: energy %v -> %v", energyBefore, att.Energy)
	}
	if beh.WigglePhase <= 0 {
		t.Errorf("wiggle phase did not advance: %v", beh.WigglePhase)
	}
}

func TestActuateSnakeHungerScalesPhaseRate(t *testing.T) {
	w := physics.NewWorld(4)
	cfg := testSnakeConfig()
	segA := buildSnake(w, cfg)
	segB := buildSnake(w, cfg)
	rng := rand.New(rand.NewSource(1))
	dt := float32(1.0 / 60.0)

	full := components.NewAttributes(20, 2, 30, 1, components.Carnivore, 1, nil, nil)
	starving := components.NewAttributes(20, 2, 30, 1, components.Carnivore, 1, nil, nil)
	starving.Satiety = 0

	behFull := &components.Behavior{State: components.SeekingFood}
	behStarving := &components.Behavior{State: components.SeekingFood}

	for i := 0; i < 60; i++ {
		ActuateSnake(w, segA, behFull, &full, cfg, rng, 10, 8, dt)
		ActuateSnake(w, segB, behStarving, &starving, cfg, rng, 10, 8, dt)
	}

	if behStarving.WigglePhase <= behFull.WigglePhase {
		t.Errorf("starving snake should wiggle faster: %v vs %v",
			behStarving.WigglePhase, behFull.WigglePhase)
	}
}

func TestActuateSnakeSingleSegmentNoop(t *testing.T) {
	w := physics.NewWorld(4)
	cfg := testSnakeConfig()
	seg := &components.Segments{SegmentRadius: 0.1}
	seg.Bodies = append(seg.Bodies, w.AddBody(physics.BodyDef{}))
	beh := &components.Behavior{State: components.Wandering}
	att := components.NewAttributes(20, 2, 30, 1, components.Carnivore, 1, nil, nil)

	ActuateSnake(w, seg, beh, &att, cfg, rand.New(rand.NewSource(1)), 10, 8, 1.0/60.0)

	if att.Energy != att.MaxEnergy {
		t.Errorf("degenerate snake consumed energy: %v", att.Energy)
	}
}

func TestRefreshWanderTargetStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	beh := &components.Behavior{}

	for i := 0; i < 1000; i++ {
		RefreshWanderTarget(beh, rng, 10, 8, 4)
		if absF(beh.WanderTarget.X) > 9 || absF(beh.WanderTarget.Y) > 7 {
			t.Fatalf("wander target (%v, %v) outside the interior margin",
				beh.WanderTarget.X, beh.WanderTarget.Y)
		}
	}
	if beh.WanderTimer != 4 {
		t.Errorf("wander timer = %v, want 4", beh.WanderTimer)
	}
}
