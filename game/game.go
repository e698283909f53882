// Package game wires the simulation together: the ECS creature registry,
// the physics world, the per-tick pipeline, and the optional renderer.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/config"
	"github.com/pthm-cable/softies/physics"
	"github.com/pthm-cable/softies/systems"
	"github.com/pthm-cable/softies/telemetry"
)

// Options configures a new Game.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	OutputDir      string
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	world   *ecs.World
	phys    *physics.World
	rng     *rand.Rand
	cfg     *config.Config
	opts    Options

	// Entity mappers per species
	snakeMapper *ecs.Map5[
		components.Identity,
		components.Attributes,
		components.Behavior,
		components.Segments,
		components.Snake,
	]
	plankMapper *ecs.Map5[
		components.Identity,
		components.Attributes,
		components.Behavior,
		components.Segments,
		components.Plankton,
	]

	// Filters over all creatures and per species
	allFilter *ecs.Filter4[
		components.Identity,
		components.Attributes,
		components.Behavior,
		components.Segments,
	]
	snakeFilter *ecs.Filter5[
		components.Identity,
		components.Attributes,
		components.Behavior,
		components.Segments,
		components.Snake,
	]
	plankFilter *ecs.Filter5[
		components.Identity,
		components.Attributes,
		components.Behavior,
		components.Segments,
		components.Plankton,
	]

	// Individual component mappers for lookups
	idMap  *ecs.Map1[components.Identity]
	attMap *ecs.Map1[components.Attributes]
	segMap *ecs.Map1[components.Segments]

	// Per-tick snapshot set, rebuilt before the behavior pass.
	snaps *systems.Snapshots

	// Creature id -> entity, the side table for resolving sensed ids.
	entities map[uint32]ecs.Entity

	// Scratch buffers reused across ticks.
	queryScratch    []physics.ColliderHit
	neighborScratch []components.CreatureInfo

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	tick   int32
	paused bool
	nextID uint32
	speed  int // simulation steps per frame in graphical mode
}

// NewGame creates a simulation from the loaded config.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		world: world,
		phys:  physics.NewWorld(cfg.Physics.JointIterations),
		rng:   rand.New(rand.NewSource(opts.Seed)),
		cfg:   cfg,
		opts:  opts,
		snakeMapper: ecs.NewMap5[
			components.Identity,
			components.Attributes,
			components.Behavior,
			components.Segments,
			components.Snake,
		](world),
		plankMapper: ecs.NewMap5[
			components.Identity,
			components.Attributes,
			components.Behavior,
			components.Segments,
			components.Plankton,
		](world),
		allFilter: ecs.NewFilter4[
			components.Identity,
			components.Attributes,
			components.Behavior,
			components.Segments,
		](world),
		snakeFilter: ecs.NewFilter5[
			components.Identity,
			components.Attributes,
			components.Behavior,
			components.Segments,
			components.Snake,
		](world),
		plankFilter: ecs.NewFilter5[
			components.Identity,
			components.Attributes,
			components.Behavior,
			components.Segments,
			components.Plankton,
		](world),
		idMap:  ecs.NewMap1[components.Identity](world),
		attMap: ecs.NewMap1[components.Attributes](world),
		segMap: ecs.NewMap1[components.Segments](world),
		snaps:    systems.NewSnapshots(),
		entities: make(map[uint32]ecs.Entity),
		nextID:   1,
		speed:    1,
	}

	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32)
	g.perf = telemetry.NewPerfCollector(int(g.collector.WindowTicks()))

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		g.output = om
		if err := om.WriteConfig(cfg); err != nil {
			return nil, err
		}
	}

	g.buildWalls()
	g.spawnInitialPopulation()

	return g, nil
}

// Tick returns the current tick count.
func (g *Game) Tick() int32 {
	return g.tick
}

// Physics exposes the physics world to the renderer for position lookups.
func (g *Game) Physics() *physics.World {
	return g.phys
}

// buildWalls creates the four fixed boundary walls of the aquarium.
func (g *Game) buildWalls() {
	hw := g.cfg.Derived.HalfW32
	hh := g.cfg.Derived.HalfH32
	wt := float32(g.cfg.World.WallThickness) / 2

	walls := []struct {
		pos          physics.Vec2
		halfW, halfH float32
	}{
		{physics.Vec2{X: 0, Y: -hh - wt}, hw + wt, wt}, // floor
		{physics.Vec2{X: 0, Y: hh + wt}, hw + wt, wt},  // ceiling
		{physics.Vec2{X: -hw - wt, Y: 0}, wt, hh + wt}, // left
		{physics.Vec2{X: hw + wt, Y: 0}, wt, hh + wt},  // right
	}

	for _, wall := range walls {
		bh := g.phys.AddBody(physics.BodyDef{Position: wall.pos, Fixed: true})
		g.phys.AddCollider(bh, physics.ColliderDef{
			Kind:  physics.ColliderBox,
			HalfW: wall.halfW,
			HalfH: wall.halfH,
			// No group bits: statics are invisible to creature queries.
		})
	}
}

// spawnInitialPopulation creates the starting creatures.
func (g *Game) spawnInitialPopulation() {
	hw := g.cfg.Derived.HalfW32
	hh := g.cfg.Derived.HalfH32

	for i := 0; i < g.cfg.Population.Snakes; i++ {
		pos := physics.Vec2{
			X: (g.rng.Float32()*2 - 1) * (hw / 2),
			Y: (g.rng.Float32()*2 - 1) * (hh / 2),
		}
		g.SpawnSnake(pos)
	}

	for i := 0; i < g.cfg.Population.Plankton; i++ {
		pos := physics.Vec2{
			X: (g.rng.Float32()*2 - 1) * (hw - 1),
			Y: (g.rng.Float32()*2 - 1) * (hh - 1),
		}
		g.SpawnPlankton(pos)
	}
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			slog.Warn("closing telemetry output", "error", err)
		}
	}
}
