package game

import (
	"testing"

	"github.com/pthm-cable/softies/config"
	"github.com/pthm-cable/softies/physics"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	if err := config.Init(""); err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	g, err := NewGame(Options{Seed: 1, Headless: true})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestInitialPopulation(t *testing.T) {
	g := newTestGame(t)
	cfg := config.Cfg()

	snakes, plankton := g.populationCounts()
	if snakes != cfg.Population.Snakes {
		t.Errorf("snakes = %d, want %d", snakes, cfg.Population.Snakes)
	}
	if plankton != cfg.Population.Plankton {
		t.Errorf("plankton = %d, want %d", plankton, cfg.Population.Plankton)
	}
	if len(g.entities) != snakes+plankton {
		t.Errorf("entity table has %d entries, want %d", len(g.entities), snakes+plankton)
	}
}

func TestSimulationHoldsInvariants(t *testing.T) {
	g := newTestGame(t)
	cfg := config.Cfg()

	const ticks = 600 // 10 simulated seconds
	for i := 0; i < ticks; i++ {
		g.Step()
	}
	if g.Tick() != ticks {
		t.Errorf("tick = %d, want %d", g.Tick(), ticks)
	}

	hw := cfg.Derived.HalfW32
	hh := cfg.Derived.HalfH32
	tol := float32(cfg.Safety.FailsafeTolerance)

	query := g.allFilter.Query()
	for query.Next() {
		ident, att, _, seg := query.Get()

		if att.Energy < 0 || att.Energy > att.MaxEnergy {
			t.Errorf("creature %d energy %v out of bounds", ident.ID, att.Energy)
		}
		if att.Satiety < 0 || att.Satiety > att.MaxSatiety {
			t.Errorf("creature %d satiety %v out of bounds", ident.ID, att.Satiety)
		}

		for si, bh := range seg.Bodies {
			pos, ok := g.phys.Translation(bh)
			if !ok {
				t.Errorf("creature %d segment %d handle went stale", ident.ID, si)
				continue
			}
			if !pos.IsFinite() {
				t.Errorf("creature %d segment %d position non-finite", ident.ID, si)
				continue
			}
			if absGame(pos.X) > hw+tol || absGame(pos.Y) > hh+tol {
				t.Errorf("creature %d segment %d escaped: (%v, %v)", ident.ID, si, pos.X, pos.Y)
			}
		}
	}
}

func TestRemoveCreatureCleansUp(t *testing.T) {
	g := newTestGame(t)

	var victim uint32
	for id := range g.entities {
		victim = id
		break
	}
	entity := g.entities[victim]
	seg := g.segMap.Get(entity)
	handles := append([]physics.BodyHandle(nil), seg.Bodies...)

	g.RemoveCreature(entity)

	if _, ok := g.entities[victim]; ok {
		t.Error("entity table still holds the removed creature")
	}
	for i, bh := range handles {
		if _, ok := g.phys.Translation(bh); ok {
			t.Errorf("segment %d body still alive after removal", i)
		}
	}
}

func TestEatenPlanktonRespawnsHungry(t *testing.T) {
	g := newTestGame(t)

	// Grab any plankton through the species filter. The query must be
	// consumed fully to release the world lock.
	var id uint32
	query := g.plankFilter.Query()
	for query.Next() {
		ident, _, _, _, _ := query.Get()
		if id == 0 {
			id = ident.ID
		}
	}
	if id == 0 {
		t.Fatal("no plankton spawned")
	}

	ent := g.entities[id]
	att := g.attMap.Get(ent)
	g.respawn(ent, att)

	if att.Satiety != 0 {
		t.Errorf("respawned satiety = %v, want 0", att.Satiety)
	}
	seg := g.segMap.Get(ent)
	for i, bh := range seg.Bodies {
		vel, ok := g.phys.LinVel(bh)
		if !ok {
			t.Fatalf("segment %d stale after respawn", i)
		}
		if vel.X != 0 || vel.Y != 0 {
			t.Errorf("segment %d velocity not zeroed: (%v, %v)", i, vel.X, vel.Y)
		}
	}
}

func absGame(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
