package systems

import (
	"testing"

	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/physics"
)

func neighborAt(x, y, vx, vy float32) components.CreatureInfo {
	return components.CreatureInfo{
		Position: physics.Vec2{X: x, Y: y},
		Velocity: physics.Vec2{X: vx, Y: vy},
	}
}

func vecNear(t *testing.T, got, want physics.Vec2, eps float32) {
	t.Helper()
	if d := got.Sub(want).Length(); d > eps {
		t.Errorf("vector = (%v, %v), want (%v, %v)", got.X, got.Y, want.X, want.Y)
	}
}

func TestSteerNoNeighbors(t *testing.T) {
	p := BoidParams{Cohesion: 1, Alignment: 1, Separation: 1, SeparationDistance: 1}
	got := Steer(physics.Vec2{X: 3, Y: -2}, nil, p)
	if got.X != 0 || got.Y != 0 {
		t.Errorf("steer with no neighbors = (%v, %v), want zero", got.X, got.Y)
	}
}

func TestSteerCohesionOnly(t *testing.T) {
	// One neighbor beyond separation distance, cohesion only: the result
	// is c * normalize(neighbor - self).
	p := BoidParams{Cohesion: 2, SeparationDistance: 1}
	self := physics.Vec2{X: 1, Y: 1}
	neighbors := []components.CreatureInfo{neighborAt(4, 5, 0, 0)}

	got := Steer(self, neighbors, p)
	// Direction (3,4)/5 scaled by 2.
	vecNear(t, got, physics.Vec2{X: 1.2, Y: 1.6}, 1e-5)
}

func TestSteerSeparationOnly(t *testing.T) {
	// One neighbor inside separation distance, separation only: the result
	// points away from the neighbor with magnitude s.
	p := BoidParams{Separation: 1.5, SeparationDistance: 1}
	self := physics.Vec2{}
	neighbors := []components.CreatureInfo{neighborAt(0.5, 0, 0, 0)}

	got := Steer(self, neighbors, p)
	vecNear(t, got, physics.Vec2{X: -1.5, Y: 0}, 1e-5)
}

func TestSteerSymmetricNeighborsCancel(t *testing.T) {
	// Two neighbors symmetric about self: centroid coincides with self, so
	// cohesion contributes nothing.
	p := BoidParams{Cohesion: 3, SeparationDistance: 0.1}
	self := physics.Vec2{X: 2, Y: 2}
	neighbors := []components.CreatureInfo{
		neighborAt(1, 2, 0, 0),
		neighborAt(3, 2, 0, 0),
	}

	got := Steer(self, neighbors, p)
	vecNear(t, got, physics.Vec2{}, 1e-5)
}

func TestSteerAlignmentOnly(t *testing.T) {
	p := BoidParams{Alignment: 0.5, SeparationDistance: 0.1}
	self := physics.Vec2{}
	neighbors := []components.CreatureInfo{
		neighborAt(5, 0, 0, 2),
		neighborAt(0, 5, 0, 4),
	}

	got := Steer(self, neighbors, p)
	// Average velocity points straight up; normalized and scaled by 0.5.
	vecNear(t, got, physics.Vec2{X: 0, Y: 0.5}, 1e-5)
}

func TestSteerOrderIndependent(t *testing.T) {
	p := BoidParams{Cohesion: 1, Alignment: 0.7, Separation: 1.2, SeparationDistance: 2}
	self := physics.Vec2{X: 0.5, Y: -0.5}
	neighbors := []components.CreatureInfo{
		neighborAt(1, 0, 0.3, 0),
		neighborAt(-1, 1, 0, -0.2),
		neighborAt(0, -2, 1, 1),
		neighborAt(3, 3, -0.5, 0.5),
	}
	reversed := make([]components.CreatureInfo, len(neighbors))
	for i, n := range neighbors {
		reversed[len(neighbors)-1-i] = n
	}

	a := Steer(self, neighbors, p)
	b := Steer(self, reversed, p)
	vecNear(t, a, b, 1e-5)
}

func TestSteerNegativeStrengthsClamped(t *testing.T) {
	p := BoidParams{Cohesion: -5, Alignment: -1, Separation: -2, SeparationDistance: 1}
	got := Steer(physics.Vec2{}, []components.CreatureInfo{neighborAt(0.5, 0, 1, 0)}, p)
	if got.X != 0 || got.Y != 0 {
		t.Errorf("negative strengths should clamp to zero, got (%v, %v)", got.X, got.Y)
	}
}
