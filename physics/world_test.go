package physics

import (
	"math"
	"testing"
)

func addBall(w *World, pos Vec2, radius float32, group, owner uint32) BodyHandle {
	bh := w.AddBody(BodyDef{Position: pos})
	w.AddCollider(bh, ColliderDef{
		Kind:    ColliderBall,
		Radius:  radius,
		Density: 100,
		Group:   group,
		Owner:   owner,
	})
	return bh
}

func TestStaleBodyHandle(t *testing.T) {
	w := NewWorld(4)
	bh := addBall(w, Vec2{X: 1, Y: 2}, 0.1, 1, 0)

	if _, ok := w.Translation(bh); !ok {
		t.Fatal("live handle did not resolve")
	}

	w.RemoveBody(bh)

	if _, ok := w.Translation(bh); ok {
		t.Error("stale handle resolved after RemoveBody")
	}
	if w.SetTranslation(bh, Vec2{}) {
		t.Error("SetTranslation succeeded on a stale handle")
	}
	if w.ApplyForce(bh, Vec2{X: 1}) {
		t.Error("ApplyForce succeeded on a stale handle")
	}

	// The slot may be recycled; the old handle must still be invalid.
	bh2 := addBall(w, Vec2{X: 5, Y: 5}, 0.1, 1, 0)
	if _, ok := w.Translation(bh); ok {
		t.Error("old handle resolved against a recycled slot")
	}
	if pos, ok := w.Translation(bh2); !ok || pos.X != 5 {
		t.Errorf("new handle broken: ok=%v pos=%v", ok, pos)
	}
}

func TestZeroHandleInvalid(t *testing.T) {
	w := NewWorld(4)
	var zero BodyHandle
	if !zero.IsZero() {
		t.Error("zero value handle should report IsZero")
	}
	if _, ok := w.Translation(zero); ok {
		t.Error("zero handle resolved")
	}
}

func TestStaleJointHandle(t *testing.T) {
	w := NewWorld(4)
	a := addBall(w, Vec2{}, 0.1, 1, 0)
	b := addBall(w, Vec2{X: 0.3}, 0.1, 1, 0)

	jh := w.AddRevoluteJoint(a, b, Vec2{X: 0.15}, Vec2{X: -0.15})
	if !w.SetMotorVelocity(jh, 1, 10) {
		t.Fatal("SetMotorVelocity failed on a live joint")
	}

	w.RemoveJoint(jh)
	if w.SetMotorVelocity(jh, 1, 10) {
		t.Error("SetMotorVelocity succeeded on a removed joint")
	}
}

func TestNonFiniteForceSuppressed(t *testing.T) {
	w := NewWorld(4)
	bh := addBall(w, Vec2{}, 0.1, 1, 0)

	if w.ApplyForce(bh, Vec2{X: float32(math.NaN())}) {
		t.Error("NaN force accepted")
	}
	if w.ApplyForce(bh, Vec2{X: float32(math.Inf(1))}) {
		t.Error("infinite force accepted")
	}

	w.Step(Vec2{}, 1.0/60.0)
	pos, _ := w.Translation(bh)
	if !pos.IsFinite() {
		t.Errorf("position corrupted: (%v, %v)", pos.X, pos.Y)
	}
}

func TestQueryCircleFiltering(t *testing.T) {
	const group = uint32(1)
	w := NewWorld(4)

	self := addBall(w, Vec2{}, 0.1, group, 1)
	addBall(w, Vec2{X: 0.5}, 0.1, group, 2)
	addBall(w, Vec2{X: 9}, 0.1, group, 3)
	// Wall-like collider with no group bits.
	wall := w.AddBody(BodyDef{Position: Vec2{X: 0.4}, Fixed: true})
	w.AddCollider(wall, ColliderDef{Kind: ColliderBox, HalfW: 0.2, HalfH: 0.2})

	hits := w.QueryCircleInto(nil, Vec2{}, 1.0, group, self)

	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1 (near ball only)", len(hits))
	}
	if hits[0].Owner != 2 {
		t.Errorf("hit owner = %d, want 2", hits[0].Owner)
	}
}

func TestQueryCircleReusesBuffer(t *testing.T) {
	const group = uint32(1)
	w := NewWorld(4)
	self := addBall(w, Vec2{}, 0.1, group, 1)
	addBall(w, Vec2{X: 0.5}, 0.1, group, 2)

	buf := make([]ColliderHit, 0, 8)
	hits := w.QueryCircleInto(buf, Vec2{}, 1.0, group, self)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	hits = w.QueryCircleInto(hits[:0], Vec2{}, 1.0, group, self)
	if len(hits) != 1 {
		t.Fatalf("reused buffer: got %d hits, want 1", len(hits))
	}
}

func TestGravityAndDamping(t *testing.T) {
	w := NewWorld(4)
	bh := w.AddBody(BodyDef{Position: Vec2{Y: 5}, LinearDamping: 2})
	w.AddCollider(bh, ColliderDef{Kind: ColliderBall, Radius: 0.1, Density: 100})

	dt := float32(1.0 / 60.0)
	for i := 0; i < 60; i++ {
		w.Step(Vec2{Y: -9.81}, dt)
	}

	pos, _ := w.Translation(bh)
	if pos.Y >= 5 {
		t.Errorf("body did not fall: y = %v", pos.Y)
	}
	vel, _ := w.LinVel(bh)
	// Damped terminal velocity stays well under free-fall speed (~9.8 m/s).
	if vel.Y < -9.8 {
		t.Errorf("damping ineffective: vy = %v", vel.Y)
	}
}

func TestFixedBodyNeverMoves(t *testing.T) {
	w := NewWorld(4)
	bh := w.AddBody(BodyDef{Position: Vec2{X: 3, Y: 4}, Fixed: true})
	w.AddCollider(bh, ColliderDef{Kind: ColliderBox, HalfW: 1, HalfH: 1})
	w.ApplyForce(bh, Vec2{X: 1000, Y: 1000})

	for i := 0; i < 120; i++ {
		w.Step(Vec2{Y: -9.81}, 1.0/60.0)
	}

	pos, _ := w.Translation(bh)
	if pos.X != 3 || pos.Y != 4 {
		t.Errorf("fixed body moved to (%v, %v)", pos.X, pos.Y)
	}
}

func TestRevoluteJointHoldsAnchors(t *testing.T) {
	w := NewWorld(8)
	a := addBall(w, Vec2{}, 0.1, 1, 0)
	b := addBall(w, Vec2{X: 0.3}, 0.1, 1, 0)
	w.AddRevoluteJoint(a, b, Vec2{X: 0.15}, Vec2{X: -0.15})

	// Pull the bodies apart and let the joint fight back.
	dt := float32(1.0 / 60.0)
	for i := 0; i < 300; i++ {
		w.ApplyForce(a, Vec2{X: -2})
		w.ApplyForce(b, Vec2{X: 2})
		w.Step(Vec2{}, dt)
	}

	pa, _ := w.Translation(a)
	pb, _ := w.Translation(b)
	gap := pb.Sub(pa).Length()
	if gap > 0.5 {
		t.Errorf("joint stretched to %v, want near 0.3", gap)
	}
}

func TestMotorDrivesRelativeRotation(t *testing.T) {
	w := NewWorld(8)
	// Anchor body is fixed; the motor should spin the free body around it.
	a := w.AddBody(BodyDef{Fixed: true})
	w.AddCollider(a, ColliderDef{Kind: ColliderBall, Radius: 0.1, Density: 100})
	b := addBall(w, Vec2{X: 0.3}, 0.1, 1, 0)

	jh := w.AddRevoluteJoint(a, b, Vec2{X: 0.15}, Vec2{X: -0.15})
	w.SetMotorVelocity(jh, 2, 100)

	dt := float32(1.0 / 60.0)
	for i := 0; i < 120; i++ {
		w.Step(Vec2{}, dt)
	}

	av, _ := w.AngVel(b)
	if av <= 0 {
		t.Errorf("motor did not spin the free body: angvel = %v", av)
	}
}

func TestBallContactSeparates(t *testing.T) {
	w := NewWorld(8)
	a := addBall(w, Vec2{}, 0.2, 1, 1)
	b := addBall(w, Vec2{X: 0.1}, 0.2, 1, 2)

	dt := float32(1.0 / 60.0)
	for i := 0; i < 120; i++ {
		w.Step(Vec2{}, dt)
	}

	pa, _ := w.Translation(a)
	pb, _ := w.Translation(b)
	gap := pb.Sub(pa).Length()
	if gap < 0.3 { // radii sum 0.4 minus solver slop
		t.Errorf("overlapping balls not pushed apart: distance %v", gap)
	}
}

func TestJointedPairSkipsContacts(t *testing.T) {
	w := NewWorld(8)
	// Overlapping jointed bodies must not explode apart.
	a := addBall(w, Vec2{}, 0.2, 1, 1)
	b := addBall(w, Vec2{X: 0.1}, 0.2, 1, 1)
	w.AddRevoluteJoint(a, b, Vec2{X: 0.05}, Vec2{X: -0.05})

	dt := float32(1.0 / 60.0)
	for i := 0; i < 120; i++ {
		w.Step(Vec2{}, dt)
	}

	pa, _ := w.Translation(a)
	pb, _ := w.Translation(b)
	gap := pb.Sub(pa).Length()
	if gap > 0.2 {
		t.Errorf("jointed pair separated by contact solver: distance %v", gap)
	}
}
