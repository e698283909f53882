// Package physics implements a small 2-D rigid-body world: dynamic and
// fixed bodies, ball and box colliders, revolute joints with velocity
// motors, and a circle-shaped spatial query. Bodies and joints are
// addressed by generational handles; stale handles resolve to ok=false.
package physics

// ColliderKind selects the collider shape.
type ColliderKind uint8

const (
	ColliderBall ColliderKind = iota
	ColliderBox
)

// ColliderDef describes a collider to attach to a body.
type ColliderDef struct {
	Kind        ColliderKind
	Radius      float32 // ball
	HalfW       float32 // box
	HalfH       float32 // box
	Density     float32
	Friction    float32
	Restitution float32
	Group       uint32 // interaction group bits; queries match on overlap
	Owner       uint32 // creature id tag, 0 for world geometry
}

// collider is attached to exactly one body and lives until that body is removed.
type collider struct {
	def       ColliderDef
	bodyIndex uint32
	alive     bool
}

// contact is a single collision point between two colliders.
type contact struct {
	a, b        uint32 // body indices
	normal      Vec2   // from a to b
	penetration float32
	restitution float32
}

// World owns all physics state. Not safe for concurrent mutation.
type World struct {
	bodies     []body
	freeBodies []uint32

	colliders []collider

	joints     []joint
	freeJoints []uint32

	// Pairs connected by a joint do not generate contacts.
	jointedPairs map[[2]uint32]int

	jointIterations int

	contacts []contact // reused across steps
}

// NewWorld creates an empty physics world.
func NewWorld(jointIterations int) *World {
	if jointIterations < 1 {
		jointIterations = 4
	}
	return &World{
		jointedPairs:    make(map[[2]uint32]int),
		jointIterations: jointIterations,
	}
}

// AddBody inserts a rigid body and returns its handle.
func (w *World) AddBody(def BodyDef) BodyHandle {
	b := body{
		position:       def.Position,
		rotation:       def.Rotation,
		linearDamping:  def.LinearDamping,
		angularDamping: def.AngularDamping,
		fixed:          def.Fixed,
		alive:          true,
	}

	var idx uint32
	if n := len(w.freeBodies); n > 0 {
		idx = w.freeBodies[n-1]
		w.freeBodies = w.freeBodies[:n-1]
		b.generation = w.bodies[idx].generation + 1
		w.bodies[idx] = b
	} else {
		idx = uint32(len(w.bodies))
		b.generation = 1
		w.bodies = append(w.bodies, b)
	}
	return BodyHandle{index: idx, generation: w.bodies[idx].generation}
}

// RemoveBody detaches a body and its colliders. Joints referencing the body
// become inert and should be removed by the caller; a dangling joint is
// skipped by the solver rather than treated as an error.
func (w *World) RemoveBody(h BodyHandle) {
	b := w.body(h)
	if b == nil {
		return
	}
	b.alive = false
	for i := range w.colliders {
		if w.colliders[i].alive && w.colliders[i].bodyIndex == h.index {
			w.colliders[i].alive = false
		}
	}
	w.freeBodies = append(w.freeBodies, h.index)
}

// AddCollider attaches a collider to a body and assigns mass properties
// from the collider's shape and density.
func (w *World) AddCollider(h BodyHandle, def ColliderDef) {
	b := w.body(h)
	if b == nil {
		return
	}
	switch def.Kind {
	case ColliderBall:
		b.setMassFromBall(def.Radius, def.Density)
	case ColliderBox:
		b.setMassFromBox(def.HalfW, def.HalfH, def.Density)
	}
	w.colliders = append(w.colliders, collider{def: def, bodyIndex: h.index, alive: true})
}

// AddRevoluteJoint connects two bodies at the given body-local anchors.
// The motor is initially off (zero target, zero max force).
func (w *World) AddRevoluteJoint(a, b BodyHandle, anchorA, anchorB Vec2) JointHandle {
	if w.body(a) == nil || w.body(b) == nil {
		return JointHandle{}
	}
	j := joint{
		bodyA:   a,
		bodyB:   b,
		anchorA: anchorA,
		anchorB: anchorB,
		alive:   true,
	}

	var idx uint32
	if n := len(w.freeJoints); n > 0 {
		idx = w.freeJoints[n-1]
		w.freeJoints = w.freeJoints[:n-1]
		j.generation = w.joints[idx].generation + 1
		w.joints[idx] = j
	} else {
		idx = uint32(len(w.joints))
		j.generation = 1
		w.joints = append(w.joints, j)
	}

	w.jointedPairs[pairKey(a.index, b.index)]++
	return JointHandle{index: idx, generation: w.joints[idx].generation}
}

// RemoveJoint detaches a joint from the world.
func (w *World) RemoveJoint(h JointHandle) {
	j := w.joint(h)
	if j == nil {
		return
	}
	j.alive = false
	key := pairKey(j.bodyA.index, j.bodyB.index)
	if w.jointedPairs[key] > 1 {
		w.jointedPairs[key]--
	} else {
		delete(w.jointedPairs, key)
	}
	w.freeJoints = append(w.freeJoints, h.index)
}

// SetMotorVelocity sets a joint motor's target angular velocity and max force.
// Returns false if the handle is stale.
func (w *World) SetMotorVelocity(h JointHandle, targetVel, maxForce float32) bool {
	j := w.joint(h)
	if j == nil {
		return false
	}
	j.motorTargetVel = targetVel
	if maxForce < 0 {
		maxForce = 0
	}
	j.motorMaxForce = maxForce
	return true
}

// Translation returns a body's position.
func (w *World) Translation(h BodyHandle) (Vec2, bool) {
	b := w.body(h)
	if b == nil {
		return Vec2{}, false
	}
	return b.position, true
}

// SetTranslation teleports a body.
func (w *World) SetTranslation(h BodyHandle, p Vec2) bool {
	b := w.body(h)
	if b == nil {
		return false
	}
	b.position = p
	return true
}

// Rotation returns a body's rotation in radians.
func (w *World) Rotation(h BodyHandle) (float32, bool) {
	b := w.body(h)
	if b == nil {
		return 0, false
	}
	return b.rotation, true
}

// SetRotation sets a body's rotation in radians.
func (w *World) SetRotation(h BodyHandle, angle float32) bool {
	b := w.body(h)
	if b == nil {
		return false
	}
	b.rotation = angle
	return true
}

// LinVel returns a body's linear velocity.
func (w *World) LinVel(h BodyHandle) (Vec2, bool) {
	b := w.body(h)
	if b == nil {
		return Vec2{}, false
	}
	return b.linvel, true
}

// SetLinVel sets a body's linear velocity.
func (w *World) SetLinVel(h BodyHandle, v Vec2) bool {
	b := w.body(h)
	if b == nil {
		return false
	}
	b.linvel = v
	return true
}

// AngVel returns a body's angular velocity.
func (w *World) AngVel(h BodyHandle) (float32, bool) {
	b := w.body(h)
	if b == nil {
		return 0, false
	}
	return b.angvel, true
}

// SetAngVel sets a body's angular velocity.
func (w *World) SetAngVel(h BodyHandle, v float32) bool {
	b := w.body(h)
	if b == nil {
		return false
	}
	b.angvel = v
	return true
}

// ApplyForce accumulates a force on a body for the next step.
// Non-finite forces are dropped.
func (w *World) ApplyForce(h BodyHandle, f Vec2) bool {
	b := w.body(h)
	if b == nil {
		return false
	}
	if !f.IsFinite() {
		return false
	}
	b.force = b.force.Add(f)
	return true
}

// ApplyImpulse changes a body's velocity immediately.
// Non-finite impulses are dropped.
func (w *World) ApplyImpulse(h BodyHandle, imp Vec2) bool {
	b := w.body(h)
	if b == nil {
		return false
	}
	if !imp.IsFinite() {
		return false
	}
	b.linvel = b.linvel.Add(imp.Scale(b.invMass))
	return true
}

// Step advances the world by dt seconds.
func (w *World) Step(gravity Vec2, dt float32) {
	if dt <= 0 {
		return
	}
	invDT := 1 / dt

	for i := range w.bodies {
		if w.bodies[i].alive {
			w.bodies[i].integrateVelocity(gravity, dt)
		}
	}

	w.findContacts()

	for i := range w.joints {
		j := &w.joints[i]
		if !j.alive {
			continue
		}
		a, b := w.body(j.bodyA), w.body(j.bodyB)
		if a == nil || b == nil {
			continue
		}
		j.solveMotor(a, b, dt)
	}

	for iter := 0; iter < w.jointIterations; iter++ {
		for i := range w.joints {
			j := &w.joints[i]
			if !j.alive {
				continue
			}
			a, b := w.body(j.bodyA), w.body(j.bodyB)
			if a == nil || b == nil {
				continue
			}
			j.solveVelocity(a, b, invDT)
		}
		for i := range w.contacts {
			w.solveContact(&w.contacts[i])
		}
	}

	for i := range w.bodies {
		if w.bodies[i].alive {
			w.bodies[i].integratePosition(dt)
		}
	}

	w.correctContacts()

	for i := range w.bodies {
		w.bodies[i].force = Vec2{}
		w.bodies[i].torque = 0
	}
}

// body resolves a handle, returning nil for stale or dead handles.
func (w *World) body(h BodyHandle) *body {
	if int(h.index) >= len(w.bodies) {
		return nil
	}
	b := &w.bodies[h.index]
	if !b.alive || b.generation != h.generation {
		return nil
	}
	return b
}

// joint resolves a handle, returning nil for stale or dead handles.
func (w *World) joint(h JointHandle) *joint {
	if int(h.index) >= len(w.joints) {
		return nil
	}
	j := &w.joints[h.index]
	if !j.alive || j.generation != h.generation {
		return nil
	}
	return j
}

func pairKey(a, b uint32) [2]uint32 {
	if a > b {
		a, b = b, a
	}
	return [2]uint32{a, b}
}
