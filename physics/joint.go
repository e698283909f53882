package physics

// JointHandle is an opaque generational handle to a revolute joint.
type JointHandle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the zero (invalid) handle.
func (h JointHandle) IsZero() bool {
	return h.generation == 0
}

// joint is a revolute joint pinning two body-local anchor points together,
// with an angular velocity motor limited by a maximum force.
type joint struct {
	bodyA, bodyB     BodyHandle
	anchorA, anchorB Vec2 // body-local anchors

	motorTargetVel float32 // rad/s relative angular velocity target
	motorMaxForce  float32

	alive      bool
	generation uint32
}

// solveMotor drives the relative angular velocity (B relative to A) toward
// the motor target. The impulse is clamped by the motor's max force.
func (j *joint) solveMotor(a, b *body, dt float32) {
	invI := a.invInertia + b.invInertia
	if invI == 0 || j.motorMaxForce <= 0 {
		return
	}
	relVel := b.angvel - a.angvel
	impulse := (j.motorTargetVel - relVel) / invI

	maxImpulse := j.motorMaxForce * dt
	if impulse > maxImpulse {
		impulse = maxImpulse
	} else if impulse < -maxImpulse {
		impulse = -maxImpulse
	}

	a.angvel -= impulse * a.invInertia
	b.angvel += impulse * b.invInertia
}

// solveVelocity applies one sequential-impulse iteration keeping the two
// anchor points moving together. bias feeds positional error back into the
// velocity constraint (Baumgarte stabilization).
func (j *joint) solveVelocity(a, b *body, invDT float32) {
	rA := j.anchorA.Rotate(a.rotation)
	rB := j.anchorB.Rotate(b.rotation)

	// Positional error between world anchors.
	c := b.position.Add(rB).Sub(a.position.Add(rA))

	// Relative velocity of the anchor points.
	velA := a.linvel.Add(Vec2{-a.angvel * rA.Y, a.angvel * rA.X})
	velB := b.linvel.Add(Vec2{-b.angvel * rB.Y, b.angvel * rB.X})
	cdot := velB.Sub(velA)

	const beta = 0.2
	rhs := cdot.Add(c.Scale(beta * invDT))

	// Effective mass matrix K (2x2, symmetric).
	im := a.invMass + b.invMass
	k11 := im + a.invInertia*rA.Y*rA.Y + b.invInertia*rB.Y*rB.Y
	k12 := -a.invInertia*rA.X*rA.Y - b.invInertia*rB.X*rB.Y
	k22 := im + a.invInertia*rA.X*rA.X + b.invInertia*rB.X*rB.X

	det := k11*k22 - k12*k12
	if det == 0 {
		return
	}
	invDet := 1 / det

	p := Vec2{
		X: -invDet * (k22*rhs.X - k12*rhs.Y),
		Y: -invDet * (k11*rhs.Y - k12*rhs.X),
	}

	a.linvel = a.linvel.Sub(p.Scale(a.invMass))
	a.angvel -= a.invInertia * rA.Cross(p)
	b.linvel = b.linvel.Add(p.Scale(b.invMass))
	b.angvel += b.invInertia * rB.Cross(p)
}
