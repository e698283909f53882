package physics

import "math"

// BodyHandle is an opaque generational handle to a rigid body.
// The zero value is never a valid handle.
type BodyHandle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the zero (invalid) handle.
func (h BodyHandle) IsZero() bool {
	return h.generation == 0
}

// BodyDef describes a rigid body to insert into the world.
type BodyDef struct {
	Position       Vec2
	Rotation       float32
	Fixed          bool // infinite mass, never moves
	LinearDamping  float32
	AngularDamping float32
}

// body is the internal rigid-body state. Mass properties are assigned
// when a collider is attached.
type body struct {
	position Vec2
	rotation float32 // radians
	linvel   Vec2
	angvel   float32

	force  Vec2
	torque float32

	invMass    float32
	invInertia float32

	linearDamping  float32
	angularDamping float32
	fixed          bool

	alive      bool
	generation uint32
}

// setMassFromBall assigns mass properties for a solid disc collider.
func (b *body) setMassFromBall(radius, density float32) {
	if b.fixed {
		return
	}
	mass := density * math.Pi * radius * radius
	if mass <= 0 {
		return
	}
	b.invMass = 1 / mass
	inertia := 0.5 * mass * radius * radius
	b.invInertia = 1 / inertia
}

// setMassFromBox assigns mass properties for a solid box collider.
func (b *body) setMassFromBox(halfW, halfH, density float32) {
	if b.fixed {
		return
	}
	mass := density * 4 * halfW * halfH
	if mass <= 0 {
		return
	}
	b.invMass = 1 / mass
	inertia := mass * (4*halfW*halfW + 4*halfH*halfH) / 12
	b.invInertia = 1 / inertia
}

// worldPoint transforms a body-local point to world space.
func (b *body) worldPoint(local Vec2) Vec2 {
	return b.position.Add(local.Rotate(b.rotation))
}

// integrateVelocity applies accumulated forces, gravity, and damping.
func (b *body) integrateVelocity(gravity Vec2, dt float32) {
	if b.fixed {
		return
	}
	b.linvel = b.linvel.Add(gravity.Scale(dt))
	b.linvel = b.linvel.Add(b.force.Scale(b.invMass * dt))
	b.angvel += b.torque * b.invInertia * dt

	// Implicit damping keeps large coefficients stable.
	b.linvel = b.linvel.Scale(1 / (1 + b.linearDamping*dt))
	b.angvel /= 1 + b.angularDamping*dt
}

// integratePosition advances position and rotation, wrapping the angle.
func (b *body) integratePosition(dt float32) {
	if b.fixed {
		return
	}
	b.position = b.position.Add(b.linvel.Scale(dt))
	b.rotation += b.angvel * dt

	for b.rotation > math.Pi {
		b.rotation -= 2 * math.Pi
	}
	for b.rotation < -math.Pi {
		b.rotation += 2 * math.Pi
	}
}
