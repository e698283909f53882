package physics

// findContacts rebuilds the contact list from scratch. Pairs connected by a
// joint and pairs of fixed bodies are skipped.
func (w *World) findContacts() {
	w.contacts = w.contacts[:0]

	for i := 0; i < len(w.colliders); i++ {
		ca := &w.colliders[i]
		if !ca.alive {
			continue
		}
		ba := &w.bodies[ca.bodyIndex]
		if !ba.alive {
			continue
		}
		for k := i + 1; k < len(w.colliders); k++ {
			cb := &w.colliders[k]
			if !cb.alive || cb.bodyIndex == ca.bodyIndex {
				continue
			}
			bb := &w.bodies[cb.bodyIndex]
			if !bb.alive {
				continue
			}
			if ba.fixed && bb.fixed {
				continue
			}
			if _, joined := w.jointedPairs[pairKey(ca.bodyIndex, cb.bodyIndex)]; joined {
				continue
			}
			w.collide(ca, ba, cb, bb)
		}
	}
}

// collide appends a contact for the given collider pair if they overlap.
func (w *World) collide(ca *collider, ba *body, cb *collider, bb *body) {
	switch {
	case ca.def.Kind == ColliderBall && cb.def.Kind == ColliderBall:
		delta := bb.position.Sub(ba.position)
		rsum := ca.def.Radius + cb.def.Radius
		distSq := delta.LengthSq()
		if distSq >= rsum*rsum {
			return
		}
		dist := delta.Length()
		normal := Vec2{1, 0}
		if dist > 0 {
			normal = delta.Scale(1 / dist)
		}
		w.contacts = append(w.contacts, contact{
			a:           ca.bodyIndex,
			b:           cb.bodyIndex,
			normal:      normal,
			penetration: rsum - dist,
			restitution: maxF(ca.def.Restitution, cb.def.Restitution),
		})

	case ca.def.Kind == ColliderBall && cb.def.Kind == ColliderBox:
		w.collideBallBox(ca, ba, cb, bb, false)

	case ca.def.Kind == ColliderBox && cb.def.Kind == ColliderBall:
		w.collideBallBox(cb, bb, ca, ba, true)
	}
}

// collideBallBox tests a ball against a box. flip reports whether the box is
// the first collider of the pair, so the contact normal stays a→b.
func (w *World) collideBallBox(ball *collider, ballBody *body, box *collider, boxBody *body, flip bool) {
	// Ball center in box-local space.
	local := ballBody.position.Sub(boxBody.position).Rotate(-boxBody.rotation)

	closest := Vec2{
		X: clampF(local.X, -box.def.HalfW, box.def.HalfW),
		Y: clampF(local.Y, -box.def.HalfH, box.def.HalfH),
	}
	delta := local.Sub(closest)
	distSq := delta.LengthSq()
	r := ball.def.Radius
	if distSq >= r*r {
		return
	}

	var normal Vec2
	var penetration float32
	if distSq > 0 {
		dist := delta.Length()
		normal = delta.Scale(1 / dist).Rotate(boxBody.rotation)
		penetration = r - dist
	} else {
		// Center inside the box: push out along the least-penetrated axis.
		dx := box.def.HalfW - absF(local.X)
		dy := box.def.HalfH - absF(local.Y)
		if dx < dy {
			normal = Vec2{X: signF(local.X)}.Rotate(boxBody.rotation)
			penetration = dx + r
		} else {
			normal = Vec2{Y: signF(local.Y)}.Rotate(boxBody.rotation)
			penetration = dy + r
		}
	}

	// normal currently points box→ball.
	c := contact{
		a:           box.bodyIndex,
		b:           ball.bodyIndex,
		normal:      normal,
		penetration: penetration,
		restitution: maxF(ball.def.Restitution, box.def.Restitution),
	}
	if flip {
		c.a, c.b = c.b, c.a
		c.normal = c.normal.Scale(-1)
	}
	w.contacts = append(w.contacts, c)
}

// solveContact applies a normal impulse separating the two bodies.
func (w *World) solveContact(c *contact) {
	a := &w.bodies[c.a]
	b := &w.bodies[c.b]
	if !a.alive || !b.alive {
		return
	}

	invMass := a.invMass + b.invMass
	if invMass == 0 {
		return
	}

	vn := b.linvel.Sub(a.linvel).Dot(c.normal)
	if vn >= 0 {
		return
	}

	impulse := -(1 + c.restitution) * vn / invMass
	p := c.normal.Scale(impulse)
	a.linvel = a.linvel.Sub(p.Scale(a.invMass))
	b.linvel = b.linvel.Add(p.Scale(b.invMass))
}

// correctContacts bleeds off remaining penetration by direct translation,
// split by inverse mass.
func (w *World) correctContacts() {
	const slop = 0.005
	const percent = 0.4

	for i := range w.contacts {
		c := &w.contacts[i]
		a := &w.bodies[c.a]
		b := &w.bodies[c.b]
		if !a.alive || !b.alive {
			continue
		}
		invMass := a.invMass + b.invMass
		if invMass == 0 {
			continue
		}
		depth := c.penetration - slop
		if depth <= 0 {
			continue
		}
		correction := c.normal.Scale(depth * percent / invMass)
		a.position = a.position.Sub(correction.Scale(a.invMass))
		b.position = b.position.Add(correction.Scale(b.invMass))
	}
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func signF(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
