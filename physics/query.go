package physics

// ColliderHit is one result of a spatial query.
type ColliderHit struct {
	Body     BodyHandle
	Owner    uint32 // creature id tag set at collider creation
	Position Vec2   // body position at query time
}

// QueryCircleInto finds colliders whose shape intersects the circle at
// center with the given radius, filtered by interaction group overlap and
// excluding the given body. Results are appended to dst, which is returned;
// reuse dst across calls to avoid allocations. Result order is unspecified.
func (w *World) QueryCircleInto(dst []ColliderHit, center Vec2, radius float32, group uint32, exclude BodyHandle) []ColliderHit {
	for i := range w.colliders {
		c := &w.colliders[i]
		if !c.alive || c.def.Group&group == 0 {
			continue
		}
		b := &w.bodies[c.bodyIndex]
		if !b.alive {
			continue
		}
		if c.bodyIndex == exclude.index && b.generation == exclude.generation {
			continue
		}

		var reach float32
		switch c.def.Kind {
		case ColliderBall:
			reach = radius + c.def.Radius
		case ColliderBox:
			// Conservative: use the box's circumscribed radius.
			reach = radius + Vec2{c.def.HalfW, c.def.HalfH}.Length()
		}

		if b.position.Sub(center).LengthSq() <= reach*reach {
			dst = append(dst, ColliderHit{
				Body:     BodyHandle{index: c.bodyIndex, generation: b.generation},
				Owner:    c.def.Owner,
				Position: b.position,
			})
		}
	}
	return dst
}
