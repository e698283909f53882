package systems

import "github.com/pthm-cable/softies/physics"

// AnisotropicDrag computes the drag force for a body moving through water,
// resolved along the body's own axes: velocity is decomposed into a
// component along the body's forward direction and a perpendicular one,
// and each is damped by its own coefficient. A slender body slips easily
// along its length and resists sideways motion, which is what makes
// undulation propel the snake at all. Coefficients are clamped to
// non-negative at point of use.
func AnisotropicDrag(vel physics.Vec2, rotation, forwardCoef, lateralCoef float32) physics.Vec2 {
	forward := physics.Vec2{X: cosF(rotation), Y: sinF(rotation)}
	lateral := forward.Perp()

	vf := vel.Dot(forward)
	vl := vel.Dot(lateral)

	drag := forward.Scale(-nonNegative(forwardCoef) * vf)
	return drag.Add(lateral.Scale(-nonNegative(lateralCoef) * vl))
}
