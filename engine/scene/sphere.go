package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// hitEpsilon rejects intersections at or behind the ray origin, avoiding
// self-intersection artifacts from floating point error.
const hitEpsilon = 1e-4

// Sphere is the sole primitive traced by the scene: a center, a radius, and a
// flat albedo color with channels in [0,1].
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
	Albedo mgl32.Vec3
}

// Hit intersects a ray with the sphere and returns the distance along the ray
// to the nearest intersection in front of the origin.
//
// Parameters:
//   - origin: the ray origin in world space
//   - direction: the normalized ray direction
//
// Returns:
//   - float32: distance to the nearest intersection, valid only when ok is true
//   - bool: whether the ray hits the sphere
func (s Sphere) Hit(origin, direction mgl32.Vec3) (float32, bool) {
	oc := origin.Sub(s.Center)
	a := direction.Dot(direction)
	halfB := oc.Dot(direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math32.Sqrt(discriminant)
	t := (-halfB - sqrtD) / a
	if t < hitEpsilon {
		t = (-halfB + sqrtD) / a
		if t < hitEpsilon {
			return 0, false
		}
	}
	return t, true
}

// NormalAt returns the outward unit surface normal at a point on the sphere.
//
// Parameters:
//   - point: a point on the sphere's surface
//
// Returns:
//   - mgl32.Vec3: the outward unit normal
func (s Sphere) NormalAt(point mgl32.Vec3) mgl32.Vec3 {
	return point.Sub(s.Center).Mul(1.0 / s.Radius)
}
