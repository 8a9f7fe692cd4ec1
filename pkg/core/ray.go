package core

// Ray represents a ray with an origin, a direction, the moment in the shutter
// interval it was cast at, and the number of bounces it may still take.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64 // Shutter time in [0, 1), used by moving primitives
	Depth     int     // Remaining bounce budget
}

// NewRay creates a new ray at time zero with no bounce budget
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayWithTime creates a new ray cast at the given shutter time with a bounce budget
func NewRayWithTime(origin, direction Vec3, time float64, depth int) Ray {
	return Ray{Origin: origin, Direction: direction, Time: time, Depth: depth}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Scatter returns the continuation of this ray from origin along direction.
// The new ray keeps the shutter time and has one bounce less to spend.
func (r Ray) Scatter(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Time: r.Time, Depth: r.Depth - 1}
}

// WithOrigin returns a copy of the ray starting at a different origin
func (r Ray) WithOrigin(origin Vec3) Ray {
	r.Origin = origin
	return r
}
