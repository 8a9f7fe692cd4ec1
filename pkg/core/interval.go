package core

import "math"

// Interval is a closed range [Min, Max] of reals. An interval with Min > Max is empty.
type Interval struct {
	Min, Max float64
}

// NewInterval creates a new interval
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// EmptyInterval contains nothing; combining with it is the identity
func EmptyInterval() Interval {
	return Interval{Min: math.Inf(1), Max: math.Inf(-1)}
}

// UniverseInterval contains every real
func UniverseInterval() Interval {
	return Interval{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Size returns Max - Min (negative for empty intervals)
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// IsEmpty reports whether the interval contains no values
func (i Interval) IsEmpty() bool {
	return i.Min > i.Max
}

// Contains reports whether x lies in the interval, endpoints included
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x lies strictly inside the interval
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp limits x to the interval
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// Expand grows the interval by delta on each side
func (i Interval) Expand(delta float64) Interval {
	return Interval{Min: i.Min - delta, Max: i.Max + delta}
}

// Combine returns the smallest interval containing both intervals
func (i Interval) Combine(other Interval) Interval {
	return Interval{Min: math.Min(i.Min, other.Min), Max: math.Max(i.Max, other.Max)}
}

// Intersect returns the overlap of both intervals, possibly empty
func (i Interval) Intersect(other Interval) Interval {
	return Interval{Min: math.Max(i.Min, other.Min), Max: math.Min(i.Max, other.Max)}
}

// Shift moves the interval by offset
func (i Interval) Shift(offset float64) Interval {
	return Interval{Min: i.Min + offset, Max: i.Max + offset}
}
