// Package geo provides stateless 2D circle-collision predicates and the
// linear-scan query helpers built on them, intended for per-frame use
// inside an entity simulation loop.
//
// Every function is pure and reentrant: no shared state, no allocation
// beyond the result slice of a query. Inputs are expected to be finite
// and radii non-negative; behavior for NaN, infinities, or negative
// radii is undefined and deliberately not validated.
package geo

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point lies on or inside a circle.
// The boundary is inclusive: a point at exactly radius distance counts.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles touch or overlap.
// The boundary is inclusive: exactly tangent circles count as a hit.
// A point can be tested against a circle by passing it as a zero-radius
// circle, which degenerates to PointInCircle.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) <= minDist*minDist
}
