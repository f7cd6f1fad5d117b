package geo

// Positioned is any value with a 2D center. The package never stores or
// mutates entities; it only reads their position on each call.
type Positioned interface {
	Position() (x, y float64)
}

// Collidable is a positioned value with a collision radius.
// Any type that supplies the two accessors qualifies; no hierarchy is
// required and extra fields on the entity are ignored.
type Collidable interface {
	Positioned
	Radius() float64
}

// Collide reports whether the collision circles of a and b touch or
// overlap.
func Collide(a, b Collidable) bool {
	ax, ay := a.Position()
	bx, by := b.Position()
	return CirclesOverlap(ax, ay, a.Radius(), bx, by, b.Radius())
}

// InRange returns every entity whose collision circle touches or overlaps
// the query circle of the given radius centered at (cx, cy). The query
// radius is added to each entity's own radius, the same sum-of-radii rule
// as CirclesOverlap, not a naive point-distance check.
//
// The result is a freshly allocated slice preserving the relative order
// of the input. An empty input yields an empty result. O(n) linear scan.
func InRange[E Collidable](entities []E, cx, cy, radius float64) []E {
	matched := make([]E, 0, len(entities))
	for _, e := range entities {
		x, y := e.Position()
		if CirclesOverlap(x, y, e.Radius(), cx, cy, radius) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Closest returns the entity whose center minimizes squared distance to
// (tx, ty). When several entities are equally near, the first one in
// iteration order wins. The boolean is false iff entities is empty, in
// which case the entity value is the zero value of E.
//
// Single O(n) pass; distances are compared squared, no sqrt is taken.
func Closest[E Positioned](entities []E, tx, ty float64) (E, bool) {
	var closest E
	if len(entities) == 0 {
		return closest, false
	}

	closest = entities[0]
	x, y := closest.Position()
	best := DistanceSquared(x, y, tx, ty)

	for _, e := range entities[1:] {
		x, y = e.Position()
		if d := DistanceSquared(x, y, tx, ty); d < best {
			best = d
			closest = e
		}
	}
	return closest, true
}
