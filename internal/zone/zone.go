// Package zone resolves the protection zones around the acting player's
// bases and tests item positions against them.
package zone

import (
	"math"

	"scumguard/internal/config"
)

// Zone is a protected region anchored on a base element.
type Zone struct {
	X      float64
	Y      float64
	Asset  string
	Radius float64
	Shape  config.Shape
}

// Contains reports whether (x, y) lies inside z. A square zone is a box
// test on each axis against Radius; a circle uses Euclidean distance. Both
// edges are inclusive. Unknown shapes contain nothing.
func (z Zone) Contains(x, y float64) bool {
	dx := math.Abs(x - z.X)
	dy := math.Abs(y - z.Y)
	switch z.Shape {
	case config.ShapeSquare:
		return dx <= z.Radius && dy <= z.Radius
	case config.ShapeCircle:
		return math.Sqrt(dx*dx+dy*dy) <= z.Radius
	default:
		return false
	}
}

// FirstContaining returns the first zone, in order, that contains (x, y).
func FirstContaining(zones []Zone, x, y float64) (Zone, bool) {
	for _, z := range zones {
		if z.Contains(x, y) {
			return z, true
		}
	}
	return Zone{}, false
}
