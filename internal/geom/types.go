package geom

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Point is a planar coordinate in outline units.
type Point = vec.Vec2

// Polygon is an ordered ring of points. The closing edge back to the first
// point is implicit.
type Polygon []Point

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Degenerate reports whether the box has no area.
func (b BBox) Degenerate() bool {
	return !(b.Width() > 0 && b.Height() > 0)
}

// PathFunc supplies raw polygons directly, bypassing text parsing.
// Each polygon is an ordered list of x,y pairs.
type PathFunc func() [][][2]float64

// PolygonsFromPairs converts raw coordinate pairs into polygons.
func PolygonsFromPairs(rings [][][2]float64) []Polygon {
	out := make([]Polygon, 0, len(rings))
	for _, ring := range rings {
		poly := make(Polygon, 0, len(ring))
		for _, p := range ring {
			poly = append(poly, Point{X: p[0], Y: p[1]})
		}
		out = append(out, poly)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// flipY mirrors every y coordinate inside [minY, maxY] so the source's
// upward axis matches the drawing surface's downward axis.
func flipY(polys []Polygon) {
	first := true
	var minY, maxY float64
	for _, poly := range polys {
		for _, p := range poly {
			if first {
				minY, maxY = p.Y, p.Y
				first = false
				continue
			}
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
	}
	flipWithin(polys, minY, maxY)
}

func flipWithin(polys []Polygon, minY, maxY float64) {
	for _, poly := range polys {
		for i := range poly {
			poly[i].Y = maxY - (poly[i].Y - minY)
		}
	}
}
