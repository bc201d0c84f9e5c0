package geom

import "math"

// Fallback circle substituted for missing or invalid geometry.
const (
	FallbackCenterX  = 50.0
	FallbackCenterY  = 50.0
	FallbackRadius   = 50.0
	FallbackSegments = 64
)

// Outline is an immutable set of closed polygons together with their tight
// bounding box. A zero Outline is not valid; build one with FromPolygons or
// Fallback.
type Outline struct {
	polygons []Polygon
	bbox     BBox
	fallback bool
}

// FromPolygons builds an Outline, computing the bounding box in one pass.
// Polygons with fewer than two points or non-finite coordinates are
// skipped. If nothing usable remains, or the remaining points have no area,
// the fallback circle is returned instead.
func FromPolygons(polys []Polygon) Outline {
	var o Outline
	first := true
	for _, poly := range polys {
		if !usable(poly) {
			continue
		}
		cp := make(Polygon, len(poly))
		copy(cp, poly)
		o.polygons = append(o.polygons, cp)
		for _, p := range cp {
			if first {
				o.bbox = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
				first = false
				continue
			}
			if p.X < o.bbox.MinX {
				o.bbox.MinX = p.X
			}
			if p.Y < o.bbox.MinY {
				o.bbox.MinY = p.Y
			}
			if p.X > o.bbox.MaxX {
				o.bbox.MaxX = p.X
			}
			if p.Y > o.bbox.MaxY {
				o.bbox.MaxY = p.Y
			}
		}
	}
	if len(o.polygons) == 0 || o.bbox.Degenerate() {
		return Fallback()
	}
	return o
}

func usable(poly Polygon) bool {
	if len(poly) < 2 {
		return false
	}
	for _, p := range poly {
		if !finite(p.X) || !finite(p.Y) {
			return false
		}
	}
	return true
}

// Fallback returns the default circle outline.
func Fallback() Outline {
	ring := make(Polygon, FallbackSegments)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / FallbackSegments
		ring[i] = Point{
			X: FallbackCenterX + FallbackRadius*math.Cos(a),
			Y: FallbackCenterY + FallbackRadius*math.Sin(a),
		}
	}
	return Outline{
		polygons: []Polygon{ring},
		bbox: BBox{
			MinX: FallbackCenterX - FallbackRadius,
			MinY: FallbackCenterY - FallbackRadius,
			MaxX: FallbackCenterX + FallbackRadius,
			MaxY: FallbackCenterY + FallbackRadius,
		},
		fallback: true,
	}
}

// Polygons returns the outline's polygons in insertion order.
// The result must not be modified.
func (o Outline) Polygons() []Polygon { return o.polygons }

// BBox returns the cached bounding box.
func (o Outline) BBox() BBox { return o.bbox }

// IsFallback reports whether o is the substituted default circle.
func (o Outline) IsFallback() bool { return o.fallback }

// NumPoints returns the total number of points across all polygons.
func (o Outline) NumPoints() int {
	n := 0
	for _, poly := range o.polygons {
		n += len(poly)
	}
	return n
}

// Valid reports whether o was built by FromPolygons or Fallback.
func (o Outline) Valid() bool { return len(o.polygons) > 0 }

// PathCmd is a path construction command.
type PathCmd uint8

const (
	MoveTo PathCmd = iota
	LineTo
	Close
)

// PathSeg is one command of a Path. Pt is unused for Close.
type PathSeg struct {
	Cmd PathCmd
	Pt  Point
}

// Path is a sequence of move/line segments; every subpath ends in Close.
type Path []PathSeg

// Path returns the drawable representation of o.
func (o Outline) Path() Path {
	p := make(Path, 0, o.NumPoints()+len(o.polygons))
	for _, poly := range o.polygons {
		for i, pt := range poly {
			cmd := LineTo
			if i == 0 {
				cmd = MoveTo
			}
			p = append(p, PathSeg{Cmd: cmd, Pt: pt})
		}
		p = append(p, PathSeg{Cmd: Close})
	}
	return p
}

// Subpaths splits p into point rings, one per MoveTo.
func (p Path) Subpaths() []Polygon {
	var out []Polygon
	var cur Polygon
	for _, s := range p {
		switch s.Cmd {
		case MoveTo:
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = Polygon{s.Pt}
		case LineTo:
			cur = append(cur, s.Pt)
		case Close:
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
