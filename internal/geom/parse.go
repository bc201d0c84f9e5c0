package geom

import (
	"strconv"
	"strings"

	"mapskeleton/internal/errors"
)

// Separators of the skeleton text formats.
//
//	single polygon: "x1,y1_x2,y2_..."
//	multi polygon:  "x1,y1;x2,y2|x3,y3;x4,y4"
const (
	singleSep = "_"
	polySep   = "|"
	pointSep  = ";"
	coordSep  = ","
)

// Parse turns skeleton text into an Outline. It never fails: malformed
// input yields the fallback circle.
func Parse(text string) Outline {
	polys, err := ParseStrict(text)
	if err != nil {
		return Fallback()
	}
	return FromPolygons(polys)
}

// ParseStrict parses skeleton text and reports why it is malformed.
// Text containing '|' or ';' is read as the multi-polygon format, anything
// else as the single-polygon format.
func ParseStrict(text string) ([]Polygon, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, errors.New(errors.ErrCodeEmptyGroup, "empty source text")
	}
	if strings.ContainsAny(s, polySep+pointSep) {
		return parseMulti(s)
	}
	return parseSingle(s)
}

// parseSingle reads one polygon. The last point is repeated once at the end,
// matching the reference data's trailing line segment.
func parseSingle(s string) ([]Polygon, error) {
	groups := strings.Split(s, singleSep)
	poly := make(Polygon, 0, len(groups)+1)
	for i, g := range groups {
		p, err := parsePoint(g)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "point %d", i)
		}
		poly = append(poly, p)
	}
	poly = append(poly, poly[len(poly)-1])
	return []Polygon{poly}, nil
}

// parseMulti reads '|'-separated polygons of ';'-separated points and flips
// the y axis: y' = max - (y - min) over all points.
func parseMulti(s string) ([]Polygon, error) {
	var polys []Polygon
	first := true
	var minY, maxY float64
	for pi, group := range strings.Split(s, polySep) {
		if strings.TrimSpace(group) == "" {
			return nil, errors.New(errors.ErrCodeEmptyGroup, "polygon %d has no points", pi)
		}
		var poly Polygon
		for i, field := range strings.Split(group, pointSep) {
			p, err := parsePoint(field)
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "polygon %d point %d", pi, i)
			}
			if first {
				minY, maxY = p.Y, p.Y
				first = false
			} else {
				minY = min(minY, p.Y)
				maxY = max(maxY, p.Y)
			}
			poly = append(poly, p)
		}
		polys = append(polys, poly)
	}
	flipWithin(polys, minY, maxY)
	return polys, nil
}

func parsePoint(field string) (Point, error) {
	if strings.TrimSpace(field) == "" {
		return Point{}, errors.New(errors.ErrCodeEmptyGroup, "empty point")
	}
	parts := strings.Split(field, coordSep)
	if len(parts) != 2 {
		return Point{}, errors.New(errors.ErrCodeInvalidFormat, "want x,y, got %q", field)
	}
	x, err := parseCoord(parts[0])
	if err != nil {
		return Point{}, err
	}
	y, err := parseCoord(parts[1])
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

func parseCoord(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidNumber, err, "coordinate %q", s)
	}
	if !finite(v) {
		return 0, errors.New(errors.ErrCodeInvalidNumber, "coordinate %q is not finite", s)
	}
	return v, nil
}
