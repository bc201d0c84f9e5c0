package geom

import (
	"strconv"
	"strings"

	"mapskeleton/internal/errors"
)

// ParseWKT parses POLYGON and MULTIPOLYGON WKT into polygons, one per ring.
// Coordinates are lon/lat-like with y growing upward, so the y axis is
// flipped into drawing orientation.
func ParseWKT(wkt string) ([]Polygon, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New(errors.ErrCodeEmptyGroup, "empty wkt")
	}
	up := strings.ToUpper(s)
	parseTuples := func(block string) (Polygon, error) {
		var out Polygon
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.TrimSpace(tup))
			if len(parts) < 2 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "wkt: bad tuple %q", tup)
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil || !finite(x) || !finite(y) {
				return nil, errors.New(errors.ErrCodeInvalidNumber, "wkt: bad tuple %q", tup)
			}
			out = append(out, Point{X: x, Y: y})
		}
		return out, nil
	}
	parseRings := func(ringsStr string) ([]Polygon, error) {
		// normalize spaces around ring separators
		ringsNorm := strings.ReplaceAll(ringsStr, "), (", "),(")
		ringsNorm = strings.ReplaceAll(ringsNorm, ") , (", "),(")
		var rings []Polygon
		for _, rp := range strings.Split(ringsNorm, "),(") {
			pts, err := parseTuples(rp)
			if err != nil {
				return nil, err
			}
			rings = append(rings, pts)
		}
		return rings, nil
	}

	var polys []Polygon
	switch {
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		i := strings.Index(s, "(((")
		j := strings.LastIndex(s, ")))")
		if i < 0 || j <= i {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "wkt multipolygon: invalid")
		}
		body := strings.ReplaceAll(s[i+3:j], ")), ((", ")),((")
		body = strings.ReplaceAll(body, ")) , ((", ")),((")
		for _, part := range strings.Split(body, ")),((") {
			rings, err := parseRings(part)
			if err != nil {
				return nil, err
			}
			polys = append(polys, rings...)
		}
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "wkt polygon: invalid")
		}
		rings, err := parseRings(s[i+2 : j])
		if err != nil {
			return nil, err
		}
		polys = rings
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported wkt type")
	}
	flipY(polys)
	return polys, nil
}
