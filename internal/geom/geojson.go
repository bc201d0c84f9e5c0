package geom

import (
	"encoding/json"

	"mapskeleton/internal/errors"
)

// ParseGeoJSON extracts polygon rings from a GeoJSON document.
// Supports Polygon and MultiPolygon geometries, bare or inside a Feature or
// FeatureCollection. Other geometry types are ignored. The y axis is flipped
// into drawing orientation.
func ParseGeoJSON(data []byte) ([]Polygon, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "geojson")
	}
	var polys []Polygon
	parsePoint := func(v any) (pt Point, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			lon, lok := a[0].(float64)
			lat, aok := a[1].(float64)
			if lok && aok {
				return Point{X: lon, Y: lat}, true
			}
		}
		return Point{}, false
	}
	parseRing := func(v any) (ring Polygon, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ring = append(ring, pt)
			}
		}
		return ring, true
	}
	parsePolygon := func(v any) (rings []Polygon, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, r := range arr {
			if ring, ok := parseRing(r); ok {
				rings = append(rings, ring)
			}
		}
		return rings, true
	}
	walkGeom := func(g map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Polygon":
			if rings, ok := parsePolygon(g["coordinates"]); ok {
				polys = append(polys, rings...)
			}
		case "MultiPolygon":
			arr, ok := g["coordinates"].([]any)
			if !ok {
				return
			}
			for _, el := range arr {
				if rings, ok := parsePolygon(el); ok {
					polys = append(polys, rings...)
				}
			}
		}
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g)
		}
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					if g, ok := fm["geometry"].(map[string]any); ok {
						walkGeom(g)
					}
				}
			}
		}
	case "":
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid geojson: missing type")
	default:
		walkGeom(raw)
	}
	if len(polys) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGroup, "no polygons found in geojson")
	}
	flipY(polys)
	return polys, nil
}
