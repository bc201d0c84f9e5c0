package geom

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"mapskeleton/internal/errors"
)

// ParseCSV reads vertices from a CSV with a header row. Column detection is
// case-insensitive: lat|latitude|y and lon|lng|long|longitude|x. An optional
// ring|polygon|part column splits the rows into polygons; consecutive rows
// sharing a value form one ring. Rows with unparsable coordinates are
// skipped.
func ParseCSV(data []byte) ([]Polygon, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "csv")
	}
	if len(recs) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGroup, "empty csv")
	}
	idxLat, idxLon, idxRing := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "ring", "polygon", "part":
			if idxRing == -1 {
				idxRing = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "csv: latitude/longitude columns not found")
	}

	var polys []Polygon
	var cur Polygon
	var curRing string
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil || !finite(lon) || !finite(lat) {
			continue
		}
		ring := ""
		if idxRing >= 0 && idxRing < len(row) {
			ring = strings.TrimSpace(row[idxRing])
		}
		if len(cur) > 0 && ring != curRing {
			polys = append(polys, cur)
			cur = nil
		}
		curRing = ring
		cur = append(cur, Point{X: lon, Y: lat})
	}
	if len(cur) > 0 {
		polys = append(polys, cur)
	}
	if len(polys) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGroup, "csv: no valid points parsed")
	}
	flipY(polys)
	return polys, nil
}
