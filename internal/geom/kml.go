package geom

import (
	"encoding/xml"
	"strconv"
	"strings"

	"mapskeleton/internal/errors"
)

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

type kmlPlacemark struct {
	Polygon *kmlPolygon  `xml:"Polygon"`
	Multi   []kmlPolygon `xml:"MultiGeometry>Polygon"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Document>Placemark"`
	Top        []kmlPlacemark `xml:"Placemark"`
}

// ParseKML extracts polygon rings from Placemark Polygon and MultiGeometry
// elements. KML coordinates are "lon,lat[,alt]"; altitude is ignored. The y
// axis is flipped into drawing orientation.
func ParseKML(data []byte) ([]Polygon, error) {
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "kml")
	}
	var polys []Polygon
	addRing := func(coords string) error {
		var ring Polygon
		// coordinates hold tuples separated by whitespace
		for _, tuple := range strings.Fields(coords) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				return errors.New(errors.ErrCodeInvalidFormat, "kml: bad tuple %q", tuple)
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				return errors.New(errors.ErrCodeInvalidNumber, "kml: bad tuple %q", tuple)
			}
			ring = append(ring, Point{X: lon, Y: lat})
		}
		if len(ring) > 0 {
			polys = append(polys, ring)
		}
		return nil
	}
	addPolygon := func(p kmlPolygon) error {
		if err := addRing(p.Outer.Coordinates); err != nil {
			return err
		}
		for _, in := range p.Inner {
			if err := addRing(in.Coordinates); err != nil {
				return err
			}
		}
		return nil
	}
	for _, pm := range append(doc.Placemarks, doc.Top...) {
		if pm.Polygon != nil {
			if err := addPolygon(*pm.Polygon); err != nil {
				return nil, err
			}
		}
		for _, p := range pm.Multi {
			if err := addPolygon(p); err != nil {
				return nil, err
			}
		}
	}
	if len(polys) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGroup, "kml: no polygons found")
	}
	flipY(polys)
	return polys, nil
}
