package geom

import (
	"bytes"
	"encoding/xml"
	stderrors "errors"
	"io"
	"math"
	"strconv"
	"strings"

	"mapskeleton/internal/errors"
)

// curveSteps is the number of line segments a curve is flattened into.
const curveSteps = 8

// FindPathData scans an XML vector document for the element whose id (or
// name) attribute equals id and returns its pathData attribute. Attribute
// namespaces are ignored, so android:pathData and pathData both match.
func FindPathData(doc []byte, id string) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				break
			}
			return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "vector document")
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		var elemID, data string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "id", "name":
				if elemID == "" {
					elemID = strings.TrimSpace(a.Value)
				}
			case "pathData":
				data = a.Value
			}
		}
		if elemID == id && data != "" {
			return data, nil
		}
	}
	return "", errors.New(errors.ErrCodeNotFound, "no path data for %q", id)
}

// ParsePathData parses SVG-style path data into one polygon per subpath.
// Supports M, L, H, V, C, S, Q, T, A and Z, absolute and relative; curves
// and arcs are flattened. Arc flags must be separated from the following
// number.
func ParsePathData(d string) ([]Polygon, error) {
	toks := tokenizePath(d)
	var polys []Polygon
	var cur Polygon
	var pos, start Point
	// ctrl is the last control point of the previous curve, for S and T.
	var ctrl Point
	var last byte
	i := 0
	num := func() (float64, error) {
		if i >= len(toks) || isCommand(toks[i]) {
			return 0, errors.New(errors.ErrCodeInvalidFormat, "path data: missing number after %q", string(last))
		}
		v, err := strconv.ParseFloat(toks[i], 64)
		if err != nil || !finite(v) {
			return 0, errors.New(errors.ErrCodeInvalidNumber, "path data: %q", toks[i])
		}
		i++
		return v, nil
	}
	pair := func(rel bool) (Point, error) {
		x, err := num()
		if err != nil {
			return Point{}, err
		}
		y, err := num()
		if err != nil {
			return Point{}, err
		}
		if rel {
			x += pos.X
			y += pos.Y
		}
		return Point{X: x, Y: y}, nil
	}
	flush := func() {
		if len(cur) > 0 {
			polys = append(polys, cur)
		}
		cur = nil
	}

	for i < len(toks) {
		cmd := last
		if isCommand(toks[i]) {
			cmd = toks[i][0]
			i++
		} else {
			switch last {
			case 0, 'Z', 'z':
				return nil, errors.New(errors.ErrCodeInvalidFormat, "path data: number without command")
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			}
		}
		rel := cmd >= 'a' && cmd <= 'z'
		switch cmd {
		case 'M', 'm':
			p, err := pair(rel)
			if err != nil {
				return nil, err
			}
			flush()
			cur = Polygon{p}
			pos, start = p, p
		case 'L', 'l':
			p, err := pair(rel)
			if err != nil {
				return nil, err
			}
			cur = append(cur, p)
			pos = p
		case 'H', 'h':
			x, err := num()
			if err != nil {
				return nil, err
			}
			if rel {
				x += pos.X
			}
			pos = Point{X: x, Y: pos.Y}
			cur = append(cur, pos)
		case 'V', 'v':
			y, err := num()
			if err != nil {
				return nil, err
			}
			if rel {
				y += pos.Y
			}
			pos = Point{X: pos.X, Y: y}
			cur = append(cur, pos)
		case 'C', 'c', 'S', 's':
			c1 := reflect(ctrl, pos, strings.IndexByte("CcSs", last) >= 0)
			if cmd == 'C' || cmd == 'c' {
				var err error
				if c1, err = pair(rel); err != nil {
					return nil, err
				}
			}
			c2, err := pair(rel)
			if err != nil {
				return nil, err
			}
			end, err := pair(rel)
			if err != nil {
				return nil, err
			}
			p0 := pos
			for k := 1; k <= curveSteps; k++ {
				t := float64(k) / curveSteps
				omt := 1 - t
				cur = append(cur, p0.Mul(omt*omt*omt).Add(c1.Mul(3*omt*omt*t)).Add(c2.Mul(3*omt*t*t)).Add(end.Mul(t*t*t)))
			}
			pos, ctrl = end, c2
		case 'Q', 'q', 'T', 't':
			c := reflect(ctrl, pos, strings.IndexByte("QqTt", last) >= 0)
			if cmd == 'Q' || cmd == 'q' {
				var err error
				if c, err = pair(rel); err != nil {
					return nil, err
				}
			}
			end, err := pair(rel)
			if err != nil {
				return nil, err
			}
			p0 := pos
			for k := 1; k <= curveSteps; k++ {
				t := float64(k) / curveSteps
				omt := 1 - t
				cur = append(cur, p0.Mul(omt*omt).Add(c.Mul(2*omt*t)).Add(end.Mul(t*t)))
			}
			pos, ctrl = end, c
		case 'A', 'a':
			var v [5]float64
			for k := range v {
				var err error
				if v[k], err = num(); err != nil {
					return nil, err
				}
			}
			end, err := pair(rel)
			if err != nil {
				return nil, err
			}
			cur = append(cur, arcPoints(pos, v[0], v[1], v[2], v[3] != 0, v[4] != 0, end)...)
			pos = end
		case 'Z', 'z':
			flush()
			pos = start
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "path data: command %q", string(cmd))
		}
		last = cmd
	}
	flush()
	if len(polys) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGroup, "path data: no subpaths")
	}
	return polys, nil
}

// reflect mirrors the previous control point through pos when the previous
// command was a curve of the same kind; otherwise the control point is pos.
func reflect(ctrl, pos Point, smooth bool) Point {
	if !smooth {
		return pos
	}
	return pos.Mul(2).Sub(ctrl)
}

// arcPoints flattens an elliptical arc from p0 to p1 given in endpoint
// form. Radii too small to reach p1 are scaled up; a zero radius gives a
// straight line.
func arcPoints(p0 Point, rx, ry, phiDeg float64, large, sweep bool, p1 Point) []Point {
	if p0 == p1 {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return []Point{p1}
	}
	sin, cos := math.Sincos(phiDeg * math.Pi / 180)
	dx, dy := (p0.X-p1.X)/2, (p0.Y-p1.Y)/2
	x1 := cos*dx + sin*dy
	y1 := -sin*dx + cos*dy
	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		rx *= math.Sqrt(l)
		ry *= math.Sqrt(l)
	}
	var co float64
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	if num > 0 && den > 0 {
		co = math.Sqrt(num / den)
	}
	if large == sweep {
		co = -co
	}
	cx1, cy1 := co*rx*y1/ry, -co*ry*x1/rx
	cx := cos*cx1 - sin*cy1 + (p0.X+p1.X)/2
	cy := sin*cx1 + cos*cy1 + (p0.Y+p1.Y)/2

	theta := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	delta := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx) - theta
	switch {
	case sweep && delta < 0:
		delta += 2 * math.Pi
	case !sweep && delta > 0:
		delta -= 2 * math.Pi
	}
	steps := curveSteps * max(1, int(math.Ceil(math.Abs(delta)/(math.Pi/2))))
	pts := make([]Point, 0, steps)
	for k := 1; k <= steps; k++ {
		a := theta + delta*float64(k)/float64(steps)
		ex, ey := rx*math.Cos(a), ry*math.Sin(a)
		pts = append(pts, Point{X: cos*ex - sin*ey + cx, Y: sin*ex + cos*ey + cy})
	}
	pts[len(pts)-1] = p1
	return pts
}

func isCommand(tok string) bool {
	if len(tok) != 1 {
		return false
	}
	c := tok[0]
	return (c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') && c != 'e' && c != 'E'
}

// tokenizePath splits path data into single-letter commands and numbers.
// Numbers may be separated by commas, whitespace, a sign, or a second
// decimal point ("1.5.5" is 1.5 and .5).
func tokenizePath(d string) []string {
	var toks []string
	var b strings.Builder
	dot := false
	emit := func() {
		if b.Len() > 0 {
			toks = append(toks, b.String())
			b.Reset()
		}
		dot = false
	}
	for i := 0; i < len(d); i++ {
		c := d[i]
		switch {
		case c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r':
			emit()
		case c == '-' || c == '+':
			prev := byte(0)
			if i > 0 {
				prev = d[i-1]
			}
			if prev != 'e' && prev != 'E' {
				emit()
			}
			b.WriteByte(c)
		case c == '.':
			if dot {
				emit()
			}
			dot = true
			b.WriteByte(c)
		case c >= '0' && c <= '9' || c == 'e' || c == 'E':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
			emit()
			toks = append(toks, string(c))
		default:
			emit()
		}
	}
	emit()
	return toks
}
