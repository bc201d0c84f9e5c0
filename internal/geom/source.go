package geom

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"

	"mapskeleton/internal/errors"
)

// Provider returns the raw bytes of a named resource.
type Provider interface {
	Open(name string) ([]byte, error)
}

// FSProvider reads resources from a file system.
type FSProvider struct {
	FS fs.FS
}

// Open implements Provider.
func (p FSProvider) Open(name string) ([]byte, error) {
	if p.FS == nil {
		return nil, errors.New(errors.ErrCodeUnavailable, "no file system for %q", name)
	}
	data, err := fs.ReadFile(p.FS, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "open %s", name)
	}
	return data, nil
}

// Loader resolves source identifiers into outlines. Every method returns a
// usable Outline; failures are logged and replaced by the fallback circle.
type Loader struct {
	Provider Provider
	// Document names the vector document searched for identifiers without
	// an extension.
	Document string
	Logger   *log.Logger
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

// Load resolves id. An id without a '.' is looked up in the vector
// document; otherwise the resource is opened and decoded by its extension.
func (l *Loader) Load(id string) Outline {
	polys, err := l.Polygons(id)
	return l.finish(id, polys, err)
}

// Polygons resolves id like Load but reports failures instead of falling
// back.
func (l *Loader) Polygons(id string) ([]Polygon, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New(errors.ErrCodeNotFound, "empty source id")
	}
	if l.Provider == nil {
		return nil, errors.New(errors.ErrCodeUnavailable, "no resource provider")
	}
	if !strings.Contains(id, ".") {
		if l.Document == "" {
			return nil, errors.New(errors.ErrCodeNotFound, "no vector document for %q", id)
		}
		doc, err := l.Provider.Open(l.Document)
		if err != nil {
			return nil, err
		}
		data, err := FindPathData(doc, id)
		if err != nil {
			return nil, err
		}
		return ParsePathData(data)
	}
	data, err := l.Provider.Open(id)
	if err != nil {
		return nil, err
	}
	return Decode(path.Ext(id), data)
}

// Decode parses data according to a file extension. Unknown extensions are
// read as skeleton text.
func Decode(ext string, data []byte) ([]Polygon, error) {
	switch strings.ToLower(ext) {
	case ".geojson", ".json":
		return ParseGeoJSON(data)
	case ".wkt":
		return ParseWKT(string(data))
	case ".kml":
		return ParseKML(data)
	case ".csv":
		return ParseCSV(data)
	case ".xml", ".svgpath":
		return ParsePathData(string(data))
	default:
		return ParseStrict(string(data))
	}
}

// FromText parses skeleton text, logging why it fell back.
func (l *Loader) FromText(text string) Outline {
	polys, err := ParseStrict(text)
	return l.finish("text", polys, err)
}

// FromFunc builds an outline from a custom path callback. A panicking
// callback is treated like an empty result.
func (l *Loader) FromFunc(fn PathFunc) Outline {
	if fn == nil {
		return l.finish("func", nil, errors.New(errors.ErrCodeNotFound, "nil path func"))
	}
	polys, err := callPathFunc(fn)
	return l.finish("func", polys, err)
}

func callPathFunc(fn PathFunc) (polys []Polygon, err error) {
	defer func() {
		if r := recover(); r != nil {
			polys = nil
			err = errors.New(errors.ErrCodeInvalidFormat, "path func panicked: %v", r)
		}
	}()
	return PolygonsFromPairs(fn()), nil
}

func (l *Loader) finish(src string, polys []Polygon, err error) Outline {
	if err != nil {
		l.logger().Warn("using fallback outline", "source", src, "code", errors.GetCode(err), "err", err)
		return Fallback()
	}
	o := FromPolygons(polys)
	if o.IsFallback() {
		l.logger().Warn("using fallback outline", "source", src, "code", errors.ErrCodeDegenerate,
			"polygons", len(polys))
		return o
	}
	l.logger().Debug("outline loaded", "source", src, "polygons", len(o.Polygons()),
		"points", o.NumPoints(), "bbox", fmt.Sprintf("%.3f,%.3f,%.3f,%.3f", o.bbox.MinX, o.bbox.MinY, o.bbox.MaxX, o.bbox.MaxY))
	return o
}
