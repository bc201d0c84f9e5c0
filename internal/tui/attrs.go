package tui

import (
	"fmt"
	"math"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"mapskeleton/internal/geom"
)

func countsLabel(o geom.Outline) string {
	return fmt.Sprintf("polygons=%d points=%d", len(o.Polygons()), o.NumPoints())
}

// refreshAttrsFromCurrent fills the table with one row per polygon.
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	if len(cols) == 0 {
		m.tbl.SetRows(nil)
		m.tbl.SetColumns(nil)
		return
	}
	// Determine a reasonable width per column
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = max(6, min(16, len(c)+2))
	}
	for _, r := range rows {
		for i := 0; i < len(cols) && i < len(r); i++ {
			widths[i] = max(widths[i], min(16, len(r[i])+2))
		}
	}
	tcols := make([]table.Column, len(cols))
	for i, c := range cols {
		tcols[i] = table.Column{Title: c, Width: widths[i]}
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}
	// Columns before rows: the table indexes rows by the current columns.
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes describes every polygon of the current outline.
func (m *Model) buildAttributes() ([]string, [][]string) {
	o := m.w.Outline()
	polys := o.Polygons()
	if len(polys) == 0 {
		return nil, nil
	}
	cols := []string{"#", "points", "min x", "min y", "max x", "max y"}
	rows := make([][]string, 0, len(polys))
	for i, p := range polys {
		b := polygonBounds(p)
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(len(p)),
			formatCoord(b.MinX), formatCoord(b.MinY),
			formatCoord(b.MaxX), formatCoord(b.MaxY),
		})
	}
	return cols, rows
}

func polygonBounds(p geom.Polygon) geom.BBox {
	b := geom.BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, pt := range p {
		b.MinX = math.Min(b.MinX, pt.X)
		b.MinY = math.Min(b.MinY, pt.Y)
		b.MaxX = math.Max(b.MaxX, pt.X)
		b.MaxY = math.Max(b.MaxY, pt.Y)
	}
	return b
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
