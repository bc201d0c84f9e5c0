package tui

const sidebarWidth = 28

// layout is the screen split shared by Update (mouse hit tests) and View.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	const headerHeight, footerHeight = 1, 2
	lo := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
		lo.mapX = sidebarWidth + 1
	}
	lo.mapW = max(10, lo.contentW-lo.sidebarW-1)
	lo.mapH = lo.contentH
	return lo
}

// inMap reports whether the screen cell (x, y) lies on the map canvas.
func (lo layout) inMap(x, y int) bool {
	return x >= lo.mapX && x < lo.mapX+lo.mapW && y >= lo.mapY && y < lo.mapY+lo.mapH
}
