package entropy

// Surface is the 2D raster canvas the engine draws on. Implementations are
// provided for Ebitengine (EbitenSurface) and terminals (package term).
type Surface interface {
	// Clear paints the whole surface with bg.
	Clear(bg Color)
	// StrokeLine draws a line segment of the given width.
	StrokeLine(from, to Point, width float64, c Color)
	// FillRect fills an axis-aligned rectangle.
	FillRect(r Rect, c Color)
	// FillText draws s with its baseline starting at at.
	FillText(s string, at Point, c Color)
}

// HostFactory creates the surface for a validated canvas.
type HostFactory func(canvas Canvas) (Surface, error)
