// Package term hosts an entropy engine in a terminal through tcell. The
// canvas is scaled onto the cell grid; every line, marker and label lands on
// whole cells.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/entropy"
)

// Host is the canvas.appendTo name of the terminal host.
const Host = "terminal"

const (
	glyphThin  = '·'
	glyphThick = '•'
	glyphFill  = '█'
)

// Register makes screen available to e under the Host name.
func Register(e *entropy.Engine, screen tcell.Screen) {
	e.RegisterHost(Host, func(c entropy.Canvas) (entropy.Surface, error) {
		return NewSurface(screen, c), nil
	})
}

// Surface is an entropy.Surface that rasterizes onto a tcell screen.
// Translucent colors are blended over the last background passed to Clear.
type Surface struct {
	screen tcell.Screen
	canvas entropy.Canvas
	bg     entropy.Color
}

// NewSurface returns a surface mapping canvas onto screen.
func NewSurface(screen tcell.Screen, canvas entropy.Canvas) *Surface {
	return &Surface{screen: screen, canvas: canvas, bg: canvas.Background}
}

// Cell maps a canvas point to the cell containing it.
func (s *Surface) Cell(p entropy.Point) (x, y int) {
	cols, rows := s.screen.Size()
	x = int(math.Floor(p.X / s.canvas.Width * float64(cols)))
	y = int(math.Floor(p.Y / s.canvas.Height * float64(rows)))
	return x, y
}

// Point maps a cell to the canvas point at its center.
func (s *Surface) Point(x, y int) entropy.Point {
	cols, rows := s.screen.Size()
	if cols == 0 || rows == 0 {
		return entropy.Point{}
	}
	return entropy.Point{
		X: (float64(x) + 0.5) * s.canvas.Width / float64(cols),
		Y: (float64(y) + 0.5) * s.canvas.Height / float64(rows),
	}
}

func (s *Surface) Clear(bg entropy.Color) {
	s.bg = bg
	s.screen.Fill(' ', tcell.StyleDefault.Background(s.color(bg)))
}

func (s *Surface) StrokeLine(from, to entropy.Point, width float64, c entropy.Color) {
	if c.Transparent() || width <= 0 {
		return
	}
	glyph := glyphThin
	if width >= 2 {
		glyph = glyphThick
	}
	style := s.style(c)
	x0, y0 := s.Cell(from)
	x1, y1 := s.Cell(to)
	line(x0, y0, x1, y1, func(x, y int) {
		s.set(x, y, glyph, style)
	})
}

func (s *Surface) FillRect(r entropy.Rect, c entropy.Color) {
	if c.Transparent() {
		return
	}
	style := s.style(c)
	x0, y0 := s.Cell(entropy.Point{X: r.X, Y: r.Y})
	x1, y1 := s.Cell(entropy.Point{X: r.X + r.Width, Y: r.Y + r.Height})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.set(x, y, glyphFill, style)
		}
	}
}

func (s *Surface) FillText(str string, at entropy.Point, c entropy.Color) {
	if c.Transparent() {
		return
	}
	style := s.style(c)
	x, y := s.Cell(at)
	for _, r := range str {
		s.set(x, y, r, style)
		x++
	}
}

func (s *Surface) set(x, y int, r rune, style tcell.Style) {
	cols, rows := s.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	s.screen.SetContent(x, y, r, nil, style)
}

func (s *Surface) style(c entropy.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(s.color(c)).Background(s.color(s.bg))
}

// color blends c over the background by its alpha.
func (s *Surface) color(c entropy.Color) tcell.Color {
	fg := colorful.Color{R: c.R, G: c.G, B: c.B}
	if c.A < 1 {
		bg := colorful.Color{R: s.bg.R, G: s.bg.G, B: s.bg.B}
		fg = bg.BlendRgb(fg, max(c.A, 0))
	}
	r, g, b := fg.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// line visits every cell on the segment from (x0,y0) to (x1,y1) using
// Bresenham's algorithm.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
