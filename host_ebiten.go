package entropy

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// HostWindow is the canvas.appendTo name of the Ebitengine window host.
const HostWindow = "window"

// EbitenSurface is a Surface that draws into an offscreen *ebiten.Image. The
// Game host copies it to the screen each Draw.
type EbitenSurface struct {
	img       *ebiten.Image
	antialias bool
	face      text.Face
}

// NewEbitenSurface wraps img.
func NewEbitenSurface(img *ebiten.Image, antialias bool) *EbitenSurface {
	return &EbitenSurface{
		img:       img,
		antialias: antialias,
		face:      text.NewGoXFace(basicfont.Face7x13),
	}
}

// NewEbitenHost is the HostFactory for HostWindow.
func NewEbitenHost(c Canvas) (Surface, error) {
	w, h := int(math.Ceil(c.Width)), int(math.Ceil(c.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("ebiten host: bad canvas size %gx%g", c.Width, c.Height)
	}
	return NewEbitenSurface(ebiten.NewImage(w, h), c.Smoothing.Antialias()), nil
}

// Image returns the offscreen canvas image.
func (s *EbitenSurface) Image() *ebiten.Image { return s.img }

func (s *EbitenSurface) Clear(bg Color) {
	s.img.Fill(bg)
}

func (s *EbitenSurface) StrokeLine(from, to Point, width float64, c Color) {
	if c.Transparent() || width <= 0 {
		return
	}
	vector.StrokeLine(s.img,
		float32(from.X), float32(from.Y), float32(to.X), float32(to.Y),
		float32(width), c, s.antialias)
}

func (s *EbitenSurface) FillRect(r Rect, c Color) {
	if c.Transparent() {
		return
	}
	vector.DrawFilledRect(s.img,
		float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		c, s.antialias)
}

func (s *EbitenSurface) FillText(str string, at Point, c Color) {
	if c.Transparent() {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(at.X, at.Y-s.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.img, str, s.face, op)
}

// RunConfig configures Run.
type RunConfig struct {
	Title string
	// Scale multiplies the window size relative to the canvas size.
	// Zero means 1.
	Scale   float64
	ShowFPS bool
	// Script, when set, replays scripted input alongside real input.
	// Its screenshot actions capture the canvas.
	Script *ScriptRunner
	// ScreenshotDir defaults to DefaultScreenshotDir.
	ScreenshotDir string
}

// Game is an ebiten.Game that drives an Engine: each Update polls input and
// delivers the pending frame, each Draw copies the canvas to the screen.
type Game struct {
	engine  *Engine
	sched   *ManualScheduler
	showFPS bool
	keys    []ebiten.Key
	script  *ScriptRunner

	screenshotDir   string
	screenshotQueue []string
}

// NewGame attaches a Game to a configured engine whose canvas.appendTo is
// HostWindow. The engine's scheduler is replaced, which pauses it.
//
// The surface and canvas are looked up on every frame, so ApplyConfig may
// be called again while the window is open.
func NewGame(e *Engine, cfg RunConfig) (*Game, error) {
	s, err := e.Surface()
	if err != nil {
		return nil, err
	}
	if _, ok := s.(*EbitenSurface); !ok {
		return nil, fmt.Errorf("new game: surface is %T, want *EbitenSurface", s)
	}
	sched := NewManualScheduler()
	e.SetScheduler(sched)
	g := &Game{
		engine:        e,
		sched:         sched,
		showFPS:       cfg.ShowFPS,
		script:        cfg.Script,
		screenshotDir: cfg.ScreenshotDir,
	}
	if g.screenshotDir == "" {
		g.screenshotDir = DefaultScreenshotDir
	}
	if g.script != nil {
		g.script.SetScreenshotFunc(g.Screenshot)
	}
	return g, nil
}

// Update processes real and scripted input and advances the engine by one frame if it is
// running.
func (g *Game) Update() error {
	g.pollInput()
	if g.script != nil {
		g.script.Step(g.engine)
	}
	g.sched.Fire(time.Now())
	return nil
}

// Draw copies the canvas to the screen. Nothing is copied while the engine's
// surface is not an EbitenSurface.
func (g *Game) Draw(screen *ebiten.Image) {
	if img := g.canvasImage(); img != nil {
		screen.DrawImage(img, nil)
		g.flushScreenshots(img)
	}
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout returns the size of the current canvas, or the outside size when
// the engine has none.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	c, err := g.engine.Canvas()
	if err != nil {
		return outsideWidth, outsideHeight
	}
	return int(math.Ceil(c.Width)), int(math.Ceil(c.Height))
}

// canvasImage returns the image the engine currently draws on.
func (g *Game) canvasImage() *ebiten.Image {
	s, err := g.engine.Surface()
	if err != nil {
		return nil
	}
	es, ok := s.(*EbitenSurface)
	if !ok {
		return nil
	}
	return es.Image()
}

func (g *Game) pollInput() {
	in := g.engine.Input()
	if in == nil {
		return
	}
	if !ebiten.IsFocused() {
		in.Release()
		return
	}
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		in.KeyDown(keyName(k))
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		in.KeyUp(keyName(k))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.Click(Point{float64(x), float64(y)})
	}
}

// keyName maps an ebiten key to its DOM KeyboardEvent.key name. Left and
// right modifiers collapse into one name; letters are lowercase.
func keyName(k ebiten.Key) string {
	switch k {
	case ebiten.KeyShiftLeft, ebiten.KeyShiftRight, ebiten.KeyShift:
		return KeyShift
	case ebiten.KeyControlLeft, ebiten.KeyControlRight, ebiten.KeyControl:
		return KeyControl
	case ebiten.KeyAltLeft, ebiten.KeyAltRight, ebiten.KeyAlt:
		return KeyAlt
	case ebiten.KeyMetaLeft, ebiten.KeyMetaRight, ebiten.KeyMeta:
		return KeyMeta
	case ebiten.KeySpace:
		return " "
	}
	name := k.String()
	if len(name) == 1 {
		return strings.ToLower(name)
	}
	if d, ok := strings.CutPrefix(name, "Digit"); ok && len(d) == 1 {
		return d
	}
	return name
}

// Run opens a window sized to the engine's canvas, starts the engine and
// blocks until the window is closed.
func Run(e *Engine, cfg RunConfig) error {
	g, err := NewGame(e, cfg)
	if err != nil {
		return err
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(int(float64(w)*scale), int(float64(h)*scale))
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if err := e.Start(); err != nil {
		return err
	}
	return ebiten.RunGame(g)
}
