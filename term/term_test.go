package term

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/entropy"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func testConfig() entropy.Config {
	cfg := entropy.DefaultConfig()
	cfg.Canvas.ID = "term"
	cfg.Canvas.AppendTo = Host
	cfg.Canvas.BackgroundColor = "black"
	cfg.Canvas.Size = entropy.Size{Width: 400, Height: 200}
	cfg.Particles.Quantity = 0
	cfg.Listeners.Targets.KeyboardTrigger = entropy.KeyShift
	cfg.Listeners.Spawners.KeyboardTrigger = entropy.KeyControl
	cfg.Listeners.ResetPositions = "r"
	return cfg
}

func newEngine(t *testing.T, screen tcell.Screen) *entropy.Engine {
	t.Helper()
	e := entropy.NewEngine()
	e.SetRandSource(rand.NewPCG(1, 2))
	Register(e, screen)
	require.NoError(t, e.ApplyConfig(testConfig()))
	return e
}

func TestSurfaceCellMapping(t *testing.T) {
	screen := newScreen(t, 40, 20)
	s := NewSurface(screen, entropy.Canvas{Width: 400, Height: 200})

	x, y := s.Cell(entropy.Point{X: 105, Y: 55})
	assert.Equal(t, 10, x)
	assert.Equal(t, 5, y)

	p := s.Point(10, 5)
	assert.InDelta(t, 105.0, p.X, 1e-9)
	assert.InDelta(t, 55.0, p.Y, 1e-9)
}

func TestSurfaceStrokeLine(t *testing.T) {
	screen := newScreen(t, 40, 20)
	s := NewSurface(screen, entropy.Canvas{Width: 400, Height: 200})
	s.Clear(entropy.Color{A: 1})

	s.StrokeLine(entropy.Point{X: 0, Y: 0}, entropy.Point{X: 95, Y: 0}, 1, entropy.ColorWhite)
	for x := 0; x <= 9; x++ {
		r, _, style, _ := screen.GetContent(x, 0)
		assert.Equal(t, glyphThin, r, "cell %d", x)
		fg, _, _ := style.Decompose()
		assert.Equal(t, tcell.NewRGBColor(255, 255, 255), fg)
	}
	r, _, _, _ := screen.GetContent(10, 0)
	assert.Equal(t, ' ', r)
}

func TestSurfaceSkipsTransparent(t *testing.T) {
	screen := newScreen(t, 40, 20)
	s := NewSurface(screen, entropy.Canvas{Width: 400, Height: 200})
	s.Clear(entropy.Color{A: 1})

	s.StrokeLine(entropy.Point{}, entropy.Point{X: 100, Y: 100}, 1, entropy.ColorTransparent)
	s.FillRect(entropy.Rect{Width: 50, Height: 50}, entropy.ColorTransparent)
	s.FillText("7", entropy.Point{}, entropy.ColorTransparent)

	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, ' ', r)
}

func TestSurfaceBlendsAlpha(t *testing.T) {
	screen := newScreen(t, 10, 10)
	s := NewSurface(screen, entropy.Canvas{Width: 10, Height: 10})
	s.Clear(entropy.Color{A: 1})

	s.FillRect(entropy.Rect{X: 0, Y: 0}, entropy.Color{R: 1, G: 1, B: 1, A: 0.5})
	r, _, style, _ := screen.GetContent(0, 0)
	assert.Equal(t, glyphFill, r)
	fg, _, _ := style.Decompose()
	cr, cg, cb := fg.RGB()
	assert.InDelta(t, 128, cr, 1)
	assert.InDelta(t, 128, cg, 1)
	assert.InDelta(t, 128, cb, 1)
}

func TestSurfaceClipsOffscreen(t *testing.T) {
	screen := newScreen(t, 10, 10)
	s := NewSurface(screen, entropy.Canvas{Width: 10, Height: 10})
	assert.NotPanics(t, func() {
		s.StrokeLine(entropy.Point{X: -50, Y: -50}, entropy.Point{X: 50, Y: 50}, 1, entropy.ColorWhite)
		s.FillText("label", entropy.Point{X: 8, Y: 9}, entropy.ColorWhite)
	})
}

func TestLineEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		cells          int
	}{
		{"point", 3, 3, 3, 3, 1},
		{"horizontal", 0, 0, 4, 0, 5},
		{"vertical reversed", 0, 4, 0, 0, 5},
		{"diagonal", 0, 0, 3, 3, 4},
		{"steep", 0, 0, 1, 4, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			line(tt.x0, tt.y0, tt.x1, tt.y1, func(x, y int) { got = append(got, [2]int{x, y}) })
			require.Len(t, got, tt.cells)
			assert.Equal(t, [2]int{tt.x0, tt.y0}, got[0])
			assert.Equal(t, [2]int{tt.x1, tt.y1}, got[len(got)-1])
		})
	}
}

func TestDriverShiftClickAddsTarget(t *testing.T) {
	screen := newScreen(t, 40, 20)
	e := newEngine(t, screen)
	d := NewDriver(screen, e)

	assert.False(t, d.HandleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModShift)))
	assert.False(t, d.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModShift)))

	require.Len(t, e.Targets(), 1)
	assert.InDelta(t, 105.0, e.Targets()[0].X, 1e-9)
	assert.InDelta(t, 55.0, e.Targets()[0].Y, 1e-9)
	assert.Empty(t, e.Spawners())
	assert.False(t, e.Input().Active(entropy.ModeTarget), "modifier released after click")
}

func TestDriverCtrlClickAddsSpawner(t *testing.T) {
	screen := newScreen(t, 40, 20)
	e := newEngine(t, screen)
	d := NewDriver(screen, e)

	d.HandleEvent(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModCtrl))
	d.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModCtrl))

	assert.Len(t, e.Spawners(), 1)
	assert.Empty(t, e.Targets())
}

func TestDriverPlainClickIgnored(t *testing.T) {
	screen := newScreen(t, 40, 20)
	e := newEngine(t, screen)
	d := NewDriver(screen, e)

	d.HandleEvent(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))
	d.HandleEvent(tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone))

	assert.Empty(t, e.Spawners())
	assert.Empty(t, e.Targets())
}

func TestDriverResetKey(t *testing.T) {
	screen := newScreen(t, 40, 20)
	e := newEngine(t, screen)
	d := NewDriver(screen, e)
	require.NoError(t, e.AddTarget(entropy.Point{X: 1, Y: 1}))

	d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))

	assert.Empty(t, e.Targets())
}

func TestDriverQuitKeys(t *testing.T) {
	screen := newScreen(t, 40, 20)
	d := NewDriver(screen, newEngine(t, screen))

	assert.True(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.False(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestDriverInterruptFiresFrame(t *testing.T) {
	screen := newScreen(t, 40, 20)
	e := newEngine(t, screen)
	d := NewDriver(screen, e)
	require.NoError(t, e.Start())

	ticks := 0
	e.OnTick(func(float64) { ticks++ })
	d.HandleEvent(tcell.NewEventInterrupt(time.Now()))
	assert.Equal(t, 1, ticks)

	assert.True(t, d.HandleEvent(tcell.NewEventInterrupt(quitSignal{})))
}

func TestDriverRunStopsOnContext(t *testing.T) {
	screen := newScreen(t, 40, 20)
	e := newEngine(t, screen)
	d := NewDriver(screen, e)
	d.SetInterval(time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, d.Run(ctx))
	assert.False(t, e.Running())
}

func TestUnholdableTriggers(t *testing.T) {
	tests := []struct {
		name    string
		targets string
		spawner string
		want    []string
	}{
		{"modifiers", entropy.KeyShift, entropy.KeyControl, nil},
		{"unbound", "", "", nil},
		{"alt and meta", entropy.KeyAlt, entropy.KeyMeta, nil},
		{"letter target", "t", entropy.KeyControl, []string{"t"}},
		{"both letters", "t", "s", []string{"t", "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := entropy.ListenersConfig{
				Targets:  entropy.ListenerConfig{KeyboardTrigger: tt.targets},
				Spawners: entropy.ListenerConfig{KeyboardTrigger: tt.spawner},
			}
			assert.Equal(t, tt.want, unholdableTriggers(l))
		})
	}
}

func TestDriverWarnsLetterTrigger(t *testing.T) {
	screen := newScreen(t, 40, 20)
	e := entropy.NewEngine()
	Register(e, screen)
	cfg := testConfig()
	cfg.Listeners.Targets.KeyboardTrigger = "t"
	require.NoError(t, e.ApplyConfig(cfg))

	var buf bytes.Buffer
	d := NewDriver(screen, e)
	d.warn = &buf
	d.warnTriggers()
	assert.Contains(t, buf.String(), `trigger "t" is not a modifier`)

	buf.Reset()
	quiet := NewDriver(screen, newEngine(t, screen))
	quiet.warn = &buf
	quiet.warnTriggers()
	assert.Empty(t, buf.String())
}

func TestDriverLetterTriggerCannotPlace(t *testing.T) {
	screen := newScreen(t, 40, 20)
	e := entropy.NewEngine()
	Register(e, screen)
	cfg := testConfig()
	cfg.Listeners.Targets.KeyboardTrigger = "t"
	require.NoError(t, e.ApplyConfig(cfg))
	d := NewDriver(screen, e)

	d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone))
	d.HandleEvent(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))
	d.HandleEvent(tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone))
	assert.Empty(t, e.Targets())
}
