package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/entropy"
)

// DefaultInterval is the frame interval of a Driver, about 60 FPS.
const DefaultInterval = 16 * time.Millisecond

type quitSignal struct{}

// Driver runs an engine inside a tcell event loop. Frame ticks are posted to
// the screen as interrupt events, so the engine is only ever touched from the
// goroutine calling Run.
//
// Terminals report neither bare modifier presses nor key releases. A click
// carrying modifiers is delivered as KeyDown for each modifier, the click,
// then KeyUp for each modifier. Other keys are a KeyDown followed by KeyUp.
type Driver struct {
	screen   tcell.Screen
	engine   *entropy.Engine
	sched    *entropy.ManualScheduler
	interval time.Duration
	pressed  bool
	script   *entropy.ScriptRunner
	warn     io.Writer
}

// NewDriver attaches a driver to e. The engine's scheduler is replaced, which
// pauses it; Run starts it again.
func NewDriver(screen tcell.Screen, e *entropy.Engine) *Driver {
	sched := entropy.NewManualScheduler()
	e.SetScheduler(sched)
	return &Driver{screen: screen, engine: e, sched: sched, interval: DefaultInterval, warn: os.Stderr}
}

// SetInterval sets the frame interval. Non-positive values are ignored.
func (d *Driver) SetInterval(iv time.Duration) {
	if iv > 0 {
		d.interval = iv
	}
}

// SetScript replays r alongside real input, one action per frame. The
// terminal cannot capture screenshots; those actions are skipped.
func (d *Driver) SetScript(r *entropy.ScriptRunner) {
	d.script = r
}

// Run starts the engine and processes events until Escape or Ctrl-C is
// pressed, ctx is done, or the screen is finalized.
func (d *Driver) Run(ctx context.Context) error {
	if d.screen == nil {
		return errors.New("term: nil screen")
	}
	d.screen.EnableMouse()
	d.warnTriggers()
	if err := d.engine.Start(); err != nil {
		return err
	}
	defer d.engine.Pause()

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				// The quit event must not be dropped; retry until the queue
				// has room or Run has returned.
				for d.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{})) != nil {
					select {
					case <-done:
						return
					case <-ticker.C:
					}
				}
				return
			case t := <-ticker.C:
				// A full queue drops the frame; the next tick covers it.
				_ = d.screen.PostEvent(tcell.NewEventInterrupt(t))
			}
		}
	}()

	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if d.HandleEvent(ev) {
			return nil
		}
	}
}

// HandleEvent processes one screen event and reports whether the driver
// should stop.
func (d *Driver) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case quitSignal:
			return true
		case time.Time:
			if d.script != nil {
				d.script.Step(d.engine)
			}
			if d.sched.Fire(data) > 0 {
				d.screen.Show()
			}
		}
	case *tcell.EventResize:
		d.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if in := d.engine.Input(); in != nil {
				key := string(ev.Rune())
				in.KeyDown(key)
				in.KeyUp(key)
			}
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if d.pressed && !down {
			x, y := ev.Position()
			d.click(x, y, ev.Modifiers())
		}
		d.pressed = down
	}
	return false
}

func (d *Driver) click(x, y int, mods tcell.ModMask) {
	in := d.engine.Input()
	if in == nil {
		return
	}
	s, err := d.engine.Surface()
	if err != nil {
		return
	}
	ts, ok := s.(*Surface)
	if !ok {
		return
	}
	keys := modifierKeys(mods)
	for _, k := range keys {
		in.KeyDown(k)
	}
	in.Click(ts.Point(x, y))
	for _, k := range keys {
		in.KeyUp(k)
	}
}

// warnTriggers reports keyboard triggers that cannot be held in a terminal.
func (d *Driver) warnTriggers() {
	cfg := d.engine.Config()
	if cfg == nil || d.warn == nil {
		return
	}
	for _, key := range unholdableTriggers(cfg.Listeners) {
		_, _ = fmt.Fprintf(d.warn,
			"[entropy] warning: trigger %q is not a modifier; terminals cannot hold it during a click (use %s, %s, %s or %s)\n",
			key, entropy.KeyShift, entropy.KeyControl, entropy.KeyAlt, entropy.KeyMeta)
	}
}

// unholdableTriggers returns the configured keyboard triggers that are not
// modifier keys. The terminal reports such keys as a press and an immediate
// release, so their mode is never armed when a click arrives.
func unholdableTriggers(l entropy.ListenersConfig) []string {
	var keys []string
	for _, key := range [...]string{l.Targets.KeyboardTrigger, l.Spawners.KeyboardTrigger} {
		switch key {
		case "", entropy.KeyShift, entropy.KeyControl, entropy.KeyAlt, entropy.KeyMeta:
		default:
			keys = append(keys, key)
		}
	}
	return keys
}

func modifierKeys(mods tcell.ModMask) []string {
	var keys []string
	if mods&tcell.ModShift != 0 {
		keys = append(keys, entropy.KeyShift)
	}
	if mods&tcell.ModCtrl != 0 {
		keys = append(keys, entropy.KeyControl)
	}
	if mods&tcell.ModAlt != 0 {
		keys = append(keys, entropy.KeyAlt)
	}
	if mods&tcell.ModMeta != 0 {
		keys = append(keys, entropy.KeyMeta)
	}
	return keys
}
