package entropy

import "slices"

// Mode is a placement mode armed by holding a trigger key.
type Mode uint8

const (
	ModeTarget  Mode = iota // clicks add targets
	ModeSpawner             // clicks add spawners
)

// Key names shared by the hosts. They follow DOM KeyboardEvent.key.
const (
	KeyShift   = "Shift"
	KeyControl = "Control"
	KeyAlt     = "Alt"
	KeyMeta    = "Meta"
)

// InputAdapter translates key and pointer events into registry mutations.
// Hosts feed it platform events; it holds no platform state itself.
type InputAdapter struct {
	engine    *Engine
	listeners ListenersConfig
	modes     []Mode
}

func newInputAdapter(e *Engine, listeners ListenersConfig) *InputAdapter {
	return &InputAdapter{engine: e, listeners: listeners}
}

// KeyDown handles a key press. Trigger keys arm their mode; the reset and
// download keys act immediately. An unbound key is ignored.
func (in *InputAdapter) KeyDown(key string) {
	if key == "" {
		return
	}
	l := in.listeners
	switch key {
	case l.Targets.KeyboardTrigger:
		in.modes = append(in.modes, ModeTarget)
	case l.Spawners.KeyboardTrigger:
		in.modes = append(in.modes, ModeSpawner)
	case l.ResetPositions:
		if err := in.engine.Reset(); err != nil {
			warnf("reset positions: %v", err)
		}
	case l.DownloadPositions:
		if err := in.engine.Export(); err != nil {
			warnf("download positions: %v", err)
		}
	}
}

// KeyUp handles a key release, disarming the released trigger's mode.
func (in *InputAdapter) KeyUp(key string) {
	if key == "" {
		return
	}
	var mode Mode
	switch key {
	case in.listeners.Targets.KeyboardTrigger:
		mode = ModeTarget
	case in.listeners.Spawners.KeyboardTrigger:
		mode = ModeSpawner
	default:
		return
	}
	in.modes = slices.DeleteFunc(in.modes, func(m Mode) bool { return m == mode })
}

// Active reports whether mode is armed.
func (in *InputAdapter) Active(mode Mode) bool {
	return slices.Contains(in.modes, mode)
}

// Click handles a pointer click at p in canvas coordinates. Target mode wins
// when both modes are armed. Returns whether a point was added.
func (in *InputAdapter) Click(p Point) bool {
	var kind RegistryKind
	switch {
	case in.Active(ModeTarget):
		kind = Targets
	case in.Active(ModeSpawner):
		kind = Spawners
	default:
		return false
	}
	if err := in.engine.addPoint(kind, p, SourceListener); err != nil {
		warnf("persist %s: %v", kind, err)
	}
	return true
}

// Release disarms every mode. Hosts call it when focus is lost.
func (in *InputAdapter) Release() {
	in.modes = in.modes[:0]
}
