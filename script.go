package entropy

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	Key    string   `json:"key,omitempty"`
	Keys   []string `json:"keys,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

type injectKind uint8

const (
	injectKeyDown injectKind = iota
	injectKeyUp
	injectClick
)

// injectedInput is one synthetic input event, delivered on its own frame.
type injectedInput struct {
	kind injectKind
	key  string
	at   Point
}

// ScriptRunner replays a JSON input script against an engine, one action per
// frame, for demos and automated visual checks. Script actions:
//
//	{"action": "keydown", "key": "Shift"}
//	{"action": "keyup", "key": "Shift"}
//	{"action": "click", "x": 100, "y": 200, "keys": ["Shift"]}
//	{"action": "wait", "frames": 30}
//	{"action": "screenshot", "label": "after-click"}
//	{"action": "export"}
//	{"action": "reset"}
//
// A click with keys presses them, clicks and releases them over successive
// frames.
type ScriptRunner struct {
	steps      []scriptStep
	cursor     int
	waitCount  int
	queue      []injectedInput
	screenshot func(label string)
	done       bool
}

// LoadInputScript parses a JSON input script.
func LoadInputScript(jsonData []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "keydown", "keyup":
			if st.Key == "" {
				return nil, fmt.Errorf("parse input script: step %d: %s needs a key", i, st.Action)
			}
		case "click", "wait", "screenshot", "export", "reset":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScreenshotFunc sets the handler for screenshot actions. Without one,
// screenshot actions are skipped with a warning.
func (r *ScriptRunner) SetScreenshotFunc(fn func(label string)) {
	r.screenshot = fn
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Pending injected events drain
// first, one per call.
func (r *ScriptRunner) Step(e *Engine) {
	if r.done {
		return
	}
	if len(r.queue) > 0 {
		r.deliver(e)
		r.checkDone()
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "keydown":
		r.inject(injectedInput{kind: injectKeyDown, key: st.Key})
	case "keyup":
		r.inject(injectedInput{kind: injectKeyUp, key: st.Key})
	case "click":
		for _, k := range st.Keys {
			r.inject(injectedInput{kind: injectKeyDown, key: k})
		}
		r.inject(injectedInput{kind: injectClick, at: Point{st.X, st.Y}})
		for _, k := range st.Keys {
			r.inject(injectedInput{kind: injectKeyUp, key: k})
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if r.screenshot == nil {
			warnf("script: no screenshot handler for %q", st.Label)
		} else {
			r.screenshot(st.Label)
		}
	case "export":
		if err := e.Export(); err != nil {
			warnf("script: export: %v", err)
		}
	case "reset":
		if err := e.Reset(); err != nil {
			warnf("script: reset: %v", err)
		}
	}

	// Queued input starts on this frame.
	if len(r.queue) > 0 {
		r.deliver(e)
	}
	r.checkDone()
}

func (r *ScriptRunner) inject(ev injectedInput) {
	r.queue = append(r.queue, ev)
}

// deliver pops one injected event and feeds it to the engine's input adapter.
func (r *ScriptRunner) deliver(e *Engine) {
	ev := r.queue[0]
	copy(r.queue, r.queue[1:])
	r.queue = r.queue[:len(r.queue)-1]

	in := e.Input()
	if in == nil {
		return
	}
	switch ev.kind {
	case injectKeyDown:
		in.KeyDown(ev.key)
	case injectKeyUp:
		in.KeyUp(ev.key)
	case injectClick:
		in.Click(ev.at)
	}
}

func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0 {
		r.done = true
	}
}
