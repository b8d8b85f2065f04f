package entropy

import "time"

// FrameFunc is a scheduled frame callback. now is the frame timestamp.
type FrameFunc func(now time.Time)

// FrameID identifies a requested frame so it can be cancelled.
type FrameID uint64

// Scheduler delivers "next frame" callbacks. The engine keeps at most one
// request outstanding.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// LoopState is the render loop state.
type LoopState uint8

const (
	LoopStopped LoopState = iota
	LoopRunning
)

func (s LoopState) String() string {
	if s == LoopRunning {
		return "running"
	}
	return "stopped"
}

const (
	// firstFrameDT is used for the first tick after Start, which has no
	// previous timestamp.
	firstFrameDT = 1.0 / frameRate
	// maxFrameDT caps dt so a stalled host does not teleport particles.
	maxFrameDT = 0.25
)

// loop is the {Stopped, Running} state machine that drives ticks through a
// Scheduler.
type loop struct {
	sched   Scheduler
	state   LoopState
	pending FrameID
	hasPend bool
	prev    time.Time
	tick    func(dt float64, now time.Time)
}

// start moves Stopped to Running and requests the first frame. Calling it
// while running does nothing.
func (l *loop) start() {
	if l.state == LoopRunning {
		return
	}
	l.state = LoopRunning
	l.prev = time.Time{}
	l.schedule()
}

// pause moves Running to Stopped and cancels the pending frame.
func (l *loop) pause() {
	if l.state == LoopStopped {
		return
	}
	l.state = LoopStopped
	if l.hasPend {
		l.sched.CancelFrame(l.pending)
		l.hasPend = false
	}
}

func (l *loop) schedule() {
	l.pending = l.sched.RequestFrame(l.frame)
	l.hasPend = true
}

// frame is the scheduled callback. A callback delivered after pause does no
// work and does not reschedule.
func (l *loop) frame(now time.Time) {
	l.hasPend = false
	if l.state != LoopRunning {
		return
	}
	dt := firstFrameDT
	if !l.prev.IsZero() {
		dt = min(max(now.Sub(l.prev).Seconds(), 0), maxFrameDT)
	}
	l.prev = now
	l.tick(dt, now)
	if l.state == LoopRunning && !l.hasPend {
		l.schedule()
	}
}

// ManualScheduler is a Scheduler driven by explicit Fire calls. Hosts use it
// to deliver frames from their own update callback; tests use it to step the
// engine deterministically.
type ManualScheduler struct {
	nextID  FrameID
	pending map[FrameID]FrameFunc
	order   []FrameID
}

// NewManualScheduler creates an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[FrameID]FrameFunc)}
}

// RequestFrame queues fn for the next Fire and returns its id.
func (m *ManualScheduler) RequestFrame(fn FrameFunc) FrameID {
	m.nextID++
	m.pending[m.nextID] = fn
	m.order = append(m.order, m.nextID)
	return m.nextID
}

// CancelFrame drops a queued request. Unknown or already delivered ids are
// ignored.
func (m *ManualScheduler) CancelFrame(id FrameID) {
	delete(m.pending, id)
}

// Pending returns the number of outstanding frame requests.
func (m *ManualScheduler) Pending() int {
	return len(m.pending)
}

// Fire delivers every frame requested before the call, in request order.
// Frames requested by the callbacks themselves wait for the next Fire.
// Returns the number of callbacks run.
func (m *ManualScheduler) Fire(now time.Time) int {
	batch := m.order
	m.order = nil
	n := 0
	for _, id := range batch {
		fn, ok := m.pending[id]
		if !ok {
			continue
		}
		delete(m.pending, id)
		fn(now)
		n++
	}
	return n
}
