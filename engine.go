package entropy

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Engine is the configuration and lifecycle manager. It owns the point
// registry, the particle pool and the render loop.
//
// Engine is not safe for concurrent use. Hosts deliver input and frame
// callbacks on a single goroutine.
type Engine struct {
	cfg      *Config
	settings *settings
	surface  Surface
	reg      *Registry
	pool     pool
	loop     loop
	input    *InputAdapter

	hosts       map[string]HostFactory
	persistence *Persistence
	rng         *rand.Rand
	sink        EventSink
	downloader  Downloader
	onTick      []func(dt float64)
	debug       bool
}

// NewEngine creates an unconfigured engine. Its defaults are a
// ManualScheduler, in-memory session and durable stores, a time-seeded RNG,
// a FileDownloader writing to the working directory, and the "window" host
// backed by Ebitengine.
func NewEngine() *Engine {
	e := &Engine{
		reg:         NewRegistry(nil, nil),
		hosts:       make(map[string]HostFactory),
		persistence: NewPersistence(NewMemoryStore(), NewMemoryStore()),
		rng:         rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		downloader:  FileDownloader{},
	}
	e.loop = loop{sched: NewManualScheduler(), tick: e.tick}
	e.RegisterHost(HostWindow, NewEbitenHost)
	return e
}

// --- Wiring ---

// RegisterHost makes a surface factory available under name for
// canvas.appendTo.
func (e *Engine) RegisterHost(name string, factory HostFactory) {
	e.hosts[name] = factory
}

// SetScheduler replaces the frame scheduler. Any running loop is paused.
func (e *Engine) SetScheduler(s Scheduler) {
	e.loop.pause()
	e.loop.sched = s
}

// Scheduler returns the frame scheduler.
func (e *Engine) Scheduler() Scheduler {
	return e.loop.sched
}

// SetStores sets the session and durable persistence scopes.
func (e *Engine) SetStores(session, durable Store) {
	e.persistence = NewPersistence(session, durable)
}

// SetRandSource seeds particle sampling from src, for reproducible runs.
func (e *Engine) SetRandSource(src rand.Source) {
	e.rng = rand.New(src)
}

// SetEventSink sets the optional event bridge.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

// SetDownloader sets where exported positions go.
func (e *Engine) SetDownloader(d Downloader) {
	e.downloader = d
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick stats
// and persistence fallbacks are logged to stderr.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// OnTick registers fn to run at the start of every tick with the tick's dt
// in seconds. Use it for live tuning such as CurveSweep.
func (e *Engine) OnTick(fn func(dt float64)) {
	e.onTick = append(e.onTick, fn)
}

// --- Configuration & lifecycle ---

// ApplyConfig validates cfg and, only if it is valid, applies it: registries
// are restored from persistence (or seeded from cfg.InitialPositions), the
// surface is created by the host named in canvas.appendTo, and the input
// adapter is rebuilt. The loop is left stopped; a running loop is paused and
// the pool emptied first.
func (e *Engine) ApplyConfig(cfg Config) error {
	s, err := cfg.validate()
	if err != nil {
		return err
	}
	factory, ok := e.hosts[s.canvas.Host]
	if !ok {
		return &ConfigurationError{
			Reason: fmt.Sprintf("canvas.appendTo %q", s.canvas.Host),
			Err:    ErrUnknownHost,
		}
	}
	surface, err := factory(s.canvas)
	if err != nil {
		return &ConfigurationError{Reason: "create surface", Err: err}
	}

	e.loop.pause()
	e.pool.reset()

	stored := cfg.clone()
	e.cfg = &stored
	e.settings = s
	e.surface = surface
	e.loadRegistries()
	e.input = newInputAdapter(e, cfg.Listeners)
	e.debugf("configured canvas %q (%gx%g) on host %q: %d spawners, %d targets",
		s.canvas.ID, s.canvas.Width, s.canvas.Height, s.canvas.Host,
		e.reg.Len(Spawners), e.reg.Len(Targets))
	return nil
}

// loadRegistries restores each registry from persistence, falling back to
// the configured initial positions when nothing usable is stored.
func (e *Engine) loadRegistries() {
	initial := [2][]Point{
		Spawners: e.cfg.InitialPositions.Spawners,
		Targets:  e.cfg.InitialPositions.Targets,
	}
	for _, kind := range [...]RegistryKind{Spawners, Targets} {
		points, ok, err := e.persistence.Load(e.settings.canvas.ID, kind)
		if err != nil {
			var fmtErr *PersistenceFormatError
			if errors.As(err, &fmtErr) {
				e.debugf("%v; using initial positions", fmtErr)
			} else {
				warnf("load %s: %v", kind, err)
			}
			ok = false
		}
		if ok {
			e.reg.Set(kind, points)
		} else {
			e.reg.Set(kind, initial[kind])
		}
	}
}

// Start begins the render loop. Calling Start while running does nothing.
func (e *Engine) Start() error {
	if e.settings == nil {
		return &NotInitializedError{What: "engine"}
	}
	e.loop.start()
	return nil
}

// Pause stops the render loop and cancels the pending frame. Calling Pause
// while stopped does nothing.
func (e *Engine) Pause() {
	e.loop.pause()
}

// State returns the loop state.
func (e *Engine) State() LoopState {
	return e.loop.state
}

// Running reports whether the loop is running.
func (e *Engine) Running() bool {
	return e.loop.state == LoopRunning
}

// Tick advances one frame directly, bypassing the scheduler. dt is in
// seconds and now is the wall-clock time used for the curvature phase.
func (e *Engine) Tick(dt float64, now time.Time) error {
	if e.settings == nil {
		return &NotInitializedError{What: "engine"}
	}
	e.tick(dt, now)
	return nil
}

func (e *Engine) tick(dt float64, now time.Time) {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}
	for _, fn := range e.onTick {
		fn(dt)
	}
	f := frame{
		dt:        dt,
		now:       float64(now.UnixNano()) / 1e9,
		spec:      &e.settings.spec,
		canvas:    e.settings.canvas,
		curvature: &e.settings.curvature,
		reg:       e.reg,
		rng:       e.rng,
		surface:   e.surface,
		spawnerMk: e.settings.spawnerMk,
		targetMk:  e.settings.targetMk,
	}
	stats := e.pool.tick(&f)
	if e.debug {
		e.debugLog(debugStats{tickStats: stats, dt: dt, tickTime: time.Since(t0)})
	}
}

// --- Accessors ---

// Config returns a deep copy of the applied configuration, or nil before
// ApplyConfig. Changing it does not affect the engine.
func (e *Engine) Config() *Config {
	if e.cfg == nil {
		return nil
	}
	c := e.cfg.clone()
	return &c
}

// Surface returns the drawing surface.
func (e *Engine) Surface() (Surface, error) {
	if e.surface == nil {
		return nil, &NotInitializedError{What: "surface"}
	}
	return e.surface, nil
}

// Canvas returns the validated canvas description.
func (e *Engine) Canvas() (Canvas, error) {
	if e.settings == nil {
		return Canvas{}, &NotInitializedError{What: "canvas"}
	}
	return e.settings.canvas, nil
}

// Curvature returns the live curvature settings for tuning between ticks,
// or nil before ApplyConfig.
func (e *Engine) Curvature() *Curvature {
	if e.settings == nil {
		return nil
	}
	return &e.settings.curvature
}

// Spawners returns a copy of the spawner registry.
func (e *Engine) Spawners() []Point { return e.reg.Points(Spawners) }

// Targets returns a copy of the target registry.
func (e *Engine) Targets() []Point { return e.reg.Points(Targets) }

// ParticleCount returns the number of live particles.
func (e *Engine) ParticleCount() int { return len(e.pool.particles) }

// Input returns the input adapter, or nil before ApplyConfig.
func (e *Engine) Input() *InputAdapter { return e.input }

// --- Registry operations ---

// AddSpawner appends a spawner, writing through when
// storage.storeNewPositions.spawners is set.
func (e *Engine) AddSpawner(p Point) error { return e.addPoint(Spawners, p, SourceAPI) }

// AddTarget appends a target, writing through when
// storage.storeNewPositions.targets is set.
func (e *Engine) AddTarget(p Point) error { return e.addPoint(Targets, p, SourceAPI) }

// RemoveSpawnerAt removes every spawner at exactly p and returns how many
// were removed.
func (e *Engine) RemoveSpawnerAt(p Point) (int, error) { return e.removePoint(Spawners, p) }

// RemoveTargetAt removes every target at exactly p and returns how many were
// removed.
func (e *Engine) RemoveTargetAt(p Point) (int, error) { return e.removePoint(Targets, p) }

func (e *Engine) addPoint(kind RegistryKind, p Point, src EventSource) error {
	e.reg.Add(kind, p)
	persisted, err := e.writeThrough(kind, src)
	e.emit(PointEvent{Type: EventPointAdded, Source: src, Registry: kind, Point: p, Count: 1, Persisted: persisted})
	return err
}

func (e *Engine) removePoint(kind RegistryKind, p Point) (int, error) {
	n := e.reg.RemoveAt(kind, p)
	if n == 0 {
		return 0, nil
	}
	persisted, err := e.writeThrough(kind, SourceAPI)
	e.emit(PointEvent{Type: EventPointRemoved, Source: SourceAPI, Registry: kind, Point: p, Count: n, Persisted: persisted})
	return n, err
}

// writeThrough persists the registry when the storage config asks for it for
// this mutation source.
func (e *Engine) writeThrough(kind RegistryKind, src EventSource) (bool, error) {
	if e.cfg == nil || e.cfg.Storage == nil {
		return false, nil
	}
	st := e.cfg.Storage
	flags := st.StoreNewPositions
	if src == SourceListener {
		flags = st.StoreListenersPositions
	}
	want := flags.Spawners
	if kind == Targets {
		want = flags.Targets
	}
	if !want {
		return false, nil
	}
	if err := e.persistence.Save(st.StorageType, e.settings.canvas.ID, kind, e.reg.view(kind)); err != nil {
		return false, err
	}
	return true, nil
}

// Reset clears every persistence scope and reloads the engine from its
// configuration: registries fall back to the initial positions and the pool
// is emptied. The surface and loop state are kept.
func (e *Engine) Reset() error {
	if e.cfg == nil {
		return &NotInitializedError{What: "engine"}
	}
	clearErr := e.persistence.ClearAll()
	e.pool.reset()
	e.loadRegistries()
	e.debugf("positions reset: %d spawners, %d targets", e.reg.Len(Spawners), e.reg.Len(Targets))
	e.emit(PointEvent{Type: EventPositionsReset, Source: SourceAPI, Count: e.reg.Len(Spawners) + e.reg.Len(Targets)})
	if clearErr != nil {
		return fmt.Errorf("reset: %w", clearErr)
	}
	return nil
}

// Export serializes both registries and hands them to the downloader as
// ExportFileName.
func (e *Engine) Export() error {
	data, err := EncodePositions(e.reg)
	if err != nil {
		return err
	}
	if e.downloader == nil {
		return &NotInitializedError{What: "downloader"}
	}
	if err := e.downloader.Download(ExportFileName, data); err != nil {
		return err
	}
	e.emit(PointEvent{Type: EventPositionsSaved, Source: SourceAPI, Count: e.reg.Len(Spawners) + e.reg.Len(Targets)})
	return nil
}

func (e *Engine) emit(ev PointEvent) {
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}
