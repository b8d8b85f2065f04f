// Package entropy is a configurable procedural-particle animation engine for
// [Ebitengine] and the terminal.
//
// Particles spawn at spawner points, steer toward target points with a
// velocity-plus-curvature motion model, leave fading trails, age out and are
// replenished so the population stays constant. Holding a trigger key and
// clicking adds spawners or targets; positions persist per canvas.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window sized to the
// canvas and drives the engine for you:
//
//	cfg := entropy.DefaultConfig()
//	cfg.Canvas.AppendTo = entropy.HostWindow
//	cfg.Canvas.BackgroundColor = "#0a0c12"
//	cfg.Canvas.Size = entropy.Size{Width: 960, Height: 540}
//
//	engine := entropy.NewEngine()
//	if err := engine.ApplyConfig(cfg); err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(entropy.Run(engine, entropy.RunConfig{Title: "entropy"}))
//
// For full control, register your own [HostFactory] and [Scheduler], then
// deliver frames yourself. [Engine.Tick] steps a configured engine directly.
//
// # Configuration
//
// [Config] decodes from JSON ([LoadConfig]) or INI ([LoadConfigINI]); both
// start from [DefaultConfig]. [Engine.ApplyConfig] validates before touching
// anything, so a rejected config leaves the engine as it was.
//
// # Hosts
//
// The engine draws through the [Surface] interface. [EbitenSurface] is
// registered as "window"; package entropy/term provides a tcell surface
// registered as "terminal". Events can be bridged into a [Donburi] world with
// entropy/ecs.
//
// Live tuning hooks in through [Engine.OnTick]; [CurveSweep] uses it to swing
// the curvature with [gween] easing.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package entropy
