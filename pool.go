package entropy

import (
	"math/rand/v2"
	"strconv"
)

// tickStats reports what a single tick did. Only logged in debug mode.
type tickStats struct {
	spawned int
	culled  int
	alive   int
}

// pool is the working set of live particles.
type pool struct {
	particles []particle
}

// reset drops every particle.
func (pl *pool) reset() {
	clear(pl.particles)
	pl.particles = pl.particles[:0]
}

// topUp creates particles until the pool holds quantity of them.
func (pl *pool) topUp(spec *ParticleSpec, canvas Canvas, reg *Registry, rng *rand.Rand) int {
	n := 0
	for len(pl.particles) < spec.Quantity {
		pl.particles = append(pl.particles, newParticle(spec, canvas, reg, rng))
		n++
	}
	return n
}

// frame carries everything a tick needs besides the pool itself.
type frame struct {
	dt        float64 // seconds since the previous tick
	now       float64 // wall-clock seconds, the curvature phase
	spec      *ParticleSpec
	canvas    Canvas
	curvature *Curvature
	reg       *Registry
	rng       *rand.Rand
	surface   Surface
	spawnerMk marker
	targetMk  marker
}

// tick advances and draws one frame. Particles are processed in insertion
// order and survivors are compacted in place after each is processed, so no
// particle is skipped or processed twice.
func (pl *pool) tick(f *frame) tickStats {
	var stats tickStats

	f.surface.Clear(f.canvas.Background)
	stats.spawned = pl.topUp(f.spec, f.canvas, f.reg, f.rng)

	followDT := f.dt
	if f.spec.FrozenVelocity {
		followDT = 0
	}
	bounds := f.canvas.Bounds().Expand(f.canvas.Threshold)
	targets := f.reg.view(Targets)

	kept := pl.particles[:0]
	for i := range pl.particles {
		p := pl.particles[i]
		p.lifespan -= frameRate * f.dt

		for j := 0; j+1 < len(p.trail); j++ {
			f.surface.StrokeLine(p.trail[j], p.trail[j+1], p.size, p.color)
		}

		p.spread(f.spec.SpreadFactor, f.dt, f.rng)
		p.follow(followDT, f.now, f.curvature, targets)

		if p.expired(bounds) {
			stats.culled++
			continue
		}
		kept = append(kept, p)
	}
	clear(pl.particles[len(kept):])
	pl.particles = kept
	stats.alive = len(kept)

	drawMarkers(f.surface, f.reg.view(Targets), f.targetMk)
	drawMarkers(f.surface, f.reg.view(Spawners), f.spawnerMk)
	return stats
}

// drawMarkers draws a square and index label at every point.
func drawMarkers(s Surface, points []Point, mk marker) {
	for i, pt := range points {
		s.FillRect(Rect{X: pt.X, Y: pt.Y, Width: mk.size, Height: mk.size}, mk.color)
		s.FillText(strconv.Itoa(i), Point{pt.X, pt.Y - 5}, mk.color)
	}
}
