package entropy

import (
	"math"
	"math/rand/v2"
)

// frameRate is the rate lifespans and velocities are expressed in. A
// particle with velocity 2 moves 2px per 1/60s regardless of the real
// frame rate.
const frameRate = 60

// spreadScale converts spreadFactor into pixels per second of jitter.
const spreadScale = 50

// particle holds per-particle simulation state. Unexported; managed by pool.
type particle struct {
	pos      Point
	size     float64
	velocity float64
	color    Color
	lifespan float64 // remaining frames at 60 fps, fractional
	trail    []Point // oldest first
	trailCap int
	target   Point
	// Indices into the registries at creation time, -1 when the registry
	// was empty. Used to re-resolve the target on arrival.
	spawnIndex  int
	targetIndex int
}

// newParticle samples a particle from spec. Spawn and target points come
// from the registry; an empty registry falls back to a fixed point derived
// from the canvas size.
func newParticle(spec *ParticleSpec, canvas Canvas, reg *Registry, rng *rand.Rand) particle {
	p := particle{
		size:        spec.Size.Sample(rng),
		velocity:    spec.Velocity.Sample(rng),
		lifespan:    spec.Lifespan.Sample(rng),
		trailCap:    max(0, spec.Length.SampleInt(rng)),
		spawnIndex:  -1,
		targetIndex: -1,
	}

	spawners := reg.view(Spawners)
	if len(spawners) > 0 {
		p.spawnIndex = rng.IntN(len(spawners))
		p.pos = spawners[p.spawnIndex]
	} else {
		p.pos = fallbackSpawn(canvas)
	}

	targets := reg.view(Targets)
	if len(targets) > 0 {
		p.targetIndex = rng.IntN(len(targets))
		p.target = targets[p.targetIndex]
	} else {
		p.target = fallbackTarget(canvas)
	}

	switch len(spec.Palette) {
	case 0:
		p.color = RandomColor(rng)
	case 1:
		p.color = spec.Palette[0]
	default:
		p.color = spec.Palette[rng.IntN(len(spec.Palette))]
	}

	p.trail = make([]Point, p.trailCap, p.trailCap+1)
	for i := range p.trail {
		p.trail[i] = p.pos
	}
	return p
}

// fallbackSpawn is the spawn point used when no spawners exist: the middle
// of the left edge.
func fallbackSpawn(c Canvas) Point {
	return Point{0, c.Height / 2}
}

// fallbackTarget is the target used when no targets exist: the canvas
// center.
func fallbackTarget(c Canvas) Point {
	return Point{c.Width / 2, c.Height / 2}
}

// pushTrail appends the current position, evicting the oldest point when the
// trail is over capacity.
func (p *particle) pushTrail() {
	p.trail = append(p.trail, p.pos)
	if over := len(p.trail) - p.trailCap; over > 0 {
		n := copy(p.trail, p.trail[over:])
		p.trail = p.trail[:n]
	}
}

// spread jitters the position by spreadFactor*50*dt along one of the four
// axis directions, chosen uniformly.
func (p *particle) spread(spreadFactor, dt float64, rng *rand.Rand) {
	d := spreadFactor * spreadScale * dt
	switch rng.IntN(4) {
	case 0:
		p.pos.X += d
	case 1:
		p.pos.X -= d
	case 2:
		p.pos.Y += d
	case 3:
		p.pos.Y -= d
	}
}

// follow records the trail and steers toward the current target. The forward
// step is velocity*60*dt, clamped to the remaining distance; the steering
// term is the forward step rotated 90 degrees and scaled by the curvature
// scalar. Arrival is being within velocity of the target on both axes; on
// arrival the target is re-resolved against targets.
func (p *particle) follow(dt, now float64, curv *Curvature, targets []Point) {
	p.pushTrail()

	d := p.target.Sub(p.pos)
	dist := d.Len()
	if dist > p.velocity {
		step := p.velocity * frameRate * dt
		if step > dist {
			step = dist
		}
		fwd := d.Scale(step / dist)
		perp := fwd.Perp()
		c := curv.value(now, p.pos.X) * 0.1
		p.pos.X += fwd.X + perp.X*c*curv.Axis.X
		p.pos.Y += fwd.Y + perp.Y*c*curv.Axis.Y
	}

	if len(targets) > 0 &&
		math.Abs(p.pos.X-p.target.X) <= p.velocity &&
		math.Abs(p.pos.Y-p.target.Y) <= p.velocity {
		idx := max(p.targetIndex, 0)
		p.target = targets[idx%len(targets)]
	}
}

// value returns the steering scalar at wall-clock time now (seconds) for a
// particle at horizontal position x.
func (c *Curvature) value(now, x float64) float64 {
	switch c.Mode.Kind {
	case CurveKindConstant:
		return c.Mode.Value
	case CurveKindCos:
		return math.Cos(now*c.Frequency+x*0.05) * c.Amplitude
	default:
		return math.Sin(now*c.Frequency+x*0.05) * c.Amplitude
	}
}

// expired reports whether the particle should be culled: out of lifespan or
// outside bounds.
func (p *particle) expired(bounds Rect) bool {
	return p.lifespan <= 0 || !bounds.Contains(p.pos.X, p.pos.Y)
}
