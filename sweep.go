package entropy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CurveSweep swings a numeric curvature back and forth between -Limit and
// +Limit, reversing at each end. Attach it with Engine.OnTick:
//
//	sweep := entropy.NewCurveSweep(engine.Curvature(), 40, 2.5, ease.InOutSine)
//	engine.OnTick(sweep.Update)
//
// The curve mode is switched to a constant when the sweep is created.
type CurveSweep struct {
	curv     *Curvature
	limit    float32
	duration float32
	fn       ease.TweenFunc
	tween    *gween.Tween
	rising   bool
}

// NewCurveSweep creates a sweep that takes halfPeriod seconds to travel from
// one limit to the other. The sweep starts at the current constant value,
// clamped to the limits, and heads toward +limit.
func NewCurveSweep(curv *Curvature, limit float64, halfPeriod float32, fn ease.TweenFunc) *CurveSweep {
	if fn == nil {
		fn = ease.Linear
	}
	if limit < 0 {
		limit = -limit
	}
	start := 0.0
	if curv.Mode.Kind == CurveKindConstant {
		start = min(max(curv.Mode.Value, -limit), limit)
	}
	curv.Mode = CurveConstant(start)

	s := &CurveSweep{curv: curv, limit: float32(limit), duration: halfPeriod, fn: fn, rising: true}
	// Scale the first leg so the sweep speed matches a full leg.
	first := halfPeriod
	if limit > 0 {
		first = halfPeriod * float32((limit-start)/(2*limit))
	}
	s.tween = gween.New(float32(start), s.limit, first, fn)
	return s
}

// Update advances the sweep by dt seconds and writes the new curve value.
func (s *CurveSweep) Update(dt float64) {
	v, done := s.tween.Update(float32(dt))
	s.curv.Mode = CurveConstant(float64(v))
	if !done {
		return
	}
	s.rising = !s.rising
	to := s.limit
	if !s.rising {
		to = -s.limit
	}
	s.tween = gween.New(v, to, s.duration, s.fn)
}

// Value returns the current curve value.
func (s *CurveSweep) Value() float64 {
	return s.curv.Mode.Value
}

// Rising reports whether the sweep is heading toward +Limit.
func (s *CurveSweep) Rising() bool {
	return s.rising
}
