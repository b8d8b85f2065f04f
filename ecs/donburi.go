package ecs

import (
	"github.com/phanxgames/entropy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// PointEventType is the Donburi event type for entropy registry events.
var PointEventType = events.NewEventType[entropy.PointEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to PointEventType and delivered on ProcessEvents.
func NewDonburiSink(world donburi.World) entropy.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event entropy.PointEvent) {
	PointEventType.Publish(s.world, event)
}

// PointData is the component attached to mirrored registry points.
type PointData struct {
	Registry entropy.RegistryKind
	Index    int
	Point    entropy.Point
}

// PointComponent holds a mirrored registry point.
var PointComponent = donburi.NewComponentType[PointData]()

var pointQuery = donburi.NewQuery(filter.Contains(PointComponent))

// Mirror keeps one entity per spawner and target. It resyncs whenever a
// point event is processed, so it stays current as long as the world's
// events are processed after engine mutations.
type Mirror struct {
	world  donburi.World
	engine *entropy.Engine
}

// NewMirror creates the mirror entities and subscribes to PointEventType.
func NewMirror(world donburi.World, engine *entropy.Engine) *Mirror {
	m := &Mirror{world: world, engine: engine}
	PointEventType.Subscribe(world, m.onEvent)
	m.Sync()
	return m
}

func (m *Mirror) onEvent(_ donburi.World, _ entropy.PointEvent) {
	m.Sync()
}

// Sync replaces every mirrored entity with the engine's current registries.
func (m *Mirror) Sync() {
	var stale []donburi.Entity
	pointQuery.Each(m.world, func(entry *donburi.Entry) {
		stale = append(stale, entry.Entity())
	})
	for _, e := range stale {
		m.world.Remove(e)
	}
	m.create(entropy.Spawners, m.engine.Spawners())
	m.create(entropy.Targets, m.engine.Targets())
}

func (m *Mirror) create(kind entropy.RegistryKind, points []entropy.Point) {
	for i, p := range points {
		entry := m.world.Entry(m.world.Create(PointComponent))
		PointComponent.SetValue(entry, PointData{Registry: kind, Index: i, Point: p})
	}
}

// Points returns the mirrored points of one registry in index order.
func (m *Mirror) Points(kind entropy.RegistryKind) []entropy.Point {
	var out []entropy.Point
	pointQuery.Each(m.world, func(entry *donburi.Entry) {
		d := PointComponent.Get(entry)
		if d.Registry != kind {
			return
		}
		for len(out) <= d.Index {
			out = append(out, entropy.Point{})
		}
		out[d.Index] = d.Point
	})
	return out
}
