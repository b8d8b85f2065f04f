package entropy

// EventSink is the interface for optional event integration (for example the
// Donburi adapter in entropy/ecs). When set on an Engine, registry changes
// are forwarded to it.
type EventSink interface {
	EmitEvent(event PointEvent)
}

// EventType identifies a kind of registry event.
type EventType uint8

const (
	EventPointAdded     EventType = iota // a point was appended to a registry
	EventPointRemoved                    // points were removed by coordinate
	EventPositionsReset                  // persistence cleared and registries reloaded
	EventPositionsSaved                  // registries exported to the downloader
)

// EventSource identifies who caused a mutation.
type EventSource uint8

const (
	SourceAPI      EventSource = iota // a public Engine method
	SourceListener                    // a keyboard-gated click
)

// PointEvent carries registry change data.
type PointEvent struct {
	Type     EventType
	Source   EventSource
	Registry RegistryKind
	Point    Point
	// Count is the number of points affected: 1 for adds, the number of
	// matches for removals, and the registry size for resets.
	Count int
	// Persisted reports whether the change was written through to storage.
	Persisted bool
}
