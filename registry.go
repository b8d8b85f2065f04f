package entropy

// RegistryKind names one of the two point collections.
type RegistryKind uint8

const (
	Spawners RegistryKind = iota // points where particles originate
	Targets                      // points particles steer toward
)

// String returns the JSON and storage name of the registry.
func (k RegistryKind) String() string {
	if k == Targets {
		return "targets"
	}
	return "spawners"
}

// Registry holds the spawner and target collections. Points keep insertion
// order; removal is by exact coordinate equality.
type Registry struct {
	lists [2][]Point
}

// NewRegistry creates a registry seeded with copies of spawners and targets.
func NewRegistry(spawners, targets []Point) *Registry {
	r := &Registry{}
	r.Set(Spawners, spawners)
	r.Set(Targets, targets)
	return r
}

// Add appends p to the collection.
func (r *Registry) Add(kind RegistryKind, p Point) {
	r.lists[kind] = append(r.lists[kind], p)
}

// RemoveAt removes every point exactly equal to p and returns how many were
// removed. Other points keep their relative order.
func (r *Registry) RemoveAt(kind RegistryKind, p Point) int {
	list := r.lists[kind]
	kept := list[:0]
	for _, q := range list {
		if q != p {
			kept = append(kept, q)
		}
	}
	removed := len(list) - len(kept)
	clear(list[len(kept):])
	r.lists[kind] = kept
	return removed
}

// Set replaces the collection with a copy of points.
func (r *Registry) Set(kind RegistryKind, points []Point) {
	r.lists[kind] = append([]Point(nil), points...)
}

// Points returns a copy of the collection.
func (r *Registry) Points(kind RegistryKind) []Point {
	return append([]Point(nil), r.lists[kind]...)
}

// Len returns the number of points in the collection.
func (r *Registry) Len(kind RegistryKind) int {
	return len(r.lists[kind])
}

// At returns the i-th point of the collection.
func (r *Registry) At(kind RegistryKind, i int) Point {
	return r.lists[kind][i]
}

// view returns the backing slice. Callers MUST NOT mutate or retain it.
func (r *Registry) view(kind RegistryKind) []Point {
	return r.lists[kind]
}
