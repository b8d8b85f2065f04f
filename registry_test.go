package entropy

import "testing"

func TestRegistryAddKeepsOrder(t *testing.T) {
	r := NewRegistry(nil, nil)
	r.Add(Targets, Point{1, 1})
	r.Add(Targets, Point{2, 2})
	r.Add(Spawners, Point{3, 3})

	if r.Len(Targets) != 2 || r.Len(Spawners) != 1 {
		t.Fatalf("lens = %d, %d", r.Len(Targets), r.Len(Spawners))
	}
	if r.At(Targets, 0) != (Point{1, 1}) || r.At(Targets, 1) != (Point{2, 2}) {
		t.Errorf("targets = %v", r.Points(Targets))
	}
}

func TestRegistryRemoveAt(t *testing.T) {
	tests := []struct {
		name    string
		points  []Point
		remove  Point
		removed int
		want    []Point
	}{
		{"single", []Point{{1, 1}, {2, 2}}, Point{1, 1}, 1, []Point{{2, 2}}},
		{"duplicates", []Point{{1, 1}, {2, 2}, {1, 1}, {3, 3}}, Point{1, 1}, 2, []Point{{2, 2}, {3, 3}}},
		{"absent", []Point{{1, 1}}, Point{1, 1.0001}, 0, []Point{{1, 1}}},
		{"empty", nil, Point{0, 0}, 0, nil},
		{"all", []Point{{5, 5}, {5, 5}}, Point{5, 5}, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(tt.points, nil)
			if n := r.RemoveAt(Spawners, tt.remove); n != tt.removed {
				t.Errorf("removed %d, want %d", n, tt.removed)
			}
			got := r.Points(Spawners)
			if len(got) != len(tt.want) {
				t.Fatalf("points = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("points = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestRegistryCopies(t *testing.T) {
	seed := []Point{{1, 1}}
	r := NewRegistry(seed, nil)
	seed[0] = Point{9, 9}
	if r.At(Spawners, 0) != (Point{1, 1}) {
		t.Error("NewRegistry kept the caller's slice")
	}

	pts := r.Points(Spawners)
	pts[0] = Point{8, 8}
	if r.At(Spawners, 0) != (Point{1, 1}) {
		t.Error("Points exposed the backing slice")
	}

	r.Set(Targets, pts)
	pts[0] = Point{7, 7}
	if r.At(Targets, 0) != (Point{8, 8}) {
		t.Error("Set kept the caller's slice")
	}
}

func TestRegistryKindString(t *testing.T) {
	if Spawners.String() != "spawners" || Targets.String() != "targets" {
		t.Errorf("got %q, %q", Spawners, Targets)
	}
}
