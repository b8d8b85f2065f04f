package entropy

import (
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertPoint(t *testing.T, name string, got, want Point) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestPointMath(t *testing.T) {
	p := Point{3, 4}
	assertNear(t, "Len", p.Len(), 5)
	assertPoint(t, "Add", p.Add(Point{1, 1}), Point{4, 5})
	assertPoint(t, "Sub", p.Sub(Point{1, 1}), Point{2, 3})
	assertPoint(t, "Scale", p.Scale(2), Point{6, 8})
	assertPoint(t, "Perp", p.Perp(), Point{-4, 3})
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 25, true},
		{"top-left corner", 0, 0, true},
		{"bottom-right corner", 100, 50, true},
		{"left of", -0.1, 25, false},
		{"below", 50, 50.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectExpand(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}.Expand(10)
	want := Rect{X: -10, Y: -10, Width: 120, Height: 70}
	if r != want {
		t.Errorf("Expand = %+v, want %+v", r, want)
	}
	if !r.Contains(-10, 60) || r.Contains(-10.5, 0) {
		t.Error("expanded bounds wrong")
	}
}

func TestRangeSample(t *testing.T) {
	rng := testRand()
	r := Range{Min: 2, Max: 5}
	for i := 0; i < 1000; i++ {
		v := r.Sample(rng)
		if v < 2 || v > 5 {
			t.Fatalf("Sample = %v, out of [2, 5]", v)
		}
	}
	if got := (Range{Min: 3, Max: 3}).Sample(rng); got != 3 {
		t.Errorf("degenerate Sample = %v, want 3", got)
	}
	if got := (Range{Min: 3, Max: 1}).Sample(rng); got != 3 {
		t.Errorf("inverted Sample = %v, want 3", got)
	}
}

func TestRangeSampleInt(t *testing.T) {
	rng := testRand()
	seen := map[int]bool{}
	r := Range{Min: 2, Max: 4}
	for i := 0; i < 1000; i++ {
		v := r.SampleInt(rng)
		if v < 2 || v > 4 {
			t.Fatalf("SampleInt = %d, out of [2, 4]", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("SampleInt covered %v, want 2, 3 and 4", seen)
	}
	if got := (Range{Min: 2.4, Max: 2.4}).SampleInt(rng); got != 2 {
		t.Errorf("degenerate SampleInt = %d, want 2", got)
	}
}
