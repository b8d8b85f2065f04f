package entropy

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"red", Color{1, 0, 0, 1}},
		{"White", Color{1, 1, 1, 1}},
		{"transparent", ColorTransparent},
		{"#fff", Color{1, 1, 1, 1}},
		{"#000f", Color{0, 0, 0, 1}},
		{"#ff0000", Color{1, 0, 0, 1}},
		{"#00ff0080", Color{0, 1, 0, 128.0 / 255}},
		{"  #0000ff  ", Color{0, 0, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			assertNear(t, "R", got.R, tt.want.R)
			assertNear(t, "G", got.G, tt.want.G)
			assertNear(t, "B", got.B, tt.want.B)
			assertNear(t, "A", got.A, tt.want.A)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#12345", "#ggg", "#1234567"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) succeeded, want error", in)
		}
	}
}

func TestColorHex(t *testing.T) {
	if got := (Color{1, 0, 0, 1}).Hex(); got != "#ff0000" {
		t.Errorf("Hex = %q, want #ff0000", got)
	}
	if got := (Color{0, 0, 1, 0.5}).Hex(); got != "#0000ff80" {
		t.Errorf("Hex = %q, want #0000ff80", got)
	}
}

func TestColorRGBAPremultiplied(t *testing.T) {
	r, g, b, a := Color{1, 0.5, 0, 0.5}.RGBA()
	if a != 0x8000 {
		t.Errorf("a = %#x, want 0x8000", a)
	}
	if r > a || g > a || b != 0 {
		t.Errorf("components not premultiplied: %#x %#x %#x %#x", r, g, b, a)
	}
}

func TestRandomColor(t *testing.T) {
	rng := testRand()
	for i := 0; i < 1000; i++ {
		c := RandomColor(rng)
		if c.A != 1 {
			t.Fatalf("alpha = %v, want 1", c.A)
		}
		// #100 is the darkest: the red nibble is never zero.
		if c.R < 1.0/15-epsilon {
			t.Fatalf("R = %v, want >= 1/15", c.R)
		}
	}
}
