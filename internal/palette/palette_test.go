package palette

import "testing"

func TestHuePrimaries(t *testing.T) {
	if got := Hue(0); got != (RGB{255, 0, 0}) {
		t.Errorf("Hue(0) = %v, want pure red", got)
	}

	// 256/3 ~ 85 lands close to green, 171 close to blue.
	if g := Hue(85); g.G != 255 || g.R > 8 || g.B != 0 {
		t.Errorf("Hue(85) = %v, want green dominant", g)
	}
	if b := Hue(171); b.B != 255 || b.R > 8 || b.G != 0 {
		t.Errorf("Hue(171) = %v, want blue dominant", b)
	}
}

func TestFullValueWheel(t *testing.T) {
	for h := 0; h < 256; h++ {
		c := Hue(uint8(h))
		max := c.R
		if c.G > max {
			max = c.G
		}
		if c.B > max {
			max = c.B
		}
		if max != 255 {
			t.Fatalf("hue %d: brightest channel %d, want 255", h, max)
		}
	}
}

func TestScale(t *testing.T) {
	c := RGB{200, 100, 50}

	tests := []struct {
		name string
		w    int
		want RGB
	}{
		{"zero", 0, Black},
		{"negative", -3, Black},
		{"half", 128, RGB{100, 50, 25}},
		{"full", 256, c},
		{"over", 999, c},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Scale(tt.w); got != tt.want {
				t.Errorf("Scale(%d) = %v, want %v", tt.w, got, tt.want)
			}
		})
	}
}

func TestAddSaturates(t *testing.T) {
	got := RGB{200, 10, 0}.Add(RGB{100, 10, 0})
	if got != (RGB{255, 20, 0}) {
		t.Errorf("Add = %v", got)
	}
}

func TestLuma(t *testing.T) {
	if l := (RGB{255, 255, 255}).Luma(); l != 255 {
		t.Errorf("white luma = %f", l)
	}
	if l := Black.Luma(); l != 0 {
		t.Errorf("black luma = %f", l)
	}
}
