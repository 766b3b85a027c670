package colour

import (
	"math"
	"testing"
)

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b RGB
		want float64
	}{
		{name: "identical", a: RGB{R: 10, G: 20, B: 30}, b: RGB{R: 10, G: 20, B: 30}, want: 0},
		{name: "single channel", a: RGB{}, b: RGB{R: 3}, want: 3},
		{name: "pythagorean", a: RGB{}, b: RGB{R: 3, G: 4}, want: 5},
		{name: "cube diagonal", a: RGB{}, b: RGB{R: 255, G: 255, B: 255}, want: math.Sqrt(3 * 255 * 255)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EuclideanDistance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EuclideanDistance() = %f, want %f", got, tt.want)
			}
			if got := EuclideanDistance(tt.b, tt.a); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EuclideanDistance() is not symmetric: %f", got)
			}
		})
	}
}

func TestLabDistance(t *testing.T) {
	black, white, grey := RGB{}, RGB{R: 255, G: 255, B: 255}, RGB{R: 128, G: 128, B: 128}

	if d := LabDistance(black, black); d != 0 {
		t.Errorf("LabDistance(black, black) = %f, want 0", d)
	}
	if LabDistance(black, grey) >= LabDistance(black, white) {
		t.Error("Grey should be closer to black than white is")
	}
}

func TestMetricByName(t *testing.T) {
	for _, name := range []string{"", "rgb", "RGB", "lab"} {
		if m, err := MetricByName(name); err != nil || m == nil {
			t.Errorf("MetricByName(%q) = %v, %v", name, m, err)
		}
	}

	if _, err := MetricByName("cmyk"); err == nil {
		t.Error("MetricByName(cmyk) should fail")
	}
}
