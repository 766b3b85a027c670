package colour

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Metric measures how far apart two colours are. Smaller is closer.
type Metric func(a, b RGB) float64

// Metric names accepted by MetricByName.
const (
	MetricRGB = "rgb"
	MetricLab = "lab"
)

// EuclideanDistance is the straight-line distance between two colours in RGB space.
func EuclideanDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// LabDistance is the distance between two colours in CIE L*a*b* space.
func LabDistance(a, b RGB) float64 {
	return toColorful(a).DistanceLab(toColorful(b))
}

// MetricByName returns the metric registered under name.
func MetricByName(name string) (Metric, error) {
	switch strings.ToLower(name) {
	case "", MetricRGB:
		return EuclideanDistance, nil
	case MetricLab:
		return LabDistance, nil
	default:
		return nil, fmt.Errorf("unknown distance metric: %s (valid: %s, %s)", name, MetricRGB, MetricLab)
	}
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
