package domain

import "math"

const (
	ColorExcellent = "#2ecc71"
	ColorGood      = "#3498db"
	ColorAverage   = "#f39c12"
	ColorWeak      = "#e74c3c"

	ColorFollowerQuality = "#9b59b6"
)

func ViralReachLabel(reach int64) string {
	switch {
	case reach >= 50:
		return "Excellent"
	case reach >= 25:
		return "Good"
	case reach >= 10:
		return "Average"
	default:
		return "Needs Work"
	}
}

func ViralReachColor(reach int64) string {
	switch {
	case reach >= 50:
		return ColorExcellent
	case reach >= 25:
		return ColorGood
	case reach >= 10:
		return ColorAverage
	default:
		return ColorWeak
	}
}

// Gauge is a circular progress widget. Geometry fields are derived by NewGauge
// and are in SVG user units.
type Gauge struct {
	Label          string
	Value          int64
	Max            int64
	Size           float64
	StrokeWidth    float64
	Color          string
	ShowPercentage bool

	Percentage    float64
	Radius        float64
	Circumference float64
	DashOffset    float64
}

func NewGauge(label string, value, maxValue int64, color string, showPercentage bool) Gauge {
	g := Gauge{
		Label:          label,
		Value:          value,
		Max:            maxValue,
		Size:           100,
		StrokeWidth:    8,
		Color:          color,
		ShowPercentage: showPercentage,
	}
	g.Percentage = FillPercentage(value, maxValue)
	g.Radius = (g.Size - g.StrokeWidth) / 2
	g.Circumference = 2 * math.Pi * g.Radius
	g.DashOffset = g.Circumference - g.Percentage/100*g.Circumference
	return g
}

// FillPercentage is value/maxValue as a percentage, capped at 100. A non-positive
// maxValue yields an empty gauge.
func FillPercentage(value, maxValue int64) float64 {
	if maxValue <= 0 || value <= 0 {
		return 0
	}
	return math.Min(float64(value)/float64(maxValue)*100, 100)
}

// Center is the gauge's center coordinate on both axes.
func (g Gauge) Center() float64 {
	return g.Size / 2
}

// Display is the text shown in the middle of the gauge.
func (g Gauge) Display() int64 {
	if g.ShowPercentage {
		return int64(math.Round(g.Percentage))
	}
	return g.Value
}
