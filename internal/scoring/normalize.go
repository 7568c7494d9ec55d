package scoring

import "math"

const (
	normCenterMean  = 40.0
	normCenterScale = 50.0
	normSpreadScale = 15.0
	normSpreadDenom = 25.0
)

// Normalize applies the affine transform centered at (mean=40, stddev=25)
// onto (center=50, scale=15), then clamps to [0,100] and rounds to two
// decimal places, per spec.md §4.4.
func Normalize(baseScore int) float64 {
	raw := normCenterScale + normSpreadScale*(float64(baseScore)-normCenterMean)/normSpreadDenom
	clamped := math.Max(0, math.Min(100, raw))
	return math.Round(clamped*100) / 100
}
