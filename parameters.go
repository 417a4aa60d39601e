package barnes

import (
	"fmt"
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

// AnalysisParameters are the grid and scale length recommended for a
// domain and station count. See RecommendedParameters.
type AnalysisParameters struct {
	// GridX and GridY are the grid spacing in degrees.
	GridX float64 `json:"gridX"`
	GridY float64 `json:"gridY"`
	// ScaleLength is the Gaussian scale length in grid units.
	ScaleLength float64 `json:"scaleLength"`
	// RandomDataSpacing is the mean station spacing (km) if stations
	// were randomly distributed.
	RandomDataSpacing float64 `json:"randomDataSpacing"`

	Lon []float64 `json:"lon"`
	Lat []float64 `json:"lat"`
}

func (p AnalysisParameters) Axes() Axes {
	return Axes{
		Lon: append([]float64(nil), p.Lon...),
		Lat: append([]float64(nil), p.Lat...),
	}
}

// Deg2Km converts the extent of bounds to kilometres along each axis.
// Positions are taken to be metres already, so this is a plain /1000.
func Deg2Km(bounds vec2d.Rect) (kmX, kmY float64) {
	return (bounds.Max[0] - bounds.Min[0]) / 1000.0, (bounds.Max[1] - bounds.Min[1]) / 1000.0
}

// RecommendedParameters derives grid spacing and scale length from the
// random data spacing of len(obs) stations over bounds (Barnes 1994):
//
//	spacing = sqrt(kmX*kmY) * (1+sqrt(N)) / (N-1)
//
// The grid spacing is 0.3*spacing rounded to 0.01 degrees and the scale
// length is the spacing itself.
func RecommendedParameters(bounds vec2d.Rect, obs Observations) (AnalysisParameters, error) {
	n := len(obs)
	if n < 2 {
		return AnalysisParameters{}, fmt.Errorf("%w: need at least 2 observations, got %d", ErrInsufficientData, n)
	}

	degreesX := bounds.Max[0] - bounds.Min[0]
	degreesY := bounds.Max[1] - bounds.Min[1]
	if !(degreesX > 0) || !(degreesY > 0) || math.IsInf(degreesX, 0) || math.IsInf(degreesY, 0) {
		return AnalysisParameters{}, fmt.Errorf("%w: empty bounding box %v", ErrInvalidInput, bounds)
	}

	kmX, kmY := Deg2Km(bounds)
	kmX, kmY = math.Abs(kmX), math.Abs(kmY)

	degreesPerKmX := degreesX / kmX
	degreesPerKmY := degreesY / kmY

	randomDataSpacing := math.Sqrt(kmX*kmY) * ((1.0 + math.Sqrt(float64(n))) / (float64(n) - 1.0))
	scaleLengthDeg := randomDataSpacing * degreesPerKmX
	gridSpace := randomDataSpacing * 0.3

	gridX := roundHundredths(gridSpace * degreesPerKmX)
	gridY := roundHundredths(gridSpace * degreesPerKmY)
	if !(gridX > 0) || !(gridY > 0) {
		return AnalysisParameters{}, fmt.Errorf("%w: grid spacing rounds to zero (%g x %g deg)",
			ErrInvalidInput, gridSpace*degreesPerKmX, gridSpace*degreesPerKmY)
	}

	return AnalysisParameters{
		GridX:             gridX,
		GridY:             gridY,
		ScaleLength:       scaleLengthDeg / gridX,
		RandomDataSpacing: randomDataSpacing,
		Lon:               RecommendedAxis(bounds.Min[0], bounds.Max[0], gridX),
		Lat:               RecommendedAxis(bounds.Min[1], bounds.Max[1], gridY),
	}, nil
}

// roundHundredths rounds half up to 0.01.
func roundHundredths(x float64) float64 {
	return math.Floor(x*100.0+0.5) / 100.0
}
