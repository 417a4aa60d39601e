package barnes

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// epsilon is both the negligible-weight threshold and the weight a single
// observation has at the radius of influence.
const epsilon = 1.0e-11

func pow2(x float64) float64 {
	return x * x
}

func lerp(value1, value2, amount float64) float64 { return value1 + (value2-value1)*amount }

// radiusOfInfluence2 is the squared distance beyond which exp(-r2/L2) < epsilon.
func radiusOfInfluence2(scaleLength2 float64) float64 {
	return -scaleLength2 * math.Log(epsilon)
}

func weight(r2, scaleLength2 float64) float64 {
	return math.Exp(-r2 / scaleLength2)
}

func exceptNaN(values []float64) []float64 {
	withValues := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			withValues = append(withValues, v)
		}
	}
	return withValues
}

// getAverageExceptForNaN returns NaN when every value is missing.
func getAverageExceptForNaN(values []float64) float64 {
	withValues := exceptNaN(values)
	if len(withValues) == 0 {
		return math.NaN()
	}
	return floats.Sum(withValues) / float64(len(withValues))
}

// RMS returns sqrt(mean(d²)) over the non-NaN differences.
func RMS(differences []float64) float64 {
	withValues := exceptNaN(differences)
	if len(withValues) == 0 {
		return math.NaN()
	}
	return floats.Norm(withValues, 2) / math.Sqrt(float64(len(withValues)))
}
