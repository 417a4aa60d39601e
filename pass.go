package barnes

import (
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"gonum.org/v1/gonum/mat"
)

// kernel holds the state shared by every pass of one analysis.
type kernel struct {
	numLon  int
	numLat  int
	gu      []vec2d.T
	values  []float64
	radii   *radii
	workers int
}

func newKernel(axes Axes, obs Observations, useRadii bool, workers int) *kernel {
	numLon, numLat := axes.Dims()
	kn := &kernel{
		numLon:  numLon,
		numLat:  numLat,
		gu:      gridUnits(axes, obs),
		values:  obs.Values(),
		workers: workers,
	}
	if useRadii {
		kn.radii = newRadii(numLon, numLat, kn.gu)
	}
	return kn
}

// accumulate returns the Gaussian weighted sum of q and the sum of the
// weights at grid point (i, j). NaN entries of q and observations at or
// beyond the radius of influence are skipped.
func (kn *kernel) accumulate(i, j int, q []float64, scaleLength2, roi2 float64) (sum, sumWeights float64) {
	var cached []float64
	if kn.radii != nil {
		cached = kn.radii.cell(i, j)
	}
	for k, qk := range q {
		var r2 float64
		if cached != nil {
			r2 = cached[k]
		} else {
			r2 = distance2(kn.gu[k], i, j)
		}
		if r2 < roi2 && !math.IsNaN(qk) {
			w := weight(r2, scaleLength2)
			sumWeights += w
			sum += qk * w
		}
	}
	return sum, sumWeights
}

// passOne grids the raw values. Grid points with no observation inside
// the radius of influence take the mean of all values.
func (kn *kernel) passOne(scaleLength float64) *mat.Dense {
	grid := mat.NewDense(kn.numLon, kn.numLat, nil)
	scaleLength2 := pow2(scaleLength)
	roi2 := radiusOfInfluence2(scaleLength2)
	gridMean := getAverageExceptForNaN(kn.values)

	forEachRow(kn.numLon, kn.workers, func(i int) {
		for j := 0; j < kn.numLat; j++ {
			sum, sumWeights := kn.accumulate(i, j, kn.values, scaleLength2, roi2)
			v := gridMean
			if sumWeights > epsilon {
				v = sum / sumWeights
			}
			grid.Set(i, j, v)
		}
	})
	return grid
}

// correct adds the weighted average of the residuals to every grid point
// that has enough weight; other points are left unchanged.
func (kn *kernel) correct(grid *mat.Dense, residuals []float64, scaleLength float64) {
	scaleLength2 := pow2(scaleLength)
	roi2 := radiusOfInfluence2(scaleLength2)

	forEachRow(kn.numLon, kn.workers, func(i int) {
		for j := 0; j < kn.numLat; j++ {
			sum, sumWeights := kn.accumulate(i, j, residuals, scaleLength2, roi2)
			if sumWeights > epsilon {
				grid.Set(i, j, grid.At(i, j)+sum/sumWeights)
			}
		}
	})
}

// residuals fills dst with observed minus analysed value at every
// observation location.
func (kn *kernel) residuals(grid mat.Matrix, dst []float64) []float64 {
	for k, p := range kn.gu {
		dst[k] = kn.values[k] - Scinex(grid, p[0], p[1])
	}
	return dst
}

// fillNaN copies a first guess, replacing missing cells with value.
func fillNaN(firstGuess mat.Matrix, value float64) *mat.Dense {
	grid := mat.DenseCopyOf(firstGuess)
	rows, cols := grid.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if math.IsNaN(grid.At(i, j)) {
				grid.Set(i, j, value)
			}
		}
	}
	return grid
}
