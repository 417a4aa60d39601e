package barnes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func fieldOf(rows, cols int, f func(i, j float64) float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, f(float64(i), float64(j)))
		}
	}
	return m
}

func TestScinexGridNodes(t *testing.T) {
	a := assert.New(t)

	field := fieldOf(6, 5, func(i, j float64) float64 { return 10 * math.Sin(1.3*i+0.7*j) })
	for i := 0; i < 6; i++ {
		for j := 0; j < 5; j++ {
			a.Equal(field.At(i, j), Scinex(field, float64(i), float64(j)), "node (%d, %d)", i, j)
		}
	}
}

func TestScinexSnapsToLowerGridLine(t *testing.T) {
	a := assert.New(t)

	field := fieldOf(6, 5, func(i, j float64) float64 { return 10 * math.Sin(1.3*i+0.7*j) })
	a.Equal(field.At(2, 3), Scinex(field, 2+1e-7, 3+5e-7))
	a.NotEqual(field.At(2, 3), Scinex(field, 2+1e-5, 3))
}

func TestScinexLinearField(t *testing.T) {
	a := assert.New(t)

	linear := func(i, j float64) float64 { return 2*i + 3*j + 1 }
	field := fieldOf(6, 5, linear)

	points := []struct {
		name   string
		gm, gn float64
	}{
		{"interior", 2.25, 1.5},
		{"near lower edge", 0.4, 2.6},
		{"near upper edge", 4.5, 3.2},
		{"beyond upper rows", 6.5, 2.25},
		{"beyond lower rows", -1.5, 1.75},
		{"beyond upper cols", 3.5, 5.5},
		{"beyond lower cols", 1.25, -2},
		{"upper corner", 7, 6},
		{"lower corner", -1, -1},
		{"mixed corner", 6, -1.5},
		{"other mixed corner", -0.5, 4.5},
	}
	for _, p := range points {
		a.InDelta(linear(p.gm, p.gn), Scinex(field, p.gm, p.gn), 1e-12, p.name)
	}
}

func TestScinexInteriorIsCubic(t *testing.T) {
	a := assert.New(t)

	cubic := func(i, j float64) float64 { return i*i*i - 2*i + j*j*j + 0.5*j*j }
	field := fieldOf(6, 5, cubic)

	a.InDelta(cubic(2.3, 1.7), Scinex(field, 2.3, 1.7), 1e-9)
	a.InDelta(cubic(1.05, 2.95), Scinex(field, 1.05, 2.95), 1e-9)

	// within one cell of the boundary only bilinear is available
	a.NotEqual(cubic(0.5, 1.5), Scinex(field, 0.5, 1.5))
	a.InDelta(
		0.25*(cubic(0, 1)+cubic(1, 1)+cubic(0, 2)+cubic(1, 2)),
		Scinex(field, 0.5, 1.5), 1e-12)
}

func TestScinexExtrapolationFollowsSlope(t *testing.T) {
	a := assert.New(t)

	field := fieldOf(6, 5, func(i, j float64) float64 { return i*i + j })

	edge := Scinex(field, 5, 2)
	a.Greater(Scinex(field, 5.5, 2), edge)
	a.Less(Scinex(field, -0.5, 2), Scinex(field, 0, 2))
	a.Greater(Scinex(field, 2, 4.5), Scinex(field, 2, 4))
	a.Less(Scinex(field, 2, -0.5), Scinex(field, 2, 0))
	a.Greater(Scinex(field, 6, 5), field.At(5, 4))

	// slope comes from the two outermost rows only
	a.InDelta(field.At(5, 2)+0.5*(field.At(5, 2)-field.At(4, 2)), Scinex(field, 5.5, 2), 1e-12)
}

func TestScinexSmallestGrid(t *testing.T) {
	a := assert.New(t)

	field := mat.NewDense(2, 2, []float64{
		1, 2,
		3, 4,
	})
	a.Equal(1.0, Scinex(field, 0, 0))
	a.Equal(4.0, Scinex(field, 1, 1))
	a.InDelta(2.5, Scinex(field, 0.5, 0.5), 1e-12)
	a.InDelta(6.0, Scinex(field, 2, 1), 1e-12)
	a.InDelta(-1.0, Scinex(field, -1, 0), 1e-12)
}

func TestScinexNaNCoordinate(t *testing.T) {
	field := fieldOf(4, 4, func(i, j float64) float64 { return i + j })
	assert.True(t, math.IsNaN(Scinex(field, math.NaN(), 1)))
	assert.True(t, math.IsNaN(Scinex(field, 1, math.NaN())))
}

func TestCubicWeights(t *testing.T) {
	a := assert.New(t)

	a.Equal([4]float64{0, 1, 0, 0}, cubicWeights(0))
	for _, f := range []float64{0.1, 0.5, 0.9} {
		w := cubicWeights(f)
		a.InDelta(1.0, w[0]+w[1]+w[2]+w[3], 1e-12)
	}
}
