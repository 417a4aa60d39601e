package barnes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Grid is a gridded field aligned to a pair of axes. Values has one row
// per longitude and one column per latitude.
type Grid struct {
	Lon    []float64
	Lat    []float64
	Values *mat.Dense
}

func NewGrid(axes Axes) *Grid {
	numLon, numLat := axes.Dims()
	return &Grid{
		Lon:    append([]float64(nil), axes.Lon...),
		Lat:    append([]float64(nil), axes.Lat...),
		Values: mat.NewDense(numLon, numLat, nil),
	}
}

// NewGridFromRows builds a grid from rows[numLon][numLat].
func NewGridFromRows(axes Axes, rows [][]float64) (*Grid, error) {
	if err := axes.Validate(); err != nil {
		return nil, err
	}
	numLon, numLat := axes.Dims()
	if len(rows) != numLon {
		return nil, fmt.Errorf("%w: grid has %d rows, expected %d", ErrInvalidInput, len(rows), numLon)
	}
	grid := NewGrid(axes)
	for i, row := range rows {
		if len(row) != numLat {
			return nil, fmt.Errorf("%w: grid row %d has %d values, expected %d", ErrInvalidInput, i, len(row), numLat)
		}
		grid.Values.SetRow(i, row)
	}
	return grid, nil
}

func (g *Grid) Axes() Axes {
	return Axes{Lon: g.Lon, Lat: g.Lat}
}

func (g *Grid) Dims() (numLon, numLat int) {
	return g.Values.Dims()
}

func (g *Grid) At(i, j int) float64 {
	return g.Values.At(i, j)
}

// Rows copies the values out as [numLon][numLat].
func (g *Grid) Rows() [][]float64 {
	numLon, _ := g.Dims()
	rows := make([][]float64, numLon)
	for i := range rows {
		rows[i] = mat.Row(nil, i, g.Values)
	}
	return rows
}

func (g *Grid) Minimum() float64 {
	min := math.NaN()
	for _, v := range g.Values.RawMatrix().Data {
		if !math.IsNaN(v) && (math.IsNaN(min) || v < min) {
			min = v
		}
	}
	return min
}

func (g *Grid) Maximum() float64 {
	max := math.NaN()
	for _, v := range g.Values.RawMatrix().Data {
		if !math.IsNaN(v) && (math.IsNaN(max) || v > max) {
			max = v
		}
	}
	return max
}

func (g *Grid) GetRange() float64 {
	return g.Maximum() - g.Minimum()
}

// ValueAt resamples the grid at an arbitrary, possibly off-grid, position.
func (g *Grid) ValueAt(lon, lat float64) float64 {
	p := g.Axes().GridUnits(lon, lat)
	return Scinex(g.Values, p[0], p[1])
}
