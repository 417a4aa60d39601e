package barnes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendedAxis(t *testing.T) {
	a := assert.New(t)

	a.Equal([]float64{0, 0.25, 0.5, 0.75, 1}, RecommendedAxis(0, 1, 0.25))
	// the final partial cell is covered
	a.InDeltaSlice([]float64{0, 0.3, 0.6, 0.9, 1.2}, RecommendedAxis(0, 1, 0.3), 1e-12)
	a.Equal([]float64{5}, RecommendedAxis(5, 5, 1))

	a.Nil(RecommendedAxis(0, 1, 0))
	a.Nil(RecommendedAxis(0, 1, -1))
	a.Nil(RecommendedAxis(1, 0, 0.1))
}

func TestAxesValidate(t *testing.T) {
	a := assert.New(t)

	a.NoError(Axes{Lon: []float64{140, 150, 160}, Lat: []float64{-60, -50, -40}}.Validate())
	a.NoError(Axes{Lon: RecommendedAxis(140, 164.6, 8.2), Lat: RecommendedAxis(-60, -35.4, 8.2)}.Validate())

	for name, axes := range map[string]Axes{
		"short lon":   {Lon: []float64{1}, Lat: []float64{0, 1}},
		"empty lat":   {Lon: []float64{0, 1}},
		"descending":  {Lon: []float64{0, 1}, Lat: []float64{-40, -50, -60}},
		"repeated":    {Lon: []float64{0, 0, 1}, Lat: []float64{0, 1}},
		"non-uniform": {Lon: []float64{0, 1, 2, 4}, Lat: []float64{0, 1}},
	} {
		a.ErrorIs(axes.Validate(), ErrInvalidInput, name)
	}
}

func TestAxesGridUnits(t *testing.T) {
	a := assert.New(t)

	axes := Axes{Lon: []float64{140, 150, 160}, Lat: []float64{-60, -50, -40}}
	dx, dy := axes.Spacing()
	a.Equal(10.0, dx)
	a.Equal(10.0, dy)

	p := axes.GridUnits(155, -45)
	a.InDelta(1.5, p[0], 1e-12)
	a.InDelta(1.5, p[1], 1e-12)

	obs, err := NewObservations([]float64{140, 160, 130}, []float64{-40, -60, -65}, []float64{1, 2, 3})
	require.NoError(t, err)
	gu := gridUnits(axes, obs)
	a.InDeltaSlice([]float64{0, 2}, gu[0][:], 1e-12)
	a.InDeltaSlice([]float64{2, 0}, gu[1][:], 1e-12)
	a.InDeltaSlice([]float64{-1, -0.5}, gu[2][:], 1e-12)
}
