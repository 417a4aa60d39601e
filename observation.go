package barnes

import (
	"fmt"

	vec2d "github.com/flywave/go3d/float64/vec2"
	vec3d "github.com/flywave/go3d/float64/vec3"
)

// Observations holds scattered data as {longitude, latitude, value}.
// A NaN value marks a missing observation; it keeps its index but never
// contributes to a weighted sum.
type Observations []vec3d.T

func NewObservations(lon, lat, values []float64) (Observations, error) {
	if len(lon) != len(lat) || len(lon) != len(values) {
		return nil, fmt.Errorf("%w: observation arrays differ in length (lon %d, lat %d, values %d)",
			ErrInvalidInput, len(lon), len(lat), len(values))
	}
	obs := make(Observations, len(lon))
	for k := range lon {
		obs[k] = vec3d.T{lon[k], lat[k], values[k]}
	}
	return obs, nil
}

func (o Observations) Len() int {
	return len(o)
}

func (o Observations) Values() []float64 {
	values := make([]float64, len(o))
	for k := range o {
		values[k] = o[k][2]
	}
	return values
}

// Mean is the arithmetic mean of the non-missing values.
func (o Observations) Mean() float64 {
	return getAverageExceptForNaN(o.Values())
}

// Bounds returns the lon/lat extent of the observations.
func (o Observations) Bounds() vec2d.Rect {
	r := vec2d.Rect{Min: vec2d.MaxVal, Max: vec2d.MinVal}
	for k := range o {
		p := vec2d.T{o[k][0], o[k][1]}
		r.Extend(&p)
	}
	return r
}
