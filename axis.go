package barnes

import (
	"fmt"
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"gonum.org/v1/gonum/floats"
)

// uniformTolerance is the relative deviation from the first interval
// an axis step may show and still count as uniform.
const uniformTolerance = 1e-6

// Axes are the ascending, uniformly spaced coordinates of a target grid.
type Axes struct {
	Lon []float64 `json:"lon"`
	Lat []float64 `json:"lat"`
}

func (a Axes) Dims() (numLon, numLat int) {
	return len(a.Lon), len(a.Lat)
}

// Spacing is inferred from the first two entries of each axis.
func (a Axes) Spacing() (dx, dy float64) {
	return math.Abs(a.Lon[1] - a.Lon[0]), math.Abs(a.Lat[1] - a.Lat[0])
}

func (a Axes) Origin() vec2d.T {
	return vec2d.T{floats.Min(a.Lon), floats.Min(a.Lat)}
}

// GridUnits maps a lon/lat position onto fractional 0-based grid indices.
func (a Axes) GridUnits(lon, lat float64) vec2d.T {
	dx, dy := a.Spacing()
	origin := a.Origin()
	return vec2d.T{(lon - origin[0]) / dx, (lat - origin[1]) / dy}
}

func (a Axes) Validate() error {
	if err := validateAxis("longitude", a.Lon); err != nil {
		return err
	}
	return validateAxis("latitude", a.Lat)
}

func validateAxis(name string, axis []float64) error {
	if len(axis) < 2 {
		return fmt.Errorf("%w: %s axis needs at least 2 points, got %d", ErrInvalidInput, name, len(axis))
	}
	step := axis[1] - axis[0]
	if !(step > 0) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: %s axis must be strictly ascending", ErrInvalidInput, name)
	}
	tol := uniformTolerance * step
	for i := 2; i < len(axis); i++ {
		if d := axis[i] - axis[i-1]; !(math.Abs(d-step) <= tol) {
			return fmt.Errorf("%w: %s axis is not uniform at index %d (step %g, want %g)", ErrInvalidInput, name, i, d, step)
		}
	}
	return nil
}

// RecommendedAxis returns ceil((max-min)/spacing)+1 points starting at min.
// The last point may overshoot max by less than one step.
func RecommendedAxis(min, max, spacing float64) []float64 {
	if !(spacing > 0) || !(max >= min) {
		return nil
	}
	n := int(math.Ceil((max-min)/spacing)) + 1
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = min + float64(i)*spacing
	}
	return axis
}
