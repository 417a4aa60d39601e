package barnes

import (
	vec2d "github.com/flywave/go3d/float64/vec2"
)

// gridUnits maps every observation onto fractional grid indices relative
// to the lowest longitude and latitude of axes.
func gridUnits(axes Axes, obs Observations) []vec2d.T {
	dx, dy := axes.Spacing()
	origin := axes.Origin()

	gu := make([]vec2d.T, len(obs))
	for k := range obs {
		gu[k] = vec2d.T{(obs[k][0] - origin[0]) / dx, (obs[k][1] - origin[1]) / dy}
	}
	return gu
}
