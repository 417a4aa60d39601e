package barnes

import (
	vec2d "github.com/flywave/go3d/float64/vec2"
)

// radii caches the squared grid-unit distance from every grid point to
// every observation. It is built once per analysis and only read after.
type radii struct {
	numLat  int
	numData int
	dist2   []float64
}

func newRadii(numLon, numLat int, gu []vec2d.T) *radii {
	r := &radii{
		numLat:  numLat,
		numData: len(gu),
		dist2:   make([]float64, numLon*numLat*len(gu)),
	}
	for i := 0; i < numLon; i++ {
		for j := 0; j < numLat; j++ {
			cell := r.cell(i, j)
			for k := range gu {
				cell[k] = distance2(gu[k], i, j)
			}
		}
	}
	return r
}

// cell returns the distances for grid point (i, j), indexed by observation.
func (r *radii) cell(i, j int) []float64 {
	off := (i*r.numLat + j) * r.numData
	return r.dist2[off : off+r.numData]
}

func distance2(p vec2d.T, i, j int) float64 {
	dx := p[0] - float64(i)
	dy := p[1] - float64(j)
	return dx*dx + dy*dy
}
