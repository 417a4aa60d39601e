// Package features reads observations for a Barnes analysis from GeoJSON
// point features. The value of each observation is the third (Z)
// coordinate of its point; points without one are read as missing.
package features

import (
	"fmt"
	"math"

	"github.com/flywave/go-geom"
	"github.com/flywave/go-geom/general"
	vec3d "github.com/flywave/go3d/float64/vec3"

	barnes "github.com/flywave/go-barnes"
)

func Unmarshal(data []byte) (barnes.Observations, error) {
	fc, err := general.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	return Observations(fc), nil
}

// Observations extracts every Point and MultiPoint position of fc.
// Other geometry types are skipped.
func Observations(fc *geom.FeatureCollection) barnes.Observations {
	ret := make(barnes.Observations, 0, len(fc.Features))

	for _, feas := range fc.Features {
		switch g := feas.Geometry.(type) {
		case *general.Point:
			ret = append(ret, vec3d.T{g.X(), g.Y(), value(g.Data())})
		case *general.MultiPoint:
			for _, pos := range g.Points() {
				ret = append(ret, vec3d.T{pos.X(), pos.Y(), value(pos.Data())})
			}
		}
	}
	return ret
}

func value(data []float64) float64 {
	if len(data) < 3 {
		return math.NaN()
	}
	return data[2]
}
