package barnes

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// fractions closer than this to the lower grid line snap onto it.
const snap = 1.0e-06

// Scinex returns the value of field at the fractional 0-based grid
// position (gm, gn), where gm indexes rows and gn columns. Points within
// the grid are interpolated: 4-point Lagrangian cubic in the interior,
// bilinear within one cell of the boundary. Points outside the grid are
// extrapolated linearly from the two outermost rows or columns.
//
// field must be at least 2x2.
func Scinex(field mat.Matrix, gm, gn float64) float64 {
	if math.IsNaN(gm) || math.IsNaN(gn) {
		return math.NaN()
	}

	rows, cols := field.Dims()
	ms, ns := rows-1, cols-1
	mmax, nmax := float64(ms), float64(ns)

	dgm := math.Floor(gm)
	dgn := math.Floor(gn)
	im, jn := int(dgm), int(dgn)
	fm, fn := gm-dgm, gn-dgn
	if fm < snap {
		fm = 0
	}
	if fn < snap {
		fn = 0
	}

	at := field.At

	switch {
	case gm >= mmax:
		e := gm - mmax
		switch {
		case gn >= nmax:
			t1 := e * (at(ms, ns) - at(ms-1, ns))
			t2 := (gn - nmax) * (at(ms, ns) - at(ms, ns-1))
			return at(ms, ns) + t1 + t2
		case gn < 0:
			t1 := e * (at(ms, 0) - at(ms-1, 0))
			t2 := -gn * (at(ms, 0) - at(ms, 1))
			return at(ms, 0) + t1 + t2
		default:
			p := lerp(at(ms, jn), at(ms, jn+1), fn)
			h := lerp(at(ms-1, jn), at(ms-1, jn+1), fn)
			return p + e*(p-h)
		}
	case gm < 0:
		e := -gm
		switch {
		case gn >= nmax:
			t1 := e * (at(0, ns) - at(1, ns))
			t2 := (gn - nmax) * (at(0, ns) - at(0, ns-1))
			return at(0, ns) + t1 + t2
		case gn < 0:
			t1 := e * (at(0, 0) - at(1, 0))
			t2 := -gn * (at(0, 0) - at(0, 1))
			return at(0, 0) + t1 + t2
		default:
			p := lerp(at(0, jn), at(0, jn+1), fn)
			h := lerp(at(1, jn), at(1, jn+1), fn)
			return p - e*(h-p)
		}
	case gn >= nmax:
		e := gn - nmax
		p := lerp(at(im, ns), at(im+1, ns), fm)
		h := lerp(at(im, ns-1), at(im+1, ns-1), fm)
		return p + e*(p-h)
	case gn < 0:
		e := -gn
		p := lerp(at(im, 0), at(im+1, 0), fm)
		h := lerp(at(im, 1), at(im+1, 1), fm)
		return p - e*(h-p)
	case gm >= mmax-1 || gm < 1 || gn >= nmax-1 || gn < 1:
		p := lerp(at(im+1, jn), at(im+1, jn+1), fn)
		h := lerp(at(im, jn), at(im, jn+1), fn)
		return lerp(h, p, fm)
	default:
		wm := cubicWeights(fm)
		var x [4]float64
		for c := range x {
			col := jn - 1 + c
			x[c] = wm[0]*at(im-1, col) + wm[1]*at(im, col) + wm[2]*at(im+1, col) + wm[3]*at(im+2, col)
		}
		wn := cubicWeights(fn)
		return wn[0]*x[0] + wn[1]*x[1] + wn[2]*x[2] + wn[3]*x[3]
	}
}

// cubicWeights are the Lagrange basis weights for nodes -1, 0, 1, 2
// evaluated at f in [0, 1). At f == 0 they are exactly {0, 1, 0, 0}.
func cubicWeights(f float64) [4]float64 {
	s1 := f + 1
	s2 := f
	s3 := f - 1
	s4 := f - 2
	s12 := s1 * s2
	s34 := s3 * s4
	return [4]float64{
		-s2 * s34 / 6,
		s1 * s34 / 2,
		-s12 * s4 / 2,
		s12 * s3 / 6,
	}
}
