package modify

import (
	"fmt"
	"math"

	"github.com/kestrelworks/tsmod/internal/table"
)

// resample interpolates ys (sampled at implicit indices 0..n-1) onto newN
// evenly spaced points spanning [0, n-1] with the kernel k. It returns an
// error when the kernel cannot be constructed for this column, so the caller
// can fall back to linear.
func resample(ys []float64, newN int, k Kind) ([]float64, error) {
	n := len(ys)
	out := make([]float64, newN)
	if n == 1 || newN == 1 {
		for i := range out {
			out[i] = ys[0]
		}
		return out, nil
	}
	step := float64(n-1) / float64(newN-1)

	var eval func(x float64) float64
	switch k {
	case LinearInterp:
		eval = func(x float64) float64 { return evalLinear(ys, x) }
	case NearestInterp:
		eval = func(x float64) float64 { return ys[clampIndex(int(math.Round(x)), n)] }
	case NextInterp:
		eval = func(x float64) float64 { return ys[clampIndex(int(math.Ceil(x)), n)] }
	case PreviousInterp:
		eval = func(x float64) float64 { return ys[clampIndex(int(math.Floor(x)), n)] }
	case PCHIP, Cubic, CubicSpline, Akima:
		h, err := newHermite(ys, k)
		if err != nil {
			return nil, err
		}
		eval = h.at
	default:
		return nil, fmt.Errorf("kind %s is not an interpolation kernel", k)
	}

	for j := 0; j < newN; j++ {
		x := float64(j) * step
		if j == newN-1 {
			// Pin the last sample to the final node so rounding in the
			// step accumulation cannot push it past the data.
			x = float64(n - 1)
		}
		out[j] = eval(x)
	}
	return out, nil
}

// zeroFill writes each original sample at round(i*ratio) of an all-zero
// array of the new length. It is the resampling kernel the splicer never
// picks but the engine still exposes.
func zeroFill(src *table.Series, newN int, ratio float64) table.Series {
	out := table.Series{
		Name:   src.Name,
		Values: make([]float64, newN),
		Valid:  make([]bool, newN),
	}
	for i := range out.Valid {
		out.Valid[i] = true
	}
	for i, v := range src.Values {
		pos := int(math.Round(float64(i) * ratio))
		if pos < 0 || pos >= newN {
			continue
		}
		if src.Valid[i] {
			out.Values[pos] = v
		} else {
			out.Valid[pos] = false
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// evalLinear is piecewise linear with linear continuation past both ends.
func evalLinear(ys []float64, x float64) float64 {
	n := len(ys)
	i := int(math.Floor(x))
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	t := x - float64(i)
	// Node-exact samples keep the node value even when a neighbor is NaN.
	if t == 0 {
		return ys[i]
	}
	if t == 1 {
		return ys[i+1]
	}
	return ys[i] + (ys[i+1]-ys[i])*t
}

// hermite is a piecewise cubic in Hermite form over unit-spaced nodes; the
// four slope rules (pchip, local cubic, natural spline, makima) differ only
// in how the node slopes are derived.
type hermite struct {
	ys []float64
	d  []float64
}

func newHermite(ys []float64, k Kind) (*hermite, error) {
	n := len(ys)
	var d []float64
	switch k {
	case PCHIP:
		if n < 3 {
			return nil, fmt.Errorf("pchip needs at least 3 points, have %d", n)
		}
		d = pchipSlopes(ys)
	case Cubic:
		if n < 3 {
			return nil, fmt.Errorf("cubic needs at least 3 points, have %d", n)
		}
		d = catmullRomSlopes(ys)
	case CubicSpline:
		if n < 3 {
			return nil, fmt.Errorf("spline needs at least 3 points, have %d", n)
		}
		d = naturalSplineSlopes(ys)
	case Akima:
		if n < 5 {
			return nil, fmt.Errorf("akima needs at least 5 points, have %d", n)
		}
		d = makimaSlopes(ys)
	default:
		return nil, fmt.Errorf("kind %s has no hermite form", k)
	}
	return &hermite{ys: ys, d: d}, nil
}

func (h *hermite) at(x float64) float64 {
	n := len(h.ys)
	i := int(math.Floor(x))
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	t := x - float64(i)
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*h.ys[i] + h10*h.d[i] + h01*h.ys[i+1] + h11*h.d[i+1]
}

// pchipSlopes derives monotonicity-preserving slopes (Fritsch-Carlson) for
// unit-spaced nodes: zero at local extrema, otherwise the harmonic mean of
// the adjacent secants.
func pchipSlopes(ys []float64) []float64 {
	n := len(ys)
	delta := secants(ys)
	d := make([]float64, n)
	for i := 1; i < n-1; i++ {
		if delta[i-1]*delta[i] <= 0 {
			d[i] = 0
			continue
		}
		d[i] = 2 * delta[i-1] * delta[i] / (delta[i-1] + delta[i])
	}
	d[0] = endpointSlope(delta[0], delta[1])
	d[n-1] = endpointSlope(delta[n-2], delta[n-3])
	return d
}

// endpointSlope is the one-sided three-point estimate with the usual shape
// clamps.
func endpointSlope(d0, d1 float64) float64 {
	s := (3*d0 - d1) / 2
	if s*d0 <= 0 {
		return 0
	}
	if d0*d1 < 0 && math.Abs(s) > 3*math.Abs(d0) {
		return 3 * d0
	}
	return s
}

// catmullRomSlopes is the local piecewise cubic: centered differences
// inside, one-sided secants at the ends.
func catmullRomSlopes(ys []float64) []float64 {
	n := len(ys)
	d := make([]float64, n)
	for i := 1; i < n-1; i++ {
		d[i] = (ys[i+1] - ys[i-1]) / 2
	}
	d[0] = ys[1] - ys[0]
	d[n-1] = ys[n-1] - ys[n-2]
	return d
}

// naturalSplineSlopes solves the global natural cubic spline (zero second
// derivative at both ends) and converts the curvatures to node slopes.
// The tridiagonal system is solved with the Thomas algorithm.
func naturalSplineSlopes(ys []float64) []float64 {
	n := len(ys)
	m := make([]float64, n) // second derivatives
	if n > 2 {
		// interior equations: m[i-1] + 4 m[i] + m[i+1] = 6 (y[i+1] - 2 y[i] + y[i-1])
		cPrime := make([]float64, n)
		dPrime := make([]float64, n)
		for i := 1; i < n-1; i++ {
			rhs := 6 * (ys[i+1] - 2*ys[i] + ys[i-1])
			if i == 1 {
				cPrime[i] = 1.0 / 4.0
				dPrime[i] = rhs / 4.0
				continue
			}
			den := 4 - cPrime[i-1]
			cPrime[i] = 1 / den
			dPrime[i] = (rhs - dPrime[i-1]) / den
		}
		for i := n - 2; i >= 1; i-- {
			m[i] = dPrime[i] - cPrime[i]*m[i+1]
		}
	}
	d := make([]float64, n)
	for i := 0; i < n-1; i++ {
		d[i] = ys[i+1] - ys[i] - (2*m[i]+m[i+1])/6
	}
	d[n-1] = ys[n-1] - ys[n-2] + (m[n-2]+2*m[n-1])/6
	return d
}

// makimaSlopes is the modified Akima weighting, which keeps Akima's reduced
// overshoot while avoiding its undulation on flat data.
func makimaSlopes(ys []float64) []float64 {
	n := len(ys)
	delta := secants(ys)
	// Extend the secant sequence two intervals past each end by linear
	// continuation, the standard Akima boundary treatment.
	ext := make([]float64, len(delta)+4)
	copy(ext[2:], delta)
	ext[1] = 2*ext[2] - ext[3]
	ext[0] = 2*ext[1] - ext[2]
	last := len(ext) - 1
	ext[last-1] = 2*ext[last-2] - ext[last-3]
	ext[last] = 2*ext[last-1] - ext[last-2]

	d := make([]float64, n)
	for i := 0; i < n; i++ {
		dm2, dm1, dp0, dp1 := ext[i], ext[i+1], ext[i+2], ext[i+3]
		w1 := math.Abs(dp1-dp0) + math.Abs(dp1+dp0)/2
		w2 := math.Abs(dm1-dm2) + math.Abs(dm1+dm2)/2
		if w1+w2 == 0 {
			d[i] = (dm1 + dp0) / 2
			continue
		}
		d[i] = (w1*dm1 + w2*dp0) / (w1 + w2)
	}
	return d
}

func secants(ys []float64) []float64 {
	delta := make([]float64, len(ys)-1)
	for i := range delta {
		delta[i] = ys[i+1] - ys[i]
	}
	return delta
}
