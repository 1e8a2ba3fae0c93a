// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package romberg

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Axis describes one dimension of the nested 2-D orientation-averaging
// quadrature (spec.md §4.6): a grid of GridSize equally-spaced sample
// points over [Min,Max], with Romberg convergence checked once the
// extrapolation level reaches Jmin-1 and forced to stop at Jmax.
// Equivalent mirrors Romberg.c's "equiv" flag (skip the duplicate
// endpoint evaluation when the integrand is known periodic over the
// sampled range); Periodic restricts the tableau to its first column,
// i.e. the plain trapezoid rule.
type Axis struct {
	Eps        float64
	Jmin, Jmax int
	Min, Max   float64
	GridSize   int
	Equivalent bool
	Periodic   bool
}

func (a Axis) valueAt(j int) float64 {
	if a.GridSize <= 1 || a.Max == a.Min {
		return a.Min
	}
	return a.Min + float64(j)*(a.Max-a.Min)/float64(a.GridSize-1)
}

// Integrand2D evaluates the orientation-averaged observable at one
// (theta,phi) sample, returning the value vector together with an
// absolute-error estimate for that single evaluation (spec.md §4.6:
// per-orientation solves contribute their own residual-based error
// into the inner integral's convergence bound).
type Integrand2D func(theta, phi float64) (value []float64, absErr float64)

// Integrator2D is the theta-outer/phi-inner nested adaptive Romberg
// quadrature, ported from Romberg.c's OuterRomberg/InnerRomberg. It is
// non-re-entrant because both loops extrapolate into a single shared
// tableau (spec.md §4.6 invariant (c)): a nested call panics rather
// than silently corrupting that tableau.
type Integrator2D struct {
	Theta, Phi Axis
	Dim        int

	used bool
}

// Integrate runs the full nested quadrature and returns the averaged
// observable, the outer bracketing relative error, and the number of
// inner (phi) integrations that failed to converge by Jmax — failures
// are recorded, not fatal, mirroring Romberg.c logging "converged only
// to d=..." and continuing.
func (r *Integrator2D) Integrate(f Integrand2D) (avg []float64, relErr float64, nFailedInner int) {
	if r.used {
		chk.Panic("romberg: Integrator2D is not re-entrant, nested calls share one extrapolation tableau")
	}
	r.used = true
	defer func() { r.used = false }()

	st := &innerState{axis: r.Phi, f: f, dim: r.Dim}

	if r.Theta.Min == r.Theta.Max {
		res, _ := st.romberg(r.Theta.Min)
		return res, 0, st.nFailed
	}

	msize := r.Theta.Jmax
	if r.Theta.Periodic {
		msize = 0
	}
	m := make([][]float64, msize+1)
	for i := range m {
		m[i] = make([]float64, r.Dim)
	}
	t := make([]float64, r.Dim)
	t1, t2, t3 := rombergCoeffs(msize)

	m0 := 0
	var lastErr float64
	converged := false
	for mm := 0; mm < r.Theta.Jmax; mm++ {
		var intErr float64
		if mm == 0 {
			v0, e0 := st.romberg(r.Theta.valueAt(0))
			if r.Theta.Equivalent {
				copy(t, v0)
				intErr = e0
			} else {
				vN, eN := st.romberg(r.Theta.valueAt(r.Theta.GridSize - 1))
				intErr = 0.5 * (e0 + eN)
				for c := range t {
					t[c] = 0.5 * (v0[c] + vN[c])
				}
			}
		} else if r.Theta.Periodic {
			for c := range t {
				t[c] = 0.5 * (t[c] + m[0][c])
			}
		} else {
			w := t3[mm-1] * t2[mm]
			for c := range t {
				t[c] = w*(t[c]-m[0][c]) + m[0][c]
			}
			m0 = mm
		}

		step := (r.Theta.GridSize - 1) >> mm
		for c := range m[m0] {
			m[m0][c] = 0
		}
		var sumErr float64
		for j := step >> 1; j < r.Theta.GridSize; j += step {
			v, e := st.romberg(r.Theta.valueAt(j))
			sumErr += e
			for c := range m[m0] {
				m[m0][c] += v[c]
			}
		}
		scale := math.Pow(2, float64(-mm))
		for c := range m[m0] {
			m[m0][c] *= scale
		}
		intErr = 0.5 * (intErr + sumErr*scale)

		if m0 != 0 {
			for i := mm - 1; i >= 0; i-- {
				for c := range m[i] {
					m[i][c] = t2[mm-i] * (t1[mm-i]*m[i+1][c] - m[i][c])
				}
			}
		}

		if mm >= r.Theta.Jmin-1 {
			absRes := 0.5 * math.Abs(m[0][0]+t[0])
			absErr := 0.5*math.Abs(m[0][0]-t[0]) + intErr
			if absRes == 0 {
				lastErr = 0
			} else {
				lastErr = absErr / absRes
			}
			if lastErr < r.Theta.Eps {
				converged = true
				break
			}
		}
	}
	_ = converged

	avg = make([]float64, r.Dim)
	for c := range avg {
		avg[c] = 0.5 * (m[0][c] + t[c])
	}
	return avg, lastErr, st.nFailed
}

// innerState carries the phi-axis Romberg tableau and the failure
// counter across the repeated calls OuterRomberg-equivalent loop makes
// into InnerRomberg-equivalent evaluations.
type innerState struct {
	axis    Axis
	f       Integrand2D
	dim     int
	nFailed int
}

func (s *innerState) romberg(theta float64) (res []float64, lastErr float64) {
	if s.axis.Min == s.axis.Max {
		v, e := s.f(theta, s.axis.Min)
		return v, e
	}

	msize := s.axis.Jmax
	if s.axis.Periodic {
		msize = 0
	}
	m := make([][]float64, msize+1)
	for i := range m {
		m[i] = make([]float64, s.dim)
	}
	t := make([]float64, s.dim)
	t1, t2, t3 := rombergCoeffs(msize)

	m0 := 0
	converged := false
	for mm := 0; mm < s.axis.Jmax; mm++ {
		var intErr float64
		if mm == 0 {
			v0, e0 := s.f(theta, s.axis.valueAt(0))
			if s.axis.Equivalent {
				copy(t, v0)
				intErr = e0
			} else {
				vN, eN := s.f(theta, s.axis.valueAt(s.axis.GridSize-1))
				intErr = 0.5 * (e0 + eN)
				for c := range t {
					t[c] = 0.5 * (v0[c] + vN[c])
				}
			}
		} else if s.axis.Periodic {
			for c := range t {
				t[c] = 0.5 * (t[c] + m[0][c])
			}
		} else {
			w := t3[mm-1] * t2[mm]
			for c := range t {
				t[c] = w*(t[c]-m[0][c]) + m[0][c]
			}
			m0 = mm
		}

		step := (s.axis.GridSize - 1) >> mm
		for c := range m[m0] {
			m[m0][c] = 0
		}
		var sumErr float64
		for j := step >> 1; j < s.axis.GridSize; j += step {
			v, e := s.f(theta, s.axis.valueAt(j))
			sumErr += e
			for c := range m[m0] {
				m[m0][c] += v[c]
			}
		}
		scale := math.Pow(2, float64(-mm))
		for c := range m[m0] {
			m[m0][c] *= scale
		}
		intErr = 0.5 * (intErr + sumErr*scale)

		if m0 != 0 {
			for i := mm - 1; i >= 0; i-- {
				for c := range m[i] {
					m[i][c] = t2[mm-i] * (t1[mm-i]*m[i+1][c] - m[i][c])
				}
			}
		}

		if mm >= s.axis.Jmin-1 {
			absRes := 0.5 * math.Abs(m[0][0]+t[0])
			absErr := 0.5*math.Abs(m[0][0]-t[0]) + intErr
			if absRes == 0 {
				lastErr = 0
			} else {
				lastErr = absErr / absRes
			}
			if lastErr < s.axis.Eps {
				converged = true
				break
			}
		}
	}
	if !converged {
		s.nFailed++
	}

	res = make([]float64, s.dim)
	for c := range res {
		res[c] = 0.5 * (m[0][c] + t[c])
	}
	return res, lastErr
}
