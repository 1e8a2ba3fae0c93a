// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package romberg implements C6: 1-D Romberg extrapolation over
// precomputed samples and adaptive nested 2-D Romberg quadrature for
// orientation averaging, ported from original_source's Romberg.c
// (Davis & Rabinowitz, "Methods of numerical integration", ch. 6.3,
// with ch. 2.9's plain trapezoid rule substituted for periodic
// integrands).
package romberg

import "math"

// Integrator1D performs Romberg extrapolation on a precomputed,
// equally-spaced sample array (spec.md §4.6): for periodic integrands
// only the first column of the extrapolation tableau is used, i.e. the
// plain trapezoid rule.
type Integrator1D struct {
	Periodic bool
}

// Integrate averages 2^Jmax+1 samples (each a complex vector of the
// same dimension) over the sampled interval, returning the bracketing
// relative error sqrt(||M_m^0-T_m^0||^2 / ||result||^2) of spec.md
// §4.6 invariant. When there is a single sample (min==max), the value
// is returned directly with zero error (spec.md §4.6 invariant (b)).
func (r Integrator1D) Integrate(samples [][]complex128, jmax int) (avg []complex128, relErr float64) {
	gridSize := len(samples)
	dim := len(samples[0])
	avg = make([]complex128, dim)
	if gridSize == 1 {
		copy(avg, samples[0])
		return avg, 0
	}

	msize := jmax
	if r.Periodic {
		msize = 0
	}
	m := make([][]complex128, msize+1)
	for i := range m {
		m[i] = make([]complex128, dim)
	}
	t := make([]complex128, dim)
	t1, t2, t3 := rombergCoeffs(msize)

	m0 := 0
	for mm := 0; mm < jmax; mm++ {
		if mm == 0 {
			last := gridSize - 1
			for c := 0; c < dim; c++ {
				t[c] = 0.5 * (samples[0][c] + samples[last][c])
			}
		} else if r.Periodic {
			for c := range t {
				t[c] = 0.5 * (t[c] + m[0][c])
			}
		} else {
			w := complex(t3[mm-1]*t2[mm], 0)
			for c := range t {
				t[c] = w*(t[c]-m[0][c]) + m[0][c]
			}
			m0 = mm
		}

		step := (gridSize - 1) >> mm
		for c := range m[m0] {
			m[m0][c] = 0
		}
		for j := step >> 1; j < gridSize; j += step {
			for c := 0; c < dim; c++ {
				m[m0][c] += samples[j][c]
			}
		}
		scale := complex(math.Pow(2, float64(-mm)), 0)
		for c := range m[m0] {
			m[m0][c] *= scale
		}
		if m0 != 0 {
			for i := mm - 1; i >= 0; i-- {
				for c := 0; c < dim; c++ {
					m[i][c] = complex(t2[mm-i], 0) * (complex(t1[mm-i], 0)*m[i+1][c] - m[i][c])
				}
			}
		}
	}

	var absRes, absErr float64
	for c := 0; c < dim; c++ {
		avg[c] = 0.5 * (m[0][c] + t[c])
		absRes += real(avg[c])*real(avg[c]) + imag(avg[c])*imag(avg[c])
		d := m[0][c] - t[c]
		absErr += real(d)*real(d) + imag(d)*imag(d)
	}
	if absRes == 0 {
		return avg, 0
	}
	return avg, math.Sqrt(absErr / absRes)
}

// rombergCoeffs precomputes 4^m, 1/(4^m-1), 2*4^(m-1)-1 for m up to
// msize, the "common arrays with frequently used values" of Romberg.c.
func rombergCoeffs(msize int) (t1, t2, t3 []float64) {
	t1 = make([]float64, msize+1)
	t2 = make([]float64, msize+1)
	t3 = make([]float64, msize+1)
	if msize == 0 {
		return
	}
	t1[0] = 1
	for i := 1; i < msize; i++ {
		t1[i] = t1[i-1] * 4
		t2[i] = 1 / (t1[i] - 1)
		t3[i-1] = 2*t1[i-1] - 1
	}
	return
}
