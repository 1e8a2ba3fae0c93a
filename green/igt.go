// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package green

import "math"

// CubeIntegrator is the external numerical routine IGT calls to
// integrate the Green tensor over a unit cube (spec.md §4.2: "calls an
// external numerical routine"). It is out of the core's scope per
// spec.md §1 ("choice of third-party 1-D FFT kernel" is the only
// numerical-kernel choice pinned down there; the cube-quadrature
// routine is the same kind of external collaborator); IGTKernel takes
// one as a field so the core never hard-codes a quadrature rule.
type CubeIntegrator func(d Displacement, gridspace, wavenum float64, m complex128) Tensor

// IGTKernel integrates the Green tensor over a cube via Integrator when
// the displacement norm is within Limit lattice units, falling back to
// Fallback otherwise (spec.md §4.2).
type IGTKernel struct {
	Limit      float64
	Integrator CubeIntegrator // nil uses a built-in midpoint-rule cube quadrature
	Fallback   Kernel
}

func (k IGTKernel) Eval(d Displacement, gridspace, wavenum float64, m complex128) Tensor {
	if d.I == 0 && d.J == 0 && d.K == 0 {
		return Tensor{}
	}
	fi, fj, fk := float64(d.I), float64(d.J), float64(d.K)
	rn := math.Sqrt(fi*fi + fj*fj + fk*fk)
	if rn > k.Limit {
		return k.Fallback.Eval(d, gridspace, wavenum, m)
	}
	if k.Integrator != nil {
		return k.Integrator(d, gridspace, wavenum, m)
	}
	return cubeQuadrature(d, gridspace, wavenum)
}

// cubeQuadrature is the built-in default integrator: a low-order
// (4x4x4) midpoint rule over the unit source cube centred at the
// target displacement, averaging the point-dipole tensor sampled at
// cube-interior offsets. It is deliberately simple; callers needing
// high-accuracy integration over the singular near field supply their
// own CubeIntegrator.
func cubeQuadrature(d Displacement, gridspace, wavenum float64) Tensor {
	const n = 4
	var sum Tensor
	count := 0.0
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				ox := (float64(a)+0.5)/float64(n) - 0.5
				oy := (float64(b)+0.5)/float64(n) - 0.5
				oz := (float64(c)+0.5)/float64(n) - 0.5
				fi := float64(d.I) + ox
				fj := float64(d.J) + oy
				fk := float64(d.K) + oz
				rn := math.Sqrt(fi*fi + fj*fj + fk*fk)
				if rn < 1e-9 {
					continue
				}
				r := gridspace * rn
				q := [3]float64{fi / rn, fj / rn, fk / rn}
				sum = sum.Add(evalPointDipole(r, q, wavenum))
				count++
			}
		}
	}
	if count == 0 {
		return Tensor{}
	}
	return sum.Scale(complex(1/count, 0))
}
