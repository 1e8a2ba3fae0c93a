// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import "math/cmplx"

// QMR is quasi-minimal residual specialized to a complex-symmetric
// operator: the bilinear form (spec.md §4.5) turns the general two-
// sided Lanczos process into a single three-term recurrence, and the
// resulting tridiagonal is quasi-minimized column-by-column with
// Givens rotations, the same shape as the real symmetric MINRES
// recurrence carried over to complex scalars and a bilinear inner
// product. This is a structural port of that recurrence, not
// independently verified against a reference run.
func QMR(a Matvec, b []complex128, x0 []complex128, dot Dot, eps float64, maxiter int) Result {
	n := len(b)
	if eps <= 0 {
		eps = defaultEps
	}
	x := make([]complex128, n)
	if x0 != nil {
		vecCopy(x, x0)
	}

	bNorm := vecNorm2(b)
	if bNorm == 0 {
		bNorm = 1
	}

	r := vecSub(b, a(x))
	beta := bilinearNorm(dot, r)
	if beta == 0 {
		return Result{X: x, ResNorm: 0, Iterations: 0, Status: Converged}
	}

	vPrev := vecZeros(n)
	v := vecScaled(1/beta, r)
	w1 := vecZeros(n) // w_{k-2}
	w2 := vecZeros(n) // w_{k-1}

	var cOld, sOld complex128 = 1, 0
	var c, s complex128 = 1, 0
	epsilon := complex128(0)
	eta := complex(beta, 0)
	betaK := complex(beta, 0)

	for k := 0; k < maxiter; k++ {
		p := a(v)
		alpha := dot(v, p)
		vecAxpy(p, -alpha, v)
		vecAxpy(p, -betaK, vPrev)
		betaNext := bilinearNorm(dot, p)

		deltaBar := sOld * betaK
		gammaBar := cOld*c*betaK + s*alpha
		epsNext := s * complex(betaNext, 0)
		deltaNext := c * complex(betaNext, 0)

		cNew, sNew, gamma := givens(gammaBar, deltaNext)
		if gamma == 0 {
			gamma = 1e-300
		}

		w := make([]complex128, n)
		for i := range w {
			w[i] = (v[i] - deltaBar*w2[i] - epsilon*w1[i]) / gamma
		}

		tau := cNew * eta
		vecAxpy(x, tau, w)
		eta = -sNew * eta

		resNorm := cmplx.Abs(eta) / bNorm
		if resNorm < eps {
			return Result{X: x, ResNorm: resNorm, Iterations: k + 1, Status: Converged}
		}
		if betaNext == 0 {
			return Result{X: x, ResNorm: resNorm, Iterations: k + 1, Status: Breakdown}
		}

		vPrev = v
		v = vecScaled(1/betaNext, p)
		betaK = complex(betaNext, 0)
		epsilon = epsNext
		w1, w2 = w2, w
		cOld, sOld = c, s
		c, s = cNew, sNew
	}
	return Result{X: x, ResNorm: cmplx.Abs(eta) / bNorm, Iterations: maxiter, Status: DidNotConverge}
}

func bilinearNorm(dot Dot, v []complex128) float64 {
	return cmplx.Abs(cmplx.Sqrt(dot(v, v)))
}

// givens builds a rotation (c,s) with |c|^2-like normalization zeroing
// b against a, returning the rotated diagonal entry.
func givens(a, b complex128) (c, s, rho complex128) {
	if b == 0 {
		return 1, 0, a
	}
	denom := cmplx.Sqrt(a*a + b*b)
	if denom == 0 {
		return 1, 0, a
	}
	return a / denom, b / denom, denom
}
