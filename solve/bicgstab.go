// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

// BiCGSTAB is the stabilized bi-conjugate-gradient method (Templates for
// the Solution of Linear Systems, §2.3.8), using dot for both its
// shadow-residual and stabilization inner products (spec.md §4.5: "the
// same complex inner product implemented as a local dot followed by a
// single global all-reduce").
func BiCGSTAB(a Matvec, b []complex128, x0 []complex128, dot Dot, eps float64, maxiter int) Result {
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
	rhat := make([]complex128, n)
	vecCopy(rhat, r)

	rho, alpha, omega := complex128(1), complex128(1), complex128(1)
	v := vecZeros(n)
	p := vecZeros(n)

	for k := 0; k < maxiter; k++ {
		rhoNew := dot(rhat, r)
		if rhoNew == 0 {
			return Result{X: x, ResNorm: vecNorm2(r) / bNorm, Iterations: k, Status: Breakdown}
		}
		if k == 0 {
			vecCopy(p, r)
		} else {
			beta := (rhoNew / rho) * (alpha / omega)
			for i := range p {
				p[i] = r[i] + beta*(p[i]-omega*v[i])
			}
		}
		v = a(p)
		denom := dot(rhat, v)
		if denom == 0 {
			return Result{X: x, ResNorm: vecNorm2(r) / bNorm, Iterations: k, Status: Breakdown}
		}
		alpha = rhoNew / denom

		s := vecSub(r, vecScaled(alpha, v))
		sNorm := vecNorm2(s) / bNorm
		if sNorm < eps {
			vecAxpy(x, alpha, p)
			return Result{X: x, ResNorm: sNorm, Iterations: k + 1, Status: Converged}
		}

		t := a(s)
		tDotT := dot(t, t)
		if tDotT == 0 {
			return Result{X: x, ResNorm: sNorm, Iterations: k, Status: Breakdown}
		}
		omega = dot(t, s) / tDotT

		vecAxpy(x, alpha, p)
		vecAxpy(x, omega, s)
		r = vecSub(s, vecScaled(omega, t))

		resNorm := vecNorm2(r) / bNorm
		if resNorm < eps {
			return Result{X: x, ResNorm: resNorm, Iterations: k + 1, Status: Converged}
		}
		if omega == 0 {
			return Result{X: x, ResNorm: resNorm, Iterations: k + 1, Status: Breakdown}
		}
		rho = rhoNew
	}
	return Result{X: x, ResNorm: vecNorm2(r) / bNorm, Iterations: maxiter, Status: DidNotConverge}
}
