// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

// BiCG is the complex-symmetric conjugate-gradient variant (sometimes
// called COCG): for A^T = A, the bilinear form (x,y) = x^T*y replaces
// the Hermitian inner product, letting a CG-shaped recurrence run
// without a shadow residual, unlike general Bi-CG (spec.md §4.5: "the
// bilinear form x^T y (no conjugation)").
func BiCG(a Matvec, b []complex128, x0 []complex128, dot Dot, eps float64, maxiter int) Result {
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
	p := make([]complex128, n)
	vecCopy(p, r)
	rho := dot(r, r)

	for k := 0; k < maxiter; k++ {
		resNorm := vecNorm2(r) / bNorm
		if resNorm < eps {
			return Result{X: x, ResNorm: resNorm, Iterations: k, Status: Converged}
		}

		ap := a(p)
		denom := dot(p, ap)
		if denom == 0 {
			return Result{X: x, ResNorm: resNorm, Iterations: k, Status: Breakdown}
		}
		alpha := rho / denom
		vecAxpy(x, alpha, p)
		vecAxpy(r, -alpha, ap)

		rhoNew := dot(r, r)
		if rho == 0 {
			return Result{X: x, ResNorm: vecNorm2(r) / bNorm, Iterations: k + 1, Status: Breakdown}
		}
		beta := rhoNew / rho
		for i := range p {
			p[i] = r[i] + beta*p[i]
		}
		rho = rhoNew
	}
	return Result{X: x, ResNorm: vecNorm2(r) / bNorm, Iterations: maxiter, Status: DidNotConverge}
}
