// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

// adjoint returns A^H*v without a second operator: since the DDA system
// matrix A = I - alpha*D is complex-symmetric (A^T = A, D being built
// from the symmetric interaction tensor), A^H*v = conj(A(conj(v))).
// CGNR is the only one of the four solvers that needs the Hermitian
// transpose, so it is the only place this identity is used.
func adjoint(a Matvec, v []complex128) []complex128 {
	cv := make([]complex128, len(v))
	for i, x := range v {
		cv[i] = complex(real(x), -imag(x))
	}
	av := a(cv)
	out := make([]complex128, len(av))
	for i, x := range av {
		out[i] = complex(real(x), -imag(x))
	}
	return out
}

// CGNR applies conjugate-gradient to the normal equations A^H*A*x =
// A^H*b (Templates for the Solution of Linear Systems, §2.3.6), using
// the Hermitian dot product for its internal scalars regardless of the
// dot passed in, since the normal-equations residual rtilde = A^H*r is
// always Hermitian-normed; dot is not used at all, and ResNorm is the
// vecNorm2-based relative residual every solver reports.
func CGNR(a Matvec, b []complex128, x0 []complex128, dot Dot, eps float64, maxiter int) Result {
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
	rt := adjoint(a, r)
	p := make([]complex128, n)
	vecCopy(p, rt)
	rtDotOld := hermDot(rt, rt)

	for k := 0; k < maxiter; k++ {
		w := a(p)
		wNorm2 := hermDot(w, w)
		if realPart(wNorm2) == 0 {
			return Result{X: x, ResNorm: vecNorm2(r) / bNorm, Iterations: k, Status: Breakdown}
		}
		alpha := rtDotOld / wNorm2
		vecAxpy(x, alpha, p)
		vecAxpy(r, -alpha, w)

		resNorm := vecNorm2(r) / bNorm
		if resNorm < eps {
			return Result{X: x, ResNorm: resNorm, Iterations: k + 1, Status: Converged}
		}

		rt = adjoint(a, r)
		rtDotNew := hermDot(rt, rt)
		if realPart(rtDotOld) == 0 {
			return Result{X: x, ResNorm: resNorm, Iterations: k + 1, Status: Breakdown}
		}
		beta := rtDotNew / rtDotOld
		for i := range p {
			p[i] = rt[i] + beta*p[i]
		}
		rtDotOld = rtDotNew
	}
	return Result{X: x, ResNorm: vecNorm2(r) / bNorm, Iterations: maxiter, Status: DidNotConverge}
}

func hermDot(a, b []complex128) complex128 {
	var sum complex128
	for i := range a {
		sum += complex(real(a[i]), -imag(a[i])) * b[i]
	}
	return sum
}

func realPart(c complex128) float64 { return real(c) }
