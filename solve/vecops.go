// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import "gonum.org/v1/gonum/cmplxs"

// vecAxpy, vecSub, vecScaled, vecNorm2 wrap gonum.org/v1/gonum's
// complex vector package rather than hand-rolled loops (vecCopy and
// vecZeros use the builtins copy and make), mirroring how
// the teacher reaches for small `la` vector helpers (la.VecFill,
// la.VecLargest, ...) instead of inline loops in fem/solver.go.

func vecCopy(dst, src []complex128) {
	copy(dst, src)
}

// vecAxpy computes dst = dst + alpha*x (in place).
func vecAxpy(dst []complex128, alpha complex128, x []complex128) {
	scaled := make([]complex128, len(x))
	copy(scaled, x)
	cmplxs.Scale(alpha, scaled)
	cmplxs.Add(dst, scaled)
}

// vecSub returns a - b as a new slice.
func vecSub(a, b []complex128) []complex128 {
	out := make([]complex128, len(a))
	copy(out, a)
	cmplxs.Sub(out, b)
	return out
}

// vecScaled returns alpha*x as a new slice.
func vecScaled(alpha complex128, x []complex128) []complex128 {
	out := make([]complex128, len(x))
	copy(out, x)
	cmplxs.Scale(alpha, out)
	return out
}

// vecNorm2 returns the Hermitian 2-norm, always real and non-negative
// regardless of which Dot a solver uses for its Krylov recurrences.
func vecNorm2(x []complex128) float64 {
	return cmplxs.Norm(x, 2)
}

func vecZeros(n int) []complex128 {
	return make([]complex128, n)
}
