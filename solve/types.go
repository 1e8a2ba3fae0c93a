// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solve implements C5: the four Krylov iterative solvers (CGNR,
// Bi-CGSTAB, complex-symmetric Bi-CG, complex-symmetric QMR) driven by
// the C4 matvec contract and a single complex inner product reduced by
// C7 (spec.md §4.5).
package solve

// Matvec applies the system operator A = I - alpha*D to a vector,
// injected rather than hard-coded so the same solver loop drives any
// matvec.Engine-backed operator.
type Matvec func(v []complex128) []complex128

// Dot computes the inner product used by a solver's reductions: the
// bilinear form x^T*y (no conjugation) for complex-symmetric variants,
// or the Hermitian form x*.y for CGNR, each a local dot followed by a
// single global all-reduce (spec.md §4.5), selected once by the caller
// and never branched on per call.
type Dot func(a, b []complex128) complex128

// Status is a solver's terminal outcome (spec.md §4.5/§7).
type Status int

const (
	Converged Status = iota
	DidNotConverge
	Breakdown
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case DidNotConverge:
		return "did not converge"
	case Breakdown:
		return "breakdown"
	}
	return "unknown"
}

// Result is what every solver in this package returns.
type Result struct {
	X          []complex128
	ResNorm    float64
	Iterations int
	Status     Status
}

// defaultEps is spec.md §4.5's default relative residual tolerance.
const defaultEps = 1e-5
