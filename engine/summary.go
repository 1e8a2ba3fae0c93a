// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "github.com/cpmech/gosl/utl"

// Observables holds one orientation/polarization result's computed
// cross-sections (spec.md §6: "Cext|Cabs|Csca|asym|Cpr_mat").
type Observables struct {
	Cext, Cabs, Csca float64
	Asym             float64
	CprX, CprY, CprZ float64
}

// Summary records the accumulated run output, mirroring fem/summary.go's
// Summary struct (renamed from FE output-time/residual history to DDA
// per-orientation observables and Romberg error brackets).
type Summary struct {
	NumOrientations int
	Avg             Observables
	RelErr          float64 // Romberg outer bracketing relative error
	Iterations      []int   // per-solve iteration counts
}

// String renders a short human-readable report, the same role as
// fem/summary.go's Save()/ReadSum() pair but without the gob/json disk
// round-trip: result persistence is explicitly out of core scope
// (spec.md §1 lists "result file serialization" among the external
// collaborators), so Summary only formats what the orchestrator has
// already computed in memory.
func (s *Summary) String() string {
	return utl.Sf("Qext-equivalent Cext=%v Cabs=%v Csca=%v asym=%v  (norient=%d, relerr=%v)",
		s.Avg.Cext, s.Avg.Cabs, s.Avg.Csca, s.Avg.Asym, s.NumOrientations, s.RelErr)
}
