// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"

	"github.com/cpmech/godda/comm"
)

// computeObservables evaluates the extinction/absorption/scattering
// cross-sections from a converged polarization field, via the optical
// theorem (Cext) and the dissipation formula (Cabs), with Csca = Cext -
// Cabs. Scattered-far-field quantities (asym, Cpr) require a full
// far-field integration that spec.md §2's data flow explicitly marks
// "not specified here" ("scattered-field evaluation (not specified
// here)"), so they are left at zero.
func computeObservables(p, einc, alphaSelf []complex128, wavenum float64) Observables {
	nSites := len(p) / 3
	var extLocal, absLocal float64
	k3 := wavenum * wavenum * wavenum
	for s := 0; s < nSites; s++ {
		var pe complex128  // conj(Einc).P
		var p2 float64     // |P|^2
		var chiTerm complex128
		for c := 0; c < 3; c++ {
			idx := 3*s + c
			pe += complex(real(einc[idx]), -imag(einc[idx])) * p[idx]
			p2 += real(p[idx])*real(p[idx]) + imag(p[idx])*imag(p[idx])
			if alphaSelf[s] != 0 {
				chiTerm += complex(real(p[idx]), -imag(p[idx])) * (p[idx] / alphaSelf[s])
			}
		}
		extLocal += imag(pe)
		absLocal += imag(chiTerm) - (2.0/3.0)*k3*p2
	}

	sum, _ := comm.ReduceToRootSumAndMax([]float64{extLocal, absLocal})
	cext := 4 * math.Pi * wavenum * sum[0]
	cabs := 4 * math.Pi * wavenum * sum[1]
	return Observables{
		Cext: cext,
		Cabs: cabs,
		Csca: cext - cabs,
	}
}

// averageObservables averages two polarization results, the
// "unpolarized incident light" convention spec.md §4.8 implies by
// sharing D across both polarizations of one orientation.
func averageObservables(a, b Observables) Observables {
	return Observables{
		Cext: 0.5 * (a.Cext + b.Cext),
		Cabs: 0.5 * (a.Cabs + b.Cabs),
		Csca: 0.5 * (a.Csca + b.Csca),
		Asym: 0.5 * (a.Asym + b.Asym),
		CprX: 0.5 * (a.CprX + b.CprX),
		CprY: 0.5 * (a.CprY + b.CprY),
		CprZ: 0.5 * (a.CprZ + b.CprZ),
	}
}
