// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package green

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_polarizability01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("polarizability01")

	// a vacuum dipole (m=1) has zero static (Clausius-Mossotti)
	// polarizability: (m^2-1)/(m^2+2) vanishes
	a := clausiusMossotti(0.1, complex(1, 0))
	chk.Scalar(tst, "Re(alpha)", 1e-15, real(a), 0)
	chk.Scalar(tst, "Im(alpha)", 1e-15, imag(a), 0)
}

func Test_polarizability02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("polarizability02")

	// every prescription returns a finite, non-zero polarizability for a
	// non-trivial refractive index (spec.md §6 pol option contract)
	m := complex(1.5, 0.01)
	prop := [3]float64{0, 0, 1}
	for _, p := range []PolPrescription{ClausiusMossotti, RadiativeReaction, LDR, CLDR, SelfConsistent} {
		a := SelfTerm(p, 0.05, 1.2, m, prop, nil)
		if math.IsNaN(real(a)) || math.IsNaN(imag(a)) {
			tst.Errorf("SelfTerm(%v) returned NaN", p)
		}
		if real(a) == 0 && imag(a) == 0 {
			tst.Errorf("SelfTerm(%v) returned zero for a non-trivial material", p)
		}
	}
}

func Test_polarizability03(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("polarizability03")

	// radiative reaction adds a positive imaginary part on top of the
	// (real, for a lossless dielectric) Clausius-Mossotti term, the
	// optical-theorem-consistency requirement LDR/CLDR are built to
	// satisfy (Draine & Goodman 1993)
	m := complex(1.5, 0)
	aCM := clausiusMossotti(0.05, m)
	aRR := radiativeReaction(aCM, 1.2)
	if imag(aRR) <= 0 {
		tst.Errorf("radiative-reaction correction should add positive absorption, got Im=%v", imag(aRR))
	}
}
