// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_observables01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("observables01")

	// a single-site, single-component case checked against the optical
	// theorem / dissipation formulas by hand (spec.md §2)
	p := []complex128{1, 0, 0}
	einc := []complex128{complex(0, 1), 0, 0}
	alphaSelf := []complex128{1}
	wavenum := 1.0

	obs := computeObservables(p, einc, alphaSelf, wavenum)

	chk.Scalar(tst, "Cext", 1e-9, obs.Cext, -4*math.Pi)
	chk.Scalar(tst, "Cabs", 1e-9, obs.Cabs, -8*math.Pi/3)
	chk.Scalar(tst, "Csca", 1e-9, obs.Csca, obs.Cext-obs.Cabs)
}

func Test_observables02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("observables02")

	a := Observables{Cext: 2, Cabs: 1, Csca: 1, Asym: 0.5, CprX: 1, CprY: 2, CprZ: 3}
	b := Observables{Cext: 4, Cabs: 3, Csca: 1, Asym: 0.1, CprX: 3, CprY: 0, CprZ: 1}
	avg := averageObservables(a, b)

	chk.Scalar(tst, "Cext", 1e-15, avg.Cext, 3)
	chk.Scalar(tst, "Cabs", 1e-15, avg.Cabs, 2)
	chk.Scalar(tst, "Csca", 1e-15, avg.Csca, 1)
	chk.Scalar(tst, "Asym", 1e-15, avg.Asym, 0.3)
	chk.Scalar(tst, "CprX", 1e-15, avg.CprX, 2)
	chk.Scalar(tst, "CprY", 1e-15, avg.CprY, 1)
	chk.Scalar(tst, "CprZ", 1e-15, avg.CprZ, 2)
}

// computeObservables on a scattering-free, non-absorbing field (zero
// incident field) must report all-zero cross-sections.
func Test_observables03(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("observables03")

	p := []complex128{0, 0, 0}
	einc := []complex128{0, 0, 0}
	alphaSelf := []complex128{1}
	obs := computeObservables(p, einc, alphaSelf, 1.0)
	chk.Scalar(tst, "Cext", 1e-15, obs.Cext, 0)
	chk.Scalar(tst, "Cabs", 1e-15, obs.Cabs, 0)
	chk.Scalar(tst, "Csca", 1e-15, obs.Csca, 0)
}
