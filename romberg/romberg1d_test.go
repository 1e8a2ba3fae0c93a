// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package romberg

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_romberg1d01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("romberg1d01")

	// a constant function integrates exactly to itself at any grid
	// level, regardless of how many extrapolation levels are offered
	samples := make([][]complex128, 9)
	for i := range samples {
		samples[i] = []complex128{5}
	}
	integ := Integrator1D{}
	avg, relErr := integ.Integrate(samples, 3)
	chk.Scalar(tst, "avg", 1e-12, real(avg[0]), 5)
	if relErr > 1e-9 {
		tst.Errorf("relErr should be ~0 for a constant integrand, got %v", relErr)
	}
}

func Test_romberg1d02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("romberg1d02")

	// the degenerate single-sample grid returns that sample directly
	integ := Integrator1D{}
	avg, _ := integ.Integrate([][]complex128{{complex(3, -1)}}, 2)
	chk.Scalar(tst, "Re(avg)", 1e-17, real(avg[0]), 3)
	chk.Scalar(tst, "Im(avg)", 1e-17, imag(avg[0]), -1)
}

func Test_romberg1d03(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("romberg1d03")

	// periodic mode restricts the tableau to its trapezoid column: a
	// constant sample set still integrates exactly
	samples := make([][]complex128, 17)
	for i := range samples {
		samples[i] = []complex128{2}
	}
	integ := Integrator1D{Periodic: true}
	avg, _ := integ.Integrate(samples, 4)
	chk.Scalar(tst, "avg", 1e-12, real(avg[0]), 2)
}
