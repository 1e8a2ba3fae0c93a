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

func Test_beam01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("beam01")

	// a plane wave's envelope is uniform everywhere
	var cte BeamCte
	v := cte.Envelope([3]float64{10, -5, 3})
	chk.Scalar(tst, "Re(env)", 1e-17, real(v), 1)
	chk.Scalar(tst, "Im(env)", 1e-17, imag(v), 0)

	// a Gaussian beam peaks on its axis and decays off it
	g := BeamGaussian{W0: 1, Prop: [3]float64{0, 0, 1}}
	onAxis := g.Envelope([3]float64{0, 0, 5})
	chk.Scalar(tst, "onAxis", 1e-12, real(onAxis), 1)
	offAxis := g.Envelope([3]float64{1, 0, 5})
	if real(offAxis) >= 1 {
		tst.Errorf("off-axis envelope should decay below 1, got %v", real(offAxis))
	}
}

func Test_beam02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("beam02")

	// at the origin, the plane-wave phase vanishes: the incident field
	// reduces to the bare polarization vector
	var cte BeamCte
	prop := [3]float64{0, 0, 1}
	polDir := [3]float64{1, 0, 0}
	e := IncidentField(cte, [3]float64{0, 0, 0}, 1.0, prop, polDir)
	chk.Scalar(tst, "Re(e[0])", 1e-15, real(e[0]), 1)
	chk.Scalar(tst, "Im(e[0])", 1e-15, imag(e[0]), 0)
	chk.Scalar(tst, "e[1]", 1e-15, real(e[1]), 0)
}

func Test_beam03(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("beam03")

	// both polarizations are unit vectors, mutually orthogonal, and
	// orthogonal to prop (spec.md §4.8's two-polarization solve state)
	prop := normalize([3]float64{1, 2, 3})
	e1, e2 := OrthonormalPolarizations(prop)

	dot := func(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
	norm := func(a [3]float64) float64 { return math.Sqrt(dot(a, a)) }

	chk.Scalar(tst, "|e1|", 1e-9, norm(e1), 1)
	chk.Scalar(tst, "|e2|", 1e-9, norm(e2), 1)
	chk.Scalar(tst, "e1.prop", 1e-9, dot(e1, prop), 0)
	chk.Scalar(tst, "e2.prop", 1e-9, dot(e2, prop), 0)
	chk.Scalar(tst, "e1.e2", 1e-9, dot(e1, e2), 0)
}
