// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/godda/grid"
	"github.com/cpmech/godda/inp"
	"github.com/cpmech/godda/matvec"
)

func Test_rotateeuler01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("rotateeuler01")

	// a zero rotation is the identity
	v := [3]float64{0, 0, 1}
	r := rotateEuler(v, 0, 0)
	chk.Vector(tst, "r", 1e-15, r[:], v[:])

	// a beta=pi/2 rotation about y takes +z to +x
	r2 := rotateEuler([3]float64{0, 0, 1}, math.Pi/2, 0)
	chk.Vector(tst, "r2", 1e-9, r2[:], []float64{1, 0, 0})

	// a gamma=pi/2 rotation about z, applied after beta=pi/2 about y,
	// takes +x (the post-beta vector) to +y
	r3 := rotateEuler([3]float64{0, 0, 1}, math.Pi/2, math.Pi/2)
	chk.Vector(tst, "r3", 1e-9, r3[:], []float64{0, 1, 0})

	// the rotation preserves vector length
	r4 := rotateEuler([3]float64{1, 2, 3}, 0.7, 1.3)
	n0 := math.Sqrt(1 + 4 + 9)
	n4 := math.Sqrt(r4[0]*r4[0] + r4[1]*r4[1] + r4[2]*r4[2])
	chk.Scalar(tst, "norm preserved", 1e-9, n4, n0)
}

func Test_siteposition01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("siteposition01")

	global.Grid = grid.NewGrid(2, 2, 2, 1, 0, false, grid.FFTCapability{})
	global.Opts = &inp.Options{GridSpace: 1.0}
	global.Geom = &inp.Geometry{BoxX: 2, BoxY: 2, BoxZ: 2}

	s := matvec.Site{Ix: 0, Iy: 0, IzLocal: 0}
	pos := sitePosition(s)
	chk.Scalar(tst, "x", 1e-15, pos[0], -0.5)
	chk.Scalar(tst, "y", 1e-15, pos[1], -0.5)
	chk.Scalar(tst, "z", 1e-15, pos[2], -0.5)
}
