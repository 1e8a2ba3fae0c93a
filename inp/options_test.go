// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_options01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("options01")

	var o Options
	o.SetDefault()
	if o.Iter != "cgnr" || o.Pol != "ldr" || o.Orient != "fixed" {
		tst.Errorf("SetDefault did not set the documented defaults: %+v", o)
	}

	// a valid, minimal configuration passes PostProcess without panicking
	o.Lambda = 0.5
	o.Dpl = 10
	o.PostProcess()
	chk.Scalar(tst, "wavenum", 1e-9, o.WaveNum, 2*3.141592653589793/0.5)
	chk.Scalar(tst, "gridspace", 1e-9, o.GridSpace, 0.05)
	chk.IntAssert(len(o.DirOut), 1) // defaulted to "."
}

func Test_options02(tst *testing.T) {

	chk.PrintTitle("options02")

	// dpl and size are mutually exclusive: setting neither (or both)
	// must panic before any collective runs
	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("expected a panic when neither dpl nor size is set")
		}
	}()
	var o Options
	o.SetDefault()
	o.Lambda = 0.5
	o.PostProcess()
}

func Test_options03(tst *testing.T) {

	chk.PrintTitle("options03")

	// a non-unit propagation vector must be rejected
	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("expected a panic for a non-unit prop vector")
		}
	}()
	var o Options
	o.SetDefault()
	o.Lambda = 0.5
	o.Dpl = 10
	o.Prop = [3]float64{1, 1, 0}
	o.PostProcess()
}

func Test_options04(tst *testing.T) {

	chk.PrintTitle("options04")

	// an unrecognized solver name must be rejected
	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("expected a panic for an unknown iter option")
		}
	}()
	var o Options
	o.SetDefault()
	o.Lambda = 0.5
	o.Dpl = 10
	o.Iter = "gmres"
	o.PostProcess()
}
