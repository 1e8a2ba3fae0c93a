// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_comm01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("comm01")

	// off-MPI, single-worker degenerate behavior (spec.md §7: every C7
	// primitive must work identically whether MPI is started or not)
	chk.IntAssert(Rank(), 0)
	chk.IntAssert(Size(), 1)
	if !Root() {
		tst.Errorf("single worker must be root")
	}
	if Distributed() {
		tst.Errorf("single worker must not be distributed")
	}
}

func Test_comm02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("comm02")

	local := []complex128{complex(1, 2), complex(-3, 4)}
	out := AllReduceSumComplex(local)
	chk.Scalar(tst, "Re(out[0])", 1e-17, real(out[0]), 1)
	chk.Scalar(tst, "Im(out[1])", 1e-17, imag(out[1]), 4)
}

func Test_comm03(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("comm03")

	local := []int{3, 7}
	dest := make([]int, 2)
	IntAllReduceMax(local, dest)
	chk.IntAssert(dest[0], 3)
	chk.IntAssert(dest[1], 7)
}

func Test_comm04(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("comm04")

	local := []complex128{1, 2, 3}
	gathered := AllGatherComplex(local)
	chk.IntAssert(len(gathered), 1)
	chk.Vector(tst, "gathered[0]", 1e-17,
		[]float64{real(gathered[0][0]), real(gathered[0][1]), real(gathered[0][2])},
		[]float64{1, 2, 3})
}

func Test_comm05(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("comm05")

	local := []float64{1, 5, -2}
	sum, max := ReduceToRootSumAndMax(local)
	chk.Vector(tst, "sum", 1e-17, sum, local)
	chk.Vector(tst, "max", 1e-17, max, local)
}
