// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_fit01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("fit01")

	fftCap := FFTCapability{}

	// already a product of 2,3,5 and a multiple of d: returned unchanged
	chk.IntAssert(Fit(8, 2, fftCap), 8)
	chk.IntAssert(Fit(12, 4, fftCap), 12)

	// smallest multiple of d with allowed factorization, rounding up
	chk.IntAssert(Fit(7, 2, fftCap), 8)
	chk.IntAssert(Fit(11, 3, fftCap), 12)

	// n<1 clamps to 1 before searching
	chk.IntAssert(Fit(0, 2, fftCap), 2)
}

func Test_fit02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("fit02")

	// a divisor with a disallowed prime factor (7) falls back to plain
	// divisibility ("weird" mode) instead of looping forever
	fftCap := FFTCapability{}
	m := Fit(10, 7, fftCap)
	chk.IntAssert(m%7, 0)

	// AllowSeven widens the allowed factorization set
	cap7 := FFTCapability{AllowSeven: true}
	m7 := Fit(7, 7, cap7)
	chk.IntAssert(m7, 7)
}

func Test_partition01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("partition01")

	// four equal z-blocks fully covering a boxZ that divides evenly
	gridZ, boxZ, nprocs := 16, 8, 4
	total := 0
	for r := 0; r < nprocs; r++ {
		p := NewPartition(gridZ, boxZ, nprocs, r)
		total += p.LocalZ1Coer - p.LocalZ0
	}
	chk.IntAssert(total, boxZ)

	// a single rank owns the whole physical extent, so its slab is not empty
	p := NewPartition(gridZ, boxZ, 1, 0)
	if p.Empty() {
		tst.Errorf("single-rank partition should not be empty")
	}
}
