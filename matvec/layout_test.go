// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matvec

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/godda/comm"
	"github.com/cpmech/godda/grid"
)

func Test_layout01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("layout01")

	chk.IntAssert(ZPartitioned.Wrap(-1, 8), 7)
	chk.IntAssert(XPartitioned.Wrap(9, 8), 1)
	if ZPartitioned.String() != "z-partitioned" {
		tst.Errorf("ZPartitioned.String() = %q", ZPartitioned.String())
	}
	if XPartitioned.String() != "x-partitioned" {
		tst.Errorf("XPartitioned.String() = %q", XPartitioned.String())
	}
}

func Test_layout02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("layout02")

	// single-rank block-transpose round trip: ToXPartitioned followed by
	// ToZPartitioned must reproduce the owned z-slab exactly, since a
	// lone rank never ships payload to a partner (spec.md §4.7 "skip
	// this round" degenerate case)
	g := grid.NewGrid(2, 2, 2, 1, 0, false, grid.FFTCapability{})
	g.AssignXPartition()
	sched := comm.NewSchedule(g.Part.Nprocs)
	localNz := g.Part.LocalZ1 - g.Part.LocalZ0

	buf := make([]complex128, g.SizeX*g.SizeY*max1(localNz))
	for i := range buf {
		buf[i] = complex(float64(i), float64(-i))
	}

	xPart := ToXPartitioned(buf, g, sched, localNz)
	back := ToZPartitioned(xPart, g, sched, localNz)

	for i := range buf {
		if back[i] != buf[i] {
			tst.Fatalf("round trip mismatch at %d: got %v want %v", i, back[i], buf[i])
		}
	}
}
