// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Partner must be self-inverse within every round: applying it twice
// from the same rank's perspective returns the original rank
// (spec.md §8 property 9), for every worker count and round, with no
// MPI involved.
func Test_transpose01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("transpose01")

	for _, nprocs := range []int{1, 2, 4, 7} {
		s := NewSchedule(nprocs)
		for t := 1; t <= s.Ntrans; t++ {
			for r := 0; r < s.Nprocs; r++ {
				p := s.Partner(t, r)
				if p == -1 {
					continue // r sits this round out
				}
				back := s.Partner(t, p)
				if back != r {
					tst.Errorf("nprocs=%d t=%d r=%d: Partner(t,Partner(t,r))=%d, want %d", nprocs, t, r, back, r)
				}
			}
		}
	}
}
