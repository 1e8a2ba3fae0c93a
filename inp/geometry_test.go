// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_geometry01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("geometry01")

	fn := filepath.Join(tst.TempDir(), "geom.txt")
	content := "# a comment line\nNmat=2\n1 0 2 1\n0 0 0 2\n0 1 1\n"
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		tst.Fatal(err)
	}

	g := ReadGeometry(fn)
	if g == nil {
		tst.Fatal("ReadGeometry returned nil")
	}
	chk.IntAssert(len(g.Sites), 3)
	chk.IntAssert(g.Nmat, 2)
	chk.IntAssert(g.BoxX, 2)
	chk.IntAssert(g.BoxY, 2)
	chk.IntAssert(g.BoxZ, 3)

	// the material defaults to 1 when omitted from a data line
	found := false
	for _, s := range g.Sites {
		if s.Ix == 0 && s.Iy == 1 && s.Iz == 1 {
			found = true
			chk.IntAssert(s.Mat, 1)
		}
	}
	if !found {
		tst.Errorf("expected site (0,1,1) not found")
	}

	// z-major ordering: the site at iz=0 must sort before the ones at
	// iz=1 and iz=2 (spec.md §3 global ordering convention)
	sorted := g.SortedByZ()
	chk.IntAssert(sorted[0].Iz, 0)
	chk.IntAssert(sorted[len(sorted)-1].Iz, 2)
}

func Test_geometry02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("geometry02")

	// negative coordinates are rejected
	fn := filepath.Join(tst.TempDir(), "bad.txt")
	if err := os.WriteFile(fn, []byte("-1 0 0\n"), 0644); err != nil {
		tst.Fatal(err)
	}
	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("expected a panic for a negative coordinate")
		}
	}()
	ReadGeometry(fn)
}
