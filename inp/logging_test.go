// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_logging01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("logging01")

	dir := tst.TempDir()
	if err := InitLogFile(dir, "godda"); err != nil {
		tst.Fatalf("InitLogFile failed: %v", err)
	}
	defer FlushLog()

	if _, err := os.Stat(filepath.Join(dir, "godda_p0.log")); err != nil {
		tst.Errorf("expected log file to be created: %v", err)
	}
}

func Test_logging02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("logging02")

	if !LogErr(errors.New("boom"), "test context") {
		tst.Errorf("LogErr should report stop=true on a non-nil error")
	}
	if LogErr(nil, "test context") {
		tst.Errorf("LogErr should report stop=false on a nil error")
	}
	if !LogErrCond(true, "formatted %s", "message") {
		tst.Errorf("LogErrCond should report stop=true when condition is true")
	}
	if LogErrCond(false, "formatted %s", "message") {
		tst.Errorf("LogErrCond should report stop=false when condition is false")
	}
}
