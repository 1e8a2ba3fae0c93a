// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_stop01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("stop01")

	// the serial (non-distributed) path reports stop directly from err,
	// with no collective involved
	global.Distr = false
	if Stop(nil, "ok step") {
		tst.Errorf("Stop(nil,...) should not request a stop")
	}
	if !Stop(errors.New("boom"), "failing step") {
		tst.Errorf("Stop(err,...) should request a stop")
	}
}
