// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/godda/comm"
)

// Stop decides whether a serial or parallel run has to be stopped,
// generalizing fem/errorhandler.go's Stop to the DDA error kinds of
// spec.md §7: Fatal and ResourceError abort unconditionally;
// ConvergenceWarning/NumericWarning are logged by the caller and never
// reach Stop.
func Stop(err error, msg string) bool {
	if !global.Distr {
		if err != nil {
			utl.Pf("\n")
			utl.PfMag("godda: failed on %s with %v\n", msg, err)
			return true
		}
		return false
	}

	for i := range global.WspcStop {
		global.WspcStop[i] = 0
	}
	if err != nil {
		utl.PfMag("godda: failed in proc # %d on %s with %v\n", global.Rank, msg, err)
		global.WspcStop[global.Rank] = 1
	}
	comm.IntAllReduceMax(global.WspcStop, global.WspcInum)
	for i := range global.WspcStop {
		if global.WspcStop[i] > 0 {
			return true
		}
	}
	return false
}
