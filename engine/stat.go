// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"time"

	"github.com/cpmech/gosl/utl"
)

// Stat handles timing and convergence-warning accounting across the
// run, mirroring fem/stat.go's module-level Stat variable (renamed
// from FE assembly/solve/update phases to the DDA phases: D-matrix
// build, per-orientation solve, Romberg integration).
var Stat struct {
	Sum *Summary

	TimeCpu      time.Time
	TimeBuildD   time.Duration
	TimeSolve    time.Duration
	TimeIntegrate time.Duration

	ConvergenceWarnings int // solver calls that hit DID_NOT_CONVERGE
	BreakdownCount      int // solver calls that hit BREAKDOWN
	RombergFailedInner  int // inner Romberg passes that did not converge by Jmax
}

// StatStart resets the CPU clock and allocates the summary, mirroring
// fem/stat.go's StatResetTime/StatInit pair.
func StatStart() {
	Stat.TimeCpu = time.Now()
	Stat.Sum = new(Summary)
}

// StatEnd reports final timing, mirroring fem/stat.go's StatEnd.
func StatEnd() {
	if global.Verbose {
		utl.Pfcyan("\ngodda: run complete\n")
		utl.Pfblue2("cpu time = %v\n", time.Now().Sub(Stat.TimeCpu))
		if Stat.ConvergenceWarnings > 0 {
			utl.PfMag("godda: %d solver call(s) did not converge within maxiter\n", Stat.ConvergenceWarnings)
		}
		if Stat.BreakdownCount > 0 {
			utl.PfMag("godda: %d solver call(s) hit breakdown\n", Stat.BreakdownCount)
		}
		if Stat.RombergFailedInner > 0 {
			utl.PfMag("godda: %d inner Romberg pass(es) did not converge by Jmax\n", Stat.RombergFailedInner)
		}
	}
}
