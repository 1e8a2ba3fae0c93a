// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements C8: the orchestrator state machine
// Init -> BuildParticle -> BuildD -> ForEachOrientation ->
// ForEachPolarization -> Solve -> EvaluateFields -> Integrate ->
// Finalize (spec.md §4.8), adapted from gofem/fem/solver.go's global
// mutable struct plus Start/Run/End lifecycle.
package engine

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/godda/comm"
	"github.com/cpmech/godda/dmatrix"
	"github.com/cpmech/godda/green"
	"github.com/cpmech/godda/grid"
	"github.com/cpmech/godda/inp"
	"github.com/cpmech/godda/matvec"
)

// global holds module-level mutable state for grid parameters,
// D-matrix pointers and option flags (spec.md §9 design note: "fold
// into a top-level Engine value owned by the orchestrator"), following
// fem/solver.go's `global struct` exactly.
var global struct {
	Rank    int
	Nproc   int
	Root    bool
	Distr   bool
	Verbose bool

	WspcStop []int
	WspcInum []int

	Opts *inp.Options
	Mdb  *inp.MatDb
	Geom *inp.Geometry

	Grid   *grid.Grid
	Kernel green.Kernel
	D      *dmatrix.DMatrix
	Eng    *matvec.Engine

	Sites     []matvec.Site
	MyMat     []complex128 // per-local-site material refractive index
	AlphaSelf []complex128 // per-local-site self polarizability
}

// Start initializes global state, mirroring fem.Start: multiprocessing
// data first, then simulation input (here: options, materials,
// geometry).
func Start(optsfile string) {
	comm.Start()

	global.Rank = comm.Rank()
	global.Nproc = comm.Size()
	global.Root = comm.Root()
	global.Distr = comm.Distributed()
	if global.Distr {
		global.WspcStop = make([]int, global.Nproc)
		global.WspcInum = make([]int, global.Nproc)
	}

	global.Opts = inp.ReadOptions(optsfile)
	if global.Opts == nil {
		chk.Panic("engine: failed to read options file %s", optsfile)
	}
	global.Verbose = global.Opts.Verbose && global.Root

	if err := inp.InitLogFile(global.Opts.DirOut, "godda"); err != nil {
		chk.Panic("engine: cannot init log file in %s: %v", global.Opts.DirOut, err)
	}

	global.Mdb = inp.ReadMat(global.Opts.Matfile)
	if global.Mdb == nil {
		chk.Panic("engine: failed to read materials file %s", global.Opts.Matfile)
	}

	global.Geom = inp.ReadGeometry(global.Opts.Geomfile)
	if global.Geom == nil {
		chk.Panic("engine: failed to read geometry file %s", global.Opts.Geomfile)
	}
	global.Opts.NvoidNdip = len(global.Geom.Sites)
	if global.Opts.MaxIter == 0 {
		global.Opts.MaxIter = 3 * global.Opts.NvoidNdip
	}

	if global.Verbose {
		utl.Pfcyan("godda: ndip=%d nmat=%d\n", global.Opts.NvoidNdip, global.Geom.Nmat)
	}
}

// End finalizes the process group and flushes the log file.
func End() {
	inp.FlushLog()
	comm.Stop()
}
