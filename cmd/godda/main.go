// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/godda/engine"
)

func main() {

	// catch errors
	utl.Tsilent = false
	defer func() {
		if mpi.Rank() == 0 {
			if err := recover(); err != nil {
				utl.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// message
	utl.PfWhite("\ngodda -- discrete dipole approximation scattering engine\n\n")
	utl.Pf("Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.\n")
	utl.Pf("Use of this source code is governed by a BSD-style\n")
	utl.Pf("license that can be found in the LICENSE file.\n\n")

	// options filenamepath
	flag.Parse()
	var optsfile string
	if len(flag.Args()) > 0 {
		optsfile = flag.Arg(0)
	} else {
		utl.Panic("Please, provide an options file. Ex.: run.json\n")
	}

	// profiling?
	defer utl.DoProf(false)()

	// start global variables and log
	engine.Start(optsfile)

	// make sure to flush log
	defer engine.End()

	// run the orientation/polarization/solve/integrate loop
	if !engine.Run() {
		utl.Panic("Run failed\n")
		return
	}
}
