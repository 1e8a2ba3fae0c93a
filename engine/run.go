// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"
	"time"

	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/godda/comm"
	"github.com/cpmech/godda/dmatrix"
	"github.com/cpmech/godda/fftkernel"
	"github.com/cpmech/godda/green"
	"github.com/cpmech/godda/grid"
	"github.com/cpmech/godda/matvec"
	"github.com/cpmech/godda/romberg"
	"github.com/cpmech/godda/solve"
)

// Run drives the full orchestrator state machine (spec.md §4.8): Init
// (done by Start) -> BuildParticle -> BuildD -> ForEachOrientation ->
// ForEachPolarization -> Solve -> EvaluateFields -> Integrate ->
// Finalize, mirroring fem/solver.go's Run but replacing the FE
// time-stepping loop with DDA's orientation/polarization loops.
func Run() bool {
	StatStart()
	defer StatEnd()

	if Stop(buildParticle(), "BuildParticle") {
		return false
	}
	if Stop(buildD(), "BuildD") {
		return false
	}

	sum := runOrientations()
	Stat.Sum = sum
	if global.Verbose {
		utl.Pfcyan("\n%v\n", sum.String())
	}
	return true
}

// buildParticle chooses the FFT-friendly doubled grid and this worker's
// z-partition, then assigns the worker its slice of the occupied-dipole
// array (spec.md §3's "worker-local dense sequence"), recording each
// site's material index for the self-term computation buildD does once
// the kernel is known.
func buildParticle() error {
	boxX, boxY, boxZ := global.Geom.BoxX, global.Geom.BoxY, global.Geom.BoxZ
	fftCap := grid.FFTCapability{AllowSeven: fftkernel.Capability()}
	global.Grid = grid.NewGrid(boxX, boxY, boxZ, global.Nproc, global.Rank, global.Opts.ReducedFFT, fftCap)

	sorted := global.Geom.SortedByZ()
	part := global.Grid.Part

	var sites []matvec.Site
	var mats []complex128
	for _, s := range sorted {
		if s.Iz < part.LocalZ0 || s.Iz >= part.LocalZ1Coer {
			continue
		}
		sites = append(sites, matvec.Site{Ix: s.Ix, Iy: s.Iy, IzLocal: s.Iz - part.LocalZ0})
		mats = append(mats, global.Mdb.Get(s.Mat))
	}
	global.Sites = sites
	global.MyMat = mats
	return nil
}

// buildD builds the Green-tensor kernel and forward-FFTs the
// interaction tensor once (spec.md §4.3), following the lifecycle rule
// "D-matrix: built once after shape is known". A single reference
// material drives the interaction kernel itself (the inter-dipole
// medium is the embedding material, not the scatterer's), while each
// site's own material enters only through its self polarizability.
func buildD() error {
	tab := green.NewSOTables()
	prescription := interactionPrescription(global.Opts.Int)
	global.Kernel = green.KernelFor(prescription, 10, tab)

	var refM complex128 = 1
	if len(global.Mdb.Materials) > 0 {
		refM = global.Mdb.Materials[0].M()
	}

	t0 := time.Now()
	global.D = dmatrix.Build(global.Grid, global.Kernel, global.Opts.GridSpace, global.Opts.WaveNum, refM)
	Stat.TimeBuildD = time.Since(t0)

	global.Eng = matvec.NewEngine(global.Grid, global.D, global.Sites)

	global.AlphaSelf = make([]complex128, len(global.Sites))
	pol := polPrescription(global.Opts.Pol)
	prop := global.Opts.Prop
	for i := range global.Sites {
		global.AlphaSelf[i] = green.SelfTerm(pol, global.Opts.GridSpace, global.Opts.WaveNum, global.MyMat[i], prop, nil)
	}
	return nil
}

func interactionPrescription(s string) green.Prescription {
	switch s {
	case "so":
		return green.SO
	case "fcd":
		return green.FCD
	case "fcd_st":
		return green.FCDST
	case "igt":
		return green.IGT
	}
	return green.PointDipole
}

func polPrescription(s string) green.PolPrescription {
	switch s {
	case "rrc":
		return green.RadiativeReaction
	case "ldr":
		return green.LDR
	case "cldr":
		return green.CLDR
	case "so":
		return green.SelfConsistent
	}
	return green.ClausiusMossotti
}

// runOrientations drives the outer (theta=beta) / inner (phi=gamma)
// Romberg orientation average (spec.md §4.8: "the outer Romberg drives
// ForEachOrientation; a fixed orientation becomes a single-point
// Romberg").
func runOrientations() *Summary {
	thetaAxis, phiAxis := orientationAxes()
	integ := &romberg.Integrator2D{Theta: thetaAxis, Phi: phiAxis, Dim: 3}

	avg, relErr, nFailed := integ.Integrate(func(beta, gamma float64) ([]float64, float64) {
		obs, errEst := solveOneOrientation(beta, gamma)
		return []float64{obs.Cext, obs.Cabs, obs.Csca}, errEst
	})
	Stat.RombergFailedInner += nFailed

	return &Summary{
		NumOrientations: thetaAxis.GridSize * phiAxis.GridSize,
		Avg:             Observables{Cext: avg[0], Cabs: avg[1], Csca: avg[2]},
		RelErr:          relErr,
	}
}

func orientationAxes() (theta, phi romberg.Axis) {
	if global.Opts.Orient == "fixed" {
		theta = romberg.Axis{Min: global.Opts.Beta, Max: global.Opts.Beta, GridSize: 1, Jmax: 1, Jmin: 1, Eps: 1}
		phi = romberg.Axis{Min: global.Opts.Gamma, Max: global.Opts.Gamma, GridSize: 1, Jmax: 1, Jmin: 1, Eps: 1}
		return
	}
	theta = romberg.Axis{Min: 0, Max: math.Pi, GridSize: 5, Jmax: 3, Jmin: 2, Eps: 1e-3, Equivalent: false}
	phi = romberg.Axis{Min: 0, Max: 2 * math.Pi, GridSize: 9, Jmax: 4, Jmin: 2, Eps: 1e-3, Periodic: true}
	return
}

// solveOneOrientation performs ForEachPolarization -> Solve ->
// EvaluateFields for one (beta,gamma) orientation, returning the
// polarization-averaged observables and the worse of the two solves'
// residual norms as this sample's absolute-error contribution to the
// outer Romberg bound.
func solveOneOrientation(beta, gamma float64) (Observables, float64) {
	prop := rotateEuler(global.Opts.Prop, beta, gamma)
	pol1, pol2 := OrthonormalPolarizations(prop)

	var beam Beam = BeamCte{}
	if global.Opts.Beam == "gaussian" {
		beam = BeamGaussian{W0: global.Opts.BeamW0, X0: global.Opts.BeamX0, Y0: global.Opts.BeamY0, Z0: global.Opts.BeamZ0, Prop: prop}
	}

	obs1, err1 := solvePolarization(beam, prop, pol1)
	obs2, err2 := solvePolarization(beam, prop, pol2)

	errEst := err1
	if err2 > errEst {
		errEst = err2
	}
	return averageObservables(obs1, obs2), errEst
}

func solvePolarization(beam Beam, prop, polDir [3]float64) (Observables, float64) {
	n := len(global.Sites)
	einc := make([]complex128, 3*n)
	b := make([]complex128, 3*n)
	for i, s := range global.Sites {
		pos := sitePosition(s)
		e := IncidentField(beam, pos, global.Opts.WaveNum, prop, polDir)
		for c := 0; c < 3; c++ {
			einc[3*i+c] = e[c]
			b[3*i+c] = global.AlphaSelf[i] * e[c]
		}
	}

	a := systemMatvec(global.Eng, global.AlphaSelf)
	bilinear := global.Opts.Iter != "cgnr"
	dot := systemDot(bilinear)

	t0 := time.Now()
	result := solveWith(global.Opts.Iter, a, b, dot, global.Opts.Eps, global.Opts.MaxIter)
	Stat.TimeSolve += time.Since(t0)

	switch result.Status {
	case solve.DidNotConverge:
		Stat.ConvergenceWarnings++
	case solve.Breakdown:
		Stat.BreakdownCount++
	}

	obs := computeObservables(result.X, einc, global.AlphaSelf, global.Opts.WaveNum)
	return obs, result.ResNorm
}

func solveWith(name string, a solve.Matvec, b []complex128, dot solve.Dot, eps float64, maxiter int) solve.Result {
	switch name {
	case "bicgstab":
		return solve.BiCGSTAB(a, b, nil, dot, eps, maxiter)
	case "bicg":
		return solve.BiCG(a, b, nil, dot, eps, maxiter)
	case "qmr":
		return solve.QMR(a, b, nil, dot, eps, maxiter)
	}
	return solve.CGNR(a, b, nil, dot, eps, maxiter)
}

// systemMatvec builds the A = I - alphaSelf*D operator (spec.md §4.5),
// scaling each dipole's 3-vector block by its own self polarizability
// before subtracting the convolution result.
func systemMatvec(eng *matvec.Engine, alphaSelf []complex128) solve.Matvec {
	return func(v []complex128) []complex128 {
		dv := eng.Apply(v)
		out := make([]complex128, len(v))
		nSites := len(v) / 3
		for s := 0; s < nSites; s++ {
			a := alphaSelf[s]
			for c := 0; c < 3; c++ {
				idx := 3*s + c
				out[idx] = v[idx] - a*dv[idx]
			}
		}
		return out
	}
}

// systemDot implements the complex inner product as a local dot
// followed by a single global all-reduce (spec.md §4.5/§4.7):
// bilinear=true gives the x^T*y form complex-symmetric solvers need,
// bilinear=false gives the Hermitian x^H*y form CGNR's normal
// equations need.
func systemDot(bilinear bool) solve.Dot {
	return func(x, y []complex128) complex128 {
		var local complex128
		for i := range x {
			if bilinear {
				local += x[i] * y[i]
			} else {
				local += complex(real(x[i]), -imag(x[i])) * y[i]
			}
		}
		return globalSumComplex(local)
	}
}

// globalSumComplex all-reduces a single complex scalar across workers,
// the one-element case of comm.AllReduceSumComplex (spec.md §4.5/§4.7's
// "a local dot followed by a single global all-reduce").
func globalSumComplex(local complex128) complex128 {
	out := comm.AllReduceSumComplex([]complex128{local})
	return out[0]
}

func sitePosition(s matvec.Site) [3]float64 {
	iz := s.IzLocal + global.Grid.Part.LocalZ0
	gs := global.Opts.GridSpace
	return [3]float64{
		gs * (float64(s.Ix) + 0.5 - float64(global.Geom.BoxX)/2),
		gs * (float64(s.Iy) + 0.5 - float64(global.Geom.BoxY)/2),
		gs * (float64(iz) + 0.5 - float64(global.Geom.BoxZ)/2),
	}
}

// rotateEuler rotates the reference propagation vector by a beta
// (polar, about Y) then gamma (azimuthal, about Z) rotation for
// orientation averaging (spec.md §4.8, S4).
func rotateEuler(v [3]float64, beta, gamma float64) [3]float64 {
	cb, sb := math.Cos(beta), math.Sin(beta)
	vy := [3]float64{cb*v[0] + sb*v[2], v[1], -sb*v[0] + cb*v[2]}
	cg, sg := math.Cos(gamma), math.Sin(gamma)
	return [3]float64{cg*vy[0] - sg*vy[1], sg*vy[0] + cg*vy[1], vy[2]}
}
