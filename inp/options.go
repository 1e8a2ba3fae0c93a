// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the configuration, materials and geometry data
// read from JSON/text files for a godda run.
package inp

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Options holds the run-wide configuration recognized by the
// orchestrator (spec.md §6's command-line surface, consumed here as an
// equivalent configuration structure read from JSON).
type Options struct {

	// global information
	Desc    string `json:"desc"`    // description of run
	Matfile string `json:"matfile"` // materials file path
	Geomfile string `json:"geomfile"` // geometry file path
	DirOut  string `json:"dirout"`  // directory for output

	// physical parameters
	Lambda float64 `json:"lambda"` // wavelength, same length unit as size
	Dpl    float64 `json:"dpl"`    // dipoles per wavelength
	Size   float64 `json:"size"`   // physical x-size; exactly one of Dpl/Size is set

	// solver selection
	Iter    string  `json:"iter"`    // cgnr|bicgstab|bicg|qmr
	Eps     float64 `json:"eps"`     // relative residual tolerance (already linear, not -log10)
	MaxIter int     `json:"maxiter"` // cap; default 3*nvoidNdip

	// prescriptions
	Pol    string `json:"pol"`    // cm|rrc|ldr|cldr|so
	AvgPol bool   `json:"avgpol"` // ldr sub-option
	Scat   string `json:"scat"`   // dr|so
	Int    string `json:"int"`    // poi|so|fcd|fcd_st|igt

	// orientation / incidence
	Orient    string     `json:"orient"`    // "fixed" or "avg[ file]"
	Alpha     float64    `json:"alpha"`     // Euler angle (fixed orientation)
	Beta      float64    `json:"beta"`      // Euler angle (fixed orientation)
	Gamma     float64    `json:"gamma"`     // Euler angle (fixed orientation)
	Beam      string     `json:"beam"`      // plane|gaussian
	BeamW0    float64    `json:"beam_w0"`   // Gaussian beam waist
	BeamX0    float64    `json:"beam_x0"`
	BeamY0    float64    `json:"beam_y0"`
	BeamZ0    float64    `json:"beam_z0"`
	Prop      [3]float64 `json:"prop"` // propagation unit vector

	// observables
	Observables []string `json:"observables"` // subset of Cext,Cabs,Csca,asym,Cpr_mat
	Ntheta      int      `json:"ntheta"`       // scattering-angle grid count

	// reduced-FFT and partition knobs
	ReducedFFT bool `json:"reduced_fft"`
	Verbose    bool `json:"verbose"`

	// derived
	WaveNum     float64 // 2*pi/lambda
	GridSpace   float64 // lattice spacing
	NvoidNdip   int     // total occupied dipole count (filled after geometry load)
}

// SetDefault sets default values, mirroring inp.Data.SetDefault's
// defaults-before-unmarshal convention.
func (o *Options) SetDefault() {
	o.Iter = "cgnr"
	o.Eps = 1e-5
	o.Pol = "ldr"
	o.Scat = "dr"
	o.Int = "poi"
	o.Orient = "fixed"
	o.Beam = "plane"
	o.Prop = [3]float64{0, 0, 1}
	o.Ntheta = 180
	o.ReducedFFT = true
	o.Observables = []string{"Cext", "Cabs", "Csca"}
}

// ReadOptions decodes a JSON options file, applying defaults first and
// PostProcess after, following inp.Data's
// SetDefault-then-Unmarshal-then-PostProcess pattern in sim.go.
func ReadOptions(fn string) *Options {
	var o Options
	o.SetDefault()
	b, err := utl.ReadFile(fn)
	if LogErr(err, "options: cannot open options file "+fn+"\n") {
		return nil
	}
	if LogErr(json.Unmarshal(b, &o), "options: cannot unmarshal options file "+fn+"\n") {
		return nil
	}
	o.PostProcess()
	return &o
}

// PostProcess derives dependent fields and validates the exclusivity
// and range constraints of spec.md §7's ConfigurationError/
// ValidationError kinds; both classes must be caught here, before any
// collective, per spec.md §7's propagation rule.
func (o *Options) PostProcess() {

	// ConfigurationError: exactly one of dpl/size must be set
	if (o.Dpl > 0) == (o.Size > 0) {
		chk.Panic("options: exactly one of dpl or size must be set (dpl=%v size=%v)", o.Dpl, o.Size)
	}

	// ConfigurationError: -prop with orientation averaging
	if o.Orient != "fixed" && (o.Prop != [3]float64{} && o.Prop != [3]float64{0, 0, 1}) {
		chk.Panic("options: prop cannot be combined with orientation averaging")
	}

	// ValidationError: propagation vector must be a unit vector
	pn := math.Sqrt(o.Prop[0]*o.Prop[0] + o.Prop[1]*o.Prop[1] + o.Prop[2]*o.Prop[2])
	if math.Abs(pn-1) > 1e-9 {
		chk.Panic("options: prop must be a unit vector, got norm=%v", pn)
	}

	if o.Lambda <= 0 {
		chk.Panic("options: lambda must be positive")
	}
	o.WaveNum = 2 * math.Pi / o.Lambda
	if o.Dpl > 0 {
		o.GridSpace = o.Lambda / o.Dpl
	}

	switch o.Iter {
	case "cgnr", "bicgstab", "bicg", "qmr":
	default:
		chk.Panic("options: unknown iter=%q", o.Iter)
	}
	switch o.Pol {
	case "cm", "rrc", "ldr", "cldr", "so":
	default:
		chk.Panic("options: unknown pol=%q", o.Pol)
	}
	switch o.Int {
	case "poi", "so", "fcd", "fcd_st", "igt":
	default:
		chk.Panic("options: unknown int=%q", o.Int)
	}

	if o.DirOut == "" {
		o.DirOut = "."
	}
}
