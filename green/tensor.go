// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package green implements C2: the interaction kernel computing the
// symmetric 3x3 Green tensor between two lattice sites under a chosen
// prescription.
package green

import "math"

// Tensor is the symmetric 3x3 complex interaction tensor G(r), stored
// as its six independent components in the fixed order spec.md §3
// requires: {xx, xy, xz, yy, yz, zz}.
type Tensor struct {
	XX, XY, XZ, YY, YZ, ZZ complex128
}

// At returns component (mu, nu) of the symmetric tensor, mu, nu in
// {0=x, 1=y, 2=z}.
func (t Tensor) At(mu, nu int) complex128 {
	if mu > nu {
		mu, nu = nu, mu
	}
	switch {
	case mu == 0 && nu == 0:
		return t.XX
	case mu == 0 && nu == 1:
		return t.XY
	case mu == 0 && nu == 2:
		return t.XZ
	case mu == 1 && nu == 1:
		return t.YY
	case mu == 1 && nu == 2:
		return t.YZ
	case mu == 2 && nu == 2:
		return t.ZZ
	}
	panic("green: tensor index out of range")
}

// Scale multiplies every component by a complex scalar.
func (t Tensor) Scale(s complex128) Tensor {
	return Tensor{t.XX * s, t.XY * s, t.XZ * s, t.YY * s, t.YZ * s, t.ZZ * s}
}

// Add returns the componentwise sum of two tensors.
func (t Tensor) Add(u Tensor) Tensor {
	return Tensor{t.XX + u.XX, t.XY + u.XY, t.XZ + u.XZ, t.YY + u.YY, t.YZ + u.YZ, t.ZZ + u.ZZ}
}

// Apply computes the symmetric 3x3 complex matrix-vector product G*v,
// the "six-component symmetric 3x3 complex multiply per grid point" of
// spec.md §4.4 step 4.
func (t Tensor) Apply(v [3]complex128) [3]complex128 {
	return [3]complex128{
		t.XX*v[0] + t.XY*v[1] + t.XZ*v[2],
		t.XY*v[0] + t.YY*v[1] + t.YZ*v[2],
		t.XZ*v[0] + t.YZ*v[1] + t.ZZ*v[2],
	}
}

// Displacement is an integer lattice displacement (i,j,k) between two
// sites, in grid-spacing units.
type Displacement struct {
	I, J, K int
}

// Norm returns the physical distance and unit direction q = n/|n| for
// a displacement at the given grid spacing.
func (d Displacement) Norm(gridspace float64) (r float64, q [3]float64) {
	fi, fj, fk := float64(d.I), float64(d.J), float64(d.K)
	rn := math.Sqrt(fi*fi + fj*fj + fk*fk)
	r = gridspace * rn
	if rn == 0 {
		return r, [3]float64{0, 0, 0}
	}
	return r, [3]float64{fi / rn, fj / rn, fk / rn}
}

// Prescription selects a closed-form variant for the inter-dipole
// Green tensor, chosen once at configuration time (spec.md §4.2, §9).
type Prescription int

const (
	PointDipole Prescription = iota
	IGT
	IGTSO
	FCD
	FCDST
	SO
)

func (p Prescription) String() string {
	switch p {
	case PointDipole:
		return "poi"
	case IGT:
		return "igt"
	case IGTSO:
		return "igt_so"
	case FCD:
		return "fcd"
	case FCDST:
		return "fcd_st"
	case SO:
		return "so"
	}
	return "unknown"
}

// Kernel computes the six independent tensor components for a given
// lattice displacement. Implementations are pure: no global writes,
// per spec.md §4.2's contract.
type Kernel interface {
	Eval(d Displacement, gridspace, wavenum float64, m complex128) Tensor
}

// KernelFor dispatches once at startup to the concrete kernel for a
// prescription, following the DESIGN NOTES §9 guidance: the hot path
// (C3/C4 calling this millions of times) goes through a function value,
// never a per-call string/enum comparison.
func KernelFor(p Prescription, igtLimit float64, tab *SOTables) Kernel {
	switch p {
	case PointDipole:
		return PointDipoleKernel{}
	case FCD:
		return FCDFullKernel{}
	case FCDST:
		return FCDStaticKernel{}
	case IGT:
		return IGTKernel{Limit: igtLimit, Fallback: PointDipoleKernel{}}
	case IGTSO:
		return IGTKernel{Limit: igtLimit, Fallback: SOKernel{Tables: tab}}
	case SO:
		return SOKernel{Tables: tab}
	}
	return PointDipoleKernel{}
}
