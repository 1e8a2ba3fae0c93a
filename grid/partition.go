// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/cpmech/gosl/utl"

// Partition describes one worker's share of the doubled grid, in both
// the z-partitioned (pre block-transpose) and x-partitioned
// (post block-transpose) layouts of spec.md §3.
type Partition struct {
	Nprocs int
	Rank   int

	// z-partitioned layout: this worker owns [LocalZ0, LocalZ1) of the
	// doubled z-range [0, gridZ/2).
	LocalZ0, LocalZ1 int

	// LocalZ1Coer is LocalZ1 clamped to the physical box extent BoxZ;
	// a worker whose LocalZ1Coer <= LocalZ0 owns an empty slab and
	// still participates in collectives (spec.md §4.1 Failure case).
	LocalZ1Coer int

	// x-partitioned layout, assigned after the first block-transpose.
	LocalX0, LocalX1 int
}

// Empty reports whether this worker's physical slab is empty.
func (p Partition) Empty() bool {
	return p.LocalZ1Coer <= p.LocalZ0
}

// Grid holds the doubled grid sizes and the reduced-FFT frequency-
// domain sizes (spec.md §3).
type Grid struct {
	BoxX, BoxY, BoxZ    int
	SizeX, SizeY, SizeZ int // doubled grid (gridX, gridY, gridZ)
	DSizeX              int
	DSizeY              int // gridY/2+1 when reduced-FFT is on, else gridY
	DSizeZ              int // gridZ/2+1 when reduced-FFT is on, else gridZ
	ReducedFFT          bool
	Part                Partition
}

// NewGrid chooses FFT-friendly grid sizes and computes the partition
// owned by rank out of nprocs, following spec.md §3/§4.1 exactly:
// gridX=fit(2*boxX,nprocs), gridY=fit(2*boxY,1), gridZ=fit(2*boxZ,2*nprocs).
func NewGrid(boxX, boxY, boxZ, nprocs, rank int, reducedFFT bool, cap FFTCapability) *Grid {
	g := &Grid{
		BoxX: boxX, BoxY: boxY, BoxZ: boxZ,
		ReducedFFT: reducedFFT,
	}
	g.SizeX = Fit(2*boxX, nprocs, cap)
	g.SizeY = Fit(2*boxY, 1, cap)
	g.SizeZ = Fit(2*boxZ, 2*nprocs, cap)

	g.DSizeX = g.SizeX
	if reducedFFT {
		g.DSizeY = g.SizeY/2 + 1
		g.DSizeZ = g.SizeZ/2 + 1
	} else {
		g.DSizeY = g.SizeY
		g.DSizeZ = g.SizeZ
	}

	g.Part = NewPartition(g.SizeZ, boxZ, nprocs, rank)

	if g.Part.Empty() {
		utl.PfMag("grid: rank %d owns an empty z-slab (local_z1_coer <= local_z0); continuing (non-fatal)\n", rank)
	}
	return g
}

// UnitZ returns the per-rank z-block size used to slice [0, gridZ/2):
// ceil((gridZ/2)/nprocs). It depends only on (gridZ, nprocs), not rank,
// so every worker can compute it for every other worker without
// exchanging it out of band — the matvec block-transpose buffers rely
// on this to fix a common payload size per round (spec.md §9's
// "BT_buffer"/"BT_rbuffer" are sized once, conservatively, not
// per-round-negotiated).
func UnitZ(gridZ, nprocs int) int {
	halfZ := gridZ / 2
	unitZ := halfZ / nprocs
	if unitZ*nprocs < halfZ {
		unitZ++
	}
	return unitZ
}

// UnitX returns the per-rank x-block size used to slice [0, gridX):
// ceil(gridX/nprocs), analogous to UnitZ.
func UnitX(gridX, nprocs int) int {
	unitX := gridX / nprocs
	if unitX*nprocs < gridX {
		unitX++
	}
	return unitX
}

// XPartitionFor returns the x-range owned by rank out of nprocs after
// the first block-transpose, without requiring a *Grid value for that
// rank — used by matvec to address other ranks' x-ranges locally.
func XPartitionFor(gridX, nprocs, rank int) (x0, x1 int) {
	unitX := UnitX(gridX, nprocs)
	x0 = rank * unitX
	x1 = x0 + unitX
	if x1 > gridX {
		x1 = gridX
	}
	if x0 > gridX {
		x0 = gridX
	}
	return x0, x1
}

// NewPartition slices the doubled z-range [0, gridZ/2) into nprocs
// contiguous blocks, worker r owning [r*unitZ, (r+1)*unitZ), clamped
// to boxZ for the physical extent (spec.md §3 Partition).
func NewPartition(gridZ, boxZ, nprocs, rank int) Partition {
	halfZ := gridZ / 2
	unitZ := UnitZ(gridZ, nprocs)
	z0 := rank * unitZ
	z1 := z0 + unitZ
	if z1 > halfZ {
		z1 = halfZ
	}
	if z0 > halfZ {
		z0 = halfZ
	}
	z1coer := z1
	if z1coer > boxZ {
		z1coer = boxZ
	}
	return Partition{
		Nprocs: nprocs, Rank: rank,
		LocalZ0: z0, LocalZ1: z1,
		LocalZ1Coer: z1coer,
	}
}

// AssignXPartition fills in the x-partitioned range for this worker
// after the first block-transpose, slicing gridX analogously to the
// z-partition (spec.md §3).
func (g *Grid) AssignXPartition() {
	g.Part.LocalX0, g.Part.LocalX1 = XPartitionFor(g.SizeX, g.Part.Nprocs, g.Part.Rank)
}
