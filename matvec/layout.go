// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package matvec implements C4: applying the interaction operator to a
// polarization vector via FFT convolution and a block-transpose across
// workers (spec.md §4.4). It is the core's hot path, called millions of
// times per run by the C5 solvers.
package matvec

import (
	"github.com/cpmech/godda/comm"
	"github.com/cpmech/godda/grid"
)

// Layout names which spatial axis a buffer is currently partitioned
// along, replacing spec.md §9's "dimensional indexing macros"
// (IndexDmatrix, IndexGarbledD, ...) with an explicit, named type: every
// conversion between z-partitioned and x-partitioned layouts goes
// through ToXPartitioned/ToZPartitioned below rather than an inlined
// index expression.
type Layout int

const (
	ZPartitioned Layout = iota
	XPartitioned
)

func (l Layout) String() string {
	if l == XPartitioned {
		return "x-partitioned"
	}
	return "z-partitioned"
}

// Wrap folds a possibly-negative doubled-grid index into [0, n): the
// negative-index wrap is a property of the layout's axis, not the
// caller (spec.md §9).
func (l Layout) Wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// roundPayloadLen is the fixed per-round block-transpose payload size:
// one rank's worst-case x-block times the full y extent times one
// rank's worst-case z-block. It depends only on (gridX, gridY, gridZ,
// nprocs), so every rank computes the identical value without
// negotiating a length out of band — spec.md §9's "BT_buffer"/
// "BT_rbuffer" are fixed, conservatively-sized scratch buffers, not
// per-round-negotiated ones.
func roundPayloadLen(g *grid.Grid) int {
	unitX := grid.UnitX(g.SizeX, g.Part.Nprocs)
	unitZ := grid.UnitZ(g.SizeZ, g.Part.Nprocs)
	return unitX * g.SizeY * unitZ
}

// ToXPartitioned redistributes a single component's z-partitioned real-
// space buffer (shape [gridX][gridY][localNz], this rank's z-slab) into
// an x-partitioned buffer with the full z range (shape
// [localXn][gridY][gridZ]), via the ring block-transpose of spec.md
// §4.7/§4.4 step 3.
func ToXPartitioned(buf []complex128, g *grid.Grid, sched comm.Schedule, localNz int) []complex128 {
	localXn := g.Part.LocalX1 - g.Part.LocalX0
	out := make([]complex128, localXn*g.SizeY*g.SizeZ)
	payloadLen := roundPayloadLen(g)
	unitZ := grid.UnitZ(g.SizeZ, g.Part.Nprocs)

	copyIn := func(x0, x1, z0, z1 int, src []complex128, srcNz int) {
		for ix := x0; ix < x1; ix++ {
			for iy := 0; iy < g.SizeY; iy++ {
				for izLocal := 0; izLocal < z1-z0; izLocal++ {
					iz := z0 + izLocal
					if iz >= g.SizeZ {
						continue
					}
					v := src[(ix*g.SizeY+iy)*max1(srcNz)+izLocal]
					localXi := ix - g.Part.LocalX0
					out[(localXi*g.SizeY+iy)*g.SizeZ+iz] = v
				}
			}
		}
	}
	// this rank's own contribution: its z-slab, restricted to its own
	// owned x-range, needs no communication.
	copyIn(g.Part.LocalX0, g.Part.LocalX1, g.Part.LocalZ0, g.Part.LocalZ1, buf, localNz)

	comm.BlockTranspose(sched, g.Part.Rank,
		func(round, partner int) []complex128 {
			px0, px1 := grid.XPartitionFor(g.SizeX, g.Part.Nprocs, partner)
			payload := make([]complex128, payloadLen)
			k := 0
			for ix := px0; ix < px1; ix++ {
				for iy := 0; iy < g.SizeY; iy++ {
					for izLocal := 0; izLocal < unitZ; izLocal++ {
						if k >= payloadLen {
							break
						}
						if izLocal < localNz {
							payload[k] = buf[(ix*g.SizeY+iy)*max1(localNz)+izLocal]
						}
						k++
					}
				}
			}
			return payload
		},
		func(round, partner int, payload []complex128) {
			pz0 := partner * unitZ
			unpackRound(out, payload, g.Part.LocalX0, g.Part.LocalX1, g.SizeY, g.SizeZ, pz0, unitZ)
		},
	)
	return out
}

// ToZPartitioned is the inverse of ToXPartitioned: it takes an
// x-partitioned full-z-range buffer and rebuilds this rank's
// z-partitioned, local-z-extent buffer (spec.md §4.4 step 5).
func ToZPartitioned(buf []complex128, g *grid.Grid, sched comm.Schedule, localNz int) []complex128 {
	out := make([]complex128, g.SizeX*g.SizeY*max1(localNz))
	payloadLen := roundPayloadLen(g)
	unitX := grid.UnitX(g.SizeX, g.Part.Nprocs)

	copyIn := func(x0, x1, z0, z1 int, dst []complex128, dstNz int) {
		for ix := x0; ix < x1; ix++ {
			localXi := ix - g.Part.LocalX0
			for iy := 0; iy < g.SizeY; iy++ {
				for izLocal := 0; izLocal < z1-z0; izLocal++ {
					iz := z0 + izLocal
					if iz >= g.SizeZ || localXi < 0 {
						continue
					}
					v := buf[(localXi*g.SizeY+iy)*g.SizeZ+iz]
					dst[(ix*g.SizeY+iy)*max1(dstNz)+izLocal] = v
				}
			}
		}
	}
	copyIn(g.Part.LocalX0, g.Part.LocalX1, g.Part.LocalZ0, g.Part.LocalZ1, out, localNz)

	comm.BlockTranspose(sched, g.Part.Rank,
		func(round, partner int) []complex128 {
			pz0, pz1 := partnerZRange(g, partner)
			payload := make([]complex128, payloadLen)
			k := 0
			for ix := g.Part.LocalX0; ix < g.Part.LocalX1; ix++ {
				localXi := ix - g.Part.LocalX0
				for iy := 0; iy < g.SizeY; iy++ {
					for izLocal := 0; izLocal < pz1-pz0; izLocal++ {
						if k >= payloadLen {
							break
						}
						iz := pz0 + izLocal
						if iz < g.SizeZ {
							payload[k] = buf[(localXi*g.SizeY+iy)*g.SizeZ+iz]
						}
						k++
					}
				}
			}
			return payload
		},
		func(round, partner int, payload []complex128) {
			px0 := partner * unitX
			unpackRoundZ(out, payload, px0, g.SizeX, g.SizeY, max1(localNz), unitX)
		},
	)
	return out
}

func partnerZRange(g *grid.Grid, partner int) (z0, z1 int) {
	p := grid.NewPartition(g.SizeZ, g.BoxZ, g.Part.Nprocs, partner)
	return p.LocalZ0, p.LocalZ1
}

// unpackRound scatters one round's fixed-size payload (this rank's
// owned x-range, the partner's z-block starting at pz0, full gridY)
// into out, the x-partitioned full-z-range buffer.
func unpackRound(out, payload []complex128, x0, x1, sizeY, sizeZ, pz0, unitZ int) {
	k := 0
	for ix := x0; ix < x1; ix++ {
		localXi := ix - x0
		for iy := 0; iy < sizeY; iy++ {
			for izLocal := 0; izLocal < unitZ; izLocal++ {
				if k >= len(payload) {
					return
				}
				iz := pz0 + izLocal
				if iz < sizeZ {
					out[(localXi*sizeY+iy)*sizeZ+iz] = payload[k]
				}
				k++
			}
		}
	}
}

// unpackRoundZ scatters one round's fixed-size payload (the partner's
// owned x-range starting at px0, full gridY, this rank's local z-block)
// into out, the z-partitioned local-z-extent buffer.
func unpackRoundZ(out, payload []complex128, px0, sizeX, sizeY, localNz, unitX int) {
	k := 0
	for ix := px0; ix < px0+unitX; ix++ {
		if ix >= sizeX {
			break
		}
		for iy := 0; iy < sizeY; iy++ {
			for izLocal := 0; izLocal < localNz; izLocal++ {
				if k >= len(payload) {
					return
				}
				out[(ix*sizeY+iy)*max1(localNz)+izLocal] = payload[k]
				k++
			}
		}
	}
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
