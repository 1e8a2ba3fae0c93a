// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dmatrix implements C3: building the translation-invariant
// interaction tensor D on the doubled grid and forward-FFT'ing it once,
// storing the six independent frequency-domain components.
package dmatrix

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/godda/comm"
	"github.com/cpmech/godda/fftkernel"
	"github.com/cpmech/godda/green"
	"github.com/cpmech/godda/grid"
)

// DMatrix stores the six independent frequency-domain tensor components
// at every point of the (possibly reduced) doubled-grid frequency
// domain (spec.md §3).
type DMatrix struct {
	G                      *grid.Grid
	DSizeX, DSizeY, DSizeZ int
	Freq                   []green.Tensor // length DSizeX*DSizeY*DSizeZ, x-major
}

func (d *DMatrix) index(ix, iy, iz int) int {
	return (ix*d.DSizeY+iy)*d.DSizeZ + iz
}

// At returns the stored tensor at a frequency-domain grid point.
func (d *DMatrix) At(ix, iy, iz int) green.Tensor {
	return d.Freq[d.index(ix, iy, iz)]
}

// checkedAlloc guards against the integer-overflow ResourceError class
// of spec.md §7: size computations are bounds-checked in int64 before
// any make() call, following original_source's memory.c convention.
func checkedAlloc(dims ...int) int {
	var total int64 = 1
	const maxReasonable = int64(1) << 40
	for _, d := range dims {
		total *= int64(d)
		if total > maxReasonable || total < 0 {
			chk.Panic("dmatrix: size computation overflow allocating dims=%v", dims)
		}
	}
	return int(total)
}

// Build fills the doubled-grid tensor for this worker's z-slab, forward
// FFTs it (x, then a block transpose, then z and y), and stores the
// frequency-domain six-component tensor, per the algorithm outline of
// spec.md §4.3. kernel is the C2 interaction kernel dispatched once by
// green.KernelFor; it is pure, so no synchronization is needed while
// filling the local buffer.
func Build(g *grid.Grid, kernel green.Kernel, gridspace, wavenum float64, m complex128) *DMatrix {
	d := &DMatrix{G: g, DSizeX: g.DSizeX, DSizeY: g.DSizeY, DSizeZ: g.DSizeZ}
	n := checkedAlloc(d.DSizeX, d.DSizeY, d.DSizeZ)
	d.Freq = make([]green.Tensor, n)

	// Step 1+2: zero (implicit, make() zeroes) and fill the local
	// half-octant of displacements this worker's z-slab owns, wrapping
	// negative displacements into the doubled-grid index.
	localZ0, localZ1 := g.Part.LocalZ0, g.Part.LocalZ1
	halfX, halfY := g.SizeX/2, g.SizeY/2

	// the kernel is only ever evaluated for the non-negative y and
	// (locally) non-negative-half z octant, regardless of g.ReducedFFT:
	// that flag only controls how much of the reconstructed full range
	// ends up stored in d.Freq (DSizeY/DSizeZ), not how much is computed
	// here. halfYplus1/halfZplus1 is the buffer extent; the rows
	// y=gridY/2 and z=gridZ/2 are left zero, like x=gridX/2, so the
	// mirrored slice keeps exact parity there.
	halfYplus1 := halfY + 1
	halfZplus1 := g.SizeZ/2 + 1

	type component struct {
		buf  []complex128
		full []complex128 // full doubled-z-range buffer, gathered in Step 4
		get  func(green.Tensor) complex128
		set  func(*green.Tensor, complex128)
	}
	comps := []component{
		{get: func(t green.Tensor) complex128 { return t.XX }, set: func(t *green.Tensor, v complex128) { t.XX = v }},
		{get: func(t green.Tensor) complex128 { return t.XY }, set: func(t *green.Tensor, v complex128) { t.XY = v }},
		{get: func(t green.Tensor) complex128 { return t.XZ }, set: func(t *green.Tensor, v complex128) { t.XZ = v }},
		{get: func(t green.Tensor) complex128 { return t.YY }, set: func(t *green.Tensor, v complex128) { t.YY = v }},
		{get: func(t green.Tensor) complex128 { return t.YZ }, set: func(t *green.Tensor, v complex128) { t.YZ = v }},
		{get: func(t green.Tensor) complex128 { return t.ZZ }, set: func(t *green.Tensor, v complex128) { t.ZZ = v }},
	}

	// work buffer: gridX * (gridY/2+1) * (local z extent), per component,
	// for the local half-octant fill and x-FFT. Freed (falls out of
	// scope) before the matvec phase allocates its own, differently
	// sized, transpose buffer (spec.md §4.3/§9 distinct lifetimes).
	localNz := localZ1 - localZ0
	if localNz < 0 {
		localNz = 0
	}
	bufN := checkedAlloc(g.SizeX, halfYplus1, max1(localNz))
	for ci := range comps {
		comps[ci].buf = make([]complex128, bufN)
	}
	bufIndex := func(ix, iy, izLocal int) int {
		return (ix*halfYplus1+iy)*max1(localNz) + izLocal
	}

	for iz := localZ0; iz < localZ1; iz++ {
		for iy := 0; iy < halfY; iy++ {
			for ix := -halfX + 1; ix < halfX; ix++ {
				t := kernel.Eval(green.Displacement{I: ix, J: iy, K: iz}, gridspace, wavenum, m)
				wx := wrap(ix, g.SizeX)
				izLocal := iz - localZ0
				bi := bufIndex(wx, iy, izLocal)
				for ci := range comps {
					comps[ci].buf[bi] = comps[ci].get(t)
				}
			}
		}
	}

	// Step 3: 1-D FFT along x for all (y,z) lines.
	fx := fftkernel.New(g.SizeX)
	for ci := range comps {
		line := make([]complex128, g.SizeX)
		for iy := 0; iy < halfYplus1; iy++ {
			for izLocal := 0; izLocal < max1(localNz); izLocal++ {
				for ix := 0; ix < g.SizeX; ix++ {
					line[ix] = comps[ci].buf[bufIndex(ix, iy, izLocal)]
				}
				fx.Forward(line, line)
				for ix := 0; ix < g.SizeX; ix++ {
					comps[ci].buf[bufIndex(ix, iy, izLocal)] = line[ix]
				}
			}
		}
	}

	// Step 4: block-transpose to switch from z-partitioned to
	// x-partitioned layout. D-build runs once per particle (not the
	// millions-of-calls-per-run hot path matvec is), so it uses the
	// C7 all-gather primitive directly rather than the pairwise ring
	// schedule: every rank ends up with the full doubled-grid half-z
	// range for every component, then simply keeps the x-slices it
	// owns. matvec's per-call transpose (§4.4) is the one built on the
	// ring schedule, since it is the operation spec.md §4.7 sizes the
	// schedule for.
	g.AssignXPartition()
	for ci := range comps {
		comps[ci].full = gatherFullZRange(comps[ci].buf, g, halfYplus1, halfZplus1)
	}

	// Step 5: per owned x-slice, copy into a gridY x gridZ 2-D slice,
	// apply parity mirroring, FFT along z then y, normalize,
	// and store into d.Freq.
	fy := fftkernel.New(g.SizeY)
	fz := fftkernel.New(g.SizeZ)
	normFactor := complex(-1.0/float64(g.SizeX*g.SizeY*g.SizeZ), 0)

	localXn := g.Part.LocalX1 - g.Part.LocalX0
	for ci := range comps {
		slice := make([]complex128, g.SizeY*g.SizeZ)
		for xi := 0; xi < localXn; xi++ {
			// unpack the gathered half-octant buffer into a full
			// gridY*gridZ slice, always applying axis-reflection parity
			// (spec.md §3 Reduced-FFT invariant): the buffer only ever
			// holds the non-negative-y, non-negative-z-half octant, and
			// the remaining three quadrants are reconstructed here
			// regardless of whether g.ReducedFFT keeps them in d.Freq.
			globalXForUnpack := g.Part.LocalX0 + xi
			unpackSlice(slice, comps[ci].full, globalXForUnpack, g, halfYplus1, halfZplus1, ci)

			// FFT along z for every y line
			lineZ := make([]complex128, g.SizeZ)
			for iy := 0; iy < g.SizeY; iy++ {
				for iz := 0; iz < g.SizeZ; iz++ {
					lineZ[iz] = slice[iy*g.SizeZ+iz]
				}
				fz.Forward(lineZ, lineZ)
				for iz := 0; iz < g.SizeZ; iz++ {
					slice[iy*g.SizeZ+iz] = lineZ[iz]
				}
			}
			// FFT along y for every z line
			lineY := make([]complex128, g.SizeY)
			for iz := 0; iz < g.SizeZ; iz++ {
				for iy := 0; iy < g.SizeY; iy++ {
					lineY[iy] = slice[iy*g.SizeZ+iz]
				}
				fy.Forward(lineY, lineY)
				for iy := 0; iy < g.SizeY; iy++ {
					slice[iy*g.SizeZ+iz] = lineY[iy]
				}
			}

			globalX := g.Part.LocalX0 + xi
			for iy := 0; iy < d.DSizeY; iy++ {
				for iz := 0; iz < d.DSizeZ; iz++ {
					v := slice[iy*g.SizeZ+iz] * normFactor
					idx := d.index(globalX, iy, iz)
					comps[ci].set(&d.Freq[idx], v)
				}
			}
		}
	}

	return d
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// gatherFullZRange reconstructs the full doubled-z-range buffer
// [gridX][dSizeY][fullZ] from every worker's local z-partitioned slab,
// via comm.AllGatherComplex. Each rank's (z0,z1) slab boundary is
// recomputed with grid.NewPartition rather than exchanged out of band,
// since it is a pure function of (gridZ, boxZ, nprocs, rank) every
// worker can already evaluate for every other rank.
func gatherFullZRange(buf []complex128, g *grid.Grid, dSizeY, fullZ int) []complex128 {
	gathered := comm.AllGatherComplex(buf)
	out := make([]complex128, checkedAlloc(g.SizeX, dSizeY, fullZ))
	for r, slab := range gathered {
		partR := grid.NewPartition(g.SizeZ, g.BoxZ, g.Part.Nprocs, r)
		localNzR := max1(partR.LocalZ1 - partR.LocalZ0)
		for ix := 0; ix < g.SizeX; ix++ {
			for iy := 0; iy < dSizeY; iy++ {
				for izLocal := 0; izLocal < localNzR; izLocal++ {
					iz := partR.LocalZ0 + izLocal
					if iz >= fullZ {
						continue
					}
					src := (ix*dSizeY+iy)*localNzR + izLocal
					if src >= len(slab) {
						continue
					}
					out[(ix*dSizeY+iy)*fullZ+iz] = slab[src]
				}
			}
		}
	}
	return out
}

// unpackSlice expands the frequency-domain half-octant buffer (the
// non-negative-y, non-negative-z-half octant; this is all that is ever
// computed, independent of G.ReducedFFT) for x index xi into a full
// gridY*gridZ slice, applying the reduced-FFT axis-reflection parity of
// spec.md §3 unconditionally: xy,yz are odd under y->-y; xz,yz are odd
// under z->-z; others even. Whether the reconstructed range beyond the
// octant is kept in d.Freq is decided later, by DSizeY/DSizeZ.
func unpackSlice(slice []complex128, buf []complex128, xi int, g *grid.Grid, dSizeY, dSizeZ, component int) {
	for i := range slice {
		slice[i] = 0
	}
	signY, signZ := parityForComponent(component)
	for iy := 0; iy < dSizeY; iy++ {
		for iz := 0; iz < dSizeZ; iz++ {
			v := buf[(xi*dSizeY+iy)*max1(dSizeZ)+iz]
			slice[iy*g.SizeZ+iz] = v
			hasMy, hasMz := false, false
			my, mz := 0, 0
			if iy > 0 && iy < g.SizeY {
				my = g.SizeY - iy
				if my < g.SizeY {
					slice[my*g.SizeZ+iz] = v * signY
					hasMy = true
				}
			}
			if iz > 0 && iz < g.SizeZ {
				mz = g.SizeZ - iz
				if mz < g.SizeZ {
					slice[iy*g.SizeZ+mz] = v * signZ
					hasMz = true
				}
			}
			if hasMy && hasMz {
				slice[my*g.SizeZ+mz] = v * signY * signZ
			}
		}
	}
}

// parityForComponent returns the sign flip each component picks up
// under y->-y and z->-z reflection (spec.md §3 Reduced-FFT invariant).
func parityForComponent(component int) (signY, signZ complex128) {
	// component order: xx(0) xy(1) xz(2) yy(3) yz(4) zz(5)
	switch component {
	case 1: // xy odd under y->-y, even under z->-z
		return -1, 1
	case 2: // xz even under y->-y, odd under z->-z
		return 1, -1
	case 4: // yz odd under both
		return -1, -1
	default: // xx, yy, zz even under both
		return 1, 1
	}
}
