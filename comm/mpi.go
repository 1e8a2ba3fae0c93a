// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comm is the communication layer (C7): all-reduce, all-gather,
// barrier, broadcast, and the ring block-transpose used by dmatrix and
// matvec. It wraps github.com/cpmech/gosl/mpi the way gofem's fem
// package does, generalized to the primitives a 1-D slab-decomposed FFT
// convolution needs instead of the ones an FE assembly needs.
package comm

import (
	"github.com/cpmech/gosl/mpi"
)

// Start initialises the process group. Call once at program start.
func Start() {
	mpi.Start(false)
}

// Stop finalises the process group. Call once at program exit.
func Stop() {
	mpi.Stop(false)
}

// IsOn tells whether MPI has been started.
func IsOn() bool {
	return mpi.IsOn()
}

// Rank returns this worker's rank, or 0 if MPI is off.
func Rank() int {
	if !mpi.IsOn() {
		return 0
	}
	return mpi.Rank()
}

// Size returns the number of workers, or 1 if MPI is off.
func Size() int {
	if !mpi.IsOn() {
		return 1
	}
	return mpi.Size()
}

// Root reports whether this worker is rank 0.
func Root() bool {
	return Rank() == 0
}

// Distributed reports whether more than one worker participates.
func Distributed() bool {
	return Size() > 1
}

// Barrier blocks until every worker has entered the barrier.
func Barrier() {
	if mpi.IsOn() {
		mpi.Barrier()
	}
}

// BcastFromRoot broadcasts buf (already sized) from rank 0 to all ranks.
func BcastFromRoot(buf []float64) {
	if mpi.IsOn() {
		mpi.BcastFromRoot(buf)
	}
}

// AllReduceSumFloat sums real-valued per-rank slices elementwise across
// all workers, writing the result into dest (length must match local).
func AllReduceSumFloat(local, dest []float64) {
	if mpi.IsOn() {
		mpi.AllReduceSum(local, dest)
		return
	}
	copy(dest, local)
}

// AllReduceSumComplex sums complex-valued per-rank slices elementwise
// across all workers. gosl/mpi only moves real float64 buffers, so the
// real and imaginary parts are split, reduced, and rejoined.
func AllReduceSumComplex(local []complex128) []complex128 {
	n := len(local)
	re := make([]float64, n)
	im := make([]float64, n)
	for i, v := range local {
		re[i] = real(v)
		im[i] = imag(v)
	}
	if mpi.IsOn() {
		reOut := make([]float64, n)
		imOut := make([]float64, n)
		mpi.AllReduceSum(re, reOut)
		mpi.AllReduceSum(im, imOut)
		re, im = reOut, imOut
	}
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(re[i], im[i])
	}
	return out
}

// IntAllReduceMax reduces local stop/panic flags with a max across all
// workers, following gofem/fem/errorhandler.go's Stop/PanicOrNot idiom.
func IntAllReduceMax(local, dest []int) {
	if mpi.IsOn() {
		mpi.IntAllReduceMax(local, dest)
		return
	}
	copy(dest, local)
}

// AllGatherComplex gathers one local slice per rank into a slice indexed
// by rank, used to assemble global occupied-dipole sequences (spec.md
// §3: "global ordering is the concatenation of worker-local orderings
// along increasing z").
func AllGatherComplex(local []complex128) [][]complex128 {
	size := Size()
	if size == 1 {
		return [][]complex128{local}
	}
	counts := make([]int, size)
	myCount := []int{len(local)}
	countsFlat := make([]int, size)
	for r := 0; r < size; r++ {
		countsFlat[r] = 0
	}
	_ = myCount
	// exchange counts first (small int all-gather via repeated reduce-max
	// trick keeps this package free of a dedicated int-all-gather symbol
	// that gosl/mpi does not expose)
	countBuf := make([]float64, size)
	localCount := make([]float64, size)
	localCount[Rank()] = float64(len(local))
	AllReduceSumFloat(localCount, countBuf)
	for r := range counts {
		counts[r] = int(countBuf[r])
	}

	total := 0
	offsets := make([]int, size)
	for r, c := range counts {
		offsets[r] = total
		total += c
	}
	reLocal := make([]float64, total)
	imLocal := make([]float64, total)
	off := offsets[Rank()]
	for i, v := range local {
		reLocal[off+i] = real(v)
		imLocal[off+i] = imag(v)
	}
	re := AllReduceSumComplex(toComplex(reLocal, imLocal))
	out := make([][]complex128, size)
	for r, c := range counts {
		out[r] = re[offsets[r] : offsets[r]+c]
	}
	return out
}

func toComplex(re, im []float64) []complex128 {
	out := make([]complex128, len(re))
	for i := range out {
		out[i] = complex(re[i], im[i])
	}
	return out
}

// ReduceToRootSumAndMax combines per-worker observable accumulators
// (spec.md §4.7): element-wise sum plus element-wise max, both landing
// on every rank (the orchestrator only acts on them when comm.Root()).
func ReduceToRootSumAndMax(local []float64) (sum, max []float64) {
	n := len(local)
	sum = make([]float64, n)
	max = make([]float64, n)
	AllReduceSumFloat(local, sum)
	if !mpi.IsOn() {
		copy(max, local)
		return
	}
	// gosl/mpi has no direct all-reduce-max for floats in the surface
	// used by the teacher; emulate it with the same int-max primitive
	// scaled to preserve ordering is unsafe for arbitrary floats, so use
	// repeated pairwise comparison through an all-gather instead.
	gathered := AllGatherComplex(toComplex(local, make([]float64, n)))
	for i := 0; i < n; i++ {
		m := local[i]
		for _, g := range gathered {
			if i < len(g) && real(g[i]) > m {
				m = real(g[i])
			}
		}
		max[i] = m
	}
	return
}
