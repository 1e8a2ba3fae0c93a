// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fftkernel is the external 1-D FFT kernel collaborator spec.md
// §1 explicitly leaves a free choice ("choice of third-party 1-D FFT
// kernel"). godda wires gonum's dsp/fourier package here, grounded on
// the gonum-gonum pack entry.
package fftkernel

import "gonum.org/v1/gonum/dsp/fourier"

// Kernel performs forward and inverse complex-to-complex 1-D FFTs of a
// fixed length n. It is the seam dmatrix and matvec transform through,
// so a different third-party kernel can be swapped in without touching
// either of them.
type Kernel interface {
	// Forward transforms src in place (or into dst, which may alias
	// src) computing the unnormalized forward DFT.
	Forward(dst, src []complex128)
	// Inverse computes the unnormalized inverse DFT (i.e. it does not
	// divide by n; callers apply their own normalization, matching
	// spec.md §4.3's single "-1/(gridX*gridY*gridZ)" normalization
	// point rather than per-axis 1/n factors).
	Inverse(dst, src []complex128)
	Len() int
}

// gonumKernel adapts gonum.org/v1/gonum/dsp/fourier.CmplxFFT, which
// already matches this exact forward/unnormalized-inverse contract.
type gonumKernel struct {
	fft *fourier.CmplxFFT
	n   int
}

// New builds a length-n complex FFT kernel backed by gonum's CmplxFFT.
func New(n int) Kernel {
	return &gonumKernel{fft: fourier.NewCmplxFFT(n), n: n}
}

func (k *gonumKernel) Forward(dst, src []complex128) {
	k.fft.Coefficients(dst, src)
}

func (k *gonumKernel) Inverse(dst, src []complex128) {
	k.fft.Sequence(dst, src)
}

func (k *gonumKernel) Len() int { return k.n }

// Capability reports the prime factors gonum's mixed-radix FFT handles
// without falling back to a slow DFT; used by grid.Fit to pick sizes
// the kernel is fast for.
func Capability() (allowSeven bool) {
	return false
}
