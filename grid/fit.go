// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements C1: FFT-friendly grid sizing and the 1-D
// z/x-slab partition across workers.
package grid

import "github.com/cpmech/gosl/utl"

// FFTCapability describes which prime factors the chosen 1-D FFT
// kernel accepts. gonum's dsp/fourier FFT (the kernel wired in
// fftkernel) is a mixed-radix implementation restricted to {2,3,5};
// AllowSeven is carried for kernels that also support radix-7.
type FFTCapability struct {
	AllowSeven bool
}

// Fit returns the smallest m >= n such that d | m and m's prime
// factorisation uses only the kernel's allowed primes (spec.md §4
// C1, §8 property 1). If d itself carries a prime factor outside the
// allowed set, "weird" mode is taken: only divisibility by d is
// enforced and a performance warning is logged on every such call.
func Fit(n, d int, cap FFTCapability) int {
	if n < 1 {
		n = 1
	}
	if !isAllowedFactorization(d, cap) {
		m := n
		if m%d != 0 {
			m += d - m%d
		}
		utl.PfMag("grid: fit: divisor %d has a prime factor outside {2,3,5%s}; falling back to plain divisibility (weird mode)\n", d, sevenSuffix(cap))
		return m
	}
	for m := n; ; m++ {
		if m%d != 0 {
			continue
		}
		if isAllowedFactorization(m, cap) {
			return m
		}
	}
}

func sevenSuffix(cap FFTCapability) string {
	if cap.AllowSeven {
		return ",7"
	}
	return ""
}

// isAllowedFactorization reports whether m's prime factors are a subset
// of {2,3,5} (or {2,3,5,7} when cap.AllowSeven).
func isAllowedFactorization(m int, cap FFTCapability) bool {
	if m < 1 {
		return false
	}
	primes := []int{2, 3, 5}
	if cap.AllowSeven {
		primes = append(primes, 7)
	}
	for _, p := range primes {
		for m%p == 0 {
			m /= p
		}
	}
	return m == 1
}
