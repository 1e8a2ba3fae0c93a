// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// diagMatvec builds a diagonal-dominant Matvec, complex-symmetric by
// construction (a real diagonal), standing in for A = I - alpha*D on a
// decoupled (no interaction) toy system.
func diagMatvec(diag []complex128) Matvec {
	return func(v []complex128) []complex128 {
		out := make([]complex128, len(v))
		for i := range v {
			out[i] = diag[i] * v[i]
		}
		return out
	}
}

func bilinearDot(a, b []complex128) complex128 {
	var sum complex128
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func hermitianDot(a, b []complex128) complex128 {
	var sum complex128
	for i := range a {
		sum += complex(real(a[i]), -imag(a[i])) * b[i]
	}
	return sum
}

func Test_solve01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("solve01")

	diag := []complex128{complex(3, 0.1), complex(2, -0.2), complex(5, 0.3)}
	b := []complex128{1, 1, 1}
	a := diagMatvec(diag)

	for name, res := range map[string]Result{
		"BiCGSTAB": BiCGSTAB(a, b, nil, bilinearDot, 1e-10, 200),
		"BiCG":     BiCG(a, b, nil, bilinearDot, 1e-10, 200),
		"QMR":      QMR(a, b, nil, bilinearDot, 1e-10, 200),
		"CGNR":     CGNR(a, b, nil, hermitianDot, 1e-10, 200),
	} {
		if res.Status != Converged {
			tst.Errorf("%s: status = %v, want converged", name, res.Status)
			continue
		}
		recovered := a(res.X)
		for i := range b {
			if diff := real(recovered[i]) - real(b[i]); diff > 1e-6 || diff < -1e-6 {
				tst.Errorf("%s: A*x[%d] = %v, want %v", name, i, recovered[i], b[i])
			}
		}
	}
}

func Test_solve02(tst *testing.T) {

	chk.PrintTitle("solve02")

	// a zero right-hand side starts with a zero shadow-residual dot
	// product, which BiCGSTAB reports as a (harmless, x already correct)
	// breakdown rather than a dedicated already-converged case
	diag := []complex128{complex(1, 0)}
	b := []complex128{0}
	a := diagMatvec(diag)
	res := BiCGSTAB(a, b, nil, bilinearDot, 1e-8, 50)
	if res.Status != Breakdown {
		tst.Errorf("status = %v, want breakdown", res.Status)
	}
	chk.Scalar(tst, "x[0]", 1e-12, real(res.X[0]), 0)
}

func Test_solve03(tst *testing.T) {

	chk.PrintTitle("solve03")

	// a singular operator (zero diagonal) forces a breakdown, not an
	// infinite loop or a NaN silently reported as converged
	diag := []complex128{0}
	b := []complex128{1}
	a := diagMatvec(diag)
	res := BiCGSTAB(a, b, nil, bilinearDot, 1e-8, 20)
	if res.Status != Breakdown {
		tst.Errorf("status = %v, want breakdown", res.Status)
	}
}

func Test_vecops01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	chk.PrintTitle("vecops01")

	x := []complex128{complex(3, 4)}
	chk.Scalar(tst, "norm", 1e-12, vecNorm2(x), 5)

	dst := []complex128{complex(1, 0)}
	vecAxpy(dst, complex(2, 0), []complex128{complex(1, 0)})
	chk.Scalar(tst, "axpy", 1e-12, real(dst[0]), 3)

	sub := vecSub([]complex128{5}, []complex128{2})
	chk.Scalar(tst, "sub", 1e-12, real(sub[0]), 3)
}
