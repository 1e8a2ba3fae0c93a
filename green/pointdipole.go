// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package green

import "math/cmplx"

// PointDipoleKernel implements the point-dipole Green tensor (spec.md
// §4.2): G_p^{mu,nu} = e^{ikr}/r^3 * [delta_{mu,nu}(kr^2-1+ikr) -
// q_mu*q_nu*(kr^2-3+3ikr)], with the self term (0,0,0) returning zero
// (the self-polarizability is a separate routine, out of the core per
// spec.md §4.2).
type PointDipoleKernel struct{}

func (PointDipoleKernel) Eval(d Displacement, gridspace, wavenum float64, m complex128) Tensor {
	if d.I == 0 && d.J == 0 && d.K == 0 {
		return Tensor{}
	}
	r, q := d.Norm(gridspace)
	return evalPointDipole(r, q, wavenum)
}

// evalPointDipole is the shared closed form used directly by
// PointDipoleKernel and as the asymptotic scale target for FCD and SO.
func evalPointDipole(r float64, q [3]float64, wavenum float64) Tensor {
	kr := wavenum * r
	phase := cmplx.Exp(complex(0, kr))
	pref := phase / complex(r*r*r, 0)
	a := complex(kr*kr-1, kr)   // kr^2 - 1 + i*kr
	b := complex(kr*kr-3, 3*kr) // kr^2 - 3 + 3i*kr
	qxx, qxy, qxz := q[0]*q[0], q[0]*q[1], q[0]*q[2]
	qyy, qyz, qzz := q[1]*q[1], q[1]*q[2], q[2]*q[2]
	return Tensor{
		XX: pref * (a - complex(qxx, 0)*b),
		XY: pref * (-complex(qxy, 0) * b),
		XZ: pref * (-complex(qxz, 0) * b),
		YY: pref * (a - complex(qyy, 0)*b),
		YZ: pref * (-complex(qyz, 0) * b),
		ZZ: pref * (a - complex(qzz, 0)*b),
	}
}
