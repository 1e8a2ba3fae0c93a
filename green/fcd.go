// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package green

import "math"

// FCDStaticKernel multiplies the point-dipole tensor by the static
// filtered-coupled-dipole correction factor of spec.md §4.2:
// (2/3pi)(3*Si(kF*r) + kF*r*cos(kF*r) - 4*sin(kF*r)), kF = pi/gridspace.
type FCDStaticKernel struct{}

func (FCDStaticKernel) Eval(d Displacement, gridspace, wavenum float64, m complex128) Tensor {
	if d.I == 0 && d.J == 0 && d.K == 0 {
		return Tensor{}
	}
	r, q := d.Norm(gridspace)
	g := evalPointDipole(r, q, wavenum)
	kF := math.Pi / gridspace
	x := kF * r
	factor := (2.0 / (3.0 * math.Pi)) * (3*Si(x) + x*math.Cos(x) - 4*math.Sin(x))
	return g.Scale(complex(factor, 0))
}

// FCDFullKernel is the "FCD full" prescription of spec.md §4.2: it
// evaluates Ci/Si at kF*r +- k*r and adds a diagonal-and-tensorial
// correction built from two scalar functions g0, g2 to the point-
// dipole tensor.
type FCDFullKernel struct{}

func (FCDFullKernel) Eval(d Displacement, gridspace, wavenum float64, m complex128) Tensor {
	if d.I == 0 && d.J == 0 && d.K == 0 {
		return Tensor{}
	}
	r, q := d.Norm(gridspace)
	gp := evalPointDipole(r, q, wavenum)
	kF := math.Pi / gridspace
	kr := wavenum * r
	xPlus := kF*r + kr
	xMinus := kF*r - kr

	// g0, g2: the two scalar functions spec.md §4.2 names without
	// pinning an exact closed form; built here from the plus/minus
	// sine- and cosine-integral combination the way FCDStaticKernel
	// builds its single correction factor, generalized to the two
	// independent linear combinations a full (non-static) grid
	// dispersion correction needs: g0 carries the isotropic (identity)
	// part, g2 the q-tensorial part.
	ciPlus, siPlus := Ci(math.Abs(xPlus)), Si(xPlus)
	ciMinus, siMinus := Ci(math.Abs(xMinus)), Si(xMinus)

	g0 := 0.5 * (siPlus + siMinus - (ciPlus-ciMinus)/math.Max(kr, 1e-300))
	g2 := 0.5 * (siPlus - siMinus + (ciPlus+ciMinus)/math.Max(kr, 1e-300))

	qxx, qxy, qxz := q[0]*q[0], q[0]*q[1], q[0]*q[2]
	qyy, qyz, qzz := q[1]*q[1], q[1]*q[2], q[2]*q[2]
	corr := Tensor{
		XX: complex(g0+g2*qxx, 0),
		XY: complex(g2*qxy, 0),
		XZ: complex(g2*qxz, 0),
		YY: complex(g0+g2*qyy, 0),
		YZ: complex(g2*qyz, 0),
		ZZ: complex(g0+g2*qzz, 0),
	}
	// G_full = G_p + correction, matching spec.md's "adds a diagonal-
	// and-tensorial correction" to the point-dipole tensor.
	return gp.Add(corr)
}
