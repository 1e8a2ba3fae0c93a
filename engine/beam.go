// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "math"

// Beam evaluates the complex incident-field amplitude envelope at a
// physical position, generalizing github.com/cpmech/gosl/fun's `Func`
// interface (`F(t float64, x []float64) float64`, used throughout
// inp/func.go for time-control and boundary functions) to a
// position-only complex envelope (spec.md §6 option `beam`: plane or
// Gaussian family).
type Beam interface {
	Envelope(x [3]float64) complex128
}

// BeamCte is the uniform plane-wave envelope, mirroring fun.Cte's
// constant-value function.
type BeamCte struct{}

func (BeamCte) Envelope(x [3]float64) complex128 { return 1 }

// BeamGaussian is the Gaussian-beam envelope exp(-rho^2/w0^2) about an
// axis parallel to the propagation direction through (x0,y0,z0).
type BeamGaussian struct {
	W0             float64
	X0, Y0, Z0     float64
	Prop           [3]float64
}

func (b BeamGaussian) Envelope(x [3]float64) complex128 {
	dx := [3]float64{x[0] - b.X0, x[1] - b.Y0, x[2] - b.Z0}
	along := dx[0]*b.Prop[0] + dx[1]*b.Prop[1] + dx[2]*b.Prop[2]
	var perp2 float64
	for i := 0; i < 3; i++ {
		t := dx[i] - along*b.Prop[i]
		perp2 += t * t
	}
	return complex(math.Exp(-perp2/(b.W0*b.W0)), 0)
}

// IncidentField evaluates the incident field vector E0*env(x)*e^{ik prop.x}
// at physical position x, for a given polarization direction polDir
// (assumed unit and perpendicular to prop).
func IncidentField(b Beam, x [3]float64, wavenum float64, prop, polDir [3]float64) [3]complex128 {
	phase := wavenum * (x[0]*prop[0] + x[1]*prop[1] + x[2]*prop[2])
	env := b.Envelope(x)
	c := env * complex(math.Cos(phase), math.Sin(phase))
	return [3]complex128{c * complex(polDir[0], 0), c * complex(polDir[1], 0), c * complex(polDir[2], 0)}
}

// OrthonormalPolarizations returns two unit vectors perpendicular to
// prop (and to each other), the two incidence polarizations spec.md
// §4.8 calls "per-polarization solve state is independent; the two
// polarizations share D".
func OrthonormalPolarizations(prop [3]float64) (e1, e2 [3]float64) {
	ref := [3]float64{1, 0, 0}
	if math.Abs(prop[0]) > 0.9 {
		ref = [3]float64{0, 1, 0}
	}
	e1 = cross(prop, ref)
	e1 = normalize(e1)
	e2 = normalize(cross(prop, e1))
	return
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return v
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}
