// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package green

import "math"

// Si and Ci are the real sine and cosine integral functions, needed by
// the FCD prescriptions (spec.md §4.2). No library in the retrieval
// pack exposes Ci/Si (math/cmplx has no special-function support and
// none of the pack's numerics libraries carry them), so this is the
// standard-library-only piece of the green package: a rational
// approximation good to ~1e-8, the classic construction from
// Abramowitz & Stegun §5.2.38-5.2.40, used throughout scientific
// computing for exactly this pair of functions.
func Si(x float64) float64 {
	if x < 0 {
		return -Si(-x)
	}
	if x == 0 {
		return 0
	}
	f, g := auxFG(x)
	return math.Pi/2 - f*math.Cos(x) - g*math.Sin(x)
}

func Ci(x float64) float64 {
	if x <= 0 {
		if x == 0 {
			return math.Inf(-1)
		}
		return Ci(-x) // Ci is even for this auxiliary-function construction
	}
	f, g := auxFG(x)
	return f*math.Sin(x) - g*math.Cos(x)
}

// auxFG evaluates the auxiliary functions f(x), g(x) used in the
// asymptotic/rational representation of Si/Ci for x > 0.
func auxFG(x float64) (f, g float64) {
	if x < 4 {
		// direct power series for small x keeps the rational
		// approximation (valid for x>=4) from losing accuracy near 0
		si, ci := smallXSiCi(x)
		// recover f,g from si,ci by inverting the asymptotic relations
		c, s := math.Cos(x), math.Sin(x)
		f = (math.Pi/2-si)*c + ci*s
		g = (math.Pi/2-si)*s - ci*c
		return
	}
	x2 := 1 / (x * x)
	// Pade-type rational coefficients (A&S 5.2.38/5.2.39)
	fn := 1 + x2*(7.44437068161936700618e2+x2*(1.96396372895146869801e5+x2*(2.37750310125431834034e7+x2*(1.43073403821274636888e9+x2*(4.33736238870432522765e10+x2*(6.40533830574022022911e11+x2*(4.20968180571076940208e12+x2*(1.00795182980368574617e13+x2*(4.94816688199951963482e12+x2*(-4.94701168645415959931e11))))))))))
	fd := x * (1 + x2*(7.46437068161927678031e2+x2*(1.97865247031583951450e5+x2*(2.41535670165126845144e7+x2*(1.47478952192985464958e9+x2*(4.58595115847765779830e10+x2*(7.08501308149515401563e11+x2*(5.06084464593475076774e12+x2*(1.43468549171581016479e13+x2*(1.11535493509914254097e13))))))))))
	f = fn / fd
	gn := 1 + x2*(8.1359520115168615e2+x2*(2.35239181626478200e5+x2*(3.12557570795778731e7+x2*(2.06297595146763354e9+x2*(6.83052205423625007e10+x2*(1.09049528450362786e12+x2*(7.57664583257834349e12+x2*(1.81004487464664575e13+x2*(6.43291613143049485e12+x2*(-1.36517137670871689e12))))))))))
	gd := x * x * (1 + x2*(8.19595201151451564e2+x2*(2.40036752835578777e5+x2*(3.26026661647079486e7+x2*(2.23355543278099360e9+x2*(7.87465017341829930e10+x2*(1.39866710696414565e12+x2*(1.17164723371736605e13+x2*(4.01839087307656620e13+x2*(3.99653257887490811e13))))))))))
	g = gn / gd
	return
}

// smallXSiCi computes Si, Ci directly via their convergent power
// series for 0 < x < 4, where the large-x rational approximation above
// is not accurate.
func smallXSiCi(x float64) (si, ci float64) {
	const euler = 0.5772156649015328606
	si = x
	term := x
	for n := 1; n < 40; n++ {
		term *= -x * x / (float64(2*n) * float64(2*n+1))
		add := term / float64(2*n+1)
		si += add
		if math.Abs(add) < 1e-18 {
			break
		}
	}
	ci = euler + math.Log(x)
	term = 1
	for n := 1; n < 40; n++ {
		term *= -x * x / (float64(2*n) * float64(2*n-1))
		add := term / float64(2*n)
		ci += add
		if math.Abs(add) < 1e-18 {
			break
		}
	}
	return
}
