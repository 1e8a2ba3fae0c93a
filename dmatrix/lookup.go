// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dmatrix

import "github.com/cpmech/godda/green"

// FreqAt returns the stored tensor at a full-range frequency-domain
// grid point (iy, iz may exceed DSizeY/DSizeZ), mirroring into the
// stored non-negative octant and applying the reduced-FFT parity sign
// of spec.md §3 when G.ReducedFFT is set. matvec's pointwise multiply
// uses this instead of At directly, since the convolution needs the
// full gridY x gridZ frequency range but D only stores one octant.
func (d *DMatrix) FreqAt(ix, iy, iz int) green.Tensor {
	if !d.G.ReducedFFT || (iy < d.DSizeY && iz < d.DSizeZ) {
		return d.At(ix, iy, iz)
	}
	var signY, signZ complex128 = 1, 1
	if iy >= d.DSizeY {
		iy = d.G.SizeY - iy
		signY = -1
	}
	if iz >= d.DSizeZ {
		iz = d.G.SizeZ - iz
		signZ = -1
	}
	t := d.At(ix, iy, iz)
	return green.Tensor{
		XX: t.XX,
		XY: t.XY * signY,
		XZ: t.XZ * signZ,
		YY: t.YY,
		YZ: t.YZ * signY * signZ,
		ZZ: t.ZZ,
	}
}
