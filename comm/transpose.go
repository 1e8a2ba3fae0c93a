// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import "github.com/cpmech/gosl/mpi"

// Schedule is the ring block-transpose partner schedule of spec.md
// §4.7, grounded on original_source/tags/rel_0_73/src/comm.c. It is
// self-inverse: partner(t, partner(t, r)) == r for every round t.
type Schedule struct {
	Nprocs int
	Ntrans int // nprocs if odd, nprocs-1 if even
}

// NewSchedule builds the round count for nprocs workers.
func NewSchedule(nprocs int) Schedule {
	ntrans := nprocs
	if nprocs%2 == 0 {
		ntrans = nprocs - 1
	}
	return Schedule{Nprocs: nprocs, Ntrans: ntrans}
}

// Partner returns the send/recv partner for worker r in round t, or -1
// if r sits this round out ("skip this round" in spec.md §4.7).
func (s Schedule) Partner(t, r int) int {
	var p int
	switch {
	case r == 0:
		p = t
	case r == t:
		p = 0
	default:
		p = ((2*t - r) % s.Ntrans)
		if p <= 0 {
			p += s.Ntrans
		}
	}
	if p == s.Nprocs {
		return -1
	}
	return p
}

// BlockTranspose exchanges one worker's flat complex buffer blocks
// pairwise across Ntrans rounds using
// gosl/mpi's rank-to-rank send/recv, redistributing which spatial axis
// is partitioned (spec.md's "semantic barrier").
//
// send(t) and recv(t) are supplied by the caller because the z- and
// x-partitioned buffer shapes differ between the D-matrix build phase
// and the matvec phase (spec.md §4.3/§9: distinct buffer lifetimes).
// send returns the payload to ship to partner in round t; recv
// consumes the payload received from that same partner.
func BlockTranspose(s Schedule, rank int, send func(round, partner int) []complex128, recv func(round, partner int, payload []complex128)) {
	for t := 1; t <= s.Ntrans; t++ {
		partner := s.Partner(t, rank)
		if partner < 0 || partner == rank {
			continue
		}
		out := send(t, partner)
		in := make([]complex128, len(out))
		if mpi.IsOn() {
			sendRecvComplex(rank, partner, out, in)
		} else {
			copy(in, out)
		}
		recv(t, partner, in)
	}
}

// sendRecvComplex exchanges a pair of complex buffers between rank and
// partner using paired real/imaginary float64 sends, since gosl/mpi's
// point-to-point primitives (used in the teacher only indirectly,
// through the MUMPS distributed factorisation path) move float64
// buffers. The lower-ranked worker sends first to avoid a deadlock on
// symmetric pairwise exchange, matching the self-inverse schedule
// property that makes this ring deadlock-free.
func sendRecvComplex(rank, partner int, out, in []complex128) {
	n := len(out)
	outRe := make([]float64, n)
	outIm := make([]float64, n)
	for i, v := range out {
		outRe[i] = real(v)
		outIm[i] = imag(v)
	}
	inRe := make([]float64, n)
	inIm := make([]float64, n)
	if rank < partner {
		mpi.SendOneD(partner, outRe)
		mpi.SendOneD(partner, outIm)
		mpi.RecvOneD(partner, inRe)
		mpi.RecvOneD(partner, inIm)
	} else {
		mpi.RecvOneD(partner, inRe)
		mpi.RecvOneD(partner, inIm)
		mpi.SendOneD(partner, outRe)
		mpi.SendOneD(partner, outIm)
	}
	for i := range in {
		in[i] = complex(inRe[i], inIm[i])
	}
}
