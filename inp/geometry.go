// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Site is one occupied lattice site read from a geometry file (spec.md
// §3/§6): integer coordinates and a 1-based material index.
type Site struct {
	Ix, Iy, Iz int
	Mat        int
}

// Geometry holds the occupied-dipole list and the bounding box derived
// from it (spec.md §3's "occupied-dipole array").
type Geometry struct {
	Sites            []Site
	Nmat             int
	BoxX, BoxY, BoxZ int
}

// ReadGeometry parses the spec.md §6 geometry text format: optional `#`
// comment lines, an optional `Nmat=<int>` header, then data lines
// `x y z` or `x y z mat`. Grounded on ADDA's make_particle.c grammar
// (confirmed via original_source) and on inp.ReadMsh's
// read-file/parse-lines/log-summary shape.
//
//	Note: returns nil on read/parse errors; panics on negative coordinates
func ReadGeometry(fn string) *Geometry {
	f, err := os.Open(fn)
	if LogErr(err, "geom: cannot open geometry file "+fn+"\n") {
		return nil
	}
	defer f.Close()

	var g Geometry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "Nmat=") {
			n, err := strconv.Atoi(strings.TrimPrefix(line, "Nmat="))
			if LogErr(err, "geom: bad Nmat header in "+fn+"\n") {
				return nil
			}
			g.Nmat = n
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 && len(fields) != 4 {
			if LogErrCond(true, "geom: malformed data line %q in %s\n", line, fn) {
				return nil
			}
		}
		ix, errx := strconv.Atoi(fields[0])
		iy, erry := strconv.Atoi(fields[1])
		iz, errz := strconv.Atoi(fields[2])
		if errx != nil || erry != nil || errz != nil {
			if LogErrCond(true, "geom: non-integer coordinates on line %q in %s\n", line, fn) {
				return nil
			}
		}
		if ix < 0 || iy < 0 || iz < 0 {
			chk.Panic("geom: negative coordinates are rejected (%d,%d,%d) in %s", ix, iy, iz, fn)
		}
		mat := 1
		if len(fields) == 4 {
			m, errm := strconv.Atoi(fields[3])
			if errm != nil {
				if LogErrCond(true, "geom: non-integer material index on line %q in %s\n", line, fn) {
					return nil
				}
			}
			mat = m
		}
		g.Sites = append(g.Sites, Site{Ix: ix, Iy: iy, Iz: iz, Mat: mat})
		if ix+1 > g.BoxX {
			g.BoxX = ix + 1
		}
		if iy+1 > g.BoxY {
			g.BoxY = iy + 1
		}
		if iz+1 > g.BoxZ {
			g.BoxZ = iz + 1
		}
	}
	if LogErr(scanner.Err(), "geom: error scanning "+fn+"\n") {
		return nil
	}
	if g.Nmat == 0 {
		g.Nmat = 1
	}
	log.Printf("geom: fn=%s ndip=%d nmat=%d boxX=%d boxY=%d boxZ=%d\n", fn, len(g.Sites), g.Nmat, g.BoxX, g.BoxY, g.BoxZ)
	return &g
}

// SortedByZ returns the sites reordered in z-major order, the global
// ordering convention of spec.md §3 ("concatenation of worker-local
// orderings along increasing z").
func (g *Geometry) SortedByZ() []Site {
	out := make([]Site, len(g.Sites))
	copy(out, g.Sites)
	// insertion sort is adequate here: geometry files are read once at
	// startup, not on the matvec hot path.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func less(a, b Site) bool {
	if a.Iz != b.Iz {
		return a.Iz < b.Iz
	}
	if a.Iy != b.Iy {
		return a.Iy < b.Iy
	}
	return a.Ix < b.Ix
}
