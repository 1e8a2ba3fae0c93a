// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"log"

	"github.com/cpmech/gosl/utl"
)

// Material holds one material's complex refractive index (spec.md §6
// option `m`: "pairs of reals", one per material), generalized from
// inp.Material's FEM constitutive-model parameters to a flat optical
// index.
type Material struct {
	Name string  `json:"name"` // name of material
	Re   float64 `json:"re"`   // refractive index, real part
	Im   float64 `json:"im"`   // refractive index, imaginary part
}

// M returns the complex refractive index.
func (m *Material) M() complex128 {
	return complex(m.Re, m.Im)
}

// MatDb implements a database of materials, indexed in declaration
// order to match the geometry file's 1-based material indices.
type MatDb struct {
	Materials []*Material `json:"materials"`
}

// ReadMat reads all materials data from a JSON file.
//
//	Note: returns nil on errors
func ReadMat(fn string) *MatDb {
	var o MatDb
	b, err := utl.ReadFile(fn)
	if LogErr(err, "mat: cannot open materials file "+fn+"\n") {
		return nil
	}
	if LogErr(json.Unmarshal(b, &o), "mat: cannot unmarshal materials file "+fn+"\n") {
		return nil
	}
	log.Printf("mat: fn=%s nmaterials=%d\n", fn, len(o.Materials))
	return &o
}

// Get returns the complex refractive index for a 1-based material
// index (spec.md §6: "mat in 1..Nmat"); index 0/1 both mean the first
// (and, in the single-material case, only) material.
func (o *MatDb) Get(matIdx int) complex128 {
	i := matIdx - 1
	if i < 0 {
		i = 0
	}
	if i >= len(o.Materials) {
		i = len(o.Materials) - 1
	}
	return o.Materials[i].M()
}

// String prints the database, mirroring inp.MatDb.String's JSON-ish
// pretty-printer.
func (o MatDb) String() string {
	s := "{\n  \"materials\" : [\n"
	for i, m := range o.Materials {
		if i > 0 {
			s += ",\n"
		}
		s += utl.Sf("    {\"name\": %q, \"re\": %v, \"im\": %v}", m.Name, m.Re, m.Im)
	}
	s += "\n  ]\n}"
	return s
}
