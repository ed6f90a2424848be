// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package nernst computes the Nernst equilibrium potential for an ion across
a membrane permeable only to that ion:

	E = (RT / zF) * ln([ion]_out / [ion]_in)

reported in mV.  A table of typical mammalian intra / extracellular
concentrations is provided so callers can solve by ion name alone.
*/
package nernst

import (
	"errors"
	"fmt"
	"math"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
)

// ErrInvalid is returned for parameters outside the physical domain.
var ErrInvalid = errors.New("nernst: invalid parameters")

// Ion is one ion species with its valence and typical physiological
// concentrations (mM).
type Ion struct {
	Name string  `desc:"conventional label, e.g. K+, Na+, Cl-"`
	Z    int     `desc:"valence (signed charge)"`
	CIn  float64 `desc:"typical intracellular concentration (mM)"`
	COut float64 `desc:"typical extracellular concentration (mM)"`
}

// Typical are the standard physiological ions, in display order.
var Typical = []Ion{
	{"K+", 1, 140, 5},
	{"Na+", 1, 12, 145},
	{"Cl-", -1, 4, 120},
	{"Ca2+", 2, 0.0001, 2.5},
	{"Mg2+", 2, 0.5, 1.5},
}

// TypicalIon looks up an ion in the Typical table by name.
func TypicalIon(name string) (Ion, bool) {
	for _, ion := range Typical {
		if ion.Name == name {
			return ion, true
		}
	}
	return Ion{}, false
}

// Result is one solved equilibrium potential.
type Result struct {
	Ion   Ion     `desc:"ion solved for"`
	TempK float64 `desc:"absolute temperature (K)"`
	Eeq   float64 `desc:"equilibrium potential (mV)"`
}

// Solver computes Nernst potentials.  VRest is only used for the
// driving-direction interpretation.
type Solver struct {
	R       float64    `def:"8.314" desc:"gas constant (J/(mol K))"`
	F       float64    `def:"96485" desc:"Faraday constant (C/mol)"`
	VRest   float64    `def:"-70" desc:"typical resting potential (mV) used in interpretations"`
	ConcDom minmax.F64 `desc:"allowed concentration domain (mM)"`
	TempDom minmax.F64 `desc:"allowed temperature domain (C)"`
}

func (sv *Solver) Defaults() {
	sv.R = 8.314
	sv.F = 96485
	sv.VRest = -70
	sv.ConcDom.Set(1e-5, 1000)
	sv.TempDom.Set(0, 50)
}

// Factor returns RT/|z|F in mV at the given absolute temperature.
func (sv *Solver) Factor(z int, tempK float64) float64 {
	return sv.R * tempK / (math.Abs(float64(z)) * sv.F) * 1000
}

// Solve computes the equilibrium potential for the given ion data at
// tempC degrees Celsius.
func (sv *Solver) Solve(ion Ion, tempC float64) (*Result, error) {
	if ion.Z == 0 {
		return nil, fmt.Errorf("%w: valence must be non-zero", ErrInvalid)
	}
	if ion.CIn < sv.ConcDom.Min || ion.CIn > sv.ConcDom.Max ||
		ion.COut < sv.ConcDom.Min || ion.COut > sv.ConcDom.Max {
		return nil, fmt.Errorf("%w: concentrations must be in [%g, %g] mM", ErrInvalid, sv.ConcDom.Min, sv.ConcDom.Max)
	}
	if tempC < sv.TempDom.Min || tempC > sv.TempDom.Max {
		return nil, fmt.Errorf("%w: temperature %g C outside [%g, %g]", ErrInvalid, tempC, sv.TempDom.Min, sv.TempDom.Max)
	}
	tempK := tempC + 273.15
	eeq := sv.R * tempK / (float64(ion.Z) * sv.F) * math.Log(ion.COut/ion.CIn) * 1000
	return &Result{Ion: ion, TempK: tempK, Eeq: eeq}, nil
}

// SolveIon solves for a named ion using the Typical table.
func (sv *Solver) SolveIon(name string, tempC float64) (*Result, error) {
	ion, ok := TypicalIon(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown ion %q", ErrInvalid, name)
	}
	return sv.Solve(ion, tempC)
}

// SolveTypical solves every ion in the Typical table (or just the named
// ones) at tempC, for side-by-side comparison against the resting potential.
func (sv *Solver) SolveTypical(tempC float64, ions ...string) ([]*Result, error) {
	if len(ions) == 0 {
		for _, ion := range Typical {
			ions = append(ions, ion.Name)
		}
	}
	rss := make([]*Result, 0, len(ions))
	for _, nm := range ions {
		rs, err := sv.SolveIon(nm, tempC)
		if err != nil {
			return nil, err
		}
		rss = append(rss, rs)
	}
	return rss, nil
}

// Interpretation returns the narrative reading: gradient direction and
// which way the ion would move at the resting potential vrest (mV).
func (rs *Result) Interpretation(vrest float64) string {
	gradient := "inward"
	if rs.Ion.CIn > rs.Ion.COut {
		gradient = "outward"
	}
	driving := "enter the cell"
	if (rs.Ion.Z > 0 && rs.Eeq < vrest) || (rs.Ion.Z < 0 && rs.Eeq > vrest) {
		driving = "leave the cell"
	}
	return fmt.Sprintf(
		"The equilibrium potential for %s is %+.1f mV. The concentration gradient favors %s movement. "+
			"At the resting potential (~%g mV) this ion would tend to %s.",
		rs.Ion.Name, rs.Eeq, gradient, vrest, driving)
}

// Table returns the comparison table for a set of results, one row per ion.
func Table(rss []*Result) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "NernstPotentials")
	dt.SetMetaData("desc", "equilibrium potentials for typical physiological conditions")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Ion", Type: etensor.STRING, CellShape: nil, DimNames: nil},
		{Name: "Z", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "CIn", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "COut", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Eeq", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, len(rss))
	for i, rs := range rss {
		dt.SetCellString("Ion", i, rs.Ion.Name)
		dt.SetCellFloat("Z", i, float64(rs.Ion.Z))
		dt.SetCellFloat("CIn", i, rs.Ion.CIn)
		dt.SetCellFloat("COut", i, rs.Ion.COut)
		dt.SetCellFloat("Eeq", i, rs.Eeq)
	}
	return dt
}
