// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package goldman computes the resting membrane potential from the
Goldman-Hodgkin-Katz equation, which weighs each permeant ion by its
relative membrane permeability:

	Vm = (RT / F) * ln[(PK*[K]o + PNa*[Na]o + PCl*[Cl]i) /
	                   (PK*[K]i + PNa*[Na]i + PCl*[Cl]o)]

Chloride, being an anion, enters with its concentrations swapped.  The
default permeabilities (K+ = 1, Na+ = 0.04, Cl- = 0.45) and concentrations
describe a typical mammalian cell at rest.
*/
package goldman

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned when the permeability-weighted concentration
// sums do not admit a logarithm.
var ErrInvalid = errors.New("goldman: invalid parameters")

// Params are the GHK inputs: relative permeabilities and intra /
// extracellular concentrations (mM) for the three permeant ions.
type Params struct {
	PK    float64 `def:"1" min:"0" desc:"relative K+ permeability (reference = 1)"`
	PNa   float64 `def:"0.04" min:"0" desc:"relative Na+ permeability"`
	PCl   float64 `def:"0.45" min:"0" desc:"relative Cl- permeability"`
	KOut  float64 `def:"5" desc:"extracellular K+ (mM)"`
	KIn   float64 `def:"140" desc:"intracellular K+ (mM)"`
	NaOut float64 `def:"145" desc:"extracellular Na+ (mM)"`
	NaIn  float64 `def:"12" desc:"intracellular Na+ (mM)"`
	ClOut float64 `def:"120" desc:"extracellular Cl- (mM)"`
	ClIn  float64 `def:"4" desc:"intracellular Cl- (mM)"`
	TempC float64 `def:"37" desc:"temperature (C)"`

	R float64 `view:"-" json:"-" xml:"-" desc:"gas constant"`
	F float64 `view:"-" json:"-" xml:"-" desc:"Faraday constant"`
}

func (pr *Params) Defaults() {
	pr.PK = 1
	pr.PNa = 0.04
	pr.PCl = 0.45
	pr.KOut = 5
	pr.KIn = 140
	pr.NaOut = 145
	pr.NaIn = 12
	pr.ClOut = 120
	pr.ClIn = 4
	pr.TempC = 37
	pr.Update()
}

func (pr *Params) Update() {
	pr.R = 8.314
	pr.F = 96485
}

// Result is one solved membrane potential with the per-ion breakdown.
type Result struct {
	Vm       float64            `desc:"membrane potential (mV)"`
	TempK    float64            `desc:"absolute temperature (K)"`
	Contrib  map[string]float64 `desc:"permeability-weighted concentration contribution per ion"`
	Dominant string             `desc:"ion with the largest contribution"`
}

// Solve evaluates the GHK equation for the given parameters.
func Solve(pr *Params) (*Result, error) {
	tempK := pr.TempC + 273.15
	num := pr.PK*pr.KOut + pr.PNa*pr.NaOut + pr.PCl*pr.ClIn
	den := pr.PK*pr.KIn + pr.PNa*pr.NaIn + pr.PCl*pr.ClOut
	if num <= 0 || den <= 0 {
		return nil, fmt.Errorf("%w: log argument %g / %g", ErrInvalid, num, den)
	}
	vm := pr.R * tempK / pr.F * math.Log(num/den) * 1000

	contrib := map[string]float64{
		"K+":  pr.PK * (pr.KOut + pr.KIn),
		"Na+": pr.PNa * (pr.NaOut + pr.NaIn),
		"Cl-": pr.PCl * (pr.ClOut + pr.ClIn),
	}
	dom := "K+"
	for nm, cb := range contrib {
		if cb > contrib[dom] {
			dom = nm
		}
	}
	return &Result{Vm: vm, TempK: tempK, Contrib: contrib, Dominant: dom}, nil
}

// Interpretation returns the narrative reading of the solved potential.
func (rs *Result) Interpretation() string {
	state := "close to the typical resting potential"
	switch {
	case rs.Vm > -50:
		state = "depolarized relative to a typical resting potential"
	case rs.Vm < -85:
		state = "hyperpolarized relative to a typical resting potential"
	}
	return fmt.Sprintf(
		"The GHK membrane potential is %.1f mV, %s. The dominant contribution comes from %s, "+
			"reflecting its permeability-weighted concentration across the membrane.",
		rs.Vm, state, rs.Dominant)
}
