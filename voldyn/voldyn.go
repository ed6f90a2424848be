// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package voldyn simulates the time course of cell volume under osmotic
challenge, integrating a two-variable ODE system:

	dV/dt = Lp * A * (pi_int - pi_ext)     water flux
	dn/dt = Ps * A * (C_ext - C_int)       penetrating-solute flux

with membrane area A = V^(2/3).  Solutes are split into non-penetrating
(fixed intracellular amount) and penetrating (amount n evolves), all
concentrations normalized by the initial total internal osmolarity.
Integration is fixed-step fourth-order Runge-Kutta.
*/
package voldyn

import (
	"errors"
	"fmt"
	"math"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalid is returned for unusable solute lists or parameters.
var ErrInvalid = errors.New("voldyn: invalid parameter")

// Solute is one solute species on either side of the membrane.
type Solute struct {
	Name      string  `desc:"solute name"`
	Conc      float64 `desc:"concentration (mM)"`
	J         float64 `desc:"particles per molecule (dissociation coefficient)"`
	Penetrant bool    `desc:"crosses the membrane"`
	Perm      float64 `desc:"membrane permeability (cm/s), penetrants only"`
}

// Osm is the solute's osmotic contribution.
func (sl *Solute) Osm() float64 { return sl.Conc * sl.J }

// Params parameterize the volume dynamics simulation.
type Params struct {
	V0   float64 `def:"1" desc:"initial volume, normalized"`
	B    float64 `def:"0.4" min:"0" max:"0.9" desc:"non-osmotic volume fraction"`
	Lp   float64 `def:"0.5" desc:"hydraulic permeability, normalized"`
	TMax float64 `def:"30" desc:"simulated time span (s)"`
	NPts int     `def:"300" min:"10" desc:"number of time points"`
}

func (pr *Params) Defaults() {
	pr.V0 = 1
	pr.B = 0.4
	pr.Lp = 0.5
	pr.TMax = 30
	pr.NPts = 300
}

// Result is a simulated volume time course with lysis detection.
type Result struct {
	Time        []float64 `desc:"time points (s)"`
	Volume      []float64 `desc:"cell volume at each point"`
	VolPct      []float64 `desc:"volume as percent of initial"`
	NPen        []float64 `desc:"penetrating solute amount at each point"`
	Lysis       bool      `desc:"critical volume was reached"`
	LysisTime   float64   `desc:"time at which critical volume was first reached"`
	LysisVolPct float64   `desc:"volume percent at that time"`
	FinalVolPct float64   `desc:"volume percent at the end of the run"`
}

// osms holds the per-compartment osmolarity decomposition.
type osms struct {
	IntNonPen float64
	IntPen    float64
	ExtNonPen float64
	ExtPen    float64
	TotalInt  float64
}

// Sim simulates osmotic volume dynamics.  A zero Sim is not usable: use
// New or call Params.Defaults.
type Sim struct {
	Params Params `desc:"simulation parameters"`
}

func New() *Sim {
	sm := &Sim{}
	sm.Params.Defaults()
	return sm
}

// EffectivePerm computes the effective permeability of the penetrating
// solutes as a concentration-weighted mean, rescaled from cm/s to
// normalized units, with a floor whenever any penetrant is present.
func (sm *Sim) EffectivePerm(internal, external []Solute) float64 {
	var totConc, wsum float64
	npen := 0
	for _, sl := range append(append([]Solute{}, external...), internal...) {
		if !sl.Penetrant {
			continue
		}
		npen++
		totConc += sl.Conc
		wsum += sl.Perm * sl.Conc
	}
	if npen == 0 {
		return 0
	}
	ps := 0.0
	if totConc > 0 {
		ps = wsum / totConc * 1e4
	}
	return math.Max(ps, 0.01)
}

// osmolarities sums the osmotic contributions of each compartment,
// defaulting the internal total when the cell is given no solutes.
func (sm *Sim) osmolarities(internal, external []Solute) osms {
	var om osms
	for _, sl := range internal {
		if sl.Penetrant {
			om.IntPen += sl.Osm()
		} else {
			om.IntNonPen += sl.Osm()
		}
	}
	for _, sl := range external {
		if sl.Penetrant {
			om.ExtPen += sl.Osm()
		} else {
			om.ExtNonPen += sl.Osm()
		}
	}
	om.TotalInt = om.IntNonPen + om.IntPen
	if om.TotalInt <= 0 {
		om.TotalInt = 280
	}
	return om
}

// Simulate integrates the volume dynamics for the given solute
// compositions.  critVol is the lysis threshold as V/V0; pass 0 to skip
// lysis detection.
func (sm *Sim) Simulate(internal, external []Solute, critVol float64) (*Result, error) {
	pr := &sm.Params
	if pr.NPts < 10 {
		return nil, fmt.Errorf("%w: need at least 10 points, got %d", ErrInvalid, pr.NPts)
	}
	if pr.TMax <= 0 || pr.V0 <= 0 {
		return nil, fmt.Errorf("%w: TMax %v, V0 %v must be positive", ErrInvalid, pr.TMax, pr.V0)
	}
	if len(external) == 0 {
		return nil, fmt.Errorf("%w: no external solutes", ErrInvalid)
	}

	ps := sm.EffectivePerm(internal, external)
	om := sm.osmolarities(internal, external)

	vOsm0 := pr.V0 * (1 - pr.B)
	nNonPen := om.IntNonPen * vOsm0 / om.TotalInt
	nPen0 := math.Max(om.IntPen*vOsm0/om.TotalInt, 0)
	cExtNonPen := om.ExtNonPen / om.TotalInt
	cExtPen := om.ExtPen / om.TotalInt

	deriv := func(v, npen float64) (dv, dn float64) {
		v = math.Max(v, 0.1*pr.V0)
		vosm := math.Max(v-pr.V0*pr.B, 0.01)
		ar := math.Pow(v, 2.0/3.0)
		cIntNonPen := nNonPen / vosm
		cIntPen := math.Max(npen, 0) / vosm
		dv = pr.Lp * ar * (cIntNonPen + cIntPen - cExtNonPen - cExtPen)
		dn = ps * ar * (cExtPen - cIntPen)
		return
	}

	rs := &Result{
		Time:   make([]float64, pr.NPts),
		Volume: make([]float64, pr.NPts),
		VolPct: make([]float64, pr.NPts),
		NPen:   make([]float64, pr.NPts),
	}
	floats.Span(rs.Time, 0, pr.TMax)
	h := pr.TMax / float64(pr.NPts-1)

	v, npen := pr.V0, nPen0
	for i := 0; i < pr.NPts; i++ {
		rs.Volume[i] = math.Max(v, 0.1*pr.V0)
		rs.VolPct[i] = rs.Volume[i] / pr.V0 * 100
		rs.NPen[i] = npen
		if i == pr.NPts-1 {
			break
		}
		// classical RK4 step
		k1v, k1n := deriv(v, npen)
		k2v, k2n := deriv(v+0.5*h*k1v, npen+0.5*h*k1n)
		k3v, k3n := deriv(v+0.5*h*k2v, npen+0.5*h*k2n)
		k4v, k4n := deriv(v+h*k3v, npen+h*k3n)
		v += h / 6 * (k1v + 2*k2v + 2*k3v + k4v)
		npen += h / 6 * (k1n + 2*k2n + 2*k3n + k4n)
	}
	rs.FinalVolPct = rs.VolPct[pr.NPts-1]

	if critVol > 0 {
		critPct := critVol * 100
		for i, vp := range rs.VolPct {
			if vp >= critPct {
				rs.Lysis = true
				rs.LysisTime = rs.Time[i]
				rs.LysisVolPct = vp
				break
			}
		}
	}
	return rs, nil
}

// SimulateLysis runs the simulation with parameters tuned for watching a
// lysis event develop: no non-osmotic fraction, a longer time span, and
// a finer grid.  The receiver's parameters are not modified.
func (sm *Sim) SimulateLysis(internal, external []Solute, critVol float64) (*Result, error) {
	if critVol <= 0 {
		return nil, fmt.Errorf("%w: critical volume must be positive, got %v", ErrInvalid, critVol)
	}
	ls := &Sim{Params: sm.Params}
	ls.Params.B = 0
	ls.Params.TMax = 60
	ls.Params.NPts = 400
	return ls.Simulate(internal, external, critVol)
}

// Table returns the time course as an etable.Table for plotting.
func (rs *Result) Table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "VolumeDynamics")
	dt.SetMetaData("desc", "osmotic volume dynamics time course")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Volume", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "VolPct", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "NPenetrant", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, len(rs.Time))
	for i := range rs.Time {
		dt.SetCellFloat("Time", i, rs.Time[i])
		dt.SetCellFloat("Volume", i, rs.Volume[i])
		dt.SetCellFloat("VolPct", i, rs.VolPct[i])
		dt.SetCellFloat("NPenetrant", i, rs.NPen[i])
	}
	return dt
}
