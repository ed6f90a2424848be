// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package calc is the application facade over the solver packages.  It
owns one configured instance of each solver, exposes their operations
with course-level defaults filled in, and stamps every result with a
unique run ID so callers can correlate runs with stored feedback.
*/
package calc

import (
	"time"

	"github.com/bioedu/biophys/chanrec"
	"github.com/bioedu/biophys/goldman"
	"github.com/bioedu/biophys/ivcurve"
	"github.com/bioedu/biophys/nernst"
	"github.com/bioedu/biophys/osmo"
	"github.com/bioedu/biophys/voldyn"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// Run identifies one solver invocation.
type Run struct {
	ID     string    `json:"id" desc:"unique run identifier"`
	Solver string    `json:"solver" desc:"solver that produced the result"`
	At     time.Time `json:"at" desc:"when the run started"`
}

func newRun(solver string) Run {
	return Run{ID: uuid.NewString(), Solver: solver, At: time.Now()}
}

// Service bundles configured instances of every solver.
type Service struct {
	Channel *chanrec.Sim   `desc:"single-channel gating simulator"`
	Nernst  *nernst.Solver `desc:"Nernst equilibrium potential solver"`
	Vol     osmo.VolParams `desc:"cell volume parameters"`
	Dyn     *voldyn.Sim    `desc:"volume dynamics simulator"`
}

// NewService returns a Service with all solvers at their defaults.  A
// nil src seeds the channel simulator from the clock.
func NewService(src rand.Source) *Service {
	sv := &Service{
		Channel: chanrec.New(src),
		Nernst:  &nernst.Solver{},
		Dyn:     voldyn.New(),
	}
	sv.Nernst.Defaults()
	sv.Vol.Defaults()
	return sv
}

// ChannelRun is a single-channel simulation result.
type ChannelRun struct {
	Run
	Rec *chanrec.Recording `json:"recording"`
}

// SingleChannel simulates one channel species at a holding potential,
// with the course defaults for conductance, equilibrium potential, and
// recording duration.
func (sv *Service) SingleChannel(ch chanrec.Chan, vm float64) (*ChannelRun, error) {
	return sv.SingleChannelReq(sv.Channel.Params.NewRequest(ch, vm))
}

// SingleChannelReq simulates a fully specified channel request.
func (sv *Service) SingleChannelReq(rq chanrec.Request) (*ChannelRun, error) {
	rec, err := sv.Channel.Simulate(rq)
	if err != nil {
		return nil, err
	}
	return &ChannelRun{Run: newRun("single_channel"), Rec: rec}, nil
}

// OsmRun is an osmolarity result.
type OsmRun struct {
	Run
	Res *osmo.Result `json:"result"`
}

// Osmolarity computes the osmolarity of a named common solute.
func (sv *Service) Osmolarity(solute string, concMM float64) (*OsmRun, error) {
	rs, err := osmo.SoluteOsmolarity(solute, concMM)
	if err != nil {
		return nil, err
	}
	return &OsmRun{Run: newRun("osmolarity_calculator"), Res: rs}, nil
}

// OsmolarityCoef computes osmolarity from explicit coefficients.
func (sv *Service) OsmolarityCoef(concMM, i, phi float64) (*OsmRun, error) {
	rs, err := osmo.Osmolarity(concMM, i, phi)
	if err != nil {
		return nil, err
	}
	return &OsmRun{Run: newRun("osmolarity_calculator"), Res: rs}, nil
}

// Tonicity classifies an osmolarity against plasma.
func (sv *Service) Tonicity(osm float64) osmo.Classification {
	return osmo.Classify(osm)
}

// ClinicalExamples returns classified common intravenous solutions.
func (sv *Service) ClinicalExamples() []osmo.Example {
	return osmo.ClinicalExamples()
}

// VolRun is an equilibrium cell-volume result.
type VolRun struct {
	Run
	Res *osmo.VolResult `json:"result"`
}

// CellVolume predicts the equilibrium cell volume in a medium of the
// given osmolarity, using the service's volume parameters.
func (sv *Service) CellVolume(finalOsm float64) (*VolRun, error) {
	rs, err := osmo.FinalVolume(&sv.Vol, finalOsm)
	if err != nil {
		return nil, err
	}
	return &VolRun{Run: newRun("cell_volume_calculator"), Res: rs}, nil
}

// BvHCurve generates the Boyle-van't Hoff volume-osmolarity curve.
func (sv *Service) BvHCurve(osmMin, osmMax float64, n int) (osm, vol []float64, err error) {
	return osmo.BvHCurve(&sv.Vol, osmMin, osmMax, n)
}

// NernstRun is an equilibrium potential result.
type NernstRun struct {
	Run
	Res *nernst.Result `json:"result"`
}

// NernstIon computes the equilibrium potential of a typical ion by name.
func (sv *Service) NernstIon(name string, tempC float64) (*NernstRun, error) {
	rs, err := sv.Nernst.SolveIon(name, tempC)
	if err != nil {
		return nil, err
	}
	return &NernstRun{Run: newRun("nernst_calculator"), Res: rs}, nil
}

// NernstAll computes the equilibrium potentials of all typical ions.
func (sv *Service) NernstAll(tempC float64) ([]*nernst.Result, error) {
	return sv.Nernst.SolveTypical(tempC)
}

// GoldmanRun is a membrane potential result.
type GoldmanRun struct {
	Run
	Res *goldman.Result `json:"result"`
}

// Goldman computes the resting membrane potential by the GHK equation.
func (sv *Service) Goldman(pr *goldman.Params) (*GoldmanRun, error) {
	rs, err := goldman.Solve(pr)
	if err != nil {
		return nil, err
	}
	return &GoldmanRun{Run: newRun("goldman_calculator"), Res: rs}, nil
}

// IVRun is a current-voltage curve result.
type IVRun struct {
	Run
	Curve *ivcurve.Curve `json:"curve"`
}

// IVCurve generates a theoretical Ohmic I-V curve.
func (sv *Service) IVCurve(pr *ivcurve.Params) *IVRun {
	return &IVRun{Run: newRun("iv_curve"), Curve: ivcurve.Generate(pr)}
}

// IVAnalyze fits measured I-V points.
func (sv *Service) IVAnalyze(voltage, current []float64) (*IVRun, error) {
	cv, err := ivcurve.Analyze(voltage, current)
	if err != nil {
		return nil, err
	}
	return &IVRun{Run: newRun("iv_curve"), Curve: cv}, nil
}

// DynRun is a volume dynamics result.
type DynRun struct {
	Run
	Res *voldyn.Result `json:"result"`
}

// VolumeDynamics simulates the osmotic volume time course.
func (sv *Service) VolumeDynamics(internal, external []voldyn.Solute, critVol float64) (*DynRun, error) {
	rs, err := sv.Dyn.Simulate(internal, external, critVol)
	if err != nil {
		return nil, err
	}
	return &DynRun{Run: newRun("volume_dynamics"), Res: rs}, nil
}

// LysisDynamics simulates the volume time course with lysis-viewing
// parameters.
func (sv *Service) LysisDynamics(internal, external []voldyn.Solute, critVol float64) (*DynRun, error) {
	rs, err := sv.Dyn.SimulateLysis(internal, external, critVol)
	if err != nil {
		return nil, err
	}
	return &DynRun{Run: newRun("volume_dynamics"), Res: rs}, nil
}

// SolverInfo describes one available solver for menus and for linking
// problems to their interactive solver.
type SolverInfo struct {
	ID       string `json:"id" desc:"solver identifier, as used in problem files"`
	Name     string `json:"name" desc:"display name"`
	Desc     string `json:"description" desc:"what the solver computes"`
	Category string `json:"category" desc:"course unit"`
}

// Solvers lists the available solvers.
func (sv *Service) Solvers() []SolverInfo {
	return []SolverInfo{
		{"osmolarity_calculator", "Osmolarity", "solution osmolarity and tonicity", "osmosis"},
		{"cell_volume_calculator", "Cell volume", "equilibrium cell volume by Boyle-van't Hoff", "osmosis"},
		{"volume_dynamics", "Volume dynamics", "osmotic volume time course", "osmosis"},
		{"nernst_calculator", "Nernst potential", "ion equilibrium potential", "excitability"},
		{"goldman_calculator", "Goldman potential", "resting membrane potential by GHK", "excitability"},
		{"iv_curve", "I-V curve", "current-voltage relation and fit", "patch_clamp"},
		{"single_channel", "Single channel", "stochastic single-channel recording", "patch_clamp"},
	}
}
