// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/bioedu/biophys/chanrec"
	"github.com/bioedu/biophys/goldman"
	"github.com/bioedu/biophys/ivcurve"
	"github.com/bioedu/biophys/osmo"
	"github.com/bioedu/biophys/voldyn"
	"golang.org/x/exp/rand"
)

func TestServiceDefaults(t *testing.T) {
	sv := NewService(nil)
	if sv.Channel == nil || sv.Nernst == nil || sv.Dyn == nil {
		t.Fatal("solvers not constructed")
	}
	if sv.Channel.Params.Gbar != 20 {
		t.Errorf("channel conductance default %v != 20", sv.Channel.Params.Gbar)
	}
	if sv.Vol.B != 0.4 {
		t.Errorf("non-osmotic fraction default %v != 0.4", sv.Vol.B)
	}
}

func TestSingleChannel(t *testing.T) {
	sv := NewService(rand.NewSource(7))
	cr, err := sv.SingleChannel(chanrec.Potassium, 0)
	if err != nil {
		t.Fatal(err)
	}
	if cr.Rec == nil || !cr.Rec.Open() {
		t.Fatal("depolarized potassium channel should open")
	}
	if cr.ID == "" || cr.Solver != "single_channel" {
		t.Errorf("run not stamped: %+v", cr.Run)
	}

	cr2, err := sv.SingleChannel(chanrec.Sodium, -10)
	if err != nil {
		t.Fatal(err)
	}
	if cr2.ID == cr.ID {
		t.Errorf("run IDs must be unique")
	}

	// out-of-range duration propagates the solver's validation error
	rq := sv.Channel.Params.NewRequest(chanrec.Sodium, 0)
	rq.Dur = 500
	if _, err = sv.SingleChannelReq(rq); !errors.Is(err, chanrec.ErrInvalidParam) {
		t.Errorf("bad duration: got %v", err)
	}
}

func TestOsmolarity(t *testing.T) {
	sv := NewService(nil)
	or, err := sv.Osmolarity("NaCl", 154)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(or.Res.Osm-286.44) > 1.0e-8 {
		t.Errorf("osmolarity %v != 286.44", or.Res.Osm)
	}
	if or.Res.Ton != osmo.Isotonic {
		t.Errorf("tonicity %v != Isotonic", or.Res.Ton)
	}
	if _, err = sv.Osmolarity("unobtainium", 100); !errors.Is(err, osmo.ErrInvalid) {
		t.Errorf("unknown solute: got %v", err)
	}
	if cl := sv.Tonicity(1098); cl.Ton != osmo.Hypertonic {
		t.Errorf("mannitol should be hypertonic, got %v", cl.Ton)
	}
	if exs := sv.ClinicalExamples(); len(exs) != 5 {
		t.Errorf("got %d clinical examples, want 5", len(exs))
	}
}

func TestCellVolume(t *testing.T) {
	sv := NewService(nil)
	vr, err := sv.CellVolume(570)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(vr.Res.VFinal-0.7) > 1.0e-8 {
		t.Errorf("final volume %v != 0.7", vr.Res.VFinal)
	}
	osm, vol, err := sv.BvHCurve(100, 600, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(osm) != 50 || len(vol) != 50 {
		t.Errorf("curve lengths %d, %d != 50", len(osm), len(vol))
	}
}

func TestNernst(t *testing.T) {
	sv := NewService(nil)
	nr, err := sv.NernstIon("K+", 37)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(nr.Res.Eeq - -89.06) > 0.05 {
		t.Errorf("E_K %v not near -89.06", nr.Res.Eeq)
	}
	all, err := sv.NernstAll(37)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("got %d typical ions, want 5", len(all))
	}
}

func TestGoldman(t *testing.T) {
	sv := NewService(nil)
	pr := &goldman.Params{}
	pr.Defaults()
	gr, err := sv.Goldman(pr)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(gr.Res.Vm - -73.16) > 0.05 {
		t.Errorf("resting potential %v not near -73.16", gr.Res.Vm)
	}
}

func TestIVCurve(t *testing.T) {
	sv := NewService(nil)
	pr := &ivcurve.Params{}
	pr.Defaults()
	ir := sv.IVCurve(pr)
	if len(ir.Curve.Voltage) != pr.NPts {
		t.Fatalf("got %d points, want %d", len(ir.Curve.Voltage), pr.NPts)
	}
	fit, err := sv.IVAnalyze(ir.Curve.Voltage, ir.Curve.Current)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(fit.Curve.G-pr.G) > 1.0e-6 {
		t.Errorf("fitted conductance %v != %v", fit.Curve.G, pr.G)
	}
	if math.Abs(fit.Curve.Erev-pr.Erev) > 1.0e-6 {
		t.Errorf("fitted reversal %v != %v", fit.Curve.Erev, pr.Erev)
	}
}

func TestVolumeDynamics(t *testing.T) {
	sv := NewService(nil)
	in := []voldyn.Solute{{Name: "KCl", Conc: 150, J: 2}}
	ext := []voldyn.Solute{{Name: "NaCl", Conc: 300, J: 2}}
	dr, err := sv.VolumeDynamics(in, ext, 0)
	if err != nil {
		t.Fatal(err)
	}
	if dr.Res.FinalVolPct >= 100 {
		t.Errorf("hypertonic medium should shrink the cell, final %v%%", dr.Res.FinalVolPct)
	}
	lr, err := sv.LysisDynamics(in, []voldyn.Solute{{Name: "NaCl", Conc: 50, J: 2}}, 1.4)
	if err != nil {
		t.Fatal(err)
	}
	if !lr.Res.Lysis {
		t.Errorf("lysis run did not reach the critical volume")
	}
}

func TestSolvers(t *testing.T) {
	sv := NewService(nil)
	sls := sv.Solvers()
	if len(sls) != 7 {
		t.Fatalf("got %d solvers, want 7", len(sls))
	}
	seen := map[string]bool{}
	for _, sl := range sls {
		if seen[sl.ID] {
			t.Errorf("duplicate solver ID %q", sl.ID)
		}
		seen[sl.ID] = true
	}
	if !seen["single_channel"] || !seen["osmolarity_calculator"] {
		t.Errorf("expected solver IDs missing: %v", sls)
	}
}
