// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package osmo

import (
	"errors"
	"math"
	"testing"
)

const difTol = 1.0e-8

func TestOsmolarity(t *testing.T) {
	rs, err := Osmolarity(154, 2, 0.93)
	if err != nil {
		t.Fatal(err)
	}
	if dif := math.Abs(rs.Osm - 286.44); dif > difTol {
		t.Errorf("osmolarity %v != 286.44", rs.Osm)
	}
	if rs.Ton != Isotonic {
		t.Errorf("0.9%% saline should be isotonic, got %v", rs.Ton)
	}
}

func TestSoluteOsmolarity(t *testing.T) {
	tests := []struct {
		solute string
		conc   float64
		osm    float64
		ton    Tonicity
	}{
		{"Glucose", 278, 280.78, Isotonic},
		{"glucose", 278, 280.78, Isotonic}, // case-insensitive
		{"Urea", 100, 102, Hypotonic},
		{"NaCl", 300, 558, Hypertonic},
	}
	for _, ts := range tests {
		rs, err := SoluteOsmolarity(ts.solute, ts.conc)
		if err != nil {
			t.Fatal(err)
		}
		if dif := math.Abs(rs.Osm - ts.osm); dif > difTol {
			t.Errorf("%s %v mM: osmolarity %v != %v", ts.solute, ts.conc, rs.Osm, ts.osm)
		}
		if rs.Ton != ts.ton {
			t.Errorf("%s %v mM: tonicity %v != %v", ts.solute, ts.conc, rs.Ton, ts.ton)
		}
	}
	if _, err := SoluteOsmolarity("unobtainium", 100); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown solute: got %v", err)
	}
}

func TestOsmolarityValidation(t *testing.T) {
	if _, err := Osmolarity(-1, 1, 1); !errors.Is(err, ErrInvalid) {
		t.Errorf("negative concentration: got %v", err)
	}
	if _, err := Osmolarity(100, 6, 1); !errors.Is(err, ErrInvalid) {
		t.Errorf("dissociation coefficient 6: got %v", err)
	}
	if _, err := Osmolarity(100, 1, 2); !errors.Is(err, ErrInvalid) {
		t.Errorf("osmotic coefficient 2: got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		osm float64
		ton Tonicity
	}{
		{150, Hypotonic},
		{220, Hypotonic},
		{260, Hypotonic},
		{275, Isotonic},
		{285, Isotonic},
		{295, Isotonic},
		{320, Hypertonic},
		{380, Hypertonic},
		{1098, Hypertonic},
	}
	for _, ts := range tests {
		cl := Classify(ts.osm)
		if cl.Ton != ts.ton {
			t.Errorf("%v mOsm/L: tonicity %v != %v", ts.osm, cl.Ton, ts.ton)
		}
	}
	cl := Classify(285)
	if dif := math.Abs(cl.Relative); dif > difTol {
		t.Errorf("plasma deviation %v != 0", cl.Relative)
	}
}

func TestClinicalExamples(t *testing.T) {
	exs := ClinicalExamples()
	if len(exs) != 5 {
		t.Fatalf("got %d examples, want 5", len(exs))
	}
	want := map[string]Tonicity{
		"Normal saline 0.9% (NaCl)": Hypertonic, // 308 is just above the band
		"Half-normal saline 0.45%":  Hypotonic,
		"Dextrose 5%":               Isotonic,
		"Lactated Ringer's":         Hypotonic,
		"Mannitol 20%":              Hypertonic,
	}
	for _, ex := range exs {
		if ton, ok := want[ex.Name]; !ok {
			t.Errorf("unexpected example %q", ex.Name)
		} else if ex.Cl.Ton != ton {
			t.Errorf("%s: tonicity %v != %v", ex.Name, ex.Cl.Ton, ton)
		}
	}
}

func TestFinalVolume(t *testing.T) {
	vp := &VolParams{}
	vp.Defaults()

	// doubling external osmolarity shrinks the osmotic fraction by half
	rs, err := FinalVolume(vp, 570)
	if err != nil {
		t.Fatal(err)
	}
	if dif := math.Abs(rs.VFinal - 0.7); dif > difTol {
		t.Errorf("final volume %v != 0.7", rs.VFinal)
	}
	if rs.Ton != Hypertonic {
		t.Errorf("570 mOsm/L should be hypertonic, got %v", rs.Ton)
	}

	// halving it swells the cell past the lysis threshold
	rs, err = FinalVolume(vp, 142.5)
	if err != nil {
		t.Fatal(err)
	}
	if dif := math.Abs(rs.VFinal - 1.6); dif > difTol {
		t.Errorf("final volume %v != 1.6", rs.VFinal)
	}
	if rs.Response != "cell lysis" {
		t.Errorf("60%% swelling should predict lysis, got %q", rs.Response)
	}

	// time course starts at V0 and converges on VFinal
	if dif := math.Abs(rs.Volume[0] - vp.V0); dif > difTol {
		t.Errorf("curve start %v != V0 %v", rs.Volume[0], vp.V0)
	}
	last := rs.Volume[len(rs.Volume)-1]
	if math.Abs(last-rs.VFinal) > 0.01*math.Abs(rs.VFinal-vp.V0) {
		t.Errorf("curve end %v not converged to %v", last, rs.VFinal)
	}

	if _, err = FinalVolume(vp, 0); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero osmolarity: got %v", err)
	}
}

func TestBvHCurve(t *testing.T) {
	vp := &VolParams{}
	vp.Defaults()
	osm, vol, err := BvHCurve(vp, 100, 600, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(osm) != 100 || len(vol) != 100 {
		t.Fatalf("got %d osm, %d vol points, want 100", len(osm), len(vol))
	}
	// volume decreases monotonically with osmolarity
	for i := 1; i < len(vol); i++ {
		if vol[i] >= vol[i-1] {
			t.Fatalf("curve not monotonically decreasing at %d: %v >= %v", i, vol[i], vol[i-1])
		}
	}
	// at the initial osmolarity the volume is exactly 1
	for i, o := range osm {
		if math.Abs(o-vp.Osm0) < difTol {
			if dif := math.Abs(vol[i] - 1); dif > difTol {
				t.Errorf("volume at Osm0 %v != 1", vol[i])
			}
		}
	}

	if _, _, err = BvHCurve(vp, 600, 100, 100); !errors.Is(err, ErrInvalid) {
		t.Errorf("inverted range: got %v", err)
	}
}

func TestVolumeTable(t *testing.T) {
	vp := &VolParams{}
	vp.Defaults()
	rs, err := FinalVolume(vp, 570)
	if err != nil {
		t.Fatal(err)
	}
	dt := rs.Table()
	if dt.Rows != vp.NPts {
		t.Fatalf("table rows %d != %d", dt.Rows, vp.NPts)
	}
	if dif := math.Abs(dt.CellFloat("Volume", 0) - rs.Volume[0]); dif > difTol {
		t.Errorf("table cell mismatch")
	}
}
