// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ivcurve

import (
	"errors"
	"math"
	"testing"
)

const difTol = 1.0e-8

func TestGenerate(t *testing.T) {
	pr := &Params{}
	pr.Defaults()
	cv := Generate(pr)
	if len(cv.Voltage) != pr.NPts || len(cv.Current) != pr.NPts {
		t.Fatalf("got %d voltage, %d current points, want %d", len(cv.Voltage), len(cv.Current), pr.NPts)
	}
	if dif := math.Abs(cv.Voltage[0] - pr.VMin); dif > difTol {
		t.Errorf("first voltage %v != VMin %v", cv.Voltage[0], pr.VMin)
	}
	if dif := math.Abs(cv.Voltage[pr.NPts-1] - pr.VMax); dif > difTol {
		t.Errorf("last voltage %v != VMax %v", cv.Voltage[pr.NPts-1], pr.VMax)
	}
	for i, v := range cv.Voltage {
		want := pr.G * (v - pr.Erev)
		if dif := math.Abs(cv.Current[i] - want); dif > difTol {
			t.Errorf("point %d: current %v != %v", i, cv.Current[i], want)
		}
	}
}

func TestAnalyzeExact(t *testing.T) {
	pr := &Params{}
	pr.Defaults()
	pr.G = 15
	pr.Erev = -55
	gen := Generate(pr)
	cv, err := Analyze(gen.Voltage, gen.Current)
	if err != nil {
		t.Fatal(err)
	}
	if dif := math.Abs(cv.G - 15); dif > 1.0e-6 {
		t.Errorf("fitted conductance %v != 15", cv.G)
	}
	if dif := math.Abs(cv.Erev - -55); dif > 1.0e-6 {
		t.Errorf("fitted reversal %v != -55", cv.Erev)
	}
	if dif := math.Abs(cv.RSq - 1); dif > 1.0e-9 {
		t.Errorf("R-squared %v != 1 for exact data", cv.RSq)
	}
}

func TestAnalyzeNoisy(t *testing.T) {
	// hand-perturbed Ohmic points: g = 2, Erev = -10
	v := []float64{-60, -40, -20, 0, 20, 40}
	i := []float64{-100.5, -59.2, -20.3, 20.4, 59.8, 99.7}
	cv, err := Analyze(v, i)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cv.G-2) > 0.05 {
		t.Errorf("fitted conductance %v not near 2", cv.G)
	}
	if math.Abs(cv.Erev - -10) > 1 {
		t.Errorf("fitted reversal %v not near -10", cv.Erev)
	}
	if cv.RSq < 0.999 {
		t.Errorf("R-squared %v too low for near-linear data", cv.RSq)
	}
}

func TestAnalyzeInvalid(t *testing.T) {
	if _, err := Analyze([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrInvalid) {
		t.Errorf("mismatched lengths: got %v", err)
	}
	if _, err := Analyze([]float64{1}, []float64{1}); !errors.Is(err, ErrInvalid) {
		t.Errorf("single point: got %v", err)
	}
	if _, err := Analyze([]float64{-10, 0, 10}, []float64{5, 5, 5}); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero slope: got %v", err)
	}
}

func TestTable(t *testing.T) {
	pr := &Params{}
	pr.Defaults()
	cv := Generate(pr)
	dt := cv.Table()
	if dt.Rows != pr.NPts {
		t.Fatalf("table rows %d != %d", dt.Rows, pr.NPts)
	}
	if dif := math.Abs(dt.CellFloat("Current", 3) - cv.Current[3]); dif > difTol {
		t.Errorf("table cell mismatch")
	}
}
