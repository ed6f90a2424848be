// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ivcurve generates and analyzes current-voltage relations for Ohmic
ion channels, I = g * (V - Erev).  Generation produces the theoretical
line over a voltage range; analysis runs a least-squares fit on measured
points to recover the conductance (slope) and reversal potential
(x-intercept), with R-squared as the fit quality.
*/
package ivcurve

import (
	"errors"
	"fmt"
	"math"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalid is returned for analysis inputs that do not determine a line.
var ErrInvalid = errors.New("ivcurve: invalid data")

// Params parameterize theoretical curve generation.
type Params struct {
	G      float64 `def:"10" min:"0.1" desc:"channel conductance (nS)"`
	Erev   float64 `def:"-80" desc:"reversal potential (mV)"`
	VMin   float64 `def:"-120" desc:"lowest voltage in the curve (mV)"`
	VMax   float64 `def:"60" desc:"highest voltage in the curve (mV)"`
	NPts   int     `def:"50" min:"10" desc:"number of points"`
}

func (pr *Params) Defaults() {
	pr.G = 10
	pr.Erev = -80
	pr.VMin = -120
	pr.VMax = 60
	pr.NPts = 50
}

// Curve is an I-V relation: paired voltages (mV) and currents (pA, with
// g in nS), plus the line parameters that produced or fitted it.
type Curve struct {
	Voltage []float64 `desc:"voltage points (mV)"`
	Current []float64 `desc:"current points (pA)"`
	G       float64   `desc:"conductance (nS): the slope"`
	Erev    float64   `desc:"reversal potential (mV): the zero-current voltage"`
	RSq     float64   `desc:"R-squared of the fit -- 1 for generated curves"`
}

// Generate produces the theoretical Ohmic I-V line for the parameters.
func Generate(pr *Params) *Curve {
	v := make([]float64, pr.NPts)
	floats.Span(v, pr.VMin, pr.VMax)
	c := make([]float64, pr.NPts)
	for i, vi := range v {
		c[i] = pr.G * (vi - pr.Erev)
	}
	return &Curve{Voltage: v, Current: c, G: pr.G, Erev: pr.Erev, RSq: 1}
}

// Analyze fits measured I-V points by least squares, recovering the
// conductance from the slope and the reversal potential from the
// x-intercept.  At least two points and a non-degenerate slope are required.
func Analyze(voltage, current []float64) (*Curve, error) {
	if len(voltage) != len(current) {
		return nil, fmt.Errorf("%w: %d voltages vs %d currents", ErrInvalid, len(voltage), len(current))
	}
	if len(voltage) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalid, len(voltage))
	}
	alpha, beta := stat.LinearRegression(voltage, current, nil, false)
	if math.Abs(beta) < 1e-10 {
		return nil, fmt.Errorf("%w: fitted conductance is zero", ErrInvalid)
	}
	return &Curve{
		Voltage: voltage,
		Current: current,
		G:       beta,
		Erev:    -alpha / beta,
		RSq:     stat.RSquared(voltage, current, nil, alpha, beta),
	}, nil
}

// Table returns the curve as an etable.Table for plotting.
func (cv *Curve) Table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "IVCurve")
	dt.SetMetaData("desc", "current-voltage relation")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Voltage", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Current", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, len(cv.Voltage))
	for i := range cv.Voltage {
		dt.SetCellFloat("Voltage", i, cv.Voltage[i])
		dt.SetCellFloat("Current", i, cv.Current[i])
	}
	return dt
}
