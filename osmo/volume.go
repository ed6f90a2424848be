// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package osmo

import (
	"fmt"
	"math"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/floats"
)

// VolParams parameterize equilibrium cell-volume prediction by the
// Boyle-van't Hoff relation: V = b + (1-b) * (Osm0 / Osm), for a cell
// with non-osmotic volume fraction b, normalized to V0 = 1.
type VolParams struct {
	Osm0 float64 `def:"285" min:"1" max:"2000" desc:"initial medium osmolarity (mOsm/L)"`
	V0   float64 `def:"1" min:"0.01" max:"1000" desc:"initial cell volume (relative units)"`
	B    float64 `def:"0.4" min:"0" max:"0.9" desc:"non-osmotic volume fraction"`
	Tau  float64 `def:"10" desc:"time constant of the exponential approach to equilibrium"`
	NPts int     `def:"50" desc:"points in the time-course curve"`
}

func (vp *VolParams) Defaults() {
	vp.Osm0 = PlasmaOsm
	vp.V0 = 1
	vp.B = 0.4
	vp.Tau = 10
	vp.NPts = 50
}

// VolResult is an equilibrium volume prediction with the time course of
// the approach to it.
type VolResult struct {
	VFinal    float64   `desc:"equilibrium volume"`
	VolChgPct float64   `desc:"volume change from initial (percent)"`
	Ton       Tonicity  `desc:"tonicity of the final medium"`
	Response  string    `desc:"predicted cell response"`
	Time      []float64 `desc:"time points of the approach curve"`
	Volume    []float64 `desc:"volume at each time point"`
}

// FinalVolume predicts the equilibrium cell volume after the medium
// osmolarity changes to osm, with an exponential time course toward it.
func FinalVolume(vp *VolParams, osm float64) (*VolResult, error) {
	if osm <= 0 {
		return nil, fmt.Errorf("%w: final osmolarity must be positive, got %v", ErrInvalid, osm)
	}
	vf := vp.B*vp.V0 + vp.V0*(1-vp.B)*(vp.Osm0/osm)
	rs := &VolResult{
		VFinal:    vf,
		VolChgPct: (vf/vp.V0 - 1) * 100,
		Ton:       Classify(osm).Ton,
	}
	rs.Response = volResponse(rs.VolChgPct)
	rs.Time = make([]float64, vp.NPts)
	floats.Span(rs.Time, 0, 5*vp.Tau)
	rs.Volume = make([]float64, vp.NPts)
	for i, t := range rs.Time {
		rs.Volume[i] = vf + (vp.V0-vf)*math.Exp(-t/vp.Tau)
	}
	return rs, nil
}

// volResponse uses the wider equilibrium-volume thresholds, where large
// swelling means lysis rather than just risk of it.
func volResponse(volChgPct float64) string {
	switch {
	case volChgPct > 50:
		return "cell lysis"
	case volChgPct > 20:
		return "severe swelling"
	case volChgPct > 5:
		return "moderate swelling"
	case volChgPct < -30:
		return "severe crenation"
	case volChgPct < -15:
		return "moderate crenation"
	case volChgPct < -5:
		return "mild crenation"
	}
	return "equilibrium"
}

// BvHCurve generates the full Boyle-van't Hoff curve of equilibrium
// volume against medium osmolarity over [osmMin, osmMax].
func BvHCurve(vp *VolParams, osmMin, osmMax float64, n int) (osm, vol []float64, err error) {
	if osmMin <= 0 || osmMax <= osmMin || n < 2 {
		return nil, nil, fmt.Errorf("%w: bad curve range [%v, %v] with %d points", ErrInvalid, osmMin, osmMax, n)
	}
	osm = make([]float64, n)
	floats.Span(osm, osmMin, osmMax)
	vol = make([]float64, n)
	for i, o := range osm {
		vol[i] = vp.B + (1-vp.B)*(vp.Osm0/o)
	}
	return osm, vol, nil
}

// Table returns the volume time course as an etable.Table for plotting.
func (rs *VolResult) Table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "CellVolume")
	dt.SetMetaData("desc", "cell volume time course")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Volume", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, len(rs.Time))
	for i := range rs.Time {
		dt.SetCellFloat("Time", i, rs.Time[i])
		dt.SetCellFloat("Volume", i, rs.Volume[i])
	}
	return dt
}
