// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package osmo computes solution osmolarity and its consequences for cell
volume.  Osmolarity is concentration times the dissociation coefficient
(particles per molecule) times the osmotic coefficient (real-solution
correction): Osm = C * i * phi, in mOsm/L for C in mM.  Tonicity is
classified relative to plasma, and equilibrium volume follows the
Boyle-van't Hoff relation with a non-osmotic fraction.
*/
package osmo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned for out-of-range concentrations or osmolarities.
var ErrInvalid = errors.New("osmo: invalid parameter")

// Plasma reference osmolarity (mOsm/L) and the band treated as isotonic.
const (
	PlasmaOsm = 285
	IsoMin    = 275
	IsoMax    = 295
)

// Solute holds the coefficients for one solute species.
type Solute struct {
	Name string  `desc:"solute name"`
	I    float64 `desc:"dissociation coefficient: particles per molecule"`
	Phi  float64 `desc:"osmotic coefficient: real-solution correction"`
}

// Common lists the solutes with tabulated coefficients.
var Common = []Solute{
	{"Glucose", 1, 1.01},
	{"Urea", 1, 1.02},
	{"Sucrose", 1, 1.01},
	{"NaCl", 2, 0.93},
	{"KCl", 2, 0.92},
	{"CaCl2", 3, 0.86},
	{"MgCl2", 3, 0.89},
	{"Na2SO4", 3, 1},
	{"NaHCO3", 2, 1},
}

// Lookup returns the tabulated solute by name (case-insensitive).
func Lookup(name string) (Solute, error) {
	for _, sl := range Common {
		if strings.EqualFold(sl.Name, name) {
			return sl, nil
		}
	}
	return Solute{}, fmt.Errorf("%w: unknown solute %q", ErrInvalid, name)
}

// Result is a computed osmolarity with its tonicity classification and
// the predicted cell response.
type Result struct {
	Osm       float64  `desc:"osmolarity (mOsm/L)"`
	Ton       Tonicity `desc:"tonicity relative to plasma"`
	Response  string   `desc:"predicted cell response"`
	VolChgPct float64  `desc:"approximate equilibrium volume change (percent)"`
}

// Osmolarity computes Osm = conc * i * phi for a concentration in mM,
// classifying the result against plasma.
func Osmolarity(concMM, i, phi float64) (*Result, error) {
	if concMM < 0 || concMM > 10000 {
		return nil, fmt.Errorf("%w: concentration %v mM out of range [0, 10000]", ErrInvalid, concMM)
	}
	if i < 1 || i > 5 {
		return nil, fmt.Errorf("%w: dissociation coefficient %v out of range [1, 5]", ErrInvalid, i)
	}
	if phi < 0.5 || phi > 1.5 {
		return nil, fmt.Errorf("%w: osmotic coefficient %v out of range [0.5, 1.5]", ErrInvalid, phi)
	}
	osm := concMM * i * phi
	rs := &Result{Osm: osm, Ton: Classify(osm).Ton}
	if osm > 0 {
		rs.VolChgPct = (PlasmaOsm/osm - 1) * 100
	}
	rs.Response = cellResponse(rs.VolChgPct)
	return rs, nil
}

// SoluteOsmolarity computes the osmolarity of a named common solute,
// filling the coefficients from the table.
func SoluteOsmolarity(name string, concMM float64) (*Result, error) {
	sl, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return Osmolarity(concMM, sl.I, sl.Phi)
}

// cellResponse maps a relative volume change to the qualitative response
// of a cell placed in the solution.
func cellResponse(volChgPct float64) string {
	switch {
	case volChgPct > 10:
		return "severe swelling (lysis risk)"
	case volChgPct > 5:
		return "moderate swelling"
	case volChgPct > 2:
		return "mild swelling"
	case volChgPct < -10:
		return "severe crenation"
	case volChgPct < -5:
		return "moderate crenation"
	case volChgPct < -2:
		return "mild crenation"
	}
	return "equilibrium (stable volume)"
}

// Interpretation explains the classification in plain terms.
func (rs *Result) Interpretation() string {
	switch rs.Ton {
	case Hypotonic:
		return fmt.Sprintf("At %.1f mOsm/L the solution is hypotonic relative to plasma (%d mOsm/L): water enters the cell and it swells.", rs.Osm, PlasmaOsm)
	case Hypertonic:
		return fmt.Sprintf("At %.1f mOsm/L the solution is hypertonic relative to plasma (%d mOsm/L): water leaves the cell and it shrinks.", rs.Osm, PlasmaOsm)
	}
	return fmt.Sprintf("At %.1f mOsm/L the solution is isotonic with plasma (%d mOsm/L): no net water movement, volume is stable.", rs.Osm, PlasmaOsm)
}
