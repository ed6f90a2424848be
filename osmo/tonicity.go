// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package osmo

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// Tonicity classifies a solution's osmolarity relative to plasma.
type Tonicity int

//go:generate stringer -type=Tonicity

var KiT_Tonicity = kit.Enums.AddEnum(TonicityN, kit.NotBitFlag, nil)

func (ev Tonicity) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Tonicity) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Hypotonic solutions are below the isotonic band: cells swell.
	Hypotonic Tonicity = iota

	// Isotonic solutions match plasma: cell volume is stable.
	Isotonic

	// Hypertonic solutions are above the isotonic band: cells shrink.
	Hypertonic

	TonicityN
)

// Severity thresholds for tonicity sub-classification (mOsm/L).
const (
	HypoSevere  = 200
	HypoMod     = 250
	HyperMod    = 350
	HyperSevere = 400
)

// Classification is a tonicity classification with detail.
type Classification struct {
	Osm      float64  `desc:"osmolarity (mOsm/L)"`
	Ton      Tonicity `desc:"tonicity class"`
	Relative float64  `desc:"percent deviation from plasma osmolarity"`
	Detail   string   `desc:"severity description"`
}

// Classify classifies an osmolarity against the plasma reference band.
func Classify(osm float64) Classification {
	cl := Classification{Osm: osm, Relative: (osm - PlasmaOsm) / PlasmaOsm * 100}
	switch {
	case osm < HypoSevere:
		cl.Ton = Hypotonic
		cl.Detail = "Severely hypotonic: high risk of cell lysis"
	case osm < HypoMod:
		cl.Ton = Hypotonic
		cl.Detail = "Moderately hypotonic: significant cell swelling"
	case osm < IsoMin:
		cl.Ton = Hypotonic
		cl.Detail = "Slightly hypotonic: mild cell swelling"
	case osm <= IsoMax:
		cl.Ton = Isotonic
		cl.Detail = "Isotonic: cell volume stable"
	case osm < HyperMod:
		cl.Ton = Hypertonic
		cl.Detail = "Slightly hypertonic: mild crenation"
	case osm < HyperSevere:
		cl.Ton = Hypertonic
		cl.Detail = "Moderately hypertonic: significant crenation"
	default:
		cl.Ton = Hypertonic
		cl.Detail = "Severely hypertonic: severe crenation"
	}
	return cl
}

// Example is a clinically common solution with its classification.
type Example struct {
	Name string         `desc:"solution name"`
	Osm  float64        `desc:"osmolarity (mOsm/L)"`
	Use  string         `desc:"typical clinical use"`
	Cl   Classification `desc:"tonicity classification"`
}

// ClinicalExamples returns common intravenous solutions classified
// against plasma.
func ClinicalExamples() []Example {
	exs := []Example{
		{Name: "Normal saline 0.9% (NaCl)", Osm: 308, Use: "volume replacement, drug dilution"},
		{Name: "Half-normal saline 0.45%", Osm: 154, Use: "hypernatremia, hypertonic dehydration"},
		{Name: "Dextrose 5%", Osm: 278, Use: "caloric support, drug vehicle"},
		{Name: "Lactated Ringer's", Osm: 273, Use: "volume replacement in surgery"},
		{Name: "Mannitol 20%", Osm: 1098, Use: "cerebral edema, osmotic diuretic"},
	}
	for i := range exs {
		exs[i].Cl = Classify(exs[i].Osm)
	}
	return exs
}

func (ex *Example) String() string {
	return fmt.Sprintf("%s: %.0f mOsm/L (%v)", ex.Name, ex.Osm, ex.Cl.Ton)
}
