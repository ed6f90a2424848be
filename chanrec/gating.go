// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chanrec

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Generator produces the stochastic gating realization: a sorted list of
// non-overlapping open intervals on normalized [0, 1] time whose occupied
// fraction lands in the acceptance band [5p/6, p] around the target open
// probability p.  Sampling runs on a stretched axis [0, Rate] and is
// rescaled during post-processing.
type Generator struct {
	Gate GateParams `view:"inline" desc:"gating process parameters"`
	Rnd  *rand.Rand `view:"-" desc:"random source for dwell sampling -- fix the seed for reproducible realizations"`
}

// NewGenerator returns a Generator with the given parameters, drawing from
// src.  A nil src is seeded from the clock.
func NewGenerator(gp GateParams, src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(randSeed())
	}
	return &Generator{Gate: gp, Rnd: rand.New(src)}
}

// uniform draws from U(lo, hi).  Inverted bounds draw from U(hi, lo),
// which the dwell sampling relies on for small p where p/2 < MinDwell.
func (gg *Generator) uniform(lo, hi float64) float64 {
	return distuv.Uniform{Min: lo, Max: hi, Src: gg.Rnd}.Rand()
}

// Gen generates the gating intervals and unit current for the given species,
// membrane potential, conductance, and equilibrium potential.  Degenerate
// inputs (Vm at or below rest; Na+ with no net driving force) return empty
// intervals and zero current without sampling.  realProb is the realized
// open fraction of the accepted attempt, before post-processing.
func (gg *Generator) Gen(ch Chan, vm, g, eeq float64) (ivs []Interval, realProb, current float64, err error) {
	gp := &gg.Gate
	if vm <= gp.VRest { // hyperpolarizing: voltage gate stays shut
		return nil, 0, 0, nil
	}
	if ch == Sodium && math.Abs(vm-eeq) < gp.ZeroTol {
		// gate opens but there is no net driving force
		return nil, 0, 0, nil
	}
	current = g * (vm - eeq)
	p := gp.OpenProb(vm)
	if p == 0 {
		return nil, 0, current, nil
	}
	data, realProb, err := gg.sample(ch, p)
	if err != nil {
		return nil, 0, 0, err
	}
	return gg.postProcess(data), realProb, current, nil
}

// sample runs the bounded accept / reject loop on the stretched [0, Rate]
// axis, returning the accepted intervals sorted by start time.
func (gg *Generator) sample(ch Chan, p float64) ([]Interval, float64, error) {
	gp := &gg.Gate
	var data []Interval
	for try := 0; try < gp.MaxTries; try++ {
		data = data[:0]
		x0 := 0.0
		last := gp.Rate
		switch ch {
		case Sodium: // fast channels open promptly: seed an opening at 0
			x0 = gg.uniform(gp.MinDwell, p/2)
			data = append(data, Interval{0, x0})
		case Potassium: // slow channels stay open toward the end of the window
			last -= gg.uniform(gp.MinDwell, p/2)
			data = append(data, Interval{last, gp.Rate})
		}
		for x0 < last {
			if gg.uniform(0, 1) < p {
				x1 := x0 + gg.uniform(gp.MinDwell, p/2)
				if x1 > last {
					x1 = last
				}
				data = append(data, Interval{x0, x1})
				x0 = x1
			} else {
				x0 += gg.uniform(gp.MinDwell, (1-p)/2)
			}
		}
		realProb := OpenDur(data) / gp.Rate
		if realProb >= 5*p/6 && realProb <= p {
			sort.Slice(data, func(i, j int) bool { return data[i].Start < data[j].Start })
			return data, realProb, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: no attempt landed in [%g, %g] after %d tries", ErrNonConvergence, 5*p/6, p, gp.MaxTries)
}

// postProcess rescales the stretched intervals onto [0, 1], merges
// overlapping or touching intervals, and splits any opening longer than
// MaxDwell by truncating it and reinserting the remainder after a gap,
// repeatedly while the remainder itself is still too long.  One forward
// pass over the sorted input producing a new slice.
func (gg *Generator) postProcess(data []Interval) []Interval {
	gp := &gg.Gate
	out := make([]Interval, 0, len(data))
	var prev Interval
	for _, iv := range data {
		t0 := iv.Start / gp.Rate
		t1 := iv.End / gp.Rate
		if t0 <= prev.End {
			prev.End = t1
		} else {
			if prev != (Interval{}) {
				out = append(out, prev)
			}
			prev = Interval{t0, t1}
		}
		for prev.Dur() > gp.MaxDwell {
			cut := prev.Start + gg.uniform(0.025, gp.MaxDwell)
			rest := (3*cut + prev.End) / 4 // gap before the remainder resumes
			out = append(out, Interval{prev.Start, cut})
			prev = Interval{rest, prev.End}
		}
	}
	if prev != (Interval{}) {
		out = append(out, prev)
	}
	return out
}
