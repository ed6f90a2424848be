// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chanrec

import (
	"math"
	"testing"
)

func newSynth() *Synth {
	sy := &Synth{}
	sy.Trace.Defaults()
	return sy
}

func TestScale(t *testing.T) {
	sy := newSynth()
	ivs := []Interval{{0, 0.5}, {0.8, 1}}

	// fast: idle = 1, usable = 20 - 2*1 - 4 = 14
	fast := sy.Scale(ivs, 20, true)
	corFast := []Interval{{1, 8}, {12.2, 15}}
	for i := range fast {
		if math.Abs(fast[i].Start-corFast[i].Start) > difTol || math.Abs(fast[i].End-corFast[i].End) > difTol {
			t.Errorf("fast scale err: idx: %v, got: %v, cor: %v\n", i, fast[i], corFast[i])
		}
	}

	// slow: idle = 1 + 4 = 5, same usable
	slow := sy.Scale(ivs, 20, false)
	corSlow := []Interval{{5, 12}, {16.2, 19}}
	for i := range slow {
		if math.Abs(slow[i].Start-corSlow[i].Start) > difTol || math.Abs(slow[i].End-corSlow[i].End) > difTol {
			t.Errorf("slow scale err: idx: %v, got: %v, cor: %v\n", i, slow[i], corSlow[i])
		}
	}
}

// rectIntegral integrates the step trace by trapezoid -- vertical segments
// contribute nothing, so this recovers sum(current * dt) over the steps.
func rectIntegral(tr RectTrace) float64 {
	tot := 0.0
	for i := 1; i < len(tr.Time); i++ {
		tot += 0.5 * (tr.Current[i] + tr.Current[i-1]) * (tr.Time[i] - tr.Time[i-1])
	}
	return tot
}

func TestRect(t *testing.T) {
	sy := newSynth()
	ivs := []Interval{{2, 5}, {9, 11}}
	cur := -3.2
	tr := sy.Rect(ivs, cur, 20)

	if tr.Time[0] != 0 || tr.Current[0] != 0 {
		t.Errorf("rect trace does not start at (0,0): (%v,%v)\n", tr.Time[0], tr.Current[0])
	}
	n := len(tr.Time)
	if tr.Time[n-1] != 20 || tr.Current[n-1] != 0 {
		t.Errorf("rect trace does not end at (20,0): (%v,%v)\n", tr.Time[n-1], tr.Current[n-1])
	}

	intg := rectIntegral(tr)
	cor := cur * OpenDur(ivs)
	if math.Abs(intg-cor) > difTol {
		t.Errorf("rect integral: %v, cor: %v\n", intg, cor)
	}
}

func TestRectEmpty(t *testing.T) {
	sy := newSynth()
	tr := sy.Rect(nil, 1600, 20)
	if len(tr.Time) != 2 || tr.Time[0] != 0 || tr.Time[1] != 20 || tr.Current[0] != 0 || tr.Current[1] != 0 {
		t.Errorf("empty rect trace not flat zero line: %v, %v\n", tr.Time, tr.Current)
	}
}

func TestContBound(t *testing.T) {
	sy := newSynth()
	cur := 1600.0
	kin := sy.Trace.Kin(Potassium)
	ct := sy.Cont([]Interval{{5, 9}}, cur, 20, kin, false)

	if len(ct.Time) != sy.Trace.Res || len(ct.Current) != sy.Trace.Res {
		t.Fatalf("cont trace length: %v, %v\n", len(ct.Time), len(ct.Current))
	}
	for i, v := range ct.Current {
		if v < -difTol || v > cur+difTol {
			t.Errorf("cont sample %v out of [0, I]: %v\n", i, v)
		}
	}
	// current actually flows during the opening
	step := 20.0 / float64(sy.Trace.Res-1)
	mid := ct.Current[int(8.0/step)]
	if mid < 0.5*cur {
		t.Errorf("cont trace did not activate: sample at 8 ms = %v\n", mid)
	}
}

func TestContInactivation(t *testing.T) {
	sy := newSynth()
	cur := 100.0
	kin := sy.Trace.Kin(Sodium)
	ct := sy.Cont([]Interval{{2, 12}}, cur, 20, kin, true)

	// with a long opening, Na+ inactivation decays the current well below
	// the peak before the channel closes
	peak := 0.0
	for _, v := range ct.Current {
		if v > peak {
			peak = v
		}
	}
	step := 20.0 / float64(sy.Trace.Res-1)
	late := ct.Current[int(11.5/step)]
	if peak < 0.5*cur {
		t.Errorf("Na+ trace never activated: peak %v\n", peak)
	}
	if late > 0.25*peak {
		t.Errorf("Na+ trace did not inactivate: late sample %v vs peak %v\n", late, peak)
	}
}

func TestContDegenerate(t *testing.T) {
	sy := newSynth()
	kin := sy.Trace.Kin(Sodium)

	for _, ct := range []ContTrace{
		sy.Cont(nil, 1600, 20, kin, true),
		sy.Cont([]Interval{{5, 9}}, 0.005, 20, kin, true), // below MinCur
	} {
		for i, v := range ct.Current {
			if v != 0 {
				t.Errorf("degenerate cont trace non-zero at %v: %v\n", i, v)
			}
		}
		if ct.Kin != kin {
			t.Errorf("degenerate cont trace dropped time constants: %v != %v\n", ct.Kin, kin)
		}
	}
}

func TestKineticDefaults(t *testing.T) {
	tp := TraceParams{}
	tp.Defaults()
	if tp.Na.TauAct != 0.3 || tp.Na.TauInact != 0.8 || tp.Na.TauDeact != 0.2 {
		t.Errorf("Na kinetics: %v\n", tp.Na)
	}
	if tp.K.TauAct != 1.5 || tp.K.TauInact != 8.0 || tp.K.TauDeact != 0.2 {
		t.Errorf("K kinetics: %v\n", tp.K)
	}
	if tp.SmoothWin() != 5 {
		t.Errorf("smoothing window: %v != 5\n", tp.SmoothWin())
	}
}
