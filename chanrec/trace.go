// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chanrec

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Synth renders the two current trace representations from one set of
// scaled open intervals, so both observables always derive from the same
// gating realization.
type Synth struct {
	Trace TraceParams `view:"inline" desc:"trace synthesis parameters"`
}

// Scale maps normalized [0, 1] intervals into absolute milliseconds within
// [0, dur], inserting an idle margin at both ends and reserving a stop
// margin.  Slow (non-fast) kinetics additionally delay onset by the stop
// margin, modeling the late activation of K+ channels after a stimulus.
func (sy *Synth) Scale(ivs []Interval, dur float64, fast bool) []Interval {
	idle := dur / 20
	stop := dur / 5
	usable := dur - 2*idle - stop
	if !fast {
		idle += stop
	}
	out := make([]Interval, len(ivs))
	for i, iv := range ivs {
		out[i] = Interval{idle + iv.Start*usable, idle + iv.End*usable}
	}
	return out
}

// Rect builds the rectangular step trace: four points per opening forming
// an instantaneous rise and fall, padded to span the full recording.
// With no openings the trace is a flat zero line over [0, dur].
func (sy *Synth) Rect(ivs []Interval, cur, dur float64) RectTrace {
	if len(ivs) == 0 {
		return RectTrace{Time: []float64{0, dur}, Current: []float64{0, 0}}
	}
	tm := make([]float64, 0, 4*len(ivs)+2)
	cr := make([]float64, 0, 4*len(ivs)+2)
	for _, iv := range ivs {
		tm = append(tm, iv.Start, iv.Start, iv.End, iv.End)
		cr = append(cr, 0, cur, cur, 0)
	}
	if tm[0] > 0 {
		tm = append([]float64{0}, tm...)
		cr = append([]float64{0}, cr...)
	}
	if tm[len(tm)-1] < dur {
		tm = append(tm, dur)
		cr = append(cr, 0)
	}
	return RectTrace{Time: tm, Current: cr}
}

// Cont builds the continuous trace: Res uniform samples over [0, dur].
// During each opening the current rises as I*(1 - exp(-t/TauAct)); fast
// (Na+) channels are additionally multiplied by a delayed inactivation
// decay starting one TauAct after opening.  After closing, the value at
// the closing time decays over a DeactWin*TauDeact window.  Contributions
// from overlapping windows accumulate additively, and a moving-average
// pass removes the discontinuities at interval boundaries.
func (sy *Synth) Cont(ivs []Interval, cur, dur float64, kin KineticParams, fast bool) ContTrace {
	tp := &sy.Trace
	tm := make([]float64, tp.Res)
	floats.Span(tm, 0, dur)
	cr := make([]float64, tp.Res)
	ct := ContTrace{Time: tm, Current: cr, Kin: kin}
	if len(ivs) == 0 || math.Abs(cur) < tp.MinCur {
		return ct // flat zero trace, time constants still reported
	}
	step := dur / float64(tp.Res-1)
	for _, iv := range ivs {
		i0 := sampIdx(iv.Start, step, tp.Res)
		i1 := sampIdx(iv.End, step, tp.Res)
		for i := i0; i < i1; i++ {
			cr[i] += openCur(tm[i]-iv.Start, cur, kin, fast)
		}
		// decay from the value the kinetics reached at closing time
		vClose := openCur(iv.Dur(), cur, kin, fast)
		iEnd := sampIdx(iv.End+sy.Trace.DeactWin*kin.TauDeact, step, tp.Res)
		for i := i1; i < iEnd; i++ {
			cr[i] += vClose * math.Exp(-(tm[i]-iv.End)/kin.TauDeact)
		}
	}
	sy.smooth(cr)
	return ct
}

// openCur is the shaped current dt ms after opening while still open.
func openCur(dt, cur float64, kin KineticParams, fast bool) float64 {
	v := cur * (1 - math.Exp(-dt/kin.TauAct))
	if fast {
		if d := dt - kin.TauAct; d > 0 { // inactivation onset is delayed by one TauAct
			v *= math.Exp(-d / kin.TauInact)
		}
	}
	return v
}

// sampIdx returns the sample index for time t, clipped to [0, res].
func sampIdx(t, step float64, res int) int {
	i := int(math.Ceil(t / step))
	if i < 0 {
		return 0
	}
	if i > res {
		return res
	}
	return i
}

// smooth applies a centered moving average of width SmoothWin in place.
func (sy *Synth) smooth(cr []float64) {
	win := sy.Trace.SmoothWin()
	half := win / 2
	src := make([]float64, len(cr))
	copy(src, cr)
	for i := range cr {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(src) {
			hi = len(src)
		}
		cr[i] = stat.Mean(src[lo:hi], nil)
	}
}
