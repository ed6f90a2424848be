// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chanrec

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// Simulation failure classes.  Test with errors.Is -- all validation and
// sampling failures returned from Simulate wrap one of these.
var (
	// ErrInvalidChan is returned for a species outside {Sodium, Potassium},
	// before any sampling.
	ErrInvalidChan = errors.New("chanrec: invalid channel species")

	// ErrInvalidParam is returned for a non-positive conductance or a
	// duration outside the documented domain.  No partial result is produced.
	ErrInvalidParam = errors.New("chanrec: invalid parameter")

	// ErrNonConvergence is returned when the gating rejection loop exhausts
	// its bounded retry count without landing in the acceptance band.
	ErrNonConvergence = errors.New("chanrec: gating sampler did not converge")
)

// Sim runs single-channel recording simulations.  One Sim is a plain value
// plus its random source: calls are synchronous, share no mutable state
// across results, and each returns a freshly allocated Recording owned by
// the caller.
type Sim struct {
	Params Params     `view:"inline" desc:"all simulation parameters"`
	Gen    *Generator `desc:"gating process generator"`
	Synth  Synth      `view:"inline" desc:"current trace synthesizer"`
}

// New returns a Sim with default parameters drawing randomness from src.
// A nil src is seeded from the clock; pass rand.NewSource(seed) for
// reproducible recordings.
func New(src rand.Source) *Sim {
	sm := &Sim{}
	sm.Params.Defaults()
	sm.Gen = NewGenerator(sm.Params.Gate, src)
	sm.Synth.Trace = sm.Params.Trace
	return sm
}

// Simulate validates the request, generates the gating realization, and
// synthesizes both trace representations.  Degenerate-but-valid inputs
// (hyperpolarizing potential, zero driving force) yield a zero-current
// Recording with empty intervals and a flat trace -- check Recording.Open
// to distinguish that state; errors are returned only for invalid requests
// and sampling non-convergence.
func (sm *Sim) Simulate(rq Request) (*Recording, error) {
	if rq.Chan < 0 || rq.Chan >= ChanN {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChan, rq.Chan)
	}
	if rq.G <= 0 {
		return nil, fmt.Errorf("%w: conductance must be > 0 pS, got %g", ErrInvalidParam, rq.G)
	}
	dom := sm.Params.DurDom
	if rq.Dur < dom.Min || rq.Dur > dom.Max {
		return nil, fmt.Errorf("%w: duration %g ms outside [%g, %g]", ErrInvalidParam, rq.Dur, dom.Min, dom.Max)
	}

	ivs, realProb, cur, err := sm.Gen.Gen(rq.Chan, rq.Vm, rq.G, rq.Eeq)
	if err != nil {
		return nil, err
	}

	rc := &Recording{
		Chan:     rq.Chan,
		Vm:       rq.Vm,
		VRest:    sm.Gen.Gate.VRest,
		Eeq:      rq.Eeq,
		G:        rq.G,
		Dur:      rq.Dur,
		Current:  cur,
		Fast:     rq.Chan.Fast(),
		Gating:   ivs,
		OpenProb: realProb,
	}
	rc.Scaled = sm.Synth.Scale(ivs, rq.Dur, rc.Fast)
	rc.NOpen = len(rc.Scaled)
	rc.OpenTime = OpenDur(rc.Scaled)

	kin := sm.Params.Trace.Kin(rq.Chan)
	rc.Rect = sm.Synth.Rect(rc.Scaled, cur, rq.Dur)
	rc.Cont = sm.Synth.Cont(rc.Scaled, cur, rq.Dur, kin, rc.Fast)
	return rc, nil
}

func randSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
