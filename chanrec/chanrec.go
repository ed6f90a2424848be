// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chanrec simulates single-channel (patch clamp) current recordings
for voltage-gated ion channels.

A recording is produced in two stages that always operate on the same
gating realization: a stochastic generator samples a sequence of
non-overlapping open intervals on normalized time [0, 1] whose occupied
fraction approximates the voltage-derived open probability, and a trace
synthesizer maps those intervals into absolute recording time and renders
two observable representations of the unit current I = g * (Vm - Eeq):
an idealized rectangular (instantaneous switching) trace, and a continuous
trace where each opening and closing is shaped by ion-specific exponential
activation, inactivation (Na only), and deactivation time constants.

Sodium channels have fast kinetics and open promptly after the stimulus;
potassium channels are slow and open late, staying open toward the end of
the recording window.  Hyperpolarizing potentials (Vm at or below rest)
never open the gate, and a sodium channel sitting at its own equilibrium
potential carries no net current even though the gate nominally opens --
both are valid zero-current recordings, not errors.
*/
package chanrec

import (
	"github.com/emer/etable/minmax"
	"github.com/goki/ki/kit"
)

// Chan is the ion channel species being recorded.
type Chan int

//go:generate stringer -type=Chan

var KiT_Chan = kit.Enums.AddEnum(ChanN, kit.NotBitFlag, nil)

func (ev Chan) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Chan) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The channel species
const (
	// Sodium is a fast voltage-gated Na+ channel with activation and inactivation
	Sodium Chan = iota

	// Potassium is a slow voltage-gated K+ delayed-rectifier channel, activation only
	Potassium

	ChanN
)

// Fast returns true for species with fast kinetics (Na+): prompt activation
// followed by inactivation.  Slow species (K+) activate late and stay open.
func (ev Chan) Fast() bool {
	return ev == Sodium
}

// Interval is one open dwell: a maximal span during which the channel
// conducts.  Units are normalized [0, 1] time out of the gating generator,
// milliseconds after scaling.
type Interval struct {
	Start float64 `desc:"time the channel opens"`
	End   float64 `desc:"time the channel closes -- always > Start"`
}

// Dur returns the dwell duration End - Start.
func (iv Interval) Dur() float64 {
	return iv.End - iv.Start
}

// OpenDur returns the summed duration of all intervals.
func OpenDur(ivs []Interval) float64 {
	tot := 0.0
	for _, iv := range ivs {
		tot += iv.Dur()
	}
	return tot
}

// GateParams parameterize the stochastic gating process: the opening
// probability curve and the constrained rejection sampling of dwell times.
type GateParams struct {
	VRest    float64 `def:"-70" desc:"resting membrane potential (mV) -- the gate never opens at or below this"`
	KRef     float64 `def:"20" desc:"voltage-scaling anchor (mV denominator term) in the opening probability curve -- numerically the same constant as the default conductance, shared identically by both species"`
	PMax     float64 `def:"0.75" desc:"saturation ceiling for the opening probability"`
	ZeroTol  float64 `def:"0.1" desc:"driving force magnitude (mV) below which a Na+ channel at its own equilibrium carries no net current"`
	Rate     float64 `def:"2" desc:"stretched sampling axis length -- dwells are sampled on [0, Rate] then rescaled to [0, 1]"`
	MaxDwell float64 `def:"0.4" desc:"maximum open dwell on the normalized [0,1] scale -- longer openings are split with a reinserted gap"`
	MaxTries int     `def:"10000" desc:"bound on rejection sampling attempts before reporting non-convergence"`

	MinDwell float64 `view:"-" json:"-" xml:"-" desc:"minimum dwell floor = 0.025 * Rate"`
}

func (gp *GateParams) Update() {
	gp.MinDwell = 0.025 * gp.Rate
}

func (gp *GateParams) Defaults() {
	gp.VRest = -70
	gp.KRef = 20
	gp.PMax = 0.75
	gp.ZeroTol = 0.1
	gp.Rate = 2
	gp.MaxDwell = 0.4
	gp.MaxTries = 10000
	gp.Update()
}

// OpenProb returns the target open probability for membrane potential vm (mV):
// monotonically increasing with depolarization above VRest, saturating at PMax.
func (gp *GateParams) OpenProb(vm float64) float64 {
	p := 3 * (vm - gp.VRest) / (4 * (gp.KRef - gp.VRest))
	if p < 0 {
		return 0
	}
	if p > gp.PMax {
		return gp.PMax
	}
	return p
}

// KineticParams are the exponential time constants (ms) shaping the
// continuous current trace for one species.
type KineticParams struct {
	TauAct   float64 `desc:"activation time constant -- current rises as 1 - exp(-t/TauAct) after opening"`
	TauInact float64 `desc:"inactivation time constant -- Na+ current decays after one TauAct has elapsed; unused for the decay shape in K+"`
	TauDeact float64 `def:"0.2" desc:"deactivation time constant -- decay after the channel closes"`
}

// ChanDefaults sets the species-specific time constants.
func (kp *KineticParams) ChanDefaults(ch Chan) {
	switch ch {
	case Sodium:
		kp.TauAct = 0.3
		kp.TauInact = 0.8
	case Potassium:
		kp.TauAct = 1.5
		kp.TauInact = 8.0
	}
	kp.TauDeact = 0.2
}

// TraceParams parameterize the synthesis of the rectangular and
// continuous current traces from scaled open intervals.
type TraceParams struct {
	Res        int           `def:"1000" desc:"number of uniform samples in the continuous trace"`
	MinCur     float64       `def:"0.01" desc:"unit current magnitude (pA) below which the continuous trace is rendered flat"`
	DeactWin   float64       `def:"5" desc:"length of the post-closing decay window, in multiples of TauDeact"`
	SmoothDen  int           `def:"200" desc:"smoothing window = Res / SmoothDen samples, minimum 3"`
	Na         KineticParams `view:"inline" desc:"Na+ (fast) kinetics"`
	K          KineticParams `view:"inline" desc:"K+ (slow) kinetics"`
}

func (tp *TraceParams) Update() {
}

func (tp *TraceParams) Defaults() {
	tp.Res = 1000
	tp.MinCur = 0.01
	tp.DeactWin = 5
	tp.SmoothDen = 200
	tp.Na.ChanDefaults(Sodium)
	tp.K.ChanDefaults(Potassium)
}

// Kin returns the time constants for the given species.
func (tp *TraceParams) Kin(ch Chan) KineticParams {
	if ch == Sodium {
		return tp.Na
	}
	return tp.K
}

// SmoothWin returns the moving-average window in samples.
func (tp *TraceParams) SmoothWin() int {
	win := tp.Res / tp.SmoothDen
	if win < 3 {
		win = 3
	}
	return win
}

// Params are all the parameters for single-channel recording simulation.
// They are plain values with no shared state: copy freely, one per caller.
type Params struct {
	Gbar   float64    `def:"20" min:"0" desc:"default unit conductance (pS)"`
	ENa    float64    `def:"50" desc:"default Na+ equilibrium potential (mV)"`
	EK     float64    `def:"-80" desc:"default K+ equilibrium potential (mV)"`
	DefDur float64    `def:"20" desc:"default recording duration (ms)"`
	DurDom minmax.F64 `desc:"allowed recording duration domain (ms)"`
	Gate   GateParams `view:"inline" desc:"gating process parameters"`
	Trace  TraceParams `view:"inline" desc:"trace synthesis parameters"`
}

func (pp *Params) Update() {
	pp.Gate.Update()
	pp.Trace.Update()
}

func (pp *Params) Defaults() {
	pp.Gbar = 20
	pp.ENa = 50
	pp.EK = -80
	pp.DefDur = 20
	pp.DurDom.Set(1, 100)
	pp.Gate.Defaults()
	pp.Trace.Defaults()
}

// Eeq returns the default equilibrium potential for the given species.
func (pp *Params) Eeq(ch Chan) float64 {
	if ch == Sodium {
		return pp.ENa
	}
	return pp.EK
}

// Request is one immutable simulation request.  Construct with NewRequest
// to fill species defaults, then override fields as needed.
type Request struct {
	Chan Chan    `desc:"channel species"`
	Vm   float64 `desc:"applied membrane potential (mV)"`
	G    float64 `desc:"unit conductance (pS) -- must be > 0"`
	Eeq  float64 `desc:"equilibrium potential (mV)"`
	Dur  float64 `desc:"recording duration (ms) -- must lie within Params.DurDom"`
}

// NewRequest returns a Request for the given species and potential with
// conductance, equilibrium potential, and duration at their defaults.
func (pp *Params) NewRequest(ch Chan, vm float64) Request {
	return Request{Chan: ch, Vm: vm, G: pp.Gbar, Eeq: pp.Eeq(ch), Dur: pp.DefDur}
}

// RectTrace is the idealized step-function current trace: paired time (ms)
// and current (pA) point lists with instantaneous transitions.
type RectTrace struct {
	Time    []float64 `desc:"time points (ms)"`
	Current []float64 `desc:"current points (pA)"`
}

// ContTrace is the continuous current trace: uniformly sampled over the
// full recording, shaped by the exponential kinetics actually used.
type ContTrace struct {
	Time    []float64     `desc:"uniform sample times (ms)"`
	Current []float64     `desc:"current samples (pA)"`
	Kin     KineticParams `desc:"time constants used, reported even for flat traces"`
}

// Recording is the result of one simulation call.  It is freshly allocated
// per call and owned exclusively by the caller.
type Recording struct {
	Chan     Chan       `desc:"channel species"`
	Vm       float64    `desc:"applied membrane potential (mV)"`
	VRest    float64    `desc:"resting potential (mV) the gating used -- Vm at or below this never opens"`
	Eeq      float64    `desc:"equilibrium potential (mV)"`
	G        float64    `desc:"unit conductance (pS)"`
	Dur      float64    `desc:"recording duration (ms)"`
	Current  float64    `desc:"unit current I = G * (Vm - Eeq) (pA, signed) -- 0 when the gate never opens or there is no net driving force"`
	Fast     bool       `desc:"fast (Na+) vs. slow (K+) kinetics class"`
	Gating   []Interval `desc:"open intervals in normalized [0,1] time, sorted, non-overlapping"`
	Scaled   []Interval `desc:"open intervals in absolute ms within [0, Dur]"`
	NOpen    int        `desc:"number of opening events"`
	OpenTime float64    `desc:"total open time (ms)"`
	OpenProb float64    `desc:"realized open probability of the accepted gating attempt"`
	Rect     RectTrace  `desc:"rectangular trace"`
	Cont     ContTrace  `desc:"continuous trace"`
}

// Open returns true if the channel opened at least once.
func (rc *Recording) Open() bool {
	return len(rc.Gating) > 0
}
