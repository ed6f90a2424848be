// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chanrec

import (
	"fmt"
	"math"
)

// IonName returns the conventional ion label for the species.
func (ev Chan) IonName() string {
	if ev == Sodium {
		return "Na+"
	}
	return "K+"
}

// Interpretation returns the narrative reading of the recording for the
// presentation layer.  The never-opens and zero-driving-force cases get an
// explanation rather than being treated as failures.
func (rc *Recording) Interpretation() string {
	if !rc.Open() {
		if rc.Vm <= rc.VRest {
			return fmt.Sprintf(
				"The %s channel stays closed: the membrane potential (%g mV) is hyperpolarizing "+
					"relative to the resting potential (%g mV). Voltage-gated channels require depolarization to open.",
				rc.Chan.IonName(), rc.Vm, rc.VRest)
		}
		return fmt.Sprintf(
			"No current was recorded: the membrane potential is at the %s equilibrium potential, "+
				"so there is no net driving force.", rc.Chan.IonName())
	}
	direction := "outward (positive)"
	if rc.Current < 0 {
		direction = "inward (negative)"
	}
	kinetics := "slow (activation only)"
	if rc.Fast {
		kinetics = "fast (activation and inactivation)"
	}
	return fmt.Sprintf(
		"%s channel recording at Vm = %g mV.\n\n"+
			"An %s current of %.1f pA flows while the channel is open.\n\n"+
			"The channel showed %d opening events over the %.1f ms recording, "+
			"with an approximate open probability of %.1f%%.\n\n"+
			"Channel kinetics: %s.",
		rc.Chan.IonName(), rc.Vm, direction, math.Abs(rc.Current),
		rc.NOpen, rc.Dur, 100*rc.OpenProb, kinetics)
}

// FeedbackPoints returns the step-by-step teaching notes for the recording.
func (rc *Recording) FeedbackPoints() []string {
	dv := rc.Vm - rc.Eeq
	fb := []string{
		fmt.Sprintf("Channel: %s | Conductance: %g pS", rc.Chan.IonName(), rc.G),
		fmt.Sprintf("Membrane potential: %g mV | Equilibrium potential: %g mV", rc.Vm, rc.Eeq),
		fmt.Sprintf("Driving force: dV = %.1f mV", dv),
		fmt.Sprintf("Unit current: I = g * dV = %g * %.1f = %.1f pA", rc.G, dv, rc.Current),
	}
	if rc.Open() {
		fb = append(fb, fmt.Sprintf("Total open time: %.2f ms of %g ms", rc.OpenTime, rc.Dur))
	}
	if rc.Fast {
		fb = append(fb, "Na+ channels show rapid activation followed by inactivation, limiting current duration.")
	} else {
		fb = append(fb, "K+ channels activate slowly and stay open, without significant inactivation during the stimulus.")
	}
	return fb
}
