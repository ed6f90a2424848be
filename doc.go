// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package biophys is the overall repository for the computational core of an
educational membrane-biophysics environment, implemented in the Go language
(golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* chanrec: stochastic single-channel (patch clamp) recording simulator --
generates a biophysically plausible open / closed gating sequence for a
voltage-gated ion channel and synthesizes both an idealized rectangular
current trace and a continuous trace shaped by activation, inactivation,
and deactivation kinetics.

* nernst, goldman: closed-form equilibrium and membrane potential solvers
(Nernst equation and Goldman-Hodgkin-Katz equation).

* ivcurve: current-voltage curve generation for Ohmic channels, and linear
regression analysis of experimental I-V data points.

* osmo: osmolarity, tonicity classification, and Boyle-van't Hoff cell
volume predictions.

* voldyn: two-compartment cell volume dynamics with penetrant solutes,
integrated as a pair of coupled ODEs.

* content: JSON-backed repositories for course content (conferences,
bibliography, worked problems).

* calc: the calculation facade that the presentation layer talks to --
constructs every solver with physiological defaults and forwards
user-entered parameters unchanged.
*/
package biophys
