// Package effects implements the per-sample effect algorithms and the
// registry the host selects them from.
//
// Every effect is an owned, independently instantiable state object:
// nothing is shared between instances, so two chains never alias delay
// or filter state. The hot path is Step, which must stay branch-light,
// allocation-free, and bounded-time; parameter derivation happens in
// Init, which the host calls on a block cadence with the latest control
// values.
package effects

// Pots is the four-knob control vector. Each value is in [0, 1]; every
// effect maps the four values onto its own physical parameters. The
// mapping is pure: the same vector always derives the same parameters.
type Pots [4]float64

// Effect is the capability contract the host loop drives.
//
// Describe formats the derived parameters for diagnostics and performs
// no processing. Init derives internal parameters (including filter
// coefficients) from the pots; it is callable repeatedly mid-stream and
// must neither reallocate nor audibly reset running state. Step
// transforms one normalized sample into one normalized sample and never
// fails: out-of-range intermediate values are clamped or soft-limited
// at the point of occurrence.
type Effect interface {
	Name() string
	Describe(pots Pots) string
	Init(pots Pots)
	Step(in float64) float64
}
