// Package core provides shared numeric helpers and the PCM sample
// boundary used across the algo-fx DSP packages.
package core
