// Package fastmath provides fast approximations for mathematical functions
// used in the per-sample audio path.
//
// These approximations trade a small amount of accuracy for significant
// performance improvements, making them suitable for real-time audio
// processing where speed is critical.
//
// # Accuracy Characteristics
//
// SinCos: quarter-wave table lookup with linear interpolation, roughly 4-5
// significant digits versus math.Sincos.
//
// Pow2M1: 4-term Taylor expansion of 2**x - 1, intended for x in [-1, 1]
// (musical pitch-ratio mapping), <0.2% absolute error there.
//
// Pow: IEEE-754 bit-reinterpretation estimate of a**b. Monotonic but only
// approximately accurate; fine for audio-rate modulation, wrong for
// measurement.
//
// All functions are pure and return finite values for finite input. For
// applications requiring IEEE 754 precision, use the standard library math
// package instead.
package fastmath
