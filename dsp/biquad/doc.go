// Package biquad implements second-order IIR filter sections, cascades,
// and RBJ cookbook coefficient synthesis for the real-time effects
// engine.
package biquad
