// Package dynamics provides reusable non-I/O dynamics processors.
//
// Included processors:
//   - Compressor: Feed-forward compressor with peak envelope detection and
//     dB-domain gain computation.
//   - NoiseGate: Hard-threshold gate whose open/close decision is smoothed
//     by attack/release followers.
//
// Both processors share the one-pole attack/release follower in this
// package and convert levels to decibels with a small floor so silence
// stays finite. The hot-path log/pow conversions go through a build-tag
// shim: the default build uses the standard library, the fastmath tag
// swaps in approximations from algo-approx.
package dynamics
