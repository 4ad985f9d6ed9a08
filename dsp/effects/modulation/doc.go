// Package modulation provides reusable non-I/O modulation effects.
//
// Included processors:
//   - Chorus: Single-voice modulated delay with a sinusoidal LFO.
package modulation
